package pipeline

import (
	"context"
	"log/slog"

	"ap-storyboard-web/internal/adapters"
	"ap-storyboard-web/internal/domain"
	"ap-storyboard-web/internal/parser"
	"ap-storyboard-web/internal/prompt"
	"ap-storyboard-web/internal/schema"
)

// 各段のサンプリング設定。コンテンツ段のみ出力長に上限を設けます。
var (
	contentSampling = adapters.SamplingConfig{
		Temperature:     0.6,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 1200,
	}
	storyboardSampling = adapters.SamplingConfig{
		Temperature: 0.6,
		TopP:        0.95,
		TopK:        40,
	}
)

// runContentStep はコンテンツ段を実行し、タイトル10本・フック・ナレーション・CTA を
// 取り出します。呼び出しと解析はひとまとめにリトライ境界の内側です。
func (p *StoryboardPipeline) runContentStep(ctx context.Context, req domain.GenerationRequest) (domain.ContentResult, error) {
	slog.InfoContext(ctx, "Step: Content generation", "model", p.cfg.ContentModel, "topic", req.Topic)

	promptText := prompt.BuildContentPrompt(req)

	var result domain.ContentResult
	err := p.withRetry(ctx, func(callCtx context.Context) error {
		text, err := p.generator.Complete(callCtx, p.cfg.ContentModel, promptText, contentSampling)
		if err != nil {
			return &domain.UpstreamError{Stage: domain.StageContent, Err: err}
		}

		parsed, err := parser.ExtractObject(domain.StageContent, text)
		if err != nil {
			return err
		}

		result = buildContentResult(parsed)
		return nil
	})
	if err != nil {
		return domain.ContentResult{}, err
	}

	return result, nil
}

// runStoryboardStep は分镜段を実行します。矯正（coerce）まではリトライ境界の内側、
// 厳格検証とドメイン不変条件はその外側です。検証違反は再試行しても直らないためです。
func (p *StoryboardPipeline) runStoryboardStep(ctx context.Context, req domain.GenerationRequest, content domain.ContentResult) (*domain.StoryboardResult, error) {
	slog.InfoContext(ctx, "Step: Storyboard generation", "model", p.cfg.StoryboardModel, "duration", req.Duration)

	promptText := prompt.BuildStoryboardPrompt(content.Voiceover, req)

	var storyboard domain.StoryboardResult
	err := p.withRetry(ctx, func(callCtx context.Context) error {
		text, err := p.generator.Complete(callCtx, p.cfg.StoryboardModel, promptText, storyboardSampling)
		if err != nil {
			return &domain.UpstreamError{Stage: domain.StageStoryboard, Err: err}
		}

		parsed, err := parser.ExtractObject(domain.StageStoryboard, text)
		if err != nil {
			return err
		}

		storyboard = schema.Coerce(parsed, req, content)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := schema.Validate(&storyboard); err != nil {
		return nil, err
	}

	return &storyboard, nil
}

// buildContentResult は解析済み JSON をコンテンツ段の成果物へ整形します。
// タイトルはここで必ず10本へ正規化され、欠けたテキストは空文字に落ちます。
func buildContentResult(parsed map[string]any) domain.ContentResult {
	return domain.ContentResult{
		Titles:    prompt.NormalizeTitles(asStringSlice(parsed["titles"])),
		Hook:      asString(parsed["hook"]),
		Voiceover: asString(parsed["voiceover"]),
		CTA:       asString(parsed["cta"]),
	}
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
