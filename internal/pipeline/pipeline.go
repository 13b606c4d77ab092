// Package pipeline はコンテンツ段→分镜段の2回の生成呼び出しを直列に駆動し、
// 検証済みの絵コンテ1件へ合流させるオーケストレーターです。
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"ap-storyboard-web/internal/adapters"
	"ap-storyboard-web/internal/cache"
	"ap-storyboard-web/internal/config"
	"ap-storyboard-web/internal/domain"
	"ap-storyboard-web/internal/ratelimit"
)

// StoryboardPipeline は生成の全工程（レート制限・キャッシュ・2段の生成・検証）を
// 司令塔として束ねます。共有する可変状態はキャッシュとリミッターのみです。
type StoryboardPipeline struct {
	cfg       *config.Config
	generator adapters.TextGenerator
	store     *cache.Store
	limiter   *ratelimit.Limiter
	notifier  adapters.FailureNotifier

	// now はテストから時計を差し替えるためのフックです。
	now func() time.Time
}

// NewStoryboardPipeline は依存をすべて注入してパイプラインを生成します。
// notifier は nil を許容します（通知なしで動作）。
func NewStoryboardPipeline(
	cfg *config.Config,
	generator adapters.TextGenerator,
	store *cache.Store,
	limiter *ratelimit.Limiter,
	notifier adapters.FailureNotifier,
) *StoryboardPipeline {
	return &StoryboardPipeline{
		cfg:       cfg,
		generator: generator,
		store:     store,
		limiter:   limiter,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Generate はブリーフ1件を検証済みの絵コンテへ変換します。
// いずれかの段がリトライを使い切って失敗した場合、操作全体が中断されます。
// 部分的な成果物は返さず、キャッシュにも書き込みません。
func (p *StoryboardPipeline) Generate(ctx context.Context, req domain.GenerationRequest, clientID string) (*domain.GenerateOutcome, error) {
	// 1. レート制限。拒否された場合はここで終わり、以降の処理は行いません。
	limit := p.limiter.Check(clientID, p.cfg.RateLimitPerIP)
	if !limit.Allowed {
		slog.InfoContext(ctx, "Rate limit exceeded", "client", clientID, "reset_at", limit.ResetAt)
		return nil, &domain.RateLimitedError{ResetAt: limit.ResetAt}
	}

	// 2. フィンガープリント照合。ヒットすればモデル呼び出しを両方ともスキップします。
	key := cache.Fingerprint(req)
	if cached, ok := p.store.Get(key); ok {
		slog.InfoContext(ctx, "Cache hit", "fingerprint", key[:12])
		return &domain.GenerateOutcome{
			Storyboard: cached,
			Meta:       p.buildMeta(true, 0),
		}, nil
	}

	start := p.now()

	// 3. コンテンツ段（タイトル・フック・ナレーション・CTA）
	content, err := p.runContentStep(ctx, req)
	if err != nil {
		p.notifyFailure(ctx, err, req)
		return nil, err
	}

	// 4. 分镜段（ナレーションを絵コンテへ展開し、矯正と厳格検証を通す）
	storyboard, err := p.runStoryboardStep(ctx, req, content)
	if err != nil {
		p.notifyFailure(ctx, err, req)
		return nil, err
	}

	// 5. 成功した成果物だけをキャッシュします。
	p.store.Set(key, storyboard)

	latency := p.now().Sub(start).Milliseconds()
	slog.InfoContext(ctx, "Generation completed", "fingerprint", key[:12], "latency_ms", latency, "shots", len(storyboard.Shots))

	return &domain.GenerateOutcome{
		Storyboard: storyboard,
		Meta:       p.buildMeta(false, latency),
	}, nil
}

func (p *StoryboardPipeline) buildMeta(cached bool, latencyMS int64) domain.GenerateMeta {
	return domain.GenerateMeta{
		Cached: cached,
		Provider: domain.ProviderInfo{
			Content:    p.cfg.ContentModel,
			Storyboard: p.cfg.StoryboardModel,
		},
		LatencyMS: latencyMS,
	}
}

// notifyFailure はエラー発生時に FailureNotifier を通じて通知を行います。
// 通知自体の失敗は操作の結果に影響させません。
func (p *StoryboardPipeline) notifyFailure(ctx context.Context, opErr error, req domain.GenerationRequest) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.NotifyFailure(ctx, opErr, req); err != nil {
		slog.ErrorContext(ctx, "Failed to send failure notification", "error", err)
	}
}
