package adapters

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GeminiAdapter は google.golang.org/genai を TextGenerator に適合させる具象アダプターです。
type GeminiAdapter struct {
	client *genai.Client
}

// NewGeminiAdapter は Gemini API クライアントを初期化します。
func NewGeminiAdapter(ctx context.Context, apiKey string) (*GeminiAdapter, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return &GeminiAdapter{client: client}, nil
}

// Complete はプロンプトを1回完了し、候補のテキスト部分を返します。
func (a *GeminiAdapter) Complete(ctx context.Context, model string, prompt string, cfg SamplingConfig) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(cfg.Temperature),
		TopP:        genai.Ptr(cfg.TopP),
		TopK:        genai.Ptr(cfg.TopK),
	}
	if cfg.MaxOutputTokens > 0 {
		genCfg.MaxOutputTokens = cfg.MaxOutputTokens
	}

	resp, err := a.client.Models.GenerateContent(ctx, model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("Gemini の呼び出しに失敗しました (model: %s): %w", model, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("Gemini が空のレスポンスを返しました (model: %s)", model)
	}
	return text, nil
}
