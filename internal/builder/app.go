package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-http-kit/pkg/httpkit"

	"ap-storyboard-web/internal/adapters"
	"ap-storyboard-web/internal/cache"
	"ap-storyboard-web/internal/config"
	"ap-storyboard-web/internal/ratelimit"
)

// AppContext はアプリケーションの依存関係を保持します。
// 各フィールドをインターフェースで定義することで、将来的なモック利用を容易にします。
type AppContext struct {
	Config     *config.Config
	Generator  adapters.TextGenerator
	Store      *cache.Store
	Limiter    *ratelimit.Limiter
	Notifier   adapters.FailureNotifier
	HTTPClient httpkit.ClientInterface
}

// BuildAppContext は外部サービスとの接続を確立し、依存関係を組み立てます。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	// 1. 基盤クライアントの初期化
	httpClient := httpkit.New(config.DefaultHTTPTimeout)

	// 2. Gemini アダプターの初期化（両段で共有）
	generator, err := adapters.NewGeminiAdapter(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini adapter: %w", err)
	}

	// 3. プロセス寿命の共有状態（キャッシュ・リミッター）
	store := cache.NewStore(cfg.CacheTTL)
	limiter := ratelimit.NewLimiter(ratelimit.DefaultWindow)

	// 4. 通知アダプターの初期化
	notifier, err := adapters.NewSlackAdapter(httpClient, cfg.SlackWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Slack adapter: %w", err)
	}

	return &AppContext{
		Config:     cfg,
		Generator:  generator,
		Store:      store,
		Limiter:    limiter,
		Notifier:   notifier,
		HTTPClient: httpClient,
	}, nil
}
