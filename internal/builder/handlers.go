package builder

import (
	"ap-storyboard-web/internal/pipeline"
	"ap-storyboard-web/internal/server/handlers"
)

// AppHandlers は生成されたすべての HTTP ハンドラーを保持する構造体です。
// server パッケージはこの構造体を受け取ってルーティングを行います。
type AppHandlers struct {
	API *handlers.Handler
}

// BuildHandlers はパイプラインとハンドラーの依存関係を組み立てます。
func BuildHandlers(appCtx *AppContext) *AppHandlers {
	p := pipeline.NewStoryboardPipeline(
		appCtx.Config,
		appCtx.Generator,
		appCtx.Store,
		appCtx.Limiter,
		appCtx.Notifier,
	)

	return &AppHandlers{
		API: handlers.NewHandler(appCtx.Config, p),
	}
}
