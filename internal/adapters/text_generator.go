package adapters

import "context"

// SamplingConfig は1回の生成呼び出しに渡す小さな生成設定です。
type SamplingConfig struct {
	Temperature float32
	TopP        float32
	TopK        float32
	// MaxOutputTokens は 0 のときモデル既定値に任せます。
	MaxOutputTokens int32
}

// TextGenerator は「プロンプトを1つ完了してテキストを返す」サービスの抽象です。
// どの具体サービスが背後にいるかにパイプラインは依存しません。
// 将来的なモック利用を容易にするためインターフェースで定義します。
type TextGenerator interface {
	Complete(ctx context.Context, model string, prompt string, cfg SamplingConfig) (string, error)
}
