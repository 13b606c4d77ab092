package pipeline

import (
	"context"

	"github.com/cenkalti/backoff/v4"
)

// withRetry は1段分の処理を有界リトライで包みます。試行回数は設定値
// （初回を含む、既定2回）、間隔は既定0秒の即時再試行です。最初に成功した
// 試行の結果を採用し、すべて失敗した場合は最後のエラーを返します。
// 各試行には GenerationTimeout のデッドラインを個別に課します。
func (p *StoryboardPipeline) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	policy := backoff.WithMaxRetries(
		backoff.NewConstantBackOff(p.cfg.RetryInterval),
		uint64(attempts-1),
	)

	return backoff.Retry(func() error {
		callCtx, cancel := context.WithTimeout(ctx, p.cfg.GenerationTimeout)
		defer cancel()
		return fn(callCtx)
	}, backoff.WithContext(policy, ctx))
}
