package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-notifier/pkg/factory"
	"github.com/shouni/go-notifier/pkg/slack"

	"ap-storyboard-web/internal/domain"
)

// --- インターフェース定義 ---

// FailureNotifier は生成パイプラインの失敗を運用チャンネルへ届ける抽象です。
type FailureNotifier interface {
	NotifyFailure(ctx context.Context, errDetail error, req domain.GenerationRequest) error
}

// --- 具象アダプター ---

type SlackAdapter struct {
	httpClient  httpkit.ClientInterface
	webhookURL  string
	slackClient *slack.Client
}

// NewSlackAdapter は通知アダプターを初期化します。webhookURL が空の場合は
// 何もしないアダプターとして動作します。
func NewSlackAdapter(httpClient httpkit.ClientInterface, webhookURL string) (*SlackAdapter, error) {
	if webhookURL == "" {
		return &SlackAdapter{webhookURL: webhookURL}, nil
	}
	client, err := factory.GetSlackClient(httpClient)
	if err != nil {
		return nil, fmt.Errorf("Slackクライアントの初期化に失敗しました: %w", err)
	}

	return &SlackAdapter{
		httpClient:  httpClient,
		webhookURL:  webhookURL,
		slackClient: client,
	}, nil
}

// NotifyFailure はリトライを使い切った生成失敗の詳細を Slack へ送信します。
// モデル出力のドリフトを調査する起点になるため、エラー文字列をそのまま載せます。
func (a *SlackAdapter) NotifyFailure(ctx context.Context, errDetail error, req domain.GenerationRequest) error {
	if a.slackClient == nil {
		slog.Info("Slackクライアントが初期化されていないため、エラー通知をスキップします。", "error", errDetail)
		return nil
	}

	title := "❌ 絵コンテ生成に失敗しました"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*选题:* `%s`\n", req.Topic))
	sb.WriteString(fmt.Sprintf("*プラットフォーム:* `%s` / *尺:* `%d秒` / *テンプレート:* `%s`\n\n", req.Platform, req.Duration, req.Template))

	// スタックトレース等の可読性のため、エラー詳細はコードブロックで囲みます。
	sb.WriteString("*エラー内容:*\n")
	sb.WriteString(fmt.Sprintf("```\n%v\n```\n", errDetail))

	if err := a.slackClient.SendTextWithHeader(ctx, title, sb.String()); err != nil {
		return fmt.Errorf("Slackへのエラー通知に失敗しました: %w", err)
	}

	slog.Info("Slack にエラー通知を送信しました。", "topic", req.Topic)
	return nil
}
