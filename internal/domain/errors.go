package domain

import (
	"fmt"
	"time"
)

// ValidationError は受信リクエスト自体が不正な場合の失敗です。
// 外部呼び出しを一切行わずに即座に返されます。
type ValidationError struct {
	// Field は違反したフィールド名です。
	Field string
	// Reason は違反内容の説明です。
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: field %q %s", e.Field, e.Reason)
}

// RateLimitedError はクライアント単位の回数制限に達した場合の失敗です。
type RateLimitedError struct {
	// ResetAt はウィンドウがリセットされる時刻です。
	ResetAt time.Time
}

func (e *RateLimitedError) Error() string {
	return "rate limit exceeded"
}

// UpstreamError はモデルサービスへの呼び出し（転送・認証・クォータ）の失敗です。
// リトライ回数を使い切った後に表面化します。
type UpstreamError struct {
	Stage Stage
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s stage call failed: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError はモデルが正規化を尽くしても JSON として解析できない
// テキストを返した場合の失敗です。デバッグのため生テキストと整形後テキストを保持します。
type MalformedResponseError struct {
	Stage   Stage
	Raw     string
	Cleaned string
	Err     error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s stage did not return valid JSON", e.Stage)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ShotCountError は構造的には正しいがカット数が尺のルールに合わない失敗です。
type ShotCountError struct {
	Duration int
	Count    int
	Min      int
	Max      int
	// Storyboard は検証に落ちた解析済み成果物です。診断用にそのまま保持します。
	Storyboard *StoryboardResult
}

func (e *ShotCountError) Error() string {
	return fmt.Sprintf("shot count %d does not meet duration rules for %ds (expected %d-%d)",
		e.Count, e.Duration, e.Min, e.Max)
}

// DurationMismatchError はカット秒数の合計が目標尺の許容誤差を超えた失敗です。
type DurationMismatchError struct {
	Want      int
	Got       int
	Tolerance int
	// Storyboard は検証に落ちた解析済み成果物です。
	Storyboard *StoryboardResult
}

func (e *DurationMismatchError) Error() string {
	return fmt.Sprintf("shot durations sum to %ds, expected %ds (±%ds)",
		e.Got, e.Want, e.Tolerance)
}
