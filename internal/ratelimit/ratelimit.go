// Package ratelimit はクライアント識別子ごとの固定24時間ウィンドウで
// リクエスト回数を制限します。状態はプロセス内のみに持ちます。
package ratelimit

import (
	"sync"
	"time"
)

// DefaultWindow は回数をリセットするウィンドウ幅です。
const DefaultWindow = 24 * time.Hour

// Result は1回の判定結果です。
type Result struct {
	// Allowed はこのリクエストを通すかどうかです。
	Allowed bool
	// Remaining はウィンドウ内の残り回数です。
	Remaining int
	// ResetAt は現在のウィンドウが終わる時刻です。拒否してもリセットは延びません。
	ResetAt time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
}

// Limiter は識別子ごとのカウンタを保持します。判定と加算は単一のクリティカル
// セクションで行うため、並行リクエストの交錯で limit を超えることはありません。
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	window  time.Duration

	// now はテストから時計を差し替えるためのフックです。
	now func() time.Time
}

// NewLimiter は指定したウィンドウ幅のリミッターを生成します。
func NewLimiter(window time.Duration) *Limiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		buckets: make(map[string]*bucket),
		window:  window,
		now:     time.Now,
	}
}

// Check は識別子の現在ウィンドウにおける許可可否を判定します。
// 初回、またはウィンドウが経過していた場合はカウンタを1で再スタートします。
// 上限到達後の拒否はウィンドウを延長も再スタートもしません。
func (l *Limiter) Check(identity string, limit int) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	b, ok := l.buckets[identity]
	if !ok || b.resetAt.Before(now) {
		resetAt := now.Add(l.window)
		l.buckets[identity] = &bucket{count: 1, resetAt: resetAt}
		return Result{Allowed: true, Remaining: limit - 1, ResetAt: resetAt}
	}

	if b.count >= limit {
		return Result{Allowed: false, Remaining: 0, ResetAt: b.resetAt}
	}

	b.count++
	return Result{Allowed: true, Remaining: limit - b.count, ResetAt: b.resetAt}
}
