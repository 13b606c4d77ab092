// Package cache はブリーフのフィンガープリントをキーにした絵コンテの
// プロセス内キャッシュです。容量上限は持たず、期限切れは読み出し時に
// 遅延削除されます（バックグラウンド掃除なし）。
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"ap-storyboard-web/internal/domain"
)

// DefaultTTL は成果物の既定の保持期間です。
const DefaultTTL = 7 * 24 * time.Hour

// fingerprintFields はフィンガープリントに寄与するフィールドだけを固定順で持ちます。
// 呼び出し元の識別子やタイムスタンプは意図的に含めません。同じブリーフなら
// 別クライアントでも衝突し、キャッシュを共有します。
type fingerprintFields struct {
	Topic       string          `json:"topic"`
	Platform    domain.Platform `json:"platform"`
	Duration    int             `json:"duration"`
	Template    domain.Template `json:"template"`
	Persona     domain.Persona  `json:"persona"`
	MustInclude string          `json:"must_include"`
	Avoid       string          `json:"avoid"`
}

// Fingerprint はリクエストの意味的フィールドのみから安定したキーを導出します。
func Fingerprint(req domain.GenerationRequest) string {
	payload, _ := json.Marshal(fingerprintFields{
		Topic:       req.Topic,
		Platform:    req.Platform,
		Duration:    req.Duration,
		Template:    req.Template,
		Persona:     req.Persona,
		MustInclude: req.MustInclude,
		Avoid:       req.Avoid,
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// Store は StoryboardResult の TTL 付きストアです。並行アクセスに対して安全です。
type Store struct {
	items *gocache.Cache
}

// NewStore は指定した TTL のストアを生成します。掃除用のジャニターは起動しません。
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{items: gocache.New(ttl, 0)}
}

// Get はキーに対応する成果物を返します。存在しないか期限切れの場合はミスとして扱い、
// 残っている古いエントリをその場で削除します。
func (s *Store) Get(key string) (*domain.StoryboardResult, bool) {
	v, found := s.items.Get(key)
	if !found {
		// 期限切れで残っているエントリの遅延削除。未登録キーへの Delete は無害。
		s.items.Delete(key)
		return nil, false
	}
	sb, ok := v.(*domain.StoryboardResult)
	if !ok {
		return nil, false
	}
	return sb, true
}

// Set は成果物を既定 TTL 付きで保存します。同じキーへの書き込みは上書きです。
func (s *Store) Set(key string, value *domain.StoryboardResult) {
	s.items.SetDefault(key, value)
}
