package domain

// Stage は2回の生成呼び出しのどちらかを示します。
type Stage string

const (
	StageContent    Stage = "content"
	StageStoryboard Stage = "storyboard"
)

// ProviderInfo は各段を担当したモデル名です。
type ProviderInfo struct {
	Content    string `json:"content"`
	Storyboard string `json:"storyboard"`
}

// GenerateMeta は生成結果に付随するメタデータです。
type GenerateMeta struct {
	// Cached はキャッシュから返された場合に true になります。
	Cached bool `json:"cached"`
	// Provider は各段を担当したモデル名です。
	Provider ProviderInfo `json:"provider"`
	// LatencyMS は生成に要した実時間（ミリ秒）です。キャッシュヒット時は 0 です。
	LatencyMS int64 `json:"latency_ms"`
}

// GenerateOutcome はオーケストレーターが返す生成結果一式です。
type GenerateOutcome struct {
	Storyboard *StoryboardResult
	Meta       GenerateMeta
}

// APIResponse は HTTP 境界で使う共通エンベロープです。
// 失敗時は診断用フィールド（生テキスト・整形後テキスト・解析済みJSON）を
// そのまま呼び出し側へ届けます。
type APIResponse struct {
	OK              bool              `json:"ok"`
	Data            *StoryboardResult `json:"data,omitempty"`
	Error           string            `json:"error,omitempty"`
	Meta            any               `json:"meta,omitempty"`
	RawResponse     string            `json:"rawResponse,omitempty"`
	CleanedResponse string            `json:"cleanedResponse,omitempty"`
	Parsed          any               `json:"parsed,omitempty"`
}
