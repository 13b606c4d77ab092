package domain

// Platform は投稿先の短尺動画プラットフォームを表します。
type Platform string

const (
	PlatformDouyin      Platform = "douyin"
	PlatformShipinhao   Platform = "shipinhao"
	PlatformXiaohongshu Platform = "xiaohongshu"
)

// Template は動画の構成テンプレートを表します。
type Template string

const (
	TemplatePainPointHook Template = "pain_point_hook"
	TemplateProductReco   Template = "product_reco"
	TemplateStoryEmotion  Template = "story_emotion"
)

// Persona はナレーションの語り口を表します。
type Persona string

const (
	PersonaNatural      Persona = "natural"
	PersonaProfessional Persona = "professional"
	PersonaFunny        Persona = "funny"
	PersonaWarm         Persona = "warm"
)

// GenerationRequest は呼び出し側から渡される生成ブリーフです。
// 構築後は不変であり、キャッシュのフィンガープリントを完全に決定します。
type GenerationRequest struct {
	// Topic は動画の選題です。(1〜120文字)
	Topic string `json:"topic" validate:"required,min=1,max=120"`
	// Platform は投稿先プラットフォームです。
	Platform Platform `json:"platform" validate:"required,oneof=douyin shipinhao xiaohongshu"`
	// Duration は目標尺（秒）です。15 / 30 / 60 のいずれか。
	Duration int `json:"duration" validate:"required,oneof=15 30 60"`
	// Template は構成テンプレートのタグです。
	Template Template `json:"template" validate:"required,oneof=pain_point_hook product_reco story_emotion"`
	// Persona は語り口のタグです。省略時は natural になります。
	Persona Persona `json:"persona" validate:"omitempty,oneof=natural professional funny warm"`
	// MustInclude は必ず盛り込む要素の自由記述です。(200文字まで)
	MustInclude string `json:"must_include" validate:"max=200"`
	// Avoid は避けるべき要素の自由記述です。(200文字まで)
	Avoid string `json:"avoid" validate:"max=200"`
}

// ApplyDefaults は省略可能フィールドの既定値を補います。
func (r *GenerationRequest) ApplyDefaults() {
	if r.Persona == "" {
		r.Persona = PersonaNatural
	}
}

// ShotCountRange は尺ごとのカット数の下限・上限を返します。
// 判定できない尺の場合は ok=false を返します。
func ShotCountRange(duration int) (min, max int, ok bool) {
	switch duration {
	case 15:
		return 4, 6, true
	case 30:
		return 6, 9, true
	case 60:
		return 10, 14, true
	}
	return 0, 0, false
}
