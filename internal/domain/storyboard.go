package domain

// TitleCount は最終成果物が必ず持つタイトル案の本数です。
const TitleCount = 10

// StyleToC は成果物に刻印される固定のスタイルタグです。
const StyleToC = "to_c_natural"

// DurationTolerance はカット秒数の合計に許容される誤差（±秒）です。
const DurationTolerance = 3

// ContentResult はコンテンツ段（第1段）の中間成果物です。
// 第2段のプロンプトと最終マージにのみ使われ、単独では永続化されません。
type ContentResult struct {
	// Titles はちょうど10本のタイトル案です。
	Titles []string `json:"titles"`
	// Hook は冒頭3秒のつかみ1文です。
	Hook string `json:"hook"`
	// Voiceover は完全な口語ナレーション原稿です。
	Voiceover string `json:"voiceover"`
	// CTA は結びの行動喚起です。
	CTA string `json:"cta"`
}

// Shot は絵コンテの1カットです。index と秒数以外はすべてプレーンテキストです。
type Shot struct {
	// Shot は1始まりの連番です。
	Shot int `json:"shot" validate:"min=1"`
	// Sec はカットの尺（正の整数秒）です。
	Sec int `json:"sec" validate:"min=1"`
	// Visual は画面に映るものの説明です。
	Visual string `json:"visual"`
	// Camera はカメラワークの指示です。
	Camera string `json:"camera"`
	// Subtitle は画面に載せる字幕です。
	Subtitle string `json:"subtitle"`
	// BGMSfx はBGM・効果音の指定です。
	BGMSfx string `json:"bgm_sfx"`
	// VeoPrompt は下流の動画生成モデルへのメインプロンプトです。
	VeoPrompt string `json:"veo_prompt"`
	// NegativePrompt は除外指定のプロンプトです。
	NegativePrompt string `json:"negative_prompt"`
}

// StoryboardResult は最終成果物の絵コンテです。
// フィンガープリントキャッシュにヒットした場合を除き、リクエストごとに新しく構築され、
// 返却後に書き換えられることはありません。
type StoryboardResult struct {
	Platform    Platform `json:"platform" validate:"required,oneof=douyin shipinhao xiaohongshu"`
	DurationSec int      `json:"duration_sec" validate:"required,oneof=15 30 60"`
	Template    Template `json:"template" validate:"required,oneof=pain_point_hook product_reco story_emotion"`
	Style       string   `json:"style" validate:"eq=to_c_natural"`
	Titles      []string `json:"titles" validate:"len=10,dive,required"`
	Hook        string   `json:"hook"`
	Voiceover   string   `json:"voiceover"`
	CTA         string   `json:"cta"`
	Shots       []Shot   `json:"shots" validate:"min=1,dive"`
}

// TotalShotSec は全カットの尺の合計を返します。
func (s *StoryboardResult) TotalShotSec() int {
	total := 0
	for _, shot := range s.Shots {
		total += shot.Sec
	}
	return total
}
