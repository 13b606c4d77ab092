// Package schema は解析済み・未型付けの JSON を正準形の絵コンテへ矯正（coerce）し、
// その後に構造検証とドメイン不変条件の検査を行います。
// 矯正なしの素通しバリアントは存在しません。必ず矯正→厳格検証の順です。
package schema

import (
	"github.com/go-playground/validator/v10"

	"ap-storyboard-web/internal/domain"
	"ap-storyboard-web/internal/prompt"
)

var validate = validator.New()

// Coerce はモデル出力の形ゆれをベストエフォートで補修し、リクエストと
// コンテンツ段の成果物をマージした正準形の StoryboardResult を組み立てます。
// 補修の内容:
//   - titles は NormalizeTitles を通して常に10本へ揃える
//   - shot 連番が欠けたカットには1始まりの位置を割り当てる
//   - 秒数は sec / duration、ビジュアルは visual / veo_prompt の別名を許容する
//   - 未解決のテキストは空文字、未解決の数値は 0 に落とす
func Coerce(parsed map[string]any, req domain.GenerationRequest, content domain.ContentResult) domain.StoryboardResult {
	shots := coerceShots(extractShots(parsed))

	return domain.StoryboardResult{
		Platform:    req.Platform,
		DurationSec: req.Duration,
		Template:    req.Template,
		Style:       domain.StyleToC,
		Titles:      prompt.NormalizeTitles(content.Titles),
		Hook:        content.Hook,
		Voiceover:   content.Voiceover,
		CTA:         content.CTA,
		Shots:       shots,
	}
}

// extractShots は複数のレスポンス構造からカット列を取り出します。
// shots 直下、video_script.shots 配下、video_script が配列そのもの、の順に探します。
func extractShots(parsed map[string]any) []any {
	if shots, ok := parsed["shots"].([]any); ok {
		return shots
	}
	switch script := parsed["video_script"].(type) {
	case map[string]any:
		if shots, ok := script["shots"].([]any); ok {
			return shots
		}
	case []any:
		return script
	}
	return nil
}

func coerceShots(raw []any) []domain.Shot {
	shots := make([]domain.Shot, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		shot := domain.Shot{
			Shot:           asInt(m["shot"], asInt(m["shot_num"], i+1)),
			Sec:            asInt(m["sec"], asInt(m["duration"], 0)),
			Visual:         asString(m["visual"], asString(m["veo_prompt"], "")),
			Camera:         asString(m["camera"], ""),
			Subtitle:       asString(m["subtitle"], asString(m["voiceover"], "")),
			BGMSfx:         asString(m["bgm_sfx"], ""),
			VeoPrompt:      asString(m["veo_prompt"], ""),
			NegativePrompt: asString(m["negative_prompt"], ""),
		}
		if shot.Shot == 0 {
			shot.Shot = i + 1
		}
		shots = append(shots, shot)
	}
	return shots
}

// Validate は厳格な構造検証を行い、続けてドメイン不変条件を検査します。
// カット数ルール違反は ShotCountError、尺の合計ずれは DurationMismatchError として
// それぞれ区別して返します。
func Validate(sb *domain.StoryboardResult) error {
	if err := validate.Struct(sb); err != nil {
		return &domain.ValidationError{
			Field:  firstFieldName(err),
			Reason: "does not match the storyboard schema",
		}
	}

	min, max, ok := domain.ShotCountRange(sb.DurationSec)
	if !ok {
		return &domain.ValidationError{Field: "duration_sec", Reason: "is not a supported duration"}
	}
	if count := len(sb.Shots); count < min || count > max {
		return &domain.ShotCountError{
			Duration:   sb.DurationSec,
			Count:      count,
			Min:        min,
			Max:        max,
			Storyboard: sb,
		}
	}

	if total := sb.TotalShotSec(); abs(total-sb.DurationSec) > domain.DurationTolerance {
		return &domain.DurationMismatchError{
			Want:       sb.DurationSec,
			Got:        total,
			Tolerance:  domain.DurationTolerance,
			Storyboard: sb,
		}
	}

	return nil
}

func firstFieldName(err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return errs[0].Field()
	}
	return "storyboard"
}

// --- 型矯正ヘルパー ---

// asInt は JSON 由来の数値（float64 / int）を int に落とします。
func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return fallback
}

func asString(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
