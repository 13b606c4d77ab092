// Package prompt は生成ブリーフを2種類の自然言語プロンプトへ展開する純粋な関数群です。
// 外部呼び出しも状態も持ちません。
package prompt

import (
	"fmt"
	"strings"

	"ap-storyboard-web/internal/domain"
)

// titlePlaceholder はタイトルが10本に満たない場合の穴埋めテキストです。
const titlePlaceholder = "待补充标题"

// BuildContentPrompt はコンテンツ段（タイトル・フック・ナレーション・CTA）の
// プロンプトを決定的に組み立てます。モデルには JSON のみの出力を指示します。
func BuildContentPrompt(req domain.GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("选题：%s\n", req.Topic))
	sb.WriteString(fmt.Sprintf("平台：%s\n", req.Platform))
	sb.WriteString(fmt.Sprintf("时长：%d秒\n", req.Duration))
	sb.WriteString(fmt.Sprintf("模板：%s\n", req.Template))
	sb.WriteString(fmt.Sprintf("人设：%s\n", req.Persona))
	sb.WriteString(fmt.Sprintf("必须出现：%s\n", req.MustInclude))
	sb.WriteString(fmt.Sprintf("禁忌：%s\n", req.Avoid))

	sb.WriteString(`
请只输出 JSON：
{
  "titles": ["...共10个"],
  "hook": "1句3秒开头",
  "voiceover": "完整口语旁白稿",
  "cta": "结尾互动引导"
}
要求：
- ToC 真实自然，避免营销腔
- 不出现夸张承诺（如"保证""100%""立刻变现"等）`)

	return sb.String()
}

// BuildStoryboardPrompt はナレーション原稿を分镜（絵コンテ）へ書き換えさせる
// プロンプトを組み立てます。尺ごとのカット数ルールと、各カットが必ず持つべき
// veo_prompt / negative_prompt の内容カテゴリを明示します。
func BuildStoryboardPrompt(voiceover string, req domain.GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString("你是短视频编导。请将旁白改写为分镜，并只输出符合 schema 的 JSON。\n\n")
	sb.WriteString("参数：\n")
	sb.WriteString(fmt.Sprintf("- 平台：%s\n", req.Platform))
	sb.WriteString(fmt.Sprintf("- 时长：%d秒\n", req.Duration))
	sb.WriteString(fmt.Sprintf("- 模板：%s\n", req.Template))
	sb.WriteString("- 风格：真实自然、普通人可拍\n")
	sb.WriteString(fmt.Sprintf("- 必须出现：%s\n", req.MustInclude))
	sb.WriteString(fmt.Sprintf("- 禁忌：%s\n", req.Avoid))

	sb.WriteString("\n旁白稿：\n")
	sb.WriteString(voiceover)

	sb.WriteString(`

硬性要求：
- 15s=4~6镜头；30s=6~9；60s=10~14
- 每镜头必须包含 veo_prompt 与 negative_prompt
- veo_prompt 要包含：场景、主体、动作、风格、光线、镜头、画质、比例（9:16）
- negative_prompt 包含禁忌项与常见不希望出现内容（水印、logo、文字错误、畸形手、糊、闪烁等）
- 只输出 JSON，不要解释`)

	return sb.String()
}

// NormalizeTitles は空白のみの要素を捨て、ちょうど10本に揃えたタイトル列を返します。
// 不足分は連番付きのプレースホルダーで補い、超過分は切り捨てます。
// 下流のスキーマ不変条件（タイトルは常に10本）を無条件に保証します。
func NormalizeTitles(titles []string) []string {
	normalized := make([]string, 0, domain.TitleCount)
	for _, t := range titles {
		if strings.TrimSpace(t) == "" {
			continue
		}
		normalized = append(normalized, t)
	}

	for len(normalized) < domain.TitleCount {
		normalized = append(normalized, fmt.Sprintf("%d. %s", len(normalized)+1, titlePlaceholder))
	}

	return normalized[:domain.TitleCount]
}
