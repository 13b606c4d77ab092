package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-storyboard-web/internal/domain"
)

func testRequest(duration int) domain.GenerationRequest {
	return domain.GenerationRequest{
		Topic:    "宝妈副业避坑",
		Platform: domain.PlatformDouyin,
		Duration: duration,
		Template: domain.TemplatePainPointHook,
		Persona:  domain.PersonaNatural,
	}
}

func testContent() domain.ContentResult {
	return domain.ContentResult{
		Titles:    []string{"标题一", "标题二"},
		Hook:      "开头一句",
		Voiceover: "完整旁白",
		CTA:       "关注我",
	}
}

// validStoryboard は指定カット数・合計秒数の検証済み相当の絵コンテを組み立てます。
func validStoryboard(duration, shotCount, totalSec int) *domain.StoryboardResult {
	titles := make([]string, domain.TitleCount)
	for i := range titles {
		titles[i] = "标题"
	}

	shots := make([]domain.Shot, 0, shotCount)
	remaining := totalSec
	for i := 0; i < shotCount; i++ {
		sec := remaining / (shotCount - i)
		remaining -= sec
		shots = append(shots, domain.Shot{
			Shot:      i + 1,
			Sec:       sec,
			Visual:    "画面描述",
			VeoPrompt: "veo prompt",
		})
	}

	return &domain.StoryboardResult{
		Platform:    domain.PlatformDouyin,
		DurationSec: duration,
		Template:    domain.TemplatePainPointHook,
		Style:       domain.StyleToC,
		Titles:      titles,
		Hook:        "开头",
		Voiceover:   "旁白",
		CTA:         "关注",
		Shots:       shots,
	}
}

func TestCoerceCanonicalFields(t *testing.T) {
	parsed := map[string]any{
		"shots": []any{
			map[string]any{
				"shot": float64(1), "sec": float64(4),
				"visual": "开场画面", "camera": "特写",
				"subtitle": "字幕", "bgm_sfx": "轻快BGM",
				"veo_prompt": "veo", "negative_prompt": "水印",
			},
		},
	}

	got := Coerce(parsed, testRequest(30), testContent())

	assert.Equal(t, domain.PlatformDouyin, got.Platform)
	assert.Equal(t, 30, got.DurationSec)
	assert.Equal(t, domain.StyleToC, got.Style)
	assert.Len(t, got.Titles, domain.TitleCount)
	assert.Equal(t, "开头一句", got.Hook)
	assert.Equal(t, "完整旁白", got.Voiceover)

	require.Len(t, got.Shots, 1)
	shot := got.Shots[0]
	assert.Equal(t, 1, shot.Shot)
	assert.Equal(t, 4, shot.Sec)
	assert.Equal(t, "开场画面", shot.Visual)
	assert.Equal(t, "轻快BGM", shot.BGMSfx)
}

func TestCoerceAliasFields(t *testing.T) {
	parsed := map[string]any{
		"shots": []any{
			map[string]any{
				"shot_num":   float64(3),
				"duration":   float64(5),
				"veo_prompt": "场景描述",
				"voiceover":  "这句当字幕",
			},
		},
	}

	got := Coerce(parsed, testRequest(15), testContent())

	require.Len(t, got.Shots, 1)
	shot := got.Shots[0]
	assert.Equal(t, 3, shot.Shot, "shot_num は shot の別名")
	assert.Equal(t, 5, shot.Sec, "duration は sec の別名")
	assert.Equal(t, "场景描述", shot.Visual, "visual 欠落時は veo_prompt で補う")
	assert.Equal(t, "这句当字幕", shot.Subtitle, "subtitle 欠落時は voiceover で補う")
}

func TestCoerceAssignsMissingShotIndex(t *testing.T) {
	parsed := map[string]any{
		"shots": []any{
			map[string]any{"sec": float64(3)},
			map[string]any{"sec": float64(4)},
		},
	}

	got := Coerce(parsed, testRequest(15), testContent())

	require.Len(t, got.Shots, 2)
	assert.Equal(t, 1, got.Shots[0].Shot)
	assert.Equal(t, 2, got.Shots[1].Shot)
}

func TestCoerceNestedShotContainers(t *testing.T) {
	tests := []struct {
		name   string
		parsed map[string]any
	}{
		{
			name: "video_script object",
			parsed: map[string]any{
				"video_script": map[string]any{
					"shots": []any{map[string]any{"sec": float64(5)}},
				},
			},
		},
		{
			name: "video_script array",
			parsed: map[string]any{
				"video_script": []any{map[string]any{"sec": float64(5)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Coerce(tt.parsed, testRequest(15), testContent())
			require.Len(t, got.Shots, 1)
			assert.Equal(t, 5, got.Shots[0].Sec)
		})
	}
}

func TestCoerceNoShots(t *testing.T) {
	got := Coerce(map[string]any{"hook": "无分镜"}, testRequest(30), testContent())
	assert.Empty(t, got.Shots)
}

func TestValidateAcceptsShotCountBoundaries(t *testing.T) {
	tests := []struct {
		duration int
		count    int
	}{
		{15, 4}, {15, 6},
		{30, 6}, {30, 9},
		{60, 10}, {60, 14},
	}

	for _, tt := range tests {
		sb := validStoryboard(tt.duration, tt.count, tt.duration)
		assert.NoError(t, Validate(sb), "duration=%d count=%d", tt.duration, tt.count)
	}
}

func TestValidateRejectsShotCountOutOfRange(t *testing.T) {
	tests := []struct {
		duration int
		count    int
	}{
		{15, 3}, {15, 7},
		{30, 5}, {30, 10},
		{60, 9}, {60, 15},
	}

	for _, tt := range tests {
		sb := validStoryboard(tt.duration, tt.count, tt.duration)
		err := Validate(sb)

		var scErr *domain.ShotCountError
		require.ErrorAs(t, err, &scErr, "duration=%d count=%d", tt.duration, tt.count)
		assert.Equal(t, tt.count, scErr.Count)
		assert.Same(t, sb, scErr.Storyboard, "診断用に解析結果を保持する")
	}
}

func TestValidateDurationTolerance(t *testing.T) {
	// ±3秒まで許容、それを超えると DurationMismatchError
	assert.NoError(t, Validate(validStoryboard(30, 7, 33)))
	assert.NoError(t, Validate(validStoryboard(30, 7, 27)))

	err := Validate(validStoryboard(30, 7, 35))
	var dmErr *domain.DurationMismatchError
	require.ErrorAs(t, err, &dmErr)
	assert.Equal(t, 30, dmErr.Want)
	assert.Equal(t, 35, dmErr.Got)
	assert.NotNil(t, dmErr.Storyboard)
}

func TestValidateRejectsBrokenStructure(t *testing.T) {
	sb := validStoryboard(30, 7, 30)
	sb.Style = "cinematic"

	err := Validate(sb)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateRejectsZeroSecShot(t *testing.T) {
	sb := validStoryboard(15, 5, 15)
	sb.Shots[2].Sec = 0

	err := Validate(sb)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
}
