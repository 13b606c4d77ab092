package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-storyboard-web/internal/domain"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"uppercase fence", "```JSON\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestExtractObjectDirectJSON(t *testing.T) {
	parsed, err := ExtractObject(domain.StageContent, `{"hook": "开头一句"}`)
	require.NoError(t, err)
	assert.Equal(t, "开头一句", parsed["hook"])
}

func TestExtractObjectFencedJSON(t *testing.T) {
	raw := "```json\n{\"titles\": [\"标题一\"]}\n```"

	parsed, err := ExtractObject(domain.StageContent, raw)
	require.NoError(t, err)
	assert.NotNil(t, parsed["titles"])
}

func TestExtractObjectWithSurroundingProse(t *testing.T) {
	raw := "好的，以下是结果：\n{\"hook\": \"开头\", \"cta\": \"关注我\"}\n希望对你有帮助！"

	parsed, err := ExtractObject(domain.StageStoryboard, raw)
	require.NoError(t, err)
	assert.Equal(t, "开头", parsed["hook"])
	assert.Equal(t, "关注我", parsed["cta"])
}

func TestExtractObjectUnparseable(t *testing.T) {
	raw := "抱歉，我无法生成这个内容。"

	parsed, err := ExtractObject(domain.StageContent, raw)
	assert.Nil(t, parsed)

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, domain.StageContent, malformed.Stage)
	// 診断用に生テキストがそのまま保持される
	assert.Equal(t, raw, malformed.Raw)
	assert.NotEmpty(t, malformed.Cleaned)
}

func TestExtractObjectBrokenJSONKeepsCleanedText(t *testing.T) {
	raw := "```json\n{\"hook\": 未加引号\n```"

	_, err := ExtractObject(domain.StageStoryboard, raw)

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, domain.StageStoryboard, malformed.Stage)
	assert.Contains(t, malformed.Cleaned, "{\"hook\"")
	assert.NotContains(t, malformed.Cleaned, "```")
}
