// Package parser はモデルの生レスポンスから最初の well-formed な JSON オブジェクトを
// 取り出すレスポンス正規化層です。素の JSON、markdown フェンス付き、前後に地の文が
// 付いた「汚れた」出力のいずれにも耐えます。
package parser

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"ap-storyboard-web/internal/domain"
)

var errNoObject = errors.New("no JSON object found in response text")

var (
	leadingFence  = regexp.MustCompile("(?i)^```(?:json)?[ \t]*\n?")
	trailingFence = regexp.MustCompile("\n?[ \t]*```$")
)

// CleanText は markdown コードブロックのフェンス（```json / ```）を剥がして
// 前後の空白を落とします。フェンスが無ければ trim だけを行います。
func CleanText(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = leadingFence.ReplaceAllString(cleaned, "")
	cleaned = trailingFence.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}

// ExtractObject は生テキストから JSON オブジェクトを解析します。
// 手順は順に (1) フェンス除去後の直接解析、(2) 最初の `{` から最後の `}` までの
// 貪欲な切り出しの解析で、最初に成功したものを採用します。
// すべて失敗した場合は、生テキスト・整形後テキスト・解析エラーを抱えた
// MalformedResponseError を返します。呼び出し側はこれをそのままログ・表示に使えます。
func ExtractObject(stage domain.Stage, raw string) (map[string]any, error) {
	cleaned := CleanText(raw)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed, nil
	}

	candidate, parseErr := extractBraces(cleaned)
	if parseErr == nil {
		if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
			return parsed, nil
		} else {
			parseErr = err
		}
	}

	return nil, &domain.MalformedResponseError{
		Stage:   stage,
		Raw:     raw,
		Cleaned: cleaned,
		Err:     parseErr,
	}
}

// extractBraces は最初の `{` から最後の `}` までを貪欲に切り出します。
func extractBraces(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", errNoObject
	}
	return text[start : end+1], nil
}
