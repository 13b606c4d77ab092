package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-storyboard-web/internal/config"
	"ap-storyboard-web/internal/domain"
)

// stubExecutor は固定の結果を返す GenerateExecutor です。
type stubExecutor struct {
	outcome *domain.GenerateOutcome
	err     error

	gotReq      domain.GenerationRequest
	gotClientID string
	calls       int
}

func (s *stubExecutor) Generate(_ context.Context, req domain.GenerationRequest, clientID string) (*domain.GenerateOutcome, error) {
	s.calls++
	s.gotReq = req
	s.gotClientID = clientID
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func newTestHandler(exec *stubExecutor) *Handler {
	return NewHandler(&config.Config{}, exec)
}

func successOutcome() *domain.GenerateOutcome {
	titles := make([]string, domain.TitleCount)
	for i := range titles {
		titles[i] = "标题"
	}
	return &domain.GenerateOutcome{
		Storyboard: &domain.StoryboardResult{
			Platform:    domain.PlatformDouyin,
			DurationSec: 30,
			Template:    domain.TemplatePainPointHook,
			Style:       domain.StyleToC,
			Titles:      titles,
			Shots:       []domain.Shot{{Shot: 1, Sec: 30, Visual: "画面"}},
		},
		Meta: domain.GenerateMeta{
			Cached:    false,
			Provider:  domain.ProviderInfo{Content: "m1", Storyboard: "m2"},
			LatencyMS: 1234,
		},
	}
}

const validBody = `{"topic":"宝妈副业避坑","platform":"douyin","duration":30,"template":"pain_point_hook"}`

func doGenerate(h *Handler, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(body))
	req.RemoteAddr = "192.0.2.1:54321"
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleGenerateSuccess(t *testing.T) {
	exec := &stubExecutor{outcome: successOutcome()}
	h := newTestHandler(exec)

	rec := doGenerate(h, validBody, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["ok"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "to_c_natural", data["style"])

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, meta["cached"])
	assert.Equal(t, float64(1234), meta["latency_ms"])
}

func TestHandleGenerateAppliesPersonaDefault(t *testing.T) {
	exec := &stubExecutor{outcome: successOutcome()}
	h := newTestHandler(exec)

	doGenerate(h, validBody, nil)

	assert.Equal(t, domain.PersonaNatural, exec.gotReq.Persona)
}

func TestHandleGenerateInvalidJSON(t *testing.T) {
	exec := &stubExecutor{outcome: successOutcome()}
	h := newTestHandler(exec)

	rec := doGenerate(h, "{not json", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Zero(t, exec.calls, "不正なボディはパイプラインへ到達しない")
}

func TestHandleGenerateValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"missing topic", `{"platform":"douyin","duration":30,"template":"pain_point_hook"}`, "topic"},
		{"unknown platform", `{"topic":"t","platform":"youtube","duration":30,"template":"pain_point_hook"}`, "platform"},
		{"unsupported duration", `{"topic":"t","platform":"douyin","duration":45,"template":"pain_point_hook"}`, "duration"},
		{"unknown template", `{"topic":"t","platform":"douyin","duration":30,"template":"viral"}`, "template"},
		{"unknown persona", `{"topic":"t","platform":"douyin","duration":30,"template":"pain_point_hook","persona":"robot"}`, "persona"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &stubExecutor{outcome: successOutcome()}
			h := newTestHandler(exec)

			rec := doGenerate(h, tt.body, nil)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			// エラーメッセージは json タグ名でフィールドを報告する
			assert.Contains(t, body["error"], tt.wantField)
			assert.Zero(t, exec.calls)
		})
	}
}

func TestHandleGenerateRateLimited(t *testing.T) {
	resetAt := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	exec := &stubExecutor{err: &domain.RateLimitedError{ResetAt: resetAt}}
	h := newTestHandler(exec)

	rec := doGenerate(h, validBody, nil)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(resetAt.UnixMilli()), meta["resetAt"])
}

func TestHandleGenerateMalformedResponse(t *testing.T) {
	exec := &stubExecutor{err: &domain.MalformedResponseError{
		Stage:   domain.StageStoryboard,
		Raw:     "```json broken",
		Cleaned: "broken",
	}}
	h := newTestHandler(exec)

	rec := doGenerate(h, validBody, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "```json broken", body["rawResponse"])
	assert.Equal(t, "broken", body["cleanedResponse"])
}

func TestHandleGenerateShotCountError(t *testing.T) {
	failed := successOutcome().Storyboard
	exec := &stubExecutor{err: &domain.ShotCountError{
		Duration: 30, Count: 3, Min: 6, Max: 9, Storyboard: failed,
	}}
	h := newTestHandler(exec)

	rec := doGenerate(h, validBody, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	parsed, ok := body["parsed"].(map[string]any)
	require.True(t, ok, "検証に落ちた解析結果が parsed として返る")
	assert.Equal(t, "to_c_natural", parsed["style"])
}

func TestHandleGenerateUpstreamError(t *testing.T) {
	exec := &stubExecutor{err: &domain.UpstreamError{Stage: domain.StageContent}}
	h := newTestHandler(exec)

	rec := doGenerate(h, validBody, nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.Nil(t, body["data"])
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(&stubExecutor{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.HandleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestClientIdentity(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"forwarded single", "10.0.0.1:1234", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain takes first", "10.0.0.1:1234", "203.0.113.7, 10.0.0.2", "203.0.113.7"},
		{"remote addr fallback", "192.0.2.1:54321", "", "192.0.2.1"},
		{"remote addr without port", "192.0.2.1", "", "192.0.2.1"},
		{"no identity", "", "", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			assert.Equal(t, tt.want, clientIdentity(req))
		})
	}
}
