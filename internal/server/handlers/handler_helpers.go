package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"ap-storyboard-web/internal/domain"
)

// respondJSON はエンベロープを JSON としてレスポンスに書き込みます。
func (h *Handler) respondJSON(w http.ResponseWriter, status int, body domain.APIResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}

// respondError はエラー分類ごとにステータスコードと診断フィールドを振り分けます。
//   - ValidationError      → 400
//   - RateLimitedError     → 429 (meta.resetAt 付き)
//   - MalformedResponse    → 500 (rawResponse / cleanedResponse 付き)
//   - ShotCount / Duration → 500 (検証に落ちた解析結果を parsed として添付)
//   - それ以外             → 500
//
// 診断フィールドは上流モデルのドリフトをデバッグするために end-to-end で保持します。
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		slog.WarnContext(r.Context(), "Request rejected by validation", "field", ve.Field)
		h.respondJSON(w, http.StatusBadRequest, domain.APIResponse{OK: false, Error: ve.Error()})
		return
	}

	var rl *domain.RateLimitedError
	if errors.As(err, &rl) {
		h.respondJSON(w, http.StatusTooManyRequests, domain.APIResponse{
			OK:    false,
			Error: rl.Error(),
			Meta: struct {
				ResetAt int64 `json:"resetAt"`
			}{ResetAt: rl.ResetAt.UnixMilli()},
		})
		return
	}

	var mr *domain.MalformedResponseError
	if errors.As(err, &mr) {
		slog.ErrorContext(r.Context(), "Model returned unparseable text", "stage", mr.Stage, "error", mr.Err)
		h.respondJSON(w, http.StatusInternalServerError, domain.APIResponse{
			OK:              false,
			Error:           mr.Error(),
			RawResponse:     mr.Raw,
			CleanedResponse: mr.Cleaned,
		})
		return
	}

	var sc *domain.ShotCountError
	if errors.As(err, &sc) {
		slog.ErrorContext(r.Context(), "Storyboard violated shot count rule", "count", sc.Count, "duration", sc.Duration)
		h.respondJSON(w, http.StatusInternalServerError, domain.APIResponse{
			OK:     false,
			Error:  sc.Error(),
			Parsed: sc.Storyboard,
		})
		return
	}

	var dm *domain.DurationMismatchError
	if errors.As(err, &dm) {
		slog.ErrorContext(r.Context(), "Storyboard violated duration sum rule", "got", dm.Got, "want", dm.Want)
		h.respondJSON(w, http.StatusInternalServerError, domain.APIResponse{
			OK:     false,
			Error:  dm.Error(),
			Parsed: dm.Storyboard,
		})
		return
	}

	slog.ErrorContext(r.Context(), "Generation failed", "error", err)
	h.respondJSON(w, http.StatusInternalServerError, domain.APIResponse{OK: false, Error: err.Error()})
}
