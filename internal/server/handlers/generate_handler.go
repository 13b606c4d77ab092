package handlers

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"ap-storyboard-web/internal/domain"
)

// HandleGenerate は POST /api/generate を処理します。
// リクエスト検証 → パイプライン実行 → エンベロープへの詰め替え、の順です。
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Failed to decode request body", "error", err)
		h.respondError(w, r, &domain.ValidationError{Field: "body", Reason: "is not valid JSON"})
		return
	}

	req.ApplyDefaults()

	if err := h.validate.Struct(&req); err != nil {
		h.respondError(w, r, toValidationError(err))
		return
	}

	outcome, err := h.pipeline.Generate(r.Context(), req, clientIdentity(r))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, http.StatusOK, domain.APIResponse{
		OK:   true,
		Data: outcome.Storyboard,
		Meta: outcome.Meta,
	})
}

// HandleHealth は稼働確認用のエンドポイントです。
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// toValidationError は validator のエラーから最初の違反を取り出し、
// 違反したフィールド名を持つ ValidationError に変換します。
func toValidationError(err error) *domain.ValidationError {
	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		return &domain.ValidationError{
			Field:  errs[0].Field(),
			Reason: "failed constraint " + errs[0].Tag(),
		}
	}
	return &domain.ValidationError{Field: "request", Reason: "is invalid"}
}

// clientIdentity はレート制限単位のクライアント識別子を導出します。
// X-Forwarded-For の先頭 → トランスポートのアドレス → "anonymous" の順で解決します。
func clientIdentity(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		first, _, _ := strings.Cut(header, ",")
		if trimmed := strings.TrimSpace(first); trimmed != "" {
			return trimmed
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return "anonymous"
}
