package handlers

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"ap-storyboard-web/internal/config"
	"ap-storyboard-web/internal/domain"
)

// GenerateExecutor は生成パイプラインの公開操作の抽象です。
type GenerateExecutor interface {
	Generate(ctx context.Context, req domain.GenerationRequest, clientID string) (*domain.GenerateOutcome, error)
}

type Handler struct {
	cfg      *config.Config
	pipeline GenerateExecutor
	validate *validator.Validate
}

// NewHandler は指定された構成に基づいて新しいハンドラーを初期化します。
// バリデーションのエラーでは Go のフィールド名ではなく json タグ名を報告します。
func NewHandler(cfg *config.Config, pipeline GenerateExecutor) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handler{
		cfg:      cfg,
		pipeline: pipeline,
		validate: v,
	}
}
