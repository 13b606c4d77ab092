package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"ap-storyboard-web/internal/server"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	// .env はローカル開発用であり、存在しなくても問題ありません。
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment from .env file")
	}

	if err := server.Run(context.Background()); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}
