package config

import (
	"fmt"

	"github.com/shouni/netarmor/securenet"
)

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if !IsSecureURL(cfg.ServiceURL) {
		return fmt.Errorf("security error: SERVICE_URL ('%s') must be HTTPS in production", cfg.ServiceURL)
	}

	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("configuration error: GEMINI_API_KEY is not set")
	}

	if cfg.RetryAttempts < 1 {
		return fmt.Errorf("configuration error: RETRY_ATTEMPTS must be at least 1 (got %d)", cfg.RetryAttempts)
	}

	if cfg.RateLimitPerIP < 1 {
		return fmt.Errorf("configuration error: RATE_LIMIT_PER_IP must be at least 1 (got %d)", cfg.RateLimitPerIP)
	}

	if cfg.GenerationTimeout <= 0 {
		return fmt.Errorf("configuration error: GENERATION_TIMEOUT must be positive")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
