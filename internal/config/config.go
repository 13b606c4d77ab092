package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultModel は両段の既定の Gemini モデルです。
	DefaultModel = "gemini-2.5-flash"
	// DefaultHTTPTimeout は Gemini API の応答を考慮した1呼び出しあたりのタイムアウトです。
	DefaultHTTPTimeout = 60 * time.Second
	// DefaultRetryAttempts は各段の試行回数（初回を含む）です。
	DefaultRetryAttempts = 2
	// DefaultRateLimitPerIP は24時間ウィンドウあたりの既定の許可回数です。
	DefaultRateLimitPerIP = 3
	// DefaultCacheTTL は絵コンテキャッシュの保持期間です。
	DefaultCacheTTL = 7 * 24 * time.Hour
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	ServiceURL string
	Port       string

	// GeminiAPIKey は両段の呼び出しに使う API キーです。
	GeminiAPIKey string
	// ContentModel はコンテンツ段（タイトル・ナレーション）用モデルです。
	ContentModel string
	// StoryboardModel は分镜（絵コンテ）段用モデルです。
	StoryboardModel string

	// RateLimitPerIP はクライアント識別子ごとの24時間あたり許可回数です。
	RateLimitPerIP int
	// RetryAttempts は各段の試行回数（初回を含む）です。
	RetryAttempts int
	// RetryInterval は再試行の間隔です。既定は 0（即時再試行）です。
	RetryInterval time.Duration
	// GenerationTimeout は上流1呼び出しに課すデッドラインです。
	GenerationTimeout time.Duration
	// CacheTTL はフィンガープリントキャッシュの保持期間です。
	CacheTTL time.Duration

	SlackWebhookURL string
	ShutdownTimeout time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	// 分镜段のモデルを基準に、コンテンツ段は GEMINI_TEXT_MODEL で上書きできます。
	storyboardModel := getEnv("GEMINI_MODEL", DefaultModel)
	contentModel := getEnv("GEMINI_TEXT_MODEL", storyboardModel)

	return &Config{
		ServiceURL: getEnv("SERVICE_URL", "http://localhost:8080"),
		Port:       getEnv("PORT", "8080"),

		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		ContentModel:    contentModel,
		StoryboardModel: storyboardModel,

		RateLimitPerIP:    getEnvInt("RATE_LIMIT_PER_IP", DefaultRateLimitPerIP),
		RetryAttempts:     getEnvInt("RETRY_ATTEMPTS", DefaultRetryAttempts),
		RetryInterval:     getEnvDuration("RETRY_INTERVAL", 0),
		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", DefaultHTTPTimeout),
		CacheTTL:          getEnvDuration("CACHE_TTL", DefaultCacheTTL),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
