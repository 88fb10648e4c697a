package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	// ServiceVersion is recorded on every persisted analysis.
	ServiceVersion = "1.0.0"
)

// Config holds the env-sourced service configuration. Load validates it
// once at startup; a missing LLM API key refuses to start the process.
type Config struct {
	Port            string
	LLMProvider     string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	LookbackHours   int
	CronSchedule    string
	ResultsTable    string
	RedisURL        string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LLMProvider:     getEnv("LLM_PROVIDER", ProviderOpenAI),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		CronSchedule:    getEnv("ANALYSIS_CRON", "58 * * * *"),
		ResultsTable:    getEnv("RESULTS_TABLE", "sentiment_analyses"),
		RedisURL:        os.Getenv("REDIS_URL"),
	}

	hours, err := getEnvInt("LOOKBACK_HOURS", 6)
	if err != nil {
		return nil, err
	}
	if hours <= 0 {
		return nil, fmt.Errorf("LOOKBACK_HOURS must be positive, got %d", hours)
	}
	cfg.LookbackHours = hours

	switch cfg.LLMProvider {
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER is %q", ProviderOpenAI)
		}
	case ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is required when LLM_PROVIDER is %q", ProviderAnthropic)
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER: %q", cfg.LLMProvider)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}
