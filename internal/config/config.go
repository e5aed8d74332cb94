// Package config loads PulseAI settings from the environment. A .env file in
// the working directory is read first when present.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tanishamittal108/PulseAI/pkg/llm"
)

const (
	SourceNewsAPI = "newsapi"
	SourceFinnhub = "finnhub"
)

// Config holds the backend settings.
type Config struct {
	Port string

	NewsSource    string
	NewsAPIKey    string
	NewsAPIURL    string
	FinnhubAPIKey string
	Language      string
	PageSize      int

	ModelBackend     string
	HFAPIKey         string
	HFAPIURL         string
	HFSummaryModel   string
	HFSentimentModel string
	OpenAIAPIKey     string
	AnthropicAPIKey  string

	SummaryMaxLength int
	SummaryMinLength int
	AnalyzeSentiment bool

	RedisURL        string
	SummaryCacheTTL time.Duration

	FrontendURL string
	LogLevel    string
}

func Load() (*Config, error) {
	godotenv.Load()

	v := newViper()
	setDefaults(v)

	cfg := &Config{
		Port:             v.GetString("port"),
		NewsSource:       strings.ToLower(v.GetString("news_source")),
		NewsAPIKey:       v.GetString("news_api_key"),
		NewsAPIURL:       v.GetString("news_api_url"),
		FinnhubAPIKey:    v.GetString("finnhub_api_key"),
		Language:         v.GetString("news_language"),
		PageSize:         v.GetInt("news_page_size"),
		ModelBackend:     strings.ToLower(v.GetString("model_backend")),
		HFAPIKey:         v.GetString("hf_api_key"),
		HFAPIURL:         v.GetString("hf_api_url"),
		HFSummaryModel:   v.GetString("hf_summary_model"),
		HFSentimentModel: v.GetString("hf_sentiment_model"),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		SummaryMaxLength: v.GetInt("summary_max_length"),
		SummaryMinLength: v.GetInt("summary_min_length"),
		AnalyzeSentiment: v.GetBool("analyze_sentiment"),
		RedisURL:         v.GetString("redis_url"),
		SummaryCacheTTL:  v.GetDuration("summary_cache_ttl"),
		FrontendURL:      v.GetString("frontend_url"),
		LogLevel:         v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("news_source", SourceNewsAPI)
	v.SetDefault("news_api_url", "https://newsapi.org")
	v.SetDefault("news_language", "en")
	v.SetDefault("news_page_size", 5)
	v.SetDefault("model_backend", llm.BackendHuggingFace)
	v.SetDefault("hf_api_url", llm.DefaultHuggingFaceURL)
	v.SetDefault("hf_summary_model", llm.DefaultSummaryModel)
	v.SetDefault("hf_sentiment_model", llm.DefaultSentimentModel)
	v.SetDefault("summary_max_length", 120)
	v.SetDefault("summary_min_length", 30)
	v.SetDefault("analyze_sentiment", true)
	v.SetDefault("summary_cache_ttl", 24*time.Hour)
	v.SetDefault("log_level", "info")
}

func (c *Config) Validate() error {
	switch c.NewsSource {
	case SourceNewsAPI:
		if c.NewsAPIKey == "" {
			return fmt.Errorf("NEWS_API_KEY is required for news source %q", c.NewsSource)
		}
	case SourceFinnhub:
		if c.FinnhubAPIKey == "" {
			return fmt.Errorf("FINNHUB_API_KEY is required for news source %q", c.NewsSource)
		}
	default:
		return fmt.Errorf("unknown NEWS_SOURCE %q: must be %s or %s", c.NewsSource, SourceNewsAPI, SourceFinnhub)
	}

	switch c.ModelBackend {
	case llm.BackendHuggingFace:
	case llm.BackendOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for model backend %q", c.ModelBackend)
		}
	case llm.BackendAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for model backend %q", c.ModelBackend)
		}
	default:
		return fmt.Errorf("unknown MODEL_BACKEND %q", c.ModelBackend)
	}

	if c.SummaryMinLength <= 0 || c.SummaryMaxLength <= 0 {
		return fmt.Errorf("summary lengths must be positive, got min=%d max=%d", c.SummaryMinLength, c.SummaryMaxLength)
	}

	if c.SummaryMinLength > c.SummaryMaxLength {
		return fmt.Errorf("SUMMARY_MIN_LENGTH (%d) must not exceed SUMMARY_MAX_LENGTH (%d)", c.SummaryMinLength, c.SummaryMaxLength)
	}

	return nil
}

func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
