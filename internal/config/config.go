package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// Service settings
	ServiceName string `mapstructure:"service_name"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	MetricsAddr string `mapstructure:"metrics_addr"`

	// NATS settings
	NatsURL            string        `mapstructure:"nats_url"`
	NatsChatSubject    string        `mapstructure:"nats_chat_subject"`
	NatsResetSubject   string        `mapstructure:"nats_reset_subject"`
	NatsHistorySubject string        `mapstructure:"nats_history_subject"`
	NatsTimeout        time.Duration `mapstructure:"nats_timeout"`

	// OpenAI settings
	OpenAIAPIKey      string        `mapstructure:"openai_api_key"`
	OpenAIModel       string        `mapstructure:"openai_model"`
	OpenAIMaxTokens   int           `mapstructure:"openai_max_tokens"`
	OpenAITemperature float64       `mapstructure:"openai_temperature"`
	OpenAITimeout     time.Duration `mapstructure:"openai_timeout"`

	// Redis settings
	RedisURL   string        `mapstructure:"redis_url"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`

	// Assistant settings
	AssistantName   string `mapstructure:"assistant_name"`
	AssistantLang   string `mapstructure:"assistant_lang"`
	DefaultRegion   string `mapstructure:"default_region"`
	RenovateBaseURL string `mapstructure:"renovate_base_url"`
	ContactEmail    string `mapstructure:"contact_email"`
}

// Load reads configuration from the environment, with an optional .env file
// for development. Every key has a working default except the OpenAI API key.
func Load() (*Config, error) {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("service_name", "primes-intent")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("metrics_addr", ":9091")

	v.SetDefault("nats_url", "nats://localhost:4222")
	v.SetDefault("nats_chat_subject", "primes.chat.message")
	v.SetDefault("nats_reset_subject", "primes.chat.reset")
	v.SetDefault("nats_history_subject", "primes.chat.history")
	v.SetDefault("nats_timeout", 30*time.Second)

	v.SetDefault("openai_api_key", "")
	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_max_tokens", 800)
	v.SetDefault("openai_temperature", 0.7)
	v.SetDefault("openai_timeout", 30*time.Second)

	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("session_ttl", 30*24*time.Hour)

	v.SetDefault("assistant_name", "Primo")
	v.SetDefault("assistant_lang", "fr-BE")
	v.SetDefault("default_region", "")
	v.SetDefault("renovate_base_url", "https://www.ren0vate.be/")
	v.SetDefault("contact_email", "equipe@primes-services.be")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.NatsURL == "" {
		return fmt.Errorf("nats_url is required")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("redis_url is required")
	}
	if c.OpenAIMaxTokens <= 0 {
		return fmt.Errorf("openai_max_tokens must be positive")
	}
	if c.OpenAITimeout <= 0 {
		return fmt.Errorf("openai_timeout must be positive")
	}
	return nil
}
