package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "primes-intent", cfg.ServiceName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "nats://localhost:4222", cfg.NatsURL)
	assert.Equal(t, "primes.chat.message", cfg.NatsChatSubject)
	assert.Equal(t, "primes.chat.reset", cfg.NatsResetSubject)
	assert.Equal(t, "primes.chat.history", cfg.NatsHistorySubject)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 800, cfg.OpenAIMaxTokens)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "Primo", cfg.AssistantName)
	assert.Equal(t, "fr-BE", cfg.AssistantLang)
	assert.Equal(t, "https://www.ren0vate.be/", cfg.RenovateBaseURL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("NATS_URL", "nats://broker:4222")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("DEFAULT_REGION", "wallonie")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "nats://broker:4222", cfg.NatsURL)
	assert.Equal(t, 0.2, cfg.OpenAITemperature)
	assert.Equal(t, "wallonie", cfg.DefaultRegion)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai_max_tokens")
}
