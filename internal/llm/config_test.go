package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: ProviderAnthropic}, true},
		{"anthropic with key", Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: ProviderOpenAI}, true},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAI: OpenAIConfig{APIKey: "sk"}}, false},
		{"gemini without key", Config{Provider: ProviderGemini}, true},
		{"openrouter with key", Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "sk"}}, false},
		{"mock needs no key", Config{Provider: ProviderMock}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, !tt.wantErr, tt.cfg.HasKey())
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("ANSWERLENS_LLM_PROVIDER", "openai")
	t.Setenv("ANSWERLENS_OPENAI_API_KEY", "sk-env")
	t.Setenv("ANSWERLENS_OPENAI_MODEL", "gpt-4o")
	t.Setenv("ANSWERLENS_LLM_TIMEOUT", "5s")

	cfg := ConfigFromEnv()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "sk-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	// Untouched sections keep their defaults.
	assert.Equal(t, "claude-haiku", cfg.Anthropic.Model)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	_, ok := DiscoverConfig()
	assert.False(t, ok)

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("OPENROUTER_API_KEY", "sk-or")
	cfg, ok := DiscoverConfig()
	require.True(t, ok)
	assert.Equal(t, ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "sk-ant", cfg.Anthropic.APIKey)
}

func TestNewProvider(t *testing.T) {
	ctx := context.Background()

	_, err := NewProvider(ctx, Config{Provider: ProviderAnthropic}, nil, nil)
	assert.Error(t, err, "missing key")

	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := NewProvider(ctx, cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, p.Name())
	assert.IsType(t, &TimeoutProvider{}, p)

	cfg.Timeout = 0
	p, err = NewProvider(ctx, cfg, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &RetryProvider{}, p)
}
