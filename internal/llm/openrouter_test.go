package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.5-flash"})
	assert.Error(t, err, "API key required")

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "sk-or-test",
		Model:  "anthropic/claude-3-haiku",
	})
	require.NoError(t, err)
	// Model IDs pass through without friendly-name mapping.
	assert.Equal(t, "anthropic/claude-3-haiku", p.ModelID())
	assert.Equal(t, ProviderOpenRouter, p.Name())
}

func TestOpenRouterProvider_SendsAttribution(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(chatCompletion(`hello`, "stop"))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "meta-llama/llama-3-8b",
		BaseURL: server.URL + "/api/v1",
	})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Messages: UserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, openRouterTitle, got.Get("X-Title"))
	assert.Equal(t, openRouterReferer, got.Get("HTTP-Referer"))
	assert.Equal(t, "Bearer sk-or-test", got.Get("Authorization"))
}
