package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4.1-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.4+1.6, c.Cost(1_000_000, 1_000_000), 1e-9)

	assert.NotNil(t, LookupCost("google/gemini-2.5-flash"), "vendor prefix stripped")
	assert.Nil(t, LookupCost("no-such-model"))
}

func TestEstimateCost(t *testing.T) {
	usd, ok := EstimateCost("claude-haiku-4-5-20251001", 2000, 500)
	require.True(t, ok)
	assert.InDelta(t, 2000*1.0/1e6+500*5.0/1e6, usd, 1e-12)

	_, ok = EstimateCost("mock", 10, 10)
	assert.False(t, ok)
}
