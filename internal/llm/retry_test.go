package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}}
	truncated := MockResponse{Err: &ErrMaxTokensExceeded{}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{ok}, false, 1},
		{"transient then success", []MockResponse{down, ok}, false, 2},
		{"all attempts fail", []MockResponse{down, down, down, ok}, true, 3},
		{"max tokens not retried", []MockResponse{truncated, ok}, true, 1},
		{"invalid response retried once", []MockResponse{invalid, invalid, ok}, true, 2},
		{"invalid then success", []MockResponse{invalid, ok}, false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig())

			resp, err := p.Generate(context.Background(), Request{})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	p := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	wait := r.backoff(0, &ErrRateLimit{RetryAfter: 3 * time.Second})
	assert.Equal(t, 3*time.Second, wait)
}

func TestRetry_BackoffIsCapped(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	for attempt := range 10 {
		wait := r.backoff(attempt, errors.New("x"))
		assert.LessOrEqual(t, wait, 12*time.Millisecond, "attempt %d", attempt)
		assert.GreaterOrEqual(t, wait, time.Duration(0))
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(mock, RetryConfig{})
	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestTimeoutProvider(t *testing.T) {
	slow := &blockingProvider{}
	p := WithTimeout(slow, 5*time.Millisecond)

	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, ProviderMock, p.Name())

	assert.Same(t, Provider(slow), WithTimeout(slow, 0))
}

func TestDecoratorsDelegateIdentity(t *testing.T) {
	mock := NewMockProvider()
	p := WithTimeout(WithRetry(WithLogging(mock, nil, nil), retryConfig()), time.Second)
	assert.Equal(t, "mock", p.ModelID())
	assert.Equal(t, ProviderMock, p.Name())
}

// blockingProvider waits for its context to end.
type blockingProvider struct{}

func (b *blockingProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (b *blockingProvider) Name() string    { return ProviderMock }
func (b *blockingProvider) ModelID() string { return "blocking" }
