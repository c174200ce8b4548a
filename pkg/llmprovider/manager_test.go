package llmprovider

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nlu-router/pkg/log"
)

// mockProvider fails its first failN calls, or every call when failN < 0.
type mockProvider struct {
	name  string
	failN int
	err   error

	mu    sync.Mutex
	calls int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	m.calls++
	n := m.calls
	m.mu.Unlock()

	if m.failN < 0 || n <= m.failN {
		if m.err != nil {
			return nil, m.err
		}
		return nil, errors.New("mock provider error")
	}
	return &Response{Text: "hello from " + m.name, ProviderName: m.name, ModelName: m.name + "-model"}, nil
}

func (m *mockProvider) Name() string  { return m.name }
func (m *mockProvider) Model() string { return m.name + "-model" }

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// countingLogger counts warnings so fallback logging can be asserted.
type countingLogger struct {
	log.Logger
	mu    sync.Mutex
	warns int
}

func (c *countingLogger) Warnf(ctx context.Context, template string, arg ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warns++
}

func newCountingLogger() *countingLogger {
	return &countingLogger{Logger: log.NewNop()}
}

var helloReq = &Request{Messages: []Message{{Role: RoleUser, Text: "Hello"}}}

func TestGenerateContent_PrimarySucceeds(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	l := newCountingLogger()
	m := NewManager([]Provider{primary}, &Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Millisecond}, l)

	resp, err := m.GenerateContent(context.Background(), helloReq)
	require.NoError(t, err)
	assert.Equal(t, "primary", resp.ProviderName)
	assert.Equal(t, 1, primary.callCount())
	assert.Zero(t, l.warns)
}

func TestGenerateContent_RetriesThenSucceeds(t *testing.T) {
	primary := &mockProvider{name: "primary", failN: 2}
	m := NewManager([]Provider{primary}, &Config{RetryAttempts: 3, RetryDelay: time.Millisecond}, log.NewNop())

	resp, err := m.GenerateContent(context.Background(), helloReq)
	require.NoError(t, err)
	assert.Equal(t, "primary", resp.ProviderName)
	assert.Equal(t, 3, primary.callCount())
}

func TestGenerateContent_FallbackToSecondary(t *testing.T) {
	primary := &mockProvider{name: "primary", failN: -1}
	secondary := &mockProvider{name: "secondary"}
	l := newCountingLogger()
	m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond}, l)

	resp, err := m.GenerateContent(context.Background(), helloReq)
	require.NoError(t, err)
	assert.Equal(t, "secondary", resp.ProviderName)
	assert.Equal(t, 2, primary.callCount())
	assert.Equal(t, 1, secondary.callCount())
	assert.Equal(t, 1, l.warns)
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	cause := errors.New("quota exceeded")
	primary := &mockProvider{name: "primary", failN: -1}
	secondary := &mockProvider{name: "secondary", failN: -1, err: cause}
	m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 2, RetryDelay: time.Millisecond}, log.NewNop())

	resp, err := m.GenerateContent(context.Background(), helloReq)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.ErrorIs(t, err, cause)

	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "secondary", pe.Provider)
	assert.Equal(t, 2, pe.Attempts)
	assert.Equal(t, 2, primary.callCount())
	assert.Equal(t, 2, secondary.callCount())
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", failN: -1}
	secondary := &mockProvider{name: "secondary"}
	m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: false, RetryAttempts: 2, RetryDelay: time.Millisecond}, log.NewNop())

	_, err := m.GenerateContent(context.Background(), helloReq)
	require.ErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, 2, primary.callCount())
	assert.Zero(t, secondary.callCount())
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	m := NewManager(nil, &Config{}, log.NewNop())
	_, err := m.GenerateContent(context.Background(), helloReq)
	require.ErrorIs(t, err, ErrNoProvidersConfigured)
}

func TestGenerateContent_ZeroRetryAttemptsStillCalls(t *testing.T) {
	primary := &mockProvider{name: "primary"}
	m := NewManager([]Provider{primary}, &Config{}, log.NewNop())

	_, err := m.GenerateContent(context.Background(), helloReq)
	require.NoError(t, err)
	assert.Equal(t, 1, primary.callCount())
}

func TestGenerateContent_CancelledStopsChain(t *testing.T) {
	primary := &mockProvider{name: "primary", failN: -1}
	secondary := &mockProvider{name: "secondary"}
	m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true, RetryAttempts: 3, RetryDelay: time.Hour}, log.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := m.GenerateContent(ctx, helloReq)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrAllProvidersFailed)
	assert.Equal(t, 1, primary.callCount())
	assert.Zero(t, secondary.callCount())
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	primary := &mockProvider{name: "primary", failN: -1}
	m := NewManager([]Provider{primary}, &Config{RetryAttempts: 5, RetryDelay: time.Second, MaxTotalTimeout: 20 * time.Millisecond}, log.NewNop())

	_, err := m.GenerateContent(context.Background(), helloReq)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
