package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errRemote = errors.New("connection refused")

func newTestBreaker(now *time.Time, isFailure func(error) bool) *CircuitBreaker {
	cfg := DefaultCBConfig()
	cfg.Now = func() time.Time { return *now }
	cfg.IsFailure = isFailure
	return NewCircuitBreaker(cfg)
}

func fail() error    { return errRemote }
func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&now, nil)

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errRemote)
		assert.Equal(t, CBClosed, cb.State())
	}
	assert.ErrorIs(t, cb.Execute(fail), errRemote)
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open breaker must not call fn")
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&now, nil)

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.NoError(t, cb.Execute(succeed))
	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := newTestBreaker(&now, nil)
	for i := 0; i < 5; i++ {
		_ = cb.Execute(fail)
	}

	now = now.Add(29 * time.Second)
	assert.Equal(t, CBOpen, cb.State())

	now = now.Add(time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Failed probe re-opens for another full timeout.
	assert.ErrorIs(t, cb.Execute(fail), errRemote)
	assert.Equal(t, CBOpen, cb.State())
	now = now.Add(30 * time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())

	// Successful probe closes.
	assert.NoError(t, cb.Execute(succeed))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	errRejected := errors.New("400 rejected")
	cb := newTestBreaker(&now, func(err error) bool { return !errors.Is(err, errRejected) })

	for i := 0; i < 10; i++ {
		assert.ErrorIs(t, cb.Execute(func() error { return errRejected }), errRejected)
	}
	assert.Equal(t, CBClosed, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
	assert.Equal(t, "unknown", CBState(9).String())
}
