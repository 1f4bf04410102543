package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/storefront/internal/catalog/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(maxFailures int) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("test", maxFailures, 30*time.Second)
	cb.now = clock.now
	cb.lastStateChange = clock.now()
	return cb, clock
}

var errBoom = errors.New("boom")

func fail() error { return errBoom }

func succeed() error { return nil }

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(3)

	for i := 0; i < 2; i++ {
		assert.ErrorIs(t, cb.Call(fail), errBoom)
	}
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Call(fail), errBoom)
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb, _ := newTestBreaker(2)

	require.Error(t, cb.Call(fail))
	require.NoError(t, cb.Call(succeed))
	require.Error(t, cb.Call(fail))

	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_NotFoundIsNotAFailure(t *testing.T) {
	cb, _ := newTestBreaker(1)

	err := cb.Call(func() error { return domain.ErrProductNotFound })

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Call(fail))
	require.Equal(t, StateOpen, cb.State())

	clock.advance(31 * time.Second)
	require.NoError(t, cb.Call(succeed))
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Call(succeed))
	require.NoError(t, cb.Call(succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker(1)
	require.Error(t, cb.Call(fail))

	clock.advance(time.Minute)
	require.Error(t, cb.Call(fail))

	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Call(succeed), ErrCircuitOpen)
}

func TestCircuitBreaker_Stats(t *testing.T) {
	cb, _ := newTestBreaker(4)
	require.Error(t, cb.Call(fail))

	stats := cb.Stats()
	assert.Equal(t, "test", stats["name"])
	assert.Equal(t, 1, stats["failures"])
	assert.Equal(t, 4, stats["max_failures"])
	assert.Equal(t, StateClosed, stats["state"])
}
