package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(timeout time.Duration) Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      2,
		Interval:         10 * time.Second,
		Timeout:          timeout,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

func TestNew(t *testing.T) {
	cb := New(DefaultConfig("test-circuit"))

	require.NotNil(t, cb)
	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestCircuitBreaker_Execute(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	testErr := errors.New("boom")
	result, err = cb.Execute(func() (interface{}, error) {
		return nil, testErr
	})
	assert.ErrorIs(t, err, testErr)
	assert.Nil(t, result)
}

func TestDo(t *testing.T) {
	cb := New(DefaultConfig("test"))

	n, err := Do(cb, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	testErr := errors.New("boom")
	n, err = Do(cb, func() (int, error) { return 7, testErr })
	assert.ErrorIs(t, err, testErr)
	assert.Zero(t, n)
}

func TestCircuitBreaker_TripsOpen(t *testing.T) {
	cb := New(testConfig(time.Second))
	testErr := errors.New("test error")

	// 4 failures + 1 success = 80% failure rate at MinRequests
	for i := 0; i < 4; i++ {
		_, err := cb.Execute(func() (interface{}, error) { return nil, testErr })
		assert.ErrorIs(t, err, testErr)
	}
	_, err := cb.Execute(func() (interface{}, error) { return "success", nil })
	require.NoError(t, err)

	_, err = cb.Execute(func() (interface{}, error) { return nil, testErr })
	assert.ErrorIs(t, err, testErr)

	require.Equal(t, gobreaker.StateOpen, cb.State())
	assert.True(t, cb.IsOpen())

	_, err = cb.Execute(func() (interface{}, error) {
		t.Error("function should not be called when circuit is open")
		return nil, nil
	})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.True(t, IsRejected(err))
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cb := New(testConfig(100 * time.Millisecond))
	testErr := errors.New("test error")

	for i := 0; i < 6; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, testErr })
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	time.Sleep(150 * time.Millisecond)

	_, err := cb.Execute(func() (interface{}, error) { return "success", nil })
	require.NoError(t, err)
	assert.NotEqual(t, gobreaker.StateOpen, cb.State())
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cb := New(testConfig(time.Second))
	testErr := errors.New("test error")

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, testErr })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State(), "below MinRequests the circuit stays closed")
}

func TestImportConfig(t *testing.T) {
	cfg := ImportConfig()

	assert.Equal(t, "feed-import", cfg.Name)
	assert.Equal(t, uint32(3), cfg.MinRequests)
	assert.Equal(t, 1.0, cfg.FailureThreshold)

	cb := New(cfg)
	testErr := errors.New("feed unreadable")
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, testErr })
	}
	assert.True(t, cb.IsOpen(), "three consecutive failed imports open the circuit")
}

func TestIsRejected(t *testing.T) {
	assert.True(t, IsRejected(gobreaker.ErrOpenState))
	assert.True(t, IsRejected(gobreaker.ErrTooManyRequests))
	assert.False(t, IsRejected(errors.New("other")))
	assert.False(t, IsRejected(nil))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("test")

	assert.Equal(t, "test", cfg.Name)
	assert.Equal(t, uint32(3), cfg.MaxRequests)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 0.6, cfg.FailureThreshold)
	assert.Equal(t, uint32(5), cfg.MinRequests)
}
