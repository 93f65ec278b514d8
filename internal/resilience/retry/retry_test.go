package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   10 * time.Millisecond,
		MaxDelay:       100 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff_Success(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithBackoff_SuccessAfterRetry(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		if attempts < 3 {
			return syscall.ECONNRESET
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithBackoff_MaxAttemptsExceeded(t *testing.T) {
	attempts := 0
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return syscall.ECONNREFUSED
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	assert.Contains(t, err.Error(), "max retry attempts (3) exceeded")
	assert.Equal(t, 3, attempts)
}

func TestWithBackoff_NonRetryableError(t *testing.T) {
	attempts := 0
	testErr := errors.New("malformed input")
	err := WithBackoff(context.Background(), fastConfig(3), func() error {
		attempts++
		return testErr
	})

	assert.Same(t, testErr, err)
	assert.Equal(t, 1, attempts)
}

func TestWithBackoff_CustomClassifier(t *testing.T) {
	storageErr := errors.New("storage failure")
	cfg := fastConfig(2)
	cfg.Retryable = func(err error) bool { return errors.Is(err, storageErr) }

	attempts := 0
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		return fmt.Errorf("save: %w", storageErr)
	})

	assert.ErrorIs(t, err, storageErr)
	assert.Equal(t, 2, attempts)
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	cfg := fastConfig(5)
	cfg.InitialDelay = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return syscall.ETIMEDOUT
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, attempts, 2)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", fmt.Errorf("wrap: %w", context.DeadlineExceeded), false},
		{"net timeout", timeoutErr{}, true},
		{"connection refused", syscall.ECONNREFUSED, true},
		{"connection reset", fmt.Errorf("read: %w", syscall.ECONNRESET), true},
		{"resource busy", syscall.EAGAIN, true},
		{"plain error", errors.New("nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, time.Second, cfg.InitialDelay)
	assert.Equal(t, 30*time.Second, cfg.MaxDelay)
	assert.Nil(t, cfg.Retryable)
}

func TestDBConfig(t *testing.T) {
	cfg := DBConfig()

	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, cfg.InitialDelay)
	assert.Equal(t, time.Second, cfg.MaxDelay)
}

func TestAddJitter(t *testing.T) {
	duration := 100 * time.Millisecond

	results := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		result := addJitter(duration, 0.2)
		assert.GreaterOrEqual(t, result, duration)
		assert.LessOrEqual(t, result, time.Duration(float64(duration)*1.2))
		results[result] = true
	}

	assert.GreaterOrEqual(t, len(results), 2, "expected jitter to produce varied results")
}

func TestAddJitter_ZeroFraction(t *testing.T) {
	assert.Equal(t, 100*time.Millisecond, addJitter(100*time.Millisecond, 0.0))
}
