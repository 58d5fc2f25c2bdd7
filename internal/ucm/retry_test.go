package ucm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastRetrier(maxRetries int) *Retrier {
	return NewRetrier(RetrierOptions{
		MaxRetries:      maxRetries,
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
		Multiplier:      1.5,
	})
}

func TestNewRetrier_Defaults(t *testing.T) {
	r := NewRetrier(RetrierOptions{MaxRetries: -2})

	assert.Equal(t, 0, r.maxRetries)
	assert.Equal(t, time.Second, r.initialInterval)
	assert.Equal(t, 30*time.Second, r.maxInterval)
	assert.Equal(t, 2.0, r.multiplier)
}

func TestRetrier_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("zero retries means one attempt", func(t *testing.T) {
		calls := 0
		err := fastRetrier(0).Retry(ctx, func() error {
			calls++
			return errors.New("connection refused")
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transport errors", func(t *testing.T) {
		calls := 0
		err := fastRetrier(2).Retry(ctx, func() error {
			calls++
			return errors.New("connection reset")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("succeeds after retry", func(t *testing.T) {
		calls := 0
		err := fastRetrier(2).Retry(ctx, func() error {
			calls++
			if calls < 2 {
				return &StatusCodeError{Service: "PING_SERVER", Status: "503"}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("unauthorized is permanent", func(t *testing.T) {
		calls := 0
		err := fastRetrier(5).Retry(ctx, func() error {
			calls++
			return &StatusCodeError{Service: "PING_SERVER", Status: "401"}
		})
		var statusErr *StatusCodeError
		assert.True(t, errors.As(err, &statusErr))
		assert.Equal(t, 1, calls)
	})
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transport error", errors.New("EOF"), true},
		{"canceled", context.Canceled, false},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), false},
		{"503", &StatusCodeError{Status: "503"}, true},
		{"429", &StatusCodeError{Status: "429"}, true},
		{"401", &StatusCodeError{Status: "401"}, false},
		{"garbage status", &StatusCodeError{Status: "abc"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestShouldRetryStatus(t *testing.T) {
	for _, code := range []int{429, 502, 503, 504} {
		assert.True(t, ShouldRetryStatus(code), code)
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404, 500} {
		assert.False(t, ShouldRetryStatus(code), code)
	}
}
