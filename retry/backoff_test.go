// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{MaxRetries: 3, InitialDelay: time.Millisecond}, nil)

	calls := 0
	err := retryer.Do(context.Background(), func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{MaxRetries: 3, InitialDelay: time.Millisecond}, nil)

	calls := 0
	err := retryer.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{MaxRetries: 2, InitialDelay: time.Millisecond}, nil)

	calls := 0
	failure := errors.New("persistent")
	err := retryer.Do(context.Background(), func() error {
		calls++
		return failure
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, failure)
	assert.Contains(t, err.Error(), "still failing after 2 retries")
	assert.Equal(t, 3, calls)
}

func TestDo_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{MaxRetries: 0, InitialDelay: time.Millisecond}, nil)

	calls := 0
	err := retryer.Do(context.Background(), func() error {
		calls++
		return errors.New("nope")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{MaxRetries: 1, InitialDelay: time.Millisecond}, nil)

	out, err := retryer.DoWithResult(context.Background(), func() (any, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
}

func TestDo_CancelledContextStopsRetrying(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{MaxRetries: 5, InitialDelay: time.Hour}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- retryer.Do(ctx, func() error {
			calls++
			return errors.New("transient")
		})
	}()
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(5 * time.Second):
		t.Fatal("retryer did not observe cancellation")
	}
}

func TestOnRetryCallback(t *testing.T) {
	var attempts []int
	retryer := NewBackoffRetryer(&Policy{
		MaxRetries:   2,
		InitialDelay: time.Millisecond,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			attempts = append(attempts, attempt)
		},
	}, nil)

	_ = retryer.Do(context.Background(), func() error {
		return errors.New("always")
	})
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestCalculateDelay_ExponentialGrowth(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{
		MaxRetries:   5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     300 * time.Millisecond,
		Multiplier:   2.0,
	}, nil).(*backoffRetryer)

	assert.Equal(t, 100*time.Millisecond, retryer.calculateDelay(1))
	assert.Equal(t, 200*time.Millisecond, retryer.calculateDelay(2))
	// Capped at MaxDelay from the third retry on.
	assert.Equal(t, 300*time.Millisecond, retryer.calculateDelay(3))
	assert.Equal(t, 300*time.Millisecond, retryer.calculateDelay(4))
}

func TestCalculateDelay_JitterStaysInBand(t *testing.T) {
	retryer := NewBackoffRetryer(&Policy{
		MaxRetries:   1,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		Jitter:       true,
	}, nil).(*backoffRetryer)

	for i := 0; i < 50; i++ {
		delay := retryer.calculateDelay(1)
		assert.GreaterOrEqual(t, delay, 75*time.Millisecond)
		assert.LessOrEqual(t, delay, 125*time.Millisecond)
	}
}

func TestNewBackoffRetryer_Defaults(t *testing.T) {
	retryer := NewBackoffRetryer(nil, nil).(*backoffRetryer)
	assert.Equal(t, 3, retryer.policy.MaxRetries)
	assert.Equal(t, time.Second, retryer.policy.InitialDelay)

	normalized := NewBackoffRetryer(&Policy{MaxRetries: -1, Multiplier: 0.5}, nil).(*backoffRetryer)
	assert.Equal(t, 0, normalized.policy.MaxRetries)
	assert.Equal(t, 2.0, normalized.policy.Multiplier)
}
