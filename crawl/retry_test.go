package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/jobscout/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns first successful response", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://acme.example/careers", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("returns last error after exhausting retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", fmt.Errorf("attempt %d failed", calls)
		}
		var logged []string
		logf := func(format string, args ...any) {
			logged = append(logged, fmt.Sprintf(format, args...))
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://acme.example/careers", fetch, logf, []time.Duration{0, 0})

		require.EqualError(t, err, "attempt 3 failed")
		assert.Equal(t, 3, calls)
		require.Len(t, logged, 2)
		assert.Equal(t, "retry https://acme.example/careers (attempt 2): attempt 1 failed", logged[0])
	})

	t.Run("stops retrying when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", errors.New("timeout")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://acme.example/careers", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
