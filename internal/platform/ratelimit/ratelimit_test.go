package ratelimit

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bountyboard/pkg/platform/middleware/metadata"
)

func fixedClock(b *Buckets, at *time.Time) {
	b.now = func() time.Time { return *at }
}

func TestBucketsSlidingWindow(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	b := NewBuckets(2, time.Minute)
	fixedClock(b, &now)

	first := b.Allow("10.0.0.1")
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	now = now.Add(30 * time.Second)
	assert.True(t, b.Allow("10.0.0.1").Allowed)

	denied := b.Allow("10.0.0.1")
	assert.False(t, denied.Allowed)
	assert.Equal(t, 31, denied.RetryAfter)
	assert.True(t, b.Allow("10.0.0.2").Allowed, "keys are independent")

	now = now.Add(31 * time.Second)
	assert.True(t, b.Allow("10.0.0.1").Allowed, "oldest request left the window")
}

func TestBucketsSweep(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	b := NewBuckets(1, time.Minute)
	fixedClock(b, &now)

	b.Allow("a")
	now = now.Add(2 * time.Minute)
	b.Sweep()
	assert.Empty(t, b.buckets)
}

func TestPerClient(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	t.Run("nil buckets pass through", func(t *testing.T) {
		h := PerClient(nil, logger)(ok)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("over the limit is rejected with 429", func(t *testing.T) {
		h := metadata.ClientMetadata(nil)(PerClient(NewBuckets(1, time.Minute), logger)(ok))

		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "192.0.2.10:5000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		require.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "1", rr.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rr.Header().Get("X-RateLimit-Remaining"))

		rr = httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("Retry-After"))
		assert.Contains(t, rr.Body.String(), "rate_limit_exceeded")
	})

	t.Run("rotating X-Forwarded-For does not reset the limit", func(t *testing.T) {
		h := metadata.ClientMetadata(nil)(PerClient(NewBuckets(2, time.Minute), logger)(ok))

		codes := make([]int, 0, 3)
		for _, forwarded := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = "192.0.2.20:5000"
			req.Header.Set("X-Forwarded-For", forwarded)
			req.Header.Set("X-Real-IP", forwarded)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			codes = append(codes, rr.Code)
		}
		assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
	})

	t.Run("trusted proxy forwards distinct clients", func(t *testing.T) {
		trusted, err := metadata.ParseTrustedProxies([]string{"10.0.0.0/8"})
		require.NoError(t, err)
		h := metadata.ClientMetadata(trusted)(PerClient(NewBuckets(1, time.Minute), logger)(ok))

		for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req.RemoteAddr = "10.0.0.5:5000"
			req.Header.Set("X-Forwarded-For", forwarded)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusNoContent, rr.Code, forwarded)
		}
	})
}
