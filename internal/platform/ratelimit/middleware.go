package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"

	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/httputil"
	"bountyboard/pkg/platform/middleware/metadata"
	"bountyboard/pkg/requestcontext"
)

// PerClient limits requests by client IP. A nil Buckets disables limiting.
func PerClient(buckets *Buckets, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if buckets == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := metadata.GetClientIP(ctx)
			if ip == "" {
				ip = metadata.ClientIP(r, nil)
			}

			result := buckets.Allow(ip)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				logger.WarnContext(ctx, "write rate limit exceeded",
					"client_ip", ip,
					"request_id", requestcontext.RequestID(ctx),
				)
				w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
				httputil.WriteError(w, dErrors.New(dErrors.CodeRateLimited, "too many requests from this client, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
