// Package admin guards operator-only routes with a shared token.
package admin

import (
	"log/slog"
	"net/http"

	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/httputil"
	"bountyboard/pkg/platform/secrets"
	"bountyboard/pkg/requestcontext"
)

// TokenHeader carries the admin token.
const TokenHeader = "X-Admin-Token"

// RequireAdminToken admits requests whose X-Admin-Token matches tokenHash
// (bcrypt). An empty tokenHash disables the routes entirely.
func RequireAdminToken(tokenHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)
			if tokenHash == "" {
				logger.WarnContext(ctx, "admin route called but no admin token is configured",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin routes are disabled"))
				return
			}
			token := r.Header.Get(TokenHeader)
			if token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			if err := secrets.Verify(token, tokenHash); err != nil {
				logger.WarnContext(ctx, "admin token mismatch",
					"request_id", requestID,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "admin token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
