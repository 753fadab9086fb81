// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets values; services read them:
//
//	signers := requestcontext.Signers(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithSigners(ctx, wallet)
package requestcontext

import (
	"context"
	"time"

	"bountyboard/pkg/domain"
)

type (
	signersKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeySigners     = signersKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// -----------------------------------------------------------------------------
// Signers
// -----------------------------------------------------------------------------

// SignerSet is the set of wallets that proved control of their keys for the
// current operation.
type SignerSet map[domain.Address]struct{}

// Has reports whether addr signed the operation.
func (s SignerSet) Has(addr domain.Address) bool {
	_, ok := s[addr]
	return ok
}

// Signers retrieves the verified signers. Returns an empty set if none were set.
func Signers(ctx context.Context) SignerSet {
	if s, ok := ctx.Value(ContextKeySigners).(SignerSet); ok {
		return s
	}
	return SignerSet{}
}

// WithSigners adds verified signers to those already in the context.
func WithSigners(ctx context.Context, signers ...domain.Address) context.Context {
	existing := Signers(ctx)
	merged := make(SignerSet, len(existing)+len(signers))
	for addr := range existing {
		merged[addr] = struct{}{}
	}
	for _, addr := range signers {
		merged[addr] = struct{}{}
	}
	return context.WithValue(ctx, ContextKeySigners, merged)
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (workers, CLI, tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
