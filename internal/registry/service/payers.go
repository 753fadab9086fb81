package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bountyboard/internal/registry/ports"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/audit"
)

// CreditPayer tops up payer's balance and returns the new balance. Callers
// are trusted operators; the HTTP layer guards it with the admin token.
func (s *Service) CreditPayer(ctx context.Context, payer domain.Address, lamports uint64) (balance uint64, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registry.CreditPayer", trace.WithAttributes(
		attribute.String("payer", payer.String()),
		attribute.Int64("lamports", int64(lamports)),
	))
	defer func() {
		s.finish(span, opCreditPayer, err)
		span.End()
	}()

	if payer.IsZero() {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "payer is required")
	}
	if lamports == 0 {
		return 0, dErrors.New(dErrors.CodeValidation, "lamports must be positive")
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context, st ports.Stores) error {
		var err error
		balance, err = st.Balances.Credit(ctx, payer, lamports)
		if err != nil {
			return coded(err, "failed to credit payer")
		}
		return s.emit(ctx, audit.Event{
			Action:  string(audit.EventPayerCredited),
			Subject: payer.String(),
			Payer:   payer.String(),
		})
	})
	if err != nil {
		return 0, coded(err, "failed to credit payer")
	}
	if s.metrics != nil {
		s.metrics.ObserveOperation(opCreditPayer, start)
	}
	return balance, nil
}

// Balance returns payer's balance in lamports.
func (s *Service) Balance(ctx context.Context, payer domain.Address) (uint64, error) {
	balance, err := s.stores.Balances.Balance(ctx, payer)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read payer balance")
	}
	return balance, nil
}
