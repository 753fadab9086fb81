// Package service implements the contributor registry: governance-initiated
// and self-service contributor creation, bounty applications, and the reads
// over them.
//
// Uniqueness rests on derived addresses plus the store's allocate-or-fail
// primitive. The service takes no locks of its own; every write happens
// inside one StoreTx.RunInTx call and commits or aborts as a unit.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"bountyboard/internal/addressing"
	boardmodels "bountyboard/internal/board/models"
	"bountyboard/internal/registry/metrics"
	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/sentinel"
)

const tracerName = "bountyboard/internal/registry/service"

const (
	opAddContributor = "add_contributor"
	opApplyToBounty  = "apply_to_bounty"
	opCreditPayer    = "credit_payer"
)

// Service orchestrates contributor records and bounty applications.
type Service struct {
	tx     ports.StoreTx
	stores ports.Stores
	boards ports.BoardReader

	scheme            addressing.Scheme
	rent              models.RentSchedule
	enforceGovernance bool

	logger         *slog.Logger
	auditPublisher ports.AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRentSchedule charges payers for every allocation. The zero schedule
// (the default) charges nothing.
func WithRentSchedule(rent models.RentSchedule) Option {
	return func(s *Service) {
		s.rent = rent
	}
}

// WithGovernanceAuthorityCheck controls whether the governance signer of
// AddContributorWithRole must match the authority recorded on the board.
// Enabled by default. Boards without a recorded authority are never checked.
func WithGovernanceAuthorityCheck(enabled bool) Option {
	return func(s *Service) {
		s.enforceGovernance = enabled
	}
}

// WithScheme overrides the address derivation scheme (program ID).
func WithScheme(scheme addressing.Scheme) Option {
	return func(s *Service) {
		s.scheme = scheme
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// New constructs a Service. stores is used for reads outside a transaction.
func New(tx ports.StoreTx, stores ports.Stores, boards ports.BoardReader, opts ...Option) (*Service, error) {
	if tx == nil {
		return nil, errors.New("store transaction runner is required")
	}
	if stores.Contributors == nil || stores.Applications == nil || stores.Balances == nil {
		return nil, errors.New("contributor, application and balance stores are required")
	}
	if boards == nil {
		return nil, errors.New("board reader is required")
	}
	s := &Service{
		tx:                tx,
		stores:            stores,
		boards:            boards,
		scheme:            addressing.New(addressing.DefaultProgramID),
		enforceGovernance: true,
		logger:            slog.Default(),
		tracer:            otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.rent.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Scheme returns the derivation scheme in use.
func (s *Service) Scheme() addressing.Scheme {
	return s.scheme
}

func (s *Service) loadBoard(ctx context.Context, address domain.Address) (*boardmodels.BountyBoard, error) {
	board, err := s.boards.FindBoard(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "bounty board not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bounty board")
	}
	return board, nil
}

func (s *Service) loadBounty(ctx context.Context, address domain.Address) (*boardmodels.Bounty, error) {
	bounty, err := s.boards.FindBounty(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "bounty not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bounty")
	}
	return bounty, nil
}

// charge debits the rent for an allocation of space bytes from payer.
func (s *Service) charge(ctx context.Context, balances ports.BalanceStore, payer domain.Address, space uint64) error {
	if !s.rent.Enabled() {
		return nil
	}
	cost := s.rent.MinimumBalance(space)
	if err := balances.Debit(ctx, payer, cost); err != nil {
		if errors.Is(err, sentinel.ErrInsufficient) {
			return dErrors.New(dErrors.CodeInsufficientResources, "payer cannot cover the allocation")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to debit payer")
	}
	if s.metrics != nil {
		s.metrics.AddLamportsCharged(cost)
	}
	return nil
}

// coded makes sure err carries a domain code; bare errors become internal.
func coded(err error, msg string) error {
	var de *dErrors.Error
	if err == nil || errors.As(err, &de) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, msg)
}

// finish records the outcome of a write operation on span and metrics.
func (s *Service) finish(span trace.Span, operation string, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	if s.metrics != nil {
		s.metrics.IncrementRejection(operation, string(dErrors.CodeOf(err)))
	}
}
