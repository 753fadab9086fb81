package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	boardmodels "bountyboard/internal/board/models"
	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/audit"
	"bountyboard/pkg/platform/sentinel"
	"bountyboard/pkg/requestcontext"
)

// AddContributor is the governance path's command. Governance defaults to
// the board's recorded authority; Payer defaults to Governance.
type AddContributor struct {
	Board             domain.Address
	ContributorWallet domain.Address
	RoleName          string
	Governance        domain.Address
	Payer             domain.Address
}

// AddContributorWithRole creates the record for ContributorWallet on Board
// with the named role.
//
// Errors: CodeUnauthorized (missing signers or wrong governance identity),
// CodeNotFound (board), CodeInvalidInput (malformed role name),
// CodeInvalidRole (role not in the catalog), CodeConflict (record exists),
// CodeInsufficientResources (payer cannot cover rent).
func (s *Service) AddContributorWithRole(ctx context.Context, cmd AddContributor) (record *models.ContributorRecord, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registry.AddContributorWithRole", trace.WithAttributes(
		attribute.String("board", cmd.Board.String()),
		attribute.String("wallet", cmd.ContributorWallet.String()),
	))
	defer func() {
		s.finish(span, opAddContributor, err)
		span.End()
	}()

	if cmd.ContributorWallet.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "contributor wallet is required")
	}
	board, err := s.loadBoard(ctx, cmd.Board)
	if err != nil {
		return nil, err
	}
	governance, payer, err := s.authorizeGovernance(ctx, board, cmd.Governance, cmd.Payer)
	if err != nil {
		return nil, err
	}
	role, err := boardmodels.ParseRoleName(cmd.RoleName)
	if err != nil {
		return nil, err
	}
	if err := board.Config.Roles.Validate(role); err != nil {
		return nil, err
	}

	address := s.scheme.ContributorRecord(board.Address, cmd.ContributorWallet)
	record, err = models.NewContributorRecord(address, board, cmd.ContributorWallet, role)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build contributor record")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, st ports.Stores) error {
		if err := st.Contributors.Create(ctx, record); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "contributor record already exists for this wallet")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contributor record")
		}
		if err := s.charge(ctx, st.Balances, payer, models.ContributorRecordSpace); err != nil {
			return err
		}
		return s.emit(ctx, audit.Event{
			Action:     string(audit.EventContributorAdded),
			Board:      board.Address.String(),
			Subject:    record.Address.String(),
			Actor:      governance.String(),
			Payer:      payer.String(),
			Attributes: map[string]string{"wallet": cmd.ContributorWallet.String(), "role": role.String()},
		})
	})
	if err != nil {
		return nil, coded(err, "failed to add contributor")
	}

	s.logger.InfoContext(ctx, "contributor added",
		"board", board.Address,
		"wallet", cmd.ContributorWallet,
		"role", role.String(),
		"record", record.Address,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementContributorCreated("explicit")
		s.metrics.ObserveOperation(opAddContributor, start)
	}
	return record, nil
}

// resolveContributor returns wallet's record on board, creating it with the
// catalog's default role when absent. An existing record is never modified.
func (s *Service) resolveContributor(ctx context.Context, st ports.Stores, board *boardmodels.BountyBoard, wallet, address domain.Address) (*models.ContributorRecord, bool, error) {
	existing, err := st.Contributors.FindByAddress(ctx, address)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contributor record")
	}

	s.logger.InfoContext(ctx, "contributor record does not exist yet, initializing",
		"board", board.Address,
		"wallet", wallet,
		"record", address,
	)
	role, err := board.Config.Roles.DefaultRole()
	if err != nil {
		return nil, false, err
	}
	candidate, err := models.NewContributorRecord(address, board, wallet, role)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build contributor record")
	}
	stored, created, err := st.Contributors.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contributor record")
	}
	if created {
		if err := s.charge(ctx, st.Balances, wallet, models.ContributorRecordSpace); err != nil {
			return nil, false, err
		}
	}
	return stored, created, nil
}

// GetContributor returns wallet's record on board.
func (s *Service) GetContributor(ctx context.Context, board, wallet domain.Address) (*models.ContributorRecord, error) {
	address := s.scheme.ContributorRecord(board, wallet)
	record, err := s.stores.Contributors.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "contributor record not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contributor record")
	}
	return record, nil
}

// GetContributorsByAddress fetches records at explicit addresses. The result
// has one slot per input address, nil where nothing is allocated.
func (s *Service) GetContributorsByAddress(ctx context.Context, addresses []domain.Address) ([]*models.ContributorRecord, error) {
	if len(addresses) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "addresses are required")
	}
	if len(addresses) > models.MaxLookupAddresses {
		return nil, dErrors.New(dErrors.CodeValidation, "too many addresses")
	}
	records, err := s.stores.Contributors.FindMany(ctx, addresses)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load contributor records")
	}
	return records, nil
}

// ListContributorsByRealm returns every record in realm ordered by address.
func (s *Service) ListContributorsByRealm(ctx context.Context, realm domain.Address) ([]*models.ContributorRecord, error) {
	if realm.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "realm is required")
	}
	records, err := s.stores.Contributors.ListByRealm(ctx, realm)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contributor records")
	}
	return records, nil
}

// emit records events in one publisher call so they persist together.
func (s *Service) emit(ctx context.Context, events ...audit.Event) error {
	if s.auditPublisher == nil || len(events) == 0 {
		return nil
	}
	for i := range events {
		events[i].RequestID = requestcontext.RequestID(ctx)
		events[i].Timestamp = requestcontext.Now(ctx)
	}
	if err := s.auditPublisher.Emit(ctx, events...); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}
