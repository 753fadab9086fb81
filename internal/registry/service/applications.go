package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/audit"
	"bountyboard/pkg/platform/sentinel"
	"bountyboard/pkg/requestcontext"
)

// ApplyToBounty is the self-service path's command.
type ApplyToBounty struct {
	Board     domain.Address
	Bounty    domain.Address
	Applicant domain.Address
	Validity  uint64
}

// ApplicationResult is what one ApplyToBounty call produced.
type ApplicationResult struct {
	Contributor        *models.ContributorRecord
	Application        *models.BountyApplication
	ContributorCreated bool
}

// ApplyToBounty records Applicant's application to Bounty, creating the
// applicant's contributor record with the board's default role if needed.
// The record and the application commit together or not at all. AppliedAt
// comes from the request clock, never from the caller.
//
// Errors: CodeUnauthorized (applicant did not sign), CodeNotFound (board or
// bounty), CodeInvalidInput (bounty belongs to another board),
// CodeNoDefaultRole (record absent and catalog empty), CodeConflict
// (application exists), CodeInsufficientResources (applicant cannot cover rent).
func (s *Service) ApplyToBounty(ctx context.Context, cmd ApplyToBounty) (result *ApplicationResult, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "registry.ApplyToBounty", trace.WithAttributes(
		attribute.String("board", cmd.Board.String()),
		attribute.String("bounty", cmd.Bounty.String()),
		attribute.String("applicant", cmd.Applicant.String()),
	))
	defer func() {
		s.finish(span, opApplyToBounty, err)
		span.End()
	}()

	if cmd.Applicant.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "applicant is required")
	}
	if err := authorizeApplicant(ctx, cmd.Applicant); err != nil {
		return nil, err
	}
	bounty, err := s.loadBounty(ctx, cmd.Bounty)
	if err != nil {
		return nil, err
	}
	if bounty.BountyBoard != cmd.Board {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "bounty does not belong to this bounty board")
	}
	board, err := s.loadBoard(ctx, cmd.Board)
	if err != nil {
		return nil, err
	}

	recordAddress := s.scheme.ContributorRecord(board.Address, cmd.Applicant)
	applicationAddress := s.scheme.BountyApplication(bounty.Address, recordAddress)
	appliedAt := requestcontext.Now(ctx).Unix()

	result = &ApplicationResult{}
	err = s.tx.RunInTx(ctx, func(ctx context.Context, st ports.Stores) error {
		record, created, err := s.resolveContributor(ctx, st, board, cmd.Applicant, recordAddress)
		if err != nil {
			return err
		}

		application, err := models.NewBountyApplication(applicationAddress, bounty.Address, cmd.Applicant, record.Address, cmd.Validity, appliedAt)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to build bounty application")
		}
		if err := st.Applications.Create(ctx, application); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "application already exists for this bounty")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create bounty application")
		}
		if err := s.charge(ctx, st.Balances, cmd.Applicant, models.BountyApplicationSpace); err != nil {
			return err
		}

		events := make([]audit.Event, 0, 2)
		if created {
			events = append(events, audit.Event{
				Action:     string(audit.EventContributorRegistered),
				Board:      board.Address.String(),
				Subject:    record.Address.String(),
				Actor:      cmd.Applicant.String(),
				Payer:      cmd.Applicant.String(),
				Attributes: map[string]string{"role": record.Role.String()},
			})
		}
		events = append(events, audit.Event{
			Action:     string(audit.EventBountyApplied),
			Board:      board.Address.String(),
			Subject:    application.Address.String(),
			Actor:      cmd.Applicant.String(),
			Payer:      cmd.Applicant.String(),
			Attributes: map[string]string{"bounty": bounty.Address.String(), "validity": strconv.FormatUint(cmd.Validity, 10)},
		})
		if err := s.emit(ctx, events...); err != nil {
			return err
		}

		result.Contributor = record
		result.Application = application
		result.ContributorCreated = created
		return nil
	})
	if err != nil {
		return nil, coded(err, "failed to apply to bounty")
	}

	s.logger.InfoContext(ctx, "bounty application created",
		"board", board.Address,
		"bounty", bounty.Address,
		"applicant", cmd.Applicant,
		"application", result.Application.Address,
		"contributor_created", result.ContributorCreated,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		if result.ContributorCreated {
			s.metrics.IncrementContributorCreated("implicit")
		}
		s.metrics.IncrementApplicationCreated()
		s.metrics.ObserveOperation(opApplyToBounty, start)
	}
	return result, nil
}

// GetApplication returns wallet's application to bounty on board.
func (s *Service) GetApplication(ctx context.Context, board, bounty, wallet domain.Address) (*models.BountyApplication, error) {
	record := s.scheme.ContributorRecord(board, wallet)
	address := s.scheme.BountyApplication(bounty, record)
	application, err := s.stores.Applications.FindByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "bounty application not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load bounty application")
	}
	return application, nil
}

// ListApplicationsByBounty returns bounty's applications, oldest first.
func (s *Service) ListApplicationsByBounty(ctx context.Context, bounty domain.Address) ([]*models.BountyApplication, error) {
	if bounty.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "bounty is required")
	}
	applications, err := s.stores.Applications.ListByBounty(ctx, bounty)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list bounty applications")
	}
	return applications, nil
}
