package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bountyboard/internal/registry/models"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/sentinel"
)

const applicationColumns = `address, bounty, applicant, contributor_record, validity, applied_at, status`

// Applications persists bounty_applications.
type Applications struct {
	db *sql.DB
}

func NewApplications(db *sql.DB) *Applications {
	return &Applications{db: db}
}

func (s *Applications) Create(ctx context.Context, a *models.BountyApplication) error {
	query := `INSERT INTO bounty_applications (` + applicationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := conn(ctx, s.db).ExecContext(ctx, query,
		a.Address, a.Bounty, a.Applicant, a.ContributorRecord, a.Validity, a.AppliedAt, int16(a.Status))
	if err != nil {
		if hasPgCode(err, uniqueViolation) {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("insert bounty application: %w", err)
	}
	return nil
}

func (s *Applications) FindByAddress(ctx context.Context, address domain.Address) (*models.BountyApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM bounty_applications WHERE address = $1`
	app, err := scanApplication(conn(ctx, s.db).QueryRowContext(ctx, query, address))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find bounty application: %w", err)
	}
	return app, nil
}

func (s *Applications) ListByBounty(ctx context.Context, bounty domain.Address) ([]*models.BountyApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM bounty_applications
		WHERE bounty = $1 ORDER BY applied_at, address`
	rows, err := conn(ctx, s.db).QueryContext(ctx, query, bounty)
	if err != nil {
		return nil, fmt.Errorf("list bounty applications: %w", err)
	}
	defer rows.Close()

	var out []*models.BountyApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bounty application: %w", err)
		}
		out = append(out, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bounty applications: %w", err)
	}
	return out, nil
}

func scanApplication(row rowScanner) (*models.BountyApplication, error) {
	var (
		app    models.BountyApplication
		status int16
	)
	if err := row.Scan(&app.Address, &app.Bounty, &app.Applicant, &app.ContributorRecord,
		&app.Validity, &app.AppliedAt, &status); err != nil {
		return nil, err
	}
	app.Status = models.ApplicationStatus(status)
	return &app, nil
}
