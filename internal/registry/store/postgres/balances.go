package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/sentinel"
)

// Balances persists payer_balances in lamports.
type Balances struct {
	db *sql.DB
}

func NewBalances(db *sql.DB) *Balances {
	return &Balances{db: db}
}

// Debit subtracts lamports if the payer can cover them.
func (s *Balances) Debit(ctx context.Context, payer domain.Address, lamports uint64) error {
	if lamports == 0 {
		return nil
	}
	res, err := conn(ctx, s.db).ExecContext(ctx, `
		UPDATE payer_balances SET lamports = lamports - $2
		WHERE address = $1 AND lamports >= $2
	`, payer, lamports)
	if err != nil {
		return fmt.Errorf("debit payer: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit payer: %w", err)
	}
	if n == 0 {
		return sentinel.ErrInsufficient
	}
	return nil
}

func (s *Balances) Credit(ctx context.Context, payer domain.Address, lamports uint64) (uint64, error) {
	var balance uint64
	err := conn(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO payer_balances (address, lamports) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET lamports = payer_balances.lamports + EXCLUDED.lamports
		RETURNING lamports
	`, payer, lamports).Scan(&balance)
	if err != nil {
		if hasPgCode(err, checkViolation) {
			return 0, dErrors.New(dErrors.CodeInvalidInput, "balance overflow")
		}
		return 0, fmt.Errorf("credit payer: %w", err)
	}
	return balance, nil
}

func (s *Balances) Balance(ctx context.Context, payer domain.Address) (uint64, error) {
	var balance uint64
	err := conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT lamports FROM payer_balances WHERE address = $1`, payer,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("read payer balance: %w", err)
	}
	return balance, nil
}
