// Package postgres stores registry records in PostgreSQL. Primary keys on the
// derived addresses are the allocate-or-fail primitive; stores join the
// transaction carried in ctx when there is one.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"bountyboard/internal/registry/ports"
	dErrors "bountyboard/pkg/domain-errors"
	txcontext "bountyboard/pkg/platform/tx"
)

const (
	defaultTxTimeout = 5 * time.Second

	uniqueViolation = "23505"
	checkViolation  = "23514"
)

type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func conn(ctx context.Context, db *sql.DB) queryer {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return db
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// NewStores returns stores backed by db.
func NewStores(db *sql.DB) ports.Stores {
	return ports.Stores{
		Contributors: NewContributors(db),
		Applications: NewApplications(db),
		Balances:     NewBalances(db),
	}
}

// TxRunner runs registry transactions on db.
type TxRunner struct {
	db      *sql.DB
	stores  ports.Stores
	timeout time.Duration
}

func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db, stores: NewStores(db), timeout: defaultTxTimeout}
}

func (t *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.stores); err != nil {
		return err
	}
	return tx.Commit()
}
