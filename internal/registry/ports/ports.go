//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Package ports declares what the registry service needs from storage,
// board snapshots and audit.
package ports

import (
	"context"

	boardmodels "bountyboard/internal/board/models"
	"bountyboard/internal/registry/models"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/platform/audit"
)

// ContributorStore persists contributor records keyed by derived address.
//
// Create and CreateIfAbsent are the allocate-or-fail primitive. Create
// returns sentinel.ErrAlreadyUsed on a collision. CreateIfAbsent returns the
// stored record untouched when one exists, reporting created=false.
type ContributorStore interface {
	Create(ctx context.Context, record *models.ContributorRecord) error
	CreateIfAbsent(ctx context.Context, record *models.ContributorRecord) (stored *models.ContributorRecord, created bool, err error)
	FindByAddress(ctx context.Context, address domain.Address) (*models.ContributorRecord, error)
	// FindMany returns one slot per address, nil where no record exists.
	FindMany(ctx context.Context, addresses []domain.Address) ([]*models.ContributorRecord, error)
	ListByRealm(ctx context.Context, realm domain.Address) ([]*models.ContributorRecord, error)
}

// ApplicationStore persists bounty applications keyed by derived address.
type ApplicationStore interface {
	Create(ctx context.Context, application *models.BountyApplication) error
	FindByAddress(ctx context.Context, address domain.Address) (*models.BountyApplication, error)
	ListByBounty(ctx context.Context, bounty domain.Address) ([]*models.BountyApplication, error)
}

// BalanceStore tracks payer balances in lamports. Debit fails with
// sentinel.ErrInsufficient without changing the balance.
type BalanceStore interface {
	Debit(ctx context.Context, payer domain.Address, lamports uint64) error
	Credit(ctx context.Context, payer domain.Address, lamports uint64) (uint64, error)
	Balance(ctx context.Context, payer domain.Address) (uint64, error)
}

// Stores groups the stores one transaction writes to.
type Stores struct {
	Contributors ContributorStore
	Applications ApplicationStore
	Balances     BalanceStore
}

// StoreTx is the atomic boundary: every write made through stores commits
// together when fn returns nil and none persist otherwise. The ctx passed to
// fn carries the transaction for collaborators such as the audit outbox.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// BoardReader loads read-only board and bounty snapshots.
type BoardReader interface {
	FindBoard(ctx context.Context, address domain.Address) (*boardmodels.BountyBoard, error)
	FindBounty(ctx context.Context, address domain.Address) (*boardmodels.Bounty, error)
}

// AuditPublisher records registry events. Emit persists all events or none,
// and its failures abort the operation.
type AuditPublisher interface {
	Emit(ctx context.Context, events ...audit.Event) error
}
