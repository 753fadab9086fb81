// Package store holds read-side access to bounty boards and bounties. Boards
// are owned by governance; the registry only ever reads snapshots of them.
package store

import (
	"context"

	"bountyboard/internal/board/models"
	"bountyboard/pkg/domain"
)

// Reader resolves board snapshots and bounties by address. Implementations
// return sentinel.ErrNotFound for unknown addresses.
type Reader interface {
	FindBoard(ctx context.Context, address domain.Address) (*models.BountyBoard, error)
	FindBounty(ctx context.Context, address domain.Address) (*models.Bounty, error)
}

// Writer installs snapshots. Used by seeding and by governance sync jobs.
type Writer interface {
	Reader
	PutBoard(ctx context.Context, board *models.BountyBoard) error
	PutBounty(ctx context.Context, bounty models.Bounty) error
}
