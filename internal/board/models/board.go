package models

import (
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
)

// BoardConfig is the governance-owned configuration of a bounty board.
// LastRevised (unix seconds) doubles as the snapshot version.
type BoardConfig struct {
	Roles       RoleCatalog `json:"roles" yaml:"roles"`
	LastRevised int64       `json:"last_revised" yaml:"last_revised"`
}

// BountyBoard is a read-only snapshot of a board. The registry never mutates
// it; catalog changes arrive as new snapshots with a later LastRevised.
type BountyBoard struct {
	Address domain.Address `json:"address" yaml:"address"`
	Realm   domain.Address `json:"realm" yaml:"realm"`
	// Authority is the realm governance identity recorded for the board. The
	// zero value means none was recorded.
	Authority domain.Address `json:"authority" yaml:"authority"`
	Config    BoardConfig    `json:"config" yaml:"config"`
}

// Version identifies the catalog revision this snapshot reflects.
func (b *BountyBoard) Version() int64 {
	return b.Config.LastRevised
}

// HasAuthority reports whether a governance identity was recorded.
func (b *BountyBoard) HasAuthority() bool {
	return !b.Authority.IsZero()
}

// Check validates the snapshot's structural invariants. Used when loading
// boards from external sources.
func (b *BountyBoard) Check() error {
	if b.Address.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "bounty board address is required")
	}
	if b.Realm.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "bounty board realm is required")
	}
	seen := make(map[RoleName]bool, len(b.Config.Roles))
	for _, r := range b.Config.Roles {
		if r.Name.IsZero() {
			return dErrors.New(dErrors.CodeInvariantViolation, "role name cannot be empty")
		}
		if seen[r.Name] {
			return dErrors.New(dErrors.CodeInvariantViolation, "duplicate role "+r.Name.String())
		}
		seen[r.Name] = true
	}
	return nil
}

// Bounty is the registry's view of a bounty: it exists and belongs to a board.
type Bounty struct {
	Address     domain.Address `json:"address" yaml:"address"`
	BountyBoard domain.Address `json:"bounty_board" yaml:"bounty_board"`
}

// Clone returns a deep copy so callers cannot mutate a shared snapshot.
func (b *BountyBoard) Clone() *BountyBoard {
	out := *b
	out.Config.Roles = make(RoleCatalog, len(b.Config.Roles))
	for i, r := range b.Config.Roles {
		r.Permissions = append([]Permission(nil), r.Permissions...)
		out.Config.Roles[i] = r
	}
	return &out
}
