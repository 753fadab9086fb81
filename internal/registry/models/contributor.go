package models

import (
	boardmodels "bountyboard/internal/board/models"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
)

// ContributorRecordSpace is the allocation size of a contributor record, in bytes.
const ContributorRecordSpace = 500

// SkillPoint is an accumulated skill score. Maintained by bounty completion,
// which lives outside the registry.
type SkillPoint struct {
	Skill string `json:"skill"`
	Point uint64 `json:"point"`
}

// ContributorRecord is one wallet's participation in one bounty board.
//
// Invariants:
//   - Address is derived from (BountyBoard, AssociatedWallet); one record per pair
//   - Role was in the board's catalog when the record was created
//   - Reputation, RecentRepChange and BountyCompleted start at zero
//   - Initialized flips to true at creation and is never reset
type ContributorRecord struct {
	Address          domain.Address       `json:"address"`
	BountyBoard      domain.Address       `json:"bounty_board"`
	Realm            domain.Address       `json:"realm"`
	AssociatedWallet domain.Address       `json:"associated_wallet"`
	Role             boardmodels.RoleName `json:"role"`
	Reputation       uint64               `json:"reputation"`
	RecentRepChange  int64                `json:"recent_rep_change"`
	BountyCompleted  uint32               `json:"bounty_completed"`
	SkillsPt         []SkillPoint         `json:"skills_pt"`
	Initialized      bool                 `json:"initialized"`
}

// NewContributorRecord builds an initialized record with zeroed counters.
func NewContributorRecord(address domain.Address, board *boardmodels.BountyBoard, wallet domain.Address, role boardmodels.RoleName) (*ContributorRecord, error) {
	if address.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contributor record address is required")
	}
	if board == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "bounty board is required")
	}
	if wallet.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contributor wallet is required")
	}
	if role.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "contributor role is required")
	}
	return &ContributorRecord{
		Address:          address,
		BountyBoard:      board.Address,
		Realm:            board.Realm,
		AssociatedWallet: wallet,
		Role:             role,
		SkillsPt:         []SkillPoint{},
		Initialized:      true,
	}, nil
}

// Clone returns a copy that shares no memory with r.
func (r *ContributorRecord) Clone() *ContributorRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.SkillsPt = append(make([]SkillPoint, 0, len(r.SkillsPt)), r.SkillsPt...)
	return &out
}
