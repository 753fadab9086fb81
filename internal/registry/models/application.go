package models

import (
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
)

// BountyApplicationSpace is the allocation size of an application, in bytes.
const BountyApplicationSpace = 121

// ApplicationStatus is the assignment state of an application. Only
// NotAssigned is produced here; assignment moves it forward elsewhere.
type ApplicationStatus uint8

const (
	ApplicationStatusNotAssigned ApplicationStatus = iota
	ApplicationStatusAssigned
)

var applicationStatusNames = map[ApplicationStatus]string{
	ApplicationStatusNotAssigned: "not_assigned",
	ApplicationStatusAssigned:    "assigned",
}

func (s ApplicationStatus) String() string {
	if name, ok := applicationStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := applicationStatusNames[s]
	return ok
}

func (s ApplicationStatus) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown application status")
	}
	return []byte(s.String()), nil
}

func (s *ApplicationStatus) UnmarshalText(text []byte) error {
	for status, name := range applicationStatusNames {
		if name == string(text) {
			*s = status
			return nil
		}
	}
	return dErrors.New(dErrors.CodeInvalidInput, "unknown application status "+string(text))
}

// BountyApplication is one contributor's application to one bounty.
// Address is derived from (Bounty, ContributorRecord). Validity is opaque and
// stored verbatim. AppliedAt is unix seconds from the server clock.
type BountyApplication struct {
	Address           domain.Address    `json:"address"`
	Bounty            domain.Address    `json:"bounty"`
	Applicant         domain.Address    `json:"applicant"`
	ContributorRecord domain.Address    `json:"contributor_record"`
	Validity          uint64            `json:"validity"`
	AppliedAt         int64             `json:"applied_at"`
	Status            ApplicationStatus `json:"status"`
}

// NewBountyApplication builds an application in the NotAssigned state.
func NewBountyApplication(address, bounty, applicant, record domain.Address, validity uint64, appliedAt int64) (*BountyApplication, error) {
	if address.IsZero() || bounty.IsZero() || applicant.IsZero() || record.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "application addresses are required")
	}
	return &BountyApplication{
		Address:           address,
		Bounty:            bounty,
		Applicant:         applicant,
		ContributorRecord: record,
		Validity:          validity,
		AppliedAt:         appliedAt,
		Status:            ApplicationStatusNotAssigned,
	}, nil
}
