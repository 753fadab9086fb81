package models

import (
	"strings"

	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
)

// MaxLookupAddresses bounds one GetContributorsByAddress call.
const MaxLookupAddresses = 100

// AddContributorRequest is the governance path's input.
type AddContributorRequest struct {
	ContributorWallet string `json:"contributor_wallet"`
	RoleName          string `json:"role_name"`
	Governance        string `json:"governance,omitempty"`
	Payer             string `json:"payer,omitempty"`
}

func (r *AddContributorRequest) Normalize() {
	r.ContributorWallet = strings.TrimSpace(r.ContributorWallet)
	r.RoleName = strings.TrimSpace(r.RoleName)
	r.Governance = strings.TrimSpace(r.Governance)
	r.Payer = strings.TrimSpace(r.Payer)
}

func (r *AddContributorRequest) Validate() error {
	if r.ContributorWallet == "" {
		return dErrors.New(dErrors.CodeValidation, "contributor_wallet is required")
	}
	if r.RoleName == "" {
		return dErrors.New(dErrors.CodeValidation, "role_name is required")
	}
	return nil
}

// ApplyToBountyRequest carries the caller-supplied part of an application.
type ApplyToBountyRequest struct {
	Validity uint64 `json:"validity"`
}

func (r *ApplyToBountyRequest) Normalize() {}

func (r *ApplyToBountyRequest) Validate() error { return nil }

// LookupContributorsRequest asks for records at explicit addresses.
type LookupContributorsRequest struct {
	Addresses []string `json:"addresses"`
}

func (r *LookupContributorsRequest) Normalize() {
	for i, a := range r.Addresses {
		r.Addresses[i] = strings.TrimSpace(a)
	}
}

func (r *LookupContributorsRequest) Validate() error {
	if len(r.Addresses) == 0 {
		return dErrors.New(dErrors.CodeValidation, "addresses are required")
	}
	if len(r.Addresses) > MaxLookupAddresses {
		return dErrors.New(dErrors.CodeValidation, "too many addresses")
	}
	return nil
}

// Parse converts the request addresses, failing on the first malformed one.
func (r *LookupContributorsRequest) Parse() ([]domain.Address, error) {
	out := make([]domain.Address, 0, len(r.Addresses))
	for _, a := range r.Addresses {
		addr, err := domain.ParseAddress(a)
		if err != nil {
			return nil, err
		}
		out = append(out, addr)
	}
	return out, nil
}

// CreditRequest tops up a payer balance.
type CreditRequest struct {
	Lamports uint64 `json:"lamports"`
}

func (r *CreditRequest) Normalize() {}

func (r *CreditRequest) Validate() error {
	if r.Lamports == 0 {
		return dErrors.New(dErrors.CodeValidation, "lamports must be positive")
	}
	return nil
}
