package handler

import (
	"time"

	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/service"
)

// ContributorResponse is the HTTP shape of a contributor record.
type ContributorResponse struct {
	Address          string              `json:"address"`
	BountyBoard      string              `json:"bounty_board"`
	Realm            string              `json:"realm"`
	AssociatedWallet string              `json:"associated_wallet"`
	Role             string              `json:"role"`
	Reputation       uint64              `json:"reputation"`
	RecentRepChange  int64               `json:"recent_rep_change"`
	BountyCompleted  uint32              `json:"bounty_completed"`
	SkillsPt         []models.SkillPoint `json:"skills_pt"`
	Initialized      bool                `json:"initialized"`
}

func toContributorResponse(r *models.ContributorRecord) *ContributorResponse {
	if r == nil {
		return nil
	}
	return &ContributorResponse{
		Address:          r.Address.String(),
		BountyBoard:      r.BountyBoard.String(),
		Realm:            r.Realm.String(),
		AssociatedWallet: r.AssociatedWallet.String(),
		Role:             r.Role.String(),
		Reputation:       r.Reputation,
		RecentRepChange:  r.RecentRepChange,
		BountyCompleted:  r.BountyCompleted,
		SkillsPt:         r.SkillsPt,
		Initialized:      r.Initialized,
	}
}

// ApplicationResponse is the HTTP shape of a bounty application.
type ApplicationResponse struct {
	Address           string    `json:"address"`
	Bounty            string    `json:"bounty"`
	Applicant         string    `json:"applicant"`
	ContributorRecord string    `json:"contributor_record"`
	Validity          uint64    `json:"validity"`
	AppliedAt         time.Time `json:"applied_at"`
	Status            string    `json:"status"`
}

func toApplicationResponse(a *models.BountyApplication) *ApplicationResponse {
	return &ApplicationResponse{
		Address:           a.Address.String(),
		Bounty:            a.Bounty.String(),
		Applicant:         a.Applicant.String(),
		ContributorRecord: a.ContributorRecord.String(),
		Validity:          a.Validity,
		AppliedAt:         time.Unix(a.AppliedAt, 0).UTC(),
		Status:            a.Status.String(),
	}
}

// ApplyResponse is returned by POST .../applications.
type ApplyResponse struct {
	Application        *ApplicationResponse `json:"application"`
	Contributor        *ContributorResponse `json:"contributor"`
	ContributorCreated bool                 `json:"contributor_created"`
}

func toApplyResponse(r *service.ApplicationResult) *ApplyResponse {
	return &ApplyResponse{
		Application:        toApplicationResponse(r.Application),
		Contributor:        toContributorResponse(r.Contributor),
		ContributorCreated: r.ContributorCreated,
	}
}

type contributorsResponse struct {
	Contributors []*ContributorResponse `json:"contributors"`
}

func toContributorsResponse(records []*models.ContributorRecord) *contributorsResponse {
	out := make([]*ContributorResponse, len(records))
	for i, r := range records {
		out[i] = toContributorResponse(r)
	}
	return &contributorsResponse{Contributors: out}
}

type applicationsResponse struct {
	Applications []*ApplicationResponse `json:"applications"`
}

func toApplicationsResponse(apps []*models.BountyApplication) *applicationsResponse {
	out := make([]*ApplicationResponse, len(apps))
	for i, a := range apps {
		out[i] = toApplicationResponse(a)
	}
	return &applicationsResponse{Applications: out}
}

type balanceResponse struct {
	Payer    string `json:"payer"`
	Lamports uint64 `json:"lamports"`
}
