package service

import (
	"context"

	boardmodels "bountyboard/internal/board/models"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/requestcontext"
)

// authorizeGovernance resolves and checks the two signers of the governance
// path. governance defaults to the board's recorded authority and payer
// defaults to governance; both must have signed. With enforcement on, a
// board that records an authority only accepts that identity as governance.
func (s *Service) authorizeGovernance(ctx context.Context, board *boardmodels.BountyBoard, governance, payer domain.Address) (domain.Address, domain.Address, error) {
	if governance.IsZero() {
		if !board.HasAuthority() {
			return domain.Address{}, domain.Address{}, dErrors.New(dErrors.CodeUnauthorized, "governance signer is required")
		}
		governance = board.Authority
	}
	if payer.IsZero() {
		payer = governance
	}

	signers := requestcontext.Signers(ctx)
	if !signers.Has(governance) {
		return domain.Address{}, domain.Address{}, dErrors.New(dErrors.CodeUnauthorized, "governance signature is missing")
	}
	if !signers.Has(payer) {
		return domain.Address{}, domain.Address{}, dErrors.New(dErrors.CodeUnauthorized, "payer signature is missing")
	}
	if s.enforceGovernance && board.HasAuthority() && governance != board.Authority {
		return domain.Address{}, domain.Address{}, dErrors.New(dErrors.CodeUnauthorized, "signer is not the bounty board's governance authority")
	}
	return governance, payer, nil
}

// authorizeApplicant requires the applicant, who also pays, to have signed.
func authorizeApplicant(ctx context.Context, applicant domain.Address) error {
	if !requestcontext.Signers(ctx).Has(applicant) {
		return dErrors.New(dErrors.CodeUnauthorized, "applicant signature is missing")
	}
	return nil
}
