package memory

import (
	"context"

	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/pkg/domain"
)

// The auto* stores wrap each call in its own ledger transaction.

type autoContributors struct{ l *Ledger }

func (a autoContributors) Create(ctx context.Context, record *models.ContributorRecord) error {
	return a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		return s.Contributors.Create(ctx, record)
	})
}

func (a autoContributors) CreateIfAbsent(ctx context.Context, record *models.ContributorRecord) (stored *models.ContributorRecord, created bool, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		stored, created, err = s.Contributors.CreateIfAbsent(ctx, record)
		return err
	})
	return stored, created, err
}

func (a autoContributors) FindByAddress(ctx context.Context, address domain.Address) (rec *models.ContributorRecord, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		rec, err = s.Contributors.FindByAddress(ctx, address)
		return err
	})
	return rec, err
}

func (a autoContributors) FindMany(ctx context.Context, addresses []domain.Address) (recs []*models.ContributorRecord, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		recs, err = s.Contributors.FindMany(ctx, addresses)
		return err
	})
	return recs, err
}

func (a autoContributors) ListByRealm(ctx context.Context, realm domain.Address) (recs []*models.ContributorRecord, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		recs, err = s.Contributors.ListByRealm(ctx, realm)
		return err
	})
	return recs, err
}

type autoApplications struct{ l *Ledger }

func (a autoApplications) Create(ctx context.Context, application *models.BountyApplication) error {
	return a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		return s.Applications.Create(ctx, application)
	})
}

func (a autoApplications) FindByAddress(ctx context.Context, address domain.Address) (app *models.BountyApplication, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		app, err = s.Applications.FindByAddress(ctx, address)
		return err
	})
	return app, err
}

func (a autoApplications) ListByBounty(ctx context.Context, bounty domain.Address) (apps []*models.BountyApplication, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		apps, err = s.Applications.ListByBounty(ctx, bounty)
		return err
	})
	return apps, err
}

type autoBalances struct{ l *Ledger }

func (a autoBalances) Debit(ctx context.Context, payer domain.Address, lamports uint64) error {
	return a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		return s.Balances.Debit(ctx, payer, lamports)
	})
}

func (a autoBalances) Credit(ctx context.Context, payer domain.Address, lamports uint64) (bal uint64, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		bal, err = s.Balances.Credit(ctx, payer, lamports)
		return err
	})
	return bal, err
}

func (a autoBalances) Balance(ctx context.Context, payer domain.Address) (bal uint64, err error) {
	err = a.l.RunInTx(ctx, func(ctx context.Context, s ports.Stores) error {
		bal, err = s.Balances.Balance(ctx, payer)
		return err
	})
	return bal, err
}
