// Package memory is an in-process registry store. Each transaction holds the
// ledger lock and stages its writes in a journal that is applied on success
// and dropped on error.
package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"time"

	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/sentinel"
)

const defaultTxTimeout = 5 * time.Second

// Ledger holds committed state. It is safe for concurrent use; transactions
// are serialized.
type Ledger struct {
	mu           sync.Mutex
	contributors map[domain.Address]*models.ContributorRecord
	applications map[domain.Address]*models.BountyApplication
	balances     map[domain.Address]uint64
	timeout      time.Duration
}

func NewLedger() *Ledger {
	return &Ledger{
		contributors: make(map[domain.Address]*models.ContributorRecord),
		applications: make(map[domain.Address]*models.BountyApplication),
		balances:     make(map[domain.Address]uint64),
		timeout:      defaultTxTimeout,
	}
}

// RunInTx runs fn against a fresh journal and commits it if fn returns nil.
func (l *Ledger) RunInTx(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	j := newJournal(l)
	if err := fn(ctx, j.stores()); err != nil {
		return err
	}
	j.commit()
	return nil
}

// Stores returns auto-committing stores: every call is its own transaction.
func (l *Ledger) Stores() ports.Stores {
	return ports.Stores{
		Contributors: autoContributors{l},
		Applications: autoApplications{l},
		Balances:     autoBalances{l},
	}
}

// journal stages writes over the committed maps. Only called with l.mu held.
type journal struct {
	l            *Ledger
	contributors map[domain.Address]*models.ContributorRecord
	applications map[domain.Address]*models.BountyApplication
	balances     map[domain.Address]uint64
}

func newJournal(l *Ledger) *journal {
	return &journal{
		l:            l,
		contributors: make(map[domain.Address]*models.ContributorRecord),
		applications: make(map[domain.Address]*models.BountyApplication),
		balances:     make(map[domain.Address]uint64),
	}
}

func (j *journal) stores() ports.Stores {
	return ports.Stores{
		Contributors: &contributorTx{j},
		Applications: &applicationTx{j},
		Balances:     &balanceTx{j},
	}
}

func (j *journal) commit() {
	for addr, rec := range j.contributors {
		j.l.contributors[addr] = rec
	}
	for addr, app := range j.applications {
		j.l.applications[addr] = app
	}
	for addr, bal := range j.balances {
		j.l.balances[addr] = bal
	}
}

func (j *journal) contributor(addr domain.Address) (*models.ContributorRecord, bool) {
	if rec, ok := j.contributors[addr]; ok {
		return rec, true
	}
	rec, ok := j.l.contributors[addr]
	return rec, ok
}

func (j *journal) application(addr domain.Address) (*models.BountyApplication, bool) {
	if app, ok := j.applications[addr]; ok {
		return app, true
	}
	app, ok := j.l.applications[addr]
	return app, ok
}

func (j *journal) balance(addr domain.Address) uint64 {
	if bal, ok := j.balances[addr]; ok {
		return bal
	}
	return j.l.balances[addr]
}

type contributorTx struct{ j *journal }

func (s *contributorTx) Create(_ context.Context, record *models.ContributorRecord) error {
	if _, exists := s.j.contributor(record.Address); exists {
		return sentinel.ErrAlreadyUsed
	}
	s.j.contributors[record.Address] = record.Clone()
	return nil
}

func (s *contributorTx) CreateIfAbsent(_ context.Context, record *models.ContributorRecord) (*models.ContributorRecord, bool, error) {
	if existing, exists := s.j.contributor(record.Address); exists {
		return existing.Clone(), false, nil
	}
	s.j.contributors[record.Address] = record.Clone()
	return record.Clone(), true, nil
}

func (s *contributorTx) FindByAddress(_ context.Context, address domain.Address) (*models.ContributorRecord, error) {
	rec, ok := s.j.contributor(address)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *contributorTx) FindMany(_ context.Context, addresses []domain.Address) ([]*models.ContributorRecord, error) {
	out := make([]*models.ContributorRecord, len(addresses))
	for i, addr := range addresses {
		if rec, ok := s.j.contributor(addr); ok {
			out[i] = rec.Clone()
		}
	}
	return out, nil
}

func (s *contributorTx) ListByRealm(_ context.Context, realm domain.Address) ([]*models.ContributorRecord, error) {
	seen := make(map[domain.Address]bool)
	var out []*models.ContributorRecord
	collect := func(m map[domain.Address]*models.ContributorRecord) {
		for addr, rec := range m {
			if seen[addr] || rec.Realm != realm {
				continue
			}
			seen[addr] = true
			out = append(out, rec.Clone())
		}
	}
	collect(s.j.contributors)
	collect(s.j.l.contributors)
	sort.Slice(out, func(a, b int) bool {
		return bytes.Compare(out[a].Address[:], out[b].Address[:]) < 0
	})
	return out, nil
}

type applicationTx struct{ j *journal }

func (s *applicationTx) Create(_ context.Context, application *models.BountyApplication) error {
	if _, exists := s.j.application(application.Address); exists {
		return sentinel.ErrAlreadyUsed
	}
	cp := *application
	s.j.applications[application.Address] = &cp
	return nil
}

func (s *applicationTx) FindByAddress(_ context.Context, address domain.Address) (*models.BountyApplication, error) {
	app, ok := s.j.application(address)
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *app
	return &cp, nil
}

func (s *applicationTx) ListByBounty(_ context.Context, bounty domain.Address) ([]*models.BountyApplication, error) {
	seen := make(map[domain.Address]bool)
	var out []*models.BountyApplication
	collect := func(m map[domain.Address]*models.BountyApplication) {
		for addr, app := range m {
			if seen[addr] || app.Bounty != bounty {
				continue
			}
			seen[addr] = true
			cp := *app
			out = append(out, &cp)
		}
	}
	collect(s.j.applications)
	collect(s.j.l.applications)
	sort.Slice(out, func(a, b int) bool {
		if out[a].AppliedAt != out[b].AppliedAt {
			return out[a].AppliedAt < out[b].AppliedAt
		}
		return bytes.Compare(out[a].Address[:], out[b].Address[:]) < 0
	})
	return out, nil
}

type balanceTx struct{ j *journal }

func (s *balanceTx) Debit(_ context.Context, payer domain.Address, lamports uint64) error {
	bal := s.j.balance(payer)
	if bal < lamports {
		return sentinel.ErrInsufficient
	}
	s.j.balances[payer] = bal - lamports
	return nil
}

func (s *balanceTx) Credit(_ context.Context, payer domain.Address, lamports uint64) (uint64, error) {
	bal := s.j.balance(payer)
	if bal+lamports < bal {
		return bal, dErrors.New(dErrors.CodeInvalidInput, "balance overflow")
	}
	s.j.balances[payer] = bal + lamports
	return bal + lamports, nil
}

func (s *balanceTx) Balance(_ context.Context, payer domain.Address) (uint64, error) {
	return s.j.balance(payer), nil
}
