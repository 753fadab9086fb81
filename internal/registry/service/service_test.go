package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"bountyboard/internal/addressing"
	boardmodels "bountyboard/internal/board/models"
	boardstore "bountyboard/internal/board/store"
	"bountyboard/internal/registry/metrics"
	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/ports"
	"bountyboard/internal/registry/ports/mocks"
	"bountyboard/internal/registry/store/memory"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/audit"
	"bountyboard/pkg/platform/audit/publishers/compliance"
	auditmemory "bountyboard/pkg/platform/audit/store/memory"
	"bountyboard/pkg/requestcontext"
)

var (
	boardAddr  = domain.MustParseAddress("4vJ9JU1bJJE96FWSJKvHsmmFADCg4gpZQff4P3bkLKi")
	realmAddr  = domain.MustParseAddress("8qbHbw2BbbTHBW1sbeqakYXVKRQM8Ne7pLK7m6CVfeR")
	bountyAddr = domain.MustParseAddress("CktRuQ2mttgRGkXJtyksdKHjUdc2C4TgDzyB98oEzy8")
	recordAddr = domain.MustParseAddress("9isMbMbReCVikU2h77ne6KZhLP4EcxWrsGt7M7U9rcm5")
	appAddr    = domain.MustParseAddress("9iLU29axNqACcMzXgMYQCKuWVRikUzAEmi2VvPW1PjFc")

	governance = testAddress(1)
	walletW    = testAddress(2)
	walletX    = testAddress(3)
	stranger   = testAddress(4)
	otherBoard = testAddress(5)
	emptyBoard = testAddress(6)
	foreignBty = testAddress(7)

	appliedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	recordCost      = models.DefaultRentSchedule.MinimumBalance(models.ContributorRecordSpace)
	applicationCost = models.DefaultRentSchedule.MinimumBalance(models.BountyApplicationSpace)
)

func testAddress(seed byte) domain.Address {
	var a domain.Address
	for i := range a {
		a[i] = seed + byte(i)
	}
	return a
}

func catalog(names ...string) boardmodels.RoleCatalog {
	out := make(boardmodels.RoleCatalog, 0, len(names))
	for _, n := range names {
		out = append(out, boardmodels.RoleSetting{Name: boardmodels.MustRoleName(n)})
	}
	return out
}

type ServiceSuite struct {
	suite.Suite
	ctx      context.Context
	ledger   *memory.Ledger
	boards   *boardstore.InMemory
	audit    *auditmemory.InMemoryStore
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	service  *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), appliedAt)
	s.ctx = requestcontext.WithRequestID(s.ctx, "req-1")
	s.ledger = memory.NewLedger()
	s.boards = boardstore.NewInMemory()
	s.audit = auditmemory.NewInMemoryStore()
	s.registry = prometheus.NewRegistry()
	s.metrics = metrics.New(s.registry)

	s.Require().NoError(s.boards.PutBoard(s.ctx, &boardmodels.BountyBoard{
		Address:   boardAddr,
		Realm:     realmAddr,
		Authority: governance,
		Config:    boardmodels.BoardConfig{Roles: catalog("member", "admin"), LastRevised: 1},
	}))
	s.Require().NoError(s.boards.PutBoard(s.ctx, &boardmodels.BountyBoard{
		Address: otherBoard,
		Realm:   realmAddr,
		Config:  boardmodels.BoardConfig{Roles: catalog("member"), LastRevised: 1},
	}))
	s.Require().NoError(s.boards.PutBoard(s.ctx, &boardmodels.BountyBoard{
		Address:   emptyBoard,
		Realm:     realmAddr,
		Authority: governance,
	}))
	s.Require().NoError(s.boards.PutBounty(s.ctx, boardmodels.Bounty{Address: bountyAddr, BountyBoard: boardAddr}))
	s.Require().NoError(s.boards.PutBounty(s.ctx, boardmodels.Bounty{Address: foreignBty, BountyBoard: otherBoard}))

	s.service = s.newService()
	s.fund(governance, 10*recordCost)
	s.fund(walletW, recordCost+applicationCost)
	s.fund(walletX, recordCost+applicationCost)
}

func (s *ServiceSuite) newService(opts ...Option) *Service {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(compliance.New(s.audit)),
		WithMetrics(s.metrics),
		WithRentSchedule(models.DefaultRentSchedule),
	}
	svc, err := New(s.ledger, s.ledger.Stores(), s.boards, append(base, opts...)...)
	s.Require().NoError(err)
	return svc
}

func (s *ServiceSuite) fund(payer domain.Address, lamports uint64) {
	_, err := s.ledger.Stores().Balances.Credit(s.ctx, payer, lamports)
	s.Require().NoError(err)
}

func (s *ServiceSuite) balance(payer domain.Address) uint64 {
	bal, err := s.service.Balance(s.ctx, payer)
	s.Require().NoError(err)
	return bal
}

func (s *ServiceSuite) signed(signers ...domain.Address) context.Context {
	return requestcontext.WithSigners(s.ctx, signers...)
}

func (s *ServiceSuite) actions() []string {
	events, err := s.audit.ListAll(s.ctx)
	s.Require().NoError(err)
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Action)
	}
	return out
}

func (s *ServiceSuite) addContributor(wallet domain.Address, role string) (*models.ContributorRecord, error) {
	return s.service.AddContributorWithRole(s.signed(governance), AddContributor{
		Board:             boardAddr,
		ContributorWallet: wallet,
		RoleName:          role,
	})
}

func (s *ServiceSuite) apply(wallet domain.Address, validity uint64) (*ApplicationResult, error) {
	return s.service.ApplyToBounty(s.signed(wallet), ApplyToBounty{
		Board:     boardAddr,
		Bounty:    bountyAddr,
		Applicant: wallet,
		Validity:  validity,
	})
}

func (s *ServiceSuite) assertCode(err error, code dErrors.Code) {
	s.Require().Error(err)
	s.Equal(code, dErrors.CodeOf(err), err.Error())
}

func (s *ServiceSuite) TestNewRequiresCollaborators() {
	_, err := New(nil, s.ledger.Stores(), s.boards)
	s.Error(err)
	_, err = New(s.ledger, ports.Stores{}, s.boards)
	s.Error(err)
	_, err = New(s.ledger, s.ledger.Stores(), nil)
	s.Error(err)
}

func (s *ServiceSuite) TestAddContributorWithRole() {
	s.Run("creates the record at the derived address", func() {
		record, err := s.addContributor(walletW, "admin")
		s.Require().NoError(err)

		s.Equal(s.service.Scheme().ContributorRecord(boardAddr, walletW), record.Address)
		s.Equal(boardAddr, record.BountyBoard)
		s.Equal(realmAddr, record.Realm)
		s.Equal(walletW, record.AssociatedWallet)
		s.Equal("admin", record.Role.String())
		s.Zero(record.Reputation)
		s.Empty(record.SkillsPt)
		s.True(record.Initialized)

		stored, err := s.service.GetContributor(s.ctx, boardAddr, walletW)
		s.Require().NoError(err)
		s.Equal(record, stored)
	})

	s.Run("governance pays the rent", func() {
		s.Equal(9*recordCost, s.balance(governance))
		s.Equal(recordCost+applicationCost, s.balance(walletW))
	})

	s.Run("audits the addition", func() {
		events, err := s.audit.ListBySubject(s.ctx, s.service.Scheme().ContributorRecord(boardAddr, walletW).String())
		s.Require().NoError(err)
		s.Require().Len(events, 1)
		s.Equal(string(audit.EventContributorAdded), events[0].Action)
		s.Equal(audit.CategoryCompliance, events[0].Category)
		s.Equal(governance.String(), events[0].Actor)
		s.Equal("req-1", events[0].RequestID)
		s.Equal(appliedAt, events[0].Timestamp)
		s.Equal("admin", events[0].Attributes["role"])
	})

	s.Run("a second add for the same wallet conflicts", func() {
		_, err := s.addContributor(walletW, "member")
		s.assertCode(err, dErrors.CodeConflict)

		stored, err := s.service.GetContributor(s.ctx, boardAddr, walletW)
		s.Require().NoError(err)
		s.Equal("admin", stored.Role.String())
		s.Equal(9*recordCost, s.balance(governance))
	})

	s.Equal(1.0, testutil.ToFloat64(s.metrics.ContributorsCreated.WithLabelValues("explicit")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Rejections.WithLabelValues(opAddContributor, string(dErrors.CodeConflict))))
}

func (s *ServiceSuite) TestAddContributorRejectsRoles() {
	s.Run("role outside the catalog", func() {
		_, err := s.addContributor(walletW, "owner")
		s.assertCode(err, dErrors.CodeInvalidRole)
	})
	s.Run("role differing only in case", func() {
		_, err := s.addContributor(walletW, "Admin")
		s.assertCode(err, dErrors.CodeInvalidRole)
	})
	s.Run("role longer than 24 bytes", func() {
		_, err := s.addContributor(walletW, "a-role-name-that-is-too-long")
		s.assertCode(err, dErrors.CodeInvalidInput)
	})
	s.Run("empty catalog rejects every role", func() {
		_, err := s.service.AddContributorWithRole(s.signed(governance), AddContributor{
			Board: emptyBoard, ContributorWallet: walletW, RoleName: "member",
		})
		s.assertCode(err, dErrors.CodeInvalidRole)
	})

	_, err := s.service.GetContributor(s.ctx, boardAddr, walletW)
	s.assertCode(err, dErrors.CodeNotFound)
	s.Equal(10*recordCost, s.balance(governance))
	s.Empty(s.actions())
}

func (s *ServiceSuite) TestAddContributorAuthorization() {
	s.Run("no signatures", func() {
		_, err := s.service.AddContributorWithRole(s.ctx, AddContributor{
			Board: boardAddr, ContributorWallet: walletW, RoleName: "member",
		})
		s.assertCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("payer did not sign", func() {
		_, err := s.service.AddContributorWithRole(s.signed(governance), AddContributor{
			Board: boardAddr, ContributorWallet: walletW, RoleName: "member", Payer: stranger,
		})
		s.assertCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("signer is not the recorded authority", func() {
		_, err := s.service.AddContributorWithRole(s.signed(stranger), AddContributor{
			Board: boardAddr, ContributorWallet: walletW, RoleName: "member", Governance: stranger,
		})
		s.assertCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("authorization is checked before the role", func() {
		_, err := s.service.AddContributorWithRole(s.ctx, AddContributor{
			Board: boardAddr, ContributorWallet: walletW, RoleName: "owner",
		})
		s.assertCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("board without authority needs an explicit governance signer", func() {
		_, err := s.service.AddContributorWithRole(s.signed(stranger), AddContributor{
			Board: otherBoard, ContributorWallet: walletW, RoleName: "member",
		})
		s.assertCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("unknown board", func() {
		_, err := s.service.AddContributorWithRole(s.signed(governance), AddContributor{
			Board: stranger, ContributorWallet: walletW, RoleName: "member",
		})
		s.assertCode(err, dErrors.CodeNotFound)
	})

	s.Empty(s.actions())
}

func (s *ServiceSuite) TestAddContributorWithoutAuthorityCheck() {
	svc := s.newService(WithGovernanceAuthorityCheck(false))
	s.fund(stranger, recordCost)

	record, err := svc.AddContributorWithRole(s.signed(stranger), AddContributor{
		Board: boardAddr, ContributorWallet: walletW, RoleName: "member", Governance: stranger,
	})
	s.Require().NoError(err)
	s.Equal("member", record.Role.String())
	s.Zero(s.balance(stranger))
}

func (s *ServiceSuite) TestAddContributorSeparatePayer() {
	record, err := s.service.AddContributorWithRole(s.signed(governance, walletX), AddContributor{
		Board: boardAddr, ContributorWallet: walletW, RoleName: "member", Payer: walletX,
	})
	s.Require().NoError(err)
	s.Equal(walletW, record.AssociatedWallet)
	s.Equal(applicationCost, s.balance(walletX))
	s.Equal(10*recordCost, s.balance(governance))
}

func (s *ServiceSuite) TestApplyToBountyMatchesKnownAddresses() {
	s.fund(realmAddr, recordCost+applicationCost)

	result, err := s.apply(realmAddr, 10)
	s.Require().NoError(err)

	s.True(result.ContributorCreated)
	s.Equal(recordAddr, result.Contributor.Address)
	s.Equal(appAddr, result.Application.Address)
	s.Equal(recordAddr, result.Application.ContributorRecord)
}

func (s *ServiceSuite) TestApplyToBountyRegistersNewContributor() {
	result, err := s.apply(walletX, 10)
	s.Require().NoError(err)

	s.True(result.ContributorCreated)
	s.Equal("member", result.Contributor.Role.String())
	s.Equal(walletX, result.Contributor.AssociatedWallet)

	app := result.Application
	s.Equal(bountyAddr, app.Bounty)
	s.Equal(walletX, app.Applicant)
	s.Equal(result.Contributor.Address, app.ContributorRecord)
	s.Equal(models.ApplicationStatusNotAssigned, app.Status)
	s.Equal(uint64(10), app.Validity)
	s.Equal(appliedAt.Unix(), app.AppliedAt)

	s.Zero(s.balance(walletX))
	s.Equal([]string{string(audit.EventContributorRegistered), string(audit.EventBountyApplied)}, s.actions())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ContributorsCreated.WithLabelValues("implicit")))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.ApplicationsCreated))
}

func (s *ServiceSuite) TestApplyToBountyKeepsExistingRecord() {
	_, err := s.addContributor(walletW, "admin")
	s.Require().NoError(err)

	result, err := s.apply(walletW, 10)
	s.Require().NoError(err)

	s.False(result.ContributorCreated)
	s.Equal("admin", result.Contributor.Role.String())
	s.Equal(recordCost, s.balance(walletW))
	s.Equal([]string{string(audit.EventContributorAdded), string(audit.EventBountyApplied)}, s.actions())
}

func (s *ServiceSuite) TestScenario() {
	_, err := s.addContributor(walletW, "admin")
	s.Require().NoError(err)

	result, err := s.apply(walletX, 10)
	s.Require().NoError(err)
	s.Equal("member", result.Contributor.Role.String())
	s.Equal(appliedAt.Unix(), result.Application.AppliedAt)

	_, err = s.apply(walletX, 10)
	s.assertCode(err, dErrors.CodeConflict)

	_, err = s.addContributor(walletX, "admin")
	s.assertCode(err, dErrors.CodeConflict)

	records, err := s.service.ListContributorsByRealm(s.ctx, realmAddr)
	s.Require().NoError(err)
	s.Len(records, 2)

	apps, err := s.service.ListApplicationsByBounty(s.ctx, bountyAddr)
	s.Require().NoError(err)
	s.Require().Len(apps, 1)
	s.Equal(walletX, apps[0].Applicant)
}

func (s *ServiceSuite) TestApplyToBountyRejections() {
	s.Run("applicant did not sign", func() {
		_, err := s.service.ApplyToBounty(s.signed(stranger), ApplyToBounty{
			Board: boardAddr, Bounty: bountyAddr, Applicant: walletX, Validity: 10,
		})
		s.assertCode(err, dErrors.CodeUnauthorized)
	})

	s.Run("unknown bounty", func() {
		_, err := s.service.ApplyToBounty(s.signed(walletX), ApplyToBounty{
			Board: boardAddr, Bounty: stranger, Applicant: walletX,
		})
		s.assertCode(err, dErrors.CodeNotFound)
	})

	s.Run("bounty on another board", func() {
		_, err := s.service.ApplyToBounty(s.signed(walletX), ApplyToBounty{
			Board: boardAddr, Bounty: foreignBty, Applicant: walletX,
		})
		s.assertCode(err, dErrors.CodeInvalidInput)
	})

	s.Run("zero applicant", func() {
		_, err := s.service.ApplyToBounty(s.ctx, ApplyToBounty{Board: boardAddr, Bounty: bountyAddr})
		s.assertCode(err, dErrors.CodeInvalidInput)
	})

	_, err := s.service.GetContributor(s.ctx, boardAddr, walletX)
	s.assertCode(err, dErrors.CodeNotFound)
	s.Empty(s.actions())
}

func (s *ServiceSuite) TestApplyToBountyWithoutDefaultRole() {
	bounty := testAddress(40)
	s.Require().NoError(s.boards.PutBounty(s.ctx, boardmodels.Bounty{Address: bounty, BountyBoard: emptyBoard}))

	_, err := s.service.ApplyToBounty(s.signed(walletX), ApplyToBounty{
		Board: emptyBoard, Bounty: bounty, Applicant: walletX, Validity: 1,
	})
	s.assertCode(err, dErrors.CodeNoDefaultRole)

	_, err = s.service.GetContributor(s.ctx, emptyBoard, walletX)
	s.assertCode(err, dErrors.CodeNotFound)
	s.Equal(recordCost+applicationCost, s.balance(walletX))
}

func (s *ServiceSuite) TestInsufficientFundsRollsBackEverything() {
	poor := testAddress(50)
	s.fund(poor, recordCost)

	_, err := s.apply(poor, 10)
	s.assertCode(err, dErrors.CodeInsufficientResources)

	_, err = s.service.GetContributor(s.ctx, boardAddr, poor)
	s.assertCode(err, dErrors.CodeNotFound)
	_, err = s.service.GetApplication(s.ctx, boardAddr, bountyAddr, poor)
	s.assertCode(err, dErrors.CodeNotFound)
	s.Equal(recordCost, s.balance(poor))
	s.Empty(s.actions())
}

func (s *ServiceSuite) TestWithoutRentNothingIsCharged() {
	svc := s.newService(WithRentSchedule(models.RentSchedule{}))
	unfunded := testAddress(60)

	_, err := svc.ApplyToBounty(s.signed(unfunded), ApplyToBounty{
		Board: boardAddr, Bounty: bountyAddr, Applicant: unfunded, Validity: 3,
	})
	s.Require().NoError(err)
	s.Zero(s.balance(unfunded))
}

func (s *ServiceSuite) TestConcurrentApplicationsAllocateOneRecord() {
	const n = 8
	wallet := testAddress(70)
	s.fund(wallet, recordCost+n*applicationCost)

	bounties := make([]domain.Address, n)
	for i := range bounties {
		bounties[i] = testAddress(byte(100 + i))
		s.Require().NoError(s.boards.PutBounty(s.ctx, boardmodels.Bounty{Address: bounties[i], BountyBoard: boardAddr}))
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		errs    []error
	)
	for _, bounty := range bounties {
		wg.Add(1)
		go func(bounty domain.Address) {
			defer wg.Done()
			result, err := s.service.ApplyToBounty(s.signed(wallet), ApplyToBounty{
				Board: boardAddr, Bounty: bounty, Applicant: wallet, Validity: 1,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			if result.ContributorCreated {
				created++
			}
		}(bounty)
	}
	wg.Wait()

	s.Empty(errs)
	s.Equal(1, created)
	s.Zero(s.balance(wallet))
}

func (s *ServiceSuite) TestReads() {
	_, err := s.addContributor(walletW, "admin")
	s.Require().NoError(err)
	_, err = s.apply(walletX, 5)
	s.Require().NoError(err)

	s.Run("lookup by address keeps slots", func() {
		wAddr := s.service.Scheme().ContributorRecord(boardAddr, walletW)
		records, err := s.service.GetContributorsByAddress(s.ctx, []domain.Address{wAddr, stranger})
		s.Require().NoError(err)
		s.Require().Len(records, 2)
		s.Equal(walletW, records[0].AssociatedWallet)
		s.Nil(records[1])
	})

	s.Run("lookup bounds", func() {
		_, err := s.service.GetContributorsByAddress(s.ctx, nil)
		s.assertCode(err, dErrors.CodeValidation)
		_, err = s.service.GetContributorsByAddress(s.ctx, make([]domain.Address, models.MaxLookupAddresses+1))
		s.assertCode(err, dErrors.CodeValidation)
	})

	s.Run("application by wallet", func() {
		app, err := s.service.GetApplication(s.ctx, boardAddr, bountyAddr, walletX)
		s.Require().NoError(err)
		s.Equal(uint64(5), app.Validity)
	})

	s.Run("realm is required", func() {
		_, err := s.service.ListContributorsByRealm(s.ctx, domain.Address{})
		s.assertCode(err, dErrors.CodeInvalidInput)
	})
}

func (s *ServiceSuite) TestCreditPayer() {
	payer := testAddress(80)

	balance, err := s.service.CreditPayer(s.ctx, payer, 500)
	s.Require().NoError(err)
	s.Equal(uint64(500), balance)
	s.Equal([]string{string(audit.EventPayerCredited)}, s.actions())

	events, err := s.audit.ListBySubject(s.ctx, payer.String())
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.CategoryOperations, events[0].Category)

	_, err = s.service.CreditPayer(s.ctx, payer, 0)
	s.assertCode(err, dErrors.CodeValidation)
	_, err = s.service.CreditPayer(s.ctx, domain.Address{}, 1)
	s.assertCode(err, dErrors.CodeInvalidInput)
}

// Collaborator failures, driven through mocks.

type failureSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	ledger *memory.Ledger
	boards *mocks.MockBoardReader
	audit  *mocks.MockAuditPublisher
	ctx    context.Context
}

func TestCollaboratorFailures(t *testing.T) {
	suite.Run(t, new(failureSuite))
}

func (s *failureSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ledger = memory.NewLedger()
	s.boards = mocks.NewMockBoardReader(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.ctx = requestcontext.WithSigners(context.Background(), governance, walletX)
}

func (s *failureSuite) newService() *Service {
	svc, err := New(s.ledger, s.ledger.Stores(), s.boards,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.audit),
	)
	s.Require().NoError(err)
	return svc
}

func (s *failureSuite) board() *boardmodels.BountyBoard {
	return &boardmodels.BountyBoard{
		Address:   boardAddr,
		Realm:     realmAddr,
		Authority: governance,
		Config:    boardmodels.BoardConfig{Roles: catalog("member")},
	}
}

func (s *failureSuite) TestAuditFailureAbortsTheWrite() {
	s.boards.EXPECT().FindBoard(gomock.Any(), boardAddr).Return(s.board(), nil)
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit store down"))

	_, err := s.newService().AddContributorWithRole(s.ctx, AddContributor{
		Board: boardAddr, ContributorWallet: walletW, RoleName: "member",
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))

	_, err = s.ledger.Stores().Contributors.FindByAddress(s.ctx, addressingRecord(boardAddr, walletW))
	s.Error(err)
}

func (s *failureSuite) TestAuditFailureAbortsApplication() {
	s.boards.EXPECT().FindBounty(gomock.Any(), bountyAddr).Return(&boardmodels.Bounty{Address: bountyAddr, BountyBoard: boardAddr}, nil)
	s.boards.EXPECT().FindBoard(gomock.Any(), boardAddr).Return(s.board(), nil)
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, events ...audit.Event) error {
		s.Require().Len(events, 2, "registration and application are emitted together")
		s.Equal(string(audit.EventContributorRegistered), events[0].Action)
		s.Equal(string(audit.EventBountyApplied), events[1].Action)
		return errors.New("audit store down")
	})

	_, err := s.newService().ApplyToBounty(s.ctx, ApplyToBounty{
		Board: boardAddr, Bounty: bountyAddr, Applicant: walletX, Validity: 1,
	})
	s.Require().Error(err)

	_, err = s.ledger.Stores().Contributors.FindByAddress(s.ctx, addressingRecord(boardAddr, walletX))
	s.Error(err)
}

func (s *failureSuite) TestRejectedAuditBatchLeavesNoEvents() {
	s.boards.EXPECT().FindBounty(gomock.Any(), bountyAddr).Return(&boardmodels.Bounty{Address: bountyAddr, BountyBoard: boardAddr}, nil)
	s.boards.EXPECT().FindBoard(gomock.Any(), boardAddr).Return(s.board(), nil)
	store := auditmemory.NewInMemoryStore()
	publisher := compliance.New(store)
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, events ...audit.Event) error {
		events[1].Subject = ""
		return publisher.Emit(ctx, events...)
	})

	_, err := s.newService().ApplyToBounty(s.ctx, ApplyToBounty{
		Board: boardAddr, Bounty: bountyAddr, Applicant: walletX, Validity: 1,
	})
	s.Require().Error(err)

	events, err := store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(events, "contributor_registered must not outlive a failed bounty_applied")
	_, err = s.ledger.Stores().Contributors.FindByAddress(s.ctx, addressingRecord(boardAddr, walletX))
	s.Error(err)
}

func (s *failureSuite) TestOverflowingRentScheduleIsRejected() {
	_, err := New(s.ledger, s.ledger.Stores(), s.boards,
		WithRentSchedule(models.RentSchedule{LamportsPerByteYear: 1 << 62, ExemptionYears: 2}),
	)
	s.Error(err)
}

func (s *failureSuite) TestBoardReaderFailure() {
	s.boards.EXPECT().FindBoard(gomock.Any(), boardAddr).Return(nil, fmt.Errorf("connection reset"))

	_, err := s.newService().AddContributorWithRole(s.ctx, AddContributor{
		Board: boardAddr, ContributorWallet: walletW, RoleName: "member",
	})
	s.Require().Error(err)
	s.Equal(dErrors.CodeInternal, dErrors.CodeOf(err))
}

func addressingRecord(board, wallet domain.Address) domain.Address {
	return addressing.New(addressing.DefaultProgramID).ContributorRecord(board, wallet)
}
