// Package handler exposes the contributor registry over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bountyboard/internal/platform/middleware"
	"bountyboard/internal/registry/models"
	"bountyboard/internal/registry/service"
	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/httputil"
	"bountyboard/pkg/platform/middleware/admin"
	"bountyboard/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the registry surface the handler drives.
type Service interface {
	AddContributorWithRole(ctx context.Context, cmd service.AddContributor) (*models.ContributorRecord, error)
	ApplyToBounty(ctx context.Context, cmd service.ApplyToBounty) (*service.ApplicationResult, error)
	GetContributor(ctx context.Context, board, wallet domain.Address) (*models.ContributorRecord, error)
	GetContributorsByAddress(ctx context.Context, addresses []domain.Address) ([]*models.ContributorRecord, error)
	ListContributorsByRealm(ctx context.Context, realm domain.Address) ([]*models.ContributorRecord, error)
	GetApplication(ctx context.Context, board, bounty, wallet domain.Address) (*models.BountyApplication, error)
	ListApplicationsByBounty(ctx context.Context, bounty domain.Address) ([]*models.BountyApplication, error)
	CreditPayer(ctx context.Context, payer domain.Address, lamports uint64) (uint64, error)
	Balance(ctx context.Context, payer domain.Address) (uint64, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service        Service
	logger         *slog.Logger
	adminTokenHash string
	writeLimiter   func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithWriteLimiter wraps the signed write endpoints, typically with a
// per-client rate limiter.
func WithWriteLimiter(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.writeLimiter = mw
	}
}

// New constructs a registry handler. adminTokenHash is the bcrypt hash
// guarding /admin routes; empty disables them.
func New(service Service, logger *slog.Logger, adminTokenHash string, opts ...Option) *Handler {
	h := &Handler{
		service:        service,
		logger:         logger,
		adminTokenHash: adminTokenHash,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		if h.writeLimiter != nil {
			r.Use(h.writeLimiter)
		}
		r.Use(middleware.Signers(h.logger))
		r.Post("/boards/{board}/contributors", h.HandleAddContributor)
		r.Post("/boards/{board}/bounties/{bounty}/applications", h.HandleApplyToBounty)
	})

	r.Get("/boards/{board}/contributors/{wallet}", h.HandleGetContributor)
	r.Get("/boards/{board}/bounties/{bounty}/applications/{wallet}", h.HandleGetApplication)
	r.Get("/bounties/{bounty}/applications", h.HandleListApplications)
	r.Get("/realms/{realm}/contributors", h.HandleListRealmContributors)
	r.Post("/contributors/lookup", h.HandleLookupContributors)

	r.Group(func(r chi.Router) {
		r.Use(admin.RequireAdminToken(h.adminTokenHash, h.logger))
		r.Post("/admin/payers/{payer}/credit", h.HandleCreditPayer)
		r.Get("/admin/payers/{payer}", h.HandleGetBalance)
	})
}

// HandleAddContributor handles POST /boards/{board}/contributors.
func (h *Handler) HandleAddContributor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	board, ok := h.pathAddress(w, r, "board")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.AddContributorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	wallet, err := domain.ParseAddress(req.ContributorWallet)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "contributor_wallet is not a valid address"))
		return
	}
	governance, ok := h.optionalAddress(w, req.Governance, "governance")
	if !ok {
		return
	}
	payer, ok := h.optionalAddress(w, req.Payer, "payer")
	if !ok {
		return
	}

	record, err := h.service.AddContributorWithRole(ctx, service.AddContributor{
		Board:             board,
		ContributorWallet: wallet,
		RoleName:          req.RoleName,
		Governance:        governance,
		Payer:             payer,
	})
	if err != nil {
		h.logFailure(ctx, "add contributor failed", err, "board", board, "wallet", wallet)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toContributorResponse(record))
}

// HandleApplyToBounty handles POST /boards/{board}/bounties/{bounty}/applications.
// The applicant is the request's single signer.
func (h *Handler) HandleApplyToBounty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	board, ok := h.pathAddress(w, r, "board")
	if !ok {
		return
	}
	bounty, ok := h.pathAddress(w, r, "bounty")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ApplyToBountyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	signers := requestcontext.Signers(ctx)
	if len(signers) != 1 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "exactly one applicant signature is required"))
		return
	}
	var applicant domain.Address
	for wallet := range signers {
		applicant = wallet
	}

	result, err := h.service.ApplyToBounty(ctx, service.ApplyToBounty{
		Board:     board,
		Bounty:    bounty,
		Applicant: applicant,
		Validity:  req.Validity,
	})
	if err != nil {
		h.logFailure(ctx, "apply to bounty failed", err, "board", board, "bounty", bounty, "applicant", applicant)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toApplyResponse(result))
}

func (h *Handler) HandleGetContributor(w http.ResponseWriter, r *http.Request) {
	board, ok := h.pathAddress(w, r, "board")
	if !ok {
		return
	}
	wallet, ok := h.pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	record, err := h.service.GetContributor(r.Context(), board, wallet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContributorResponse(record))
}

func (h *Handler) HandleGetApplication(w http.ResponseWriter, r *http.Request) {
	board, ok := h.pathAddress(w, r, "board")
	if !ok {
		return
	}
	bounty, ok := h.pathAddress(w, r, "bounty")
	if !ok {
		return
	}
	wallet, ok := h.pathAddress(w, r, "wallet")
	if !ok {
		return
	}
	application, err := h.service.GetApplication(r.Context(), board, bounty, wallet)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationResponse(application))
}

func (h *Handler) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	bounty, ok := h.pathAddress(w, r, "bounty")
	if !ok {
		return
	}
	applications, err := h.service.ListApplicationsByBounty(r.Context(), bounty)
	if err != nil {
		h.logFailure(r.Context(), "list applications failed", err, "bounty", bounty)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toApplicationsResponse(applications))
}

func (h *Handler) HandleListRealmContributors(w http.ResponseWriter, r *http.Request) {
	realm, ok := h.pathAddress(w, r, "realm")
	if !ok {
		return
	}
	records, err := h.service.ListContributorsByRealm(r.Context(), realm)
	if err != nil {
		h.logFailure(r.Context(), "list realm contributors failed", err, "realm", realm)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContributorsResponse(records))
}

// HandleLookupContributors handles POST /contributors/lookup. The response
// keeps one slot per requested address, null where no record exists.
func (h *Handler) HandleLookupContributors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.LookupContributorsRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	addresses, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "addresses must be base58 addresses"))
		return
	}
	records, err := h.service.GetContributorsByAddress(ctx, addresses)
	if err != nil {
		h.logFailure(ctx, "contributor lookup failed", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toContributorsResponse(records))
}

// HandleCreditPayer handles POST /admin/payers/{payer}/credit.
func (h *Handler) HandleCreditPayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	payer, ok := h.pathAddress(w, r, "payer")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.CreditRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	balance, err := h.service.CreditPayer(ctx, payer, req.Lamports)
	if err != nil {
		h.logFailure(ctx, "credit payer failed", err, "payer", payer)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "payer credited",
		"payer", payer,
		"lamports", req.Lamports,
		"balance", balance,
		"request_id", requestcontext.RequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusOK, balanceResponse{Payer: payer.String(), Lamports: balance})
}

func (h *Handler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	payer, ok := h.pathAddress(w, r, "payer")
	if !ok {
		return
	}
	balance, err := h.service.Balance(r.Context(), payer)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, balanceResponse{Payer: payer.String(), Lamports: balance})
}

func (h *Handler) pathAddress(w http.ResponseWriter, r *http.Request, param string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, param))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, param+" is not a valid address"))
		return domain.Address{}, false
	}
	return addr, true
}

func (h *Handler) optionalAddress(w http.ResponseWriter, value, field string) (domain.Address, bool) {
	if value == "" {
		return domain.Address{}, true
	}
	addr, err := domain.ParseAddress(value)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, field+" is not a valid address"))
		return domain.Address{}, false
	}
	return addr, true
}

// logFailure logs client errors at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, attrs ...any) {
	attrs = append(attrs, "error", err, "request_id", requestcontext.RequestID(ctx))
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, attrs...)
		return
	}
	h.logger.WarnContext(ctx, msg, attrs...)
}
