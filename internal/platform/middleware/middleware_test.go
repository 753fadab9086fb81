package middleware

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"bountyboard/internal/platform/metrics"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/requestcontext"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type SignersSuite struct {
	suite.Suite
	key    ed25519.PrivateKey
	wallet domain.Address
	now    time.Time
	seen   requestcontext.SignerSet
	body   []byte
}

func TestSignersSuite(t *testing.T) {
	suite.Run(t, new(SignersSuite))
}

func (s *SignersSuite) SetupTest() {
	pub, key, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)
	s.key = key
	s.wallet, err = domain.AddressFromBytes(pub)
	s.Require().NoError(err)
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.seen = nil
	s.body = nil
}

const signedPath = "/boards/b/bounties/a/applications"

func (s *SignersSuite) serve(body []byte, proofs ...string) *httptest.ResponseRecorder {
	return s.serveAt(http.MethodPost, signedPath, body, proofs...)
}

func (s *SignersSuite) serveAt(method, path string, body []byte, proofs ...string) *httptest.ResponseRecorder {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.seen = requestcontext.Signers(r.Context())
		s.body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	})
	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	r = r.WithContext(requestcontext.WithTime(r.Context(), s.now))
	for _, p := range proofs {
		r.Header.Add(SignerProofHeader, p)
	}
	w := httptest.NewRecorder()
	Signers(discard)(next).ServeHTTP(w, r)
	return w
}

func (s *SignersSuite) proof(key ed25519.PrivateKey, body []byte, ttl time.Duration) string {
	return s.proofFor(key, http.MethodPost, signedPath, body, ttl)
}

func (s *SignersSuite) proofFor(key ed25519.PrivateKey, method, path string, body []byte, ttl time.Duration) string {
	token, err := NewSignerProof(key, method, path, body, s.now, ttl)
	s.Require().NoError(err)
	return token
}

func (s *SignersSuite) TestValidProofAddsSigner() {
	body := []byte(`{"validity":10}`)
	w := s.serve(body, s.proof(s.key, body, time.Minute))

	s.Equal(http.StatusNoContent, w.Code)
	s.True(s.seen.Has(s.wallet))
	s.Equal(body, s.body)
}

func (s *SignersSuite) TestMultipleSigners() {
	_, other, err := ed25519.GenerateKey(rand.Reader)
	s.Require().NoError(err)
	otherWallet, err := domain.AddressFromBytes(other.Public().(ed25519.PublicKey))
	s.Require().NoError(err)

	body := []byte(`{}`)
	w := s.serve(body, s.proof(s.key, body, time.Minute), s.proof(other, body, time.Minute))

	s.Equal(http.StatusNoContent, w.Code)
	s.True(s.seen.Has(s.wallet))
	s.True(s.seen.Has(otherWallet))
}

func (s *SignersSuite) TestNoProofPassesThroughUnsigned() {
	w := s.serve([]byte(`{}`))
	s.Equal(http.StatusNoContent, w.Code)
	s.Empty(s.seen)
}

func (s *SignersSuite) TestRejections() {
	body := []byte(`{"validity":10}`)

	s.Run("proof for a different body", func() {
		w := s.serve(body, s.proof(s.key, []byte(`{"validity":11}`), time.Minute))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("expired proof", func() {
		w := s.serve(body, s.proof(s.key, body, -time.Minute))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("proof for another path", func() {
		w := s.serveAt(http.MethodPost, "/boards/b/bounties/other/applications", body, s.proof(s.key, body, time.Minute))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("proof for another method", func() {
		w := s.serve(body, s.proofFor(s.key, http.MethodPut, signedPath, body, time.Minute))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("lifetime above the cap", func() {
		w := s.serve(body, s.proof(s.key, body, MaxProofLifetime+time.Second))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("issued in the future", func() {
		token, err := NewSignerProof(s.key, http.MethodPost, signedPath, body, s.now.Add(time.Hour), time.Minute)
		s.Require().NoError(err)
		w := s.serve(body, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("missing issued-at", func() {
		claims := SignerClaims{
			Method:     http.MethodPost,
			Path:       signedPath,
			BodySHA256: bodyDigest(body),
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   s.wallet.String(),
				ExpiresAt: jwt.NewNumericDate(s.now.Add(time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.key)
		s.Require().NoError(err)
		w := s.serve(body, token)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("garbage proof", func() {
		w := s.serve(body, "not-a-jwt")
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("one bad proof among good ones", func() {
		w := s.serve(body, s.proof(s.key, body, time.Minute), "not-a-jwt")
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = requestcontext.RequestID(r.Context())
	}))

	t.Run("mints an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.NotEmpty(t, got)
		assert.Equal(t, got, w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps an inbound id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(RequestIDHeader, "abc-123")
		h.ServeHTTP(httptest.NewRecorder(), r)
		assert.Equal(t, "abc-123", got)
	})
}

func TestRecovery(t *testing.T) {
	h := Recovery(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, w.Body.String())
}

func TestLatencyUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	r := chi.NewRouter()
	r.Use(Latency(m))
	r.Get("/boards/{board}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boards/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boards/def", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RequestsInFlight))
}
