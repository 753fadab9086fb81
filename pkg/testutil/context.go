package testutil

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bountyboard/internal/platform/middleware"
	"bountyboard/pkg/domain"
	"bountyboard/pkg/requestcontext"
)

// Wallet is a throwaway Ed25519 key pair; its address is the public key.
type Wallet struct {
	Key     ed25519.PrivateKey
	Address domain.Address
}

func NewWallet(t *testing.T) Wallet {
	t.Helper()
	pub, key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	addr, err := domain.AddressFromBytes(pub)
	require.NoError(t, err)
	return Wallet{Key: key, Address: addr}
}

// Sign attaches one X-Signer-Proof per wallet covering req's method, path
// and body. The body is read and restored.
func Sign(t *testing.T, req *http.Request, wallets ...Wallet) *http.Request {
	t.Helper()
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		require.NoError(t, err)
		req.Body = io.NopCloser(bytes.NewReader(body))
	}
	for _, w := range wallets {
		proof, err := middleware.NewSignerProof(w.Key, req.Method, req.URL.Path, body, time.Now(), time.Minute)
		require.NoError(t, err)
		req.Header.Add(middleware.SignerProofHeader, proof)
	}
	return req
}

// WithSigners marks wallets as verified signers without a proof, the state
// the signer middleware leaves behind.
func WithSigners(req *http.Request, wallets ...domain.Address) *http.Request {
	ctx := requestcontext.WithSigners(req.Context(), wallets...)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	ctx := requestcontext.WithTime(req.Context(), now)
	return req.WithContext(ctx)
}
