package middleware

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
	"bountyboard/pkg/platform/httputil"
	"bountyboard/pkg/requestcontext"
)

// SignerProofHeader may appear once per signer.
const SignerProofHeader = "X-Signer-Proof"

const (
	maxSignedBody = 64 << 10

	// MaxProofLifetime caps exp - iat of a signer proof.
	MaxProofLifetime = 5 * time.Minute
	proofClockSkew   = 30 * time.Second
)

// SignerClaims bind a wallet signature to one request: its method, its path
// and its body. Subject is the base58 wallet address, which is also its
// Ed25519 public key.
type SignerClaims struct {
	Method     string `json:"htm"`
	Path       string `json:"htu"`
	BodySHA256 string `json:"body_sha256"`
	jwt.RegisteredClaims
}

// NewSignerProof signs one request on behalf of key's wallet. The proof
// expires after ttl.
func NewSignerProof(key ed25519.PrivateKey, method, path string, body []byte, now time.Time, ttl time.Duration) (string, error) {
	wallet, err := domain.AddressFromBytes(key.Public().(ed25519.PublicKey))
	if err != nil {
		return "", err
	}
	claims := SignerClaims{
		Method:     method,
		Path:       path,
		BodySHA256: bodyDigest(body),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   wallet.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(key)
}

func bodyDigest(body []byte) string {
	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}

// signedRequest is what every proof on a request must cover.
type signedRequest struct {
	method string
	path   string
	digest string
}

// Signers verifies every X-Signer-Proof header and records the proven
// wallets in the request context. Requests without proofs pass through with
// no signers; the service decides whom it needs. Any invalid proof rejects
// the request.
func Signers(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			proofs := r.Header.Values(SignerProofHeader)
			if len(proofs) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSignedBody))
			if err != nil {
				httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body too large"))
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			target := signedRequest{method: r.Method, path: r.URL.Path, digest: bodyDigest(body)}
			now := requestcontext.Now(ctx)

			wallets := make([]domain.Address, 0, len(proofs))
			for _, proof := range proofs {
				wallet, err := verifyProof(proof, target, now)
				if err != nil {
					logger.WarnContext(ctx, "rejected signer proof",
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"request_id", requestcontext.RequestID(ctx),
					)
					httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid signer proof"))
					return
				}
				wallets = append(wallets, wallet)
			}

			ctx = requestcontext.WithSigners(ctx, wallets...)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verifyProof(proof string, target signedRequest, now time.Time) (domain.Address, error) {
	var wallet domain.Address
	claims := &SignerClaims{}
	_, err := jwt.ParseWithClaims(proof, claims, func(token *jwt.Token) (any, error) {
		addr, err := domain.ParseAddress(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("subject is not a wallet address: %w", err)
		}
		wallet = addr
		return ed25519.PublicKey(addr.Bytes()), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(proofClockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return domain.Address{}, err
	}
	if claims.IssuedAt == nil {
		return domain.Address{}, errors.New("proof has no issued-at time")
	}
	if claims.ExpiresAt.Sub(claims.IssuedAt.Time) > MaxProofLifetime {
		return domain.Address{}, errors.New("proof lifetime exceeds the maximum")
	}
	if claims.Method != target.method || claims.Path != target.path {
		return domain.Address{}, errors.New("proof was signed for a different request")
	}
	if claims.BodySHA256 != target.digest {
		return domain.Address{}, errors.New("proof does not cover this request body")
	}
	return wallet, nil
}
