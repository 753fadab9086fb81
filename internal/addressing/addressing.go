// Package addressing derives the storage address of every registry record.
//
// An address is a pure function of an ordered list of seeds and the program
// id. The storage layer allows at most one allocation per address, so two
// records collide exactly when their seeds match. That collision is the only
// uniqueness guard the registry has: one contributor record per (board, wallet)
// and one application per (bounty, contributor record).
package addressing

import (
	"crypto/sha256"
	"fmt"

	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
)

const (
	// NamespaceSeed prefixes every derivation owned by the registry program.
	NamespaceSeed = "bounty_board"

	ContributorRecordSeed = "contributor_record"
	BountyApplicationSeed = "bounty_application"

	// MaxSeedLength and MaxSeeds bound well-formed inputs.
	MaxSeedLength = 32
	MaxSeeds      = 16

	derivationMarker = "ProgramDerivedAddress"
)

// DefaultProgramID is the program namespace used when none is configured.
var DefaultProgramID = domain.MustParseAddress("8wEnvDw8rQoWQXsCvE3ALt5bEuB8FeA8A52N5Uacjayh")

// Scheme derives addresses under a single program id. It holds no mutable
// state and is safe for concurrent use.
type Scheme struct {
	programID domain.Address
}

// New returns a scheme for programID.
func New(programID domain.Address) Scheme {
	return Scheme{programID: programID}
}

// ProgramID returns the namespace this scheme derives under.
func (s Scheme) ProgramID() domain.Address {
	return s.programID
}

// Derive hashes the seeds in order. Each seed is length-prefixed so that
// ("ab","c") and ("a","bc") never produce the same preimage.
//
// Errors: CodeInvalidInput when there are more than MaxSeeds seeds or a seed
// exceeds MaxSeedLength bytes.
func (s Scheme) Derive(seeds ...[]byte) (domain.Address, error) {
	if len(seeds) > MaxSeeds {
		return domain.Address{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("at most %d seeds allowed", MaxSeeds))
	}
	for i, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return domain.Address{}, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("seed %d exceeds %d bytes", i, MaxSeedLength))
		}
	}
	return s.derive(seeds...), nil
}

func (s Scheme) derive(seeds ...[]byte) domain.Address {
	h := sha256.New()
	for _, seed := range seeds {
		_, _ = h.Write([]byte{byte(len(seed))})
		_, _ = h.Write(seed)
	}
	_, _ = h.Write(s.programID[:])
	_, _ = h.Write([]byte(derivationMarker))

	var out domain.Address
	copy(out[:], h.Sum(nil))
	return out
}

// ContributorRecord is the address of wallet's record on board.
func (s Scheme) ContributorRecord(board, wallet domain.Address) domain.Address {
	return s.derive([]byte(NamespaceSeed), board[:], []byte(ContributorRecordSeed), wallet[:])
}

// BountyApplication is the address of the application that contributorRecord
// filed against bounty.
func (s Scheme) BountyApplication(bounty, contributorRecord domain.Address) domain.Address {
	return s.derive([]byte(NamespaceSeed), bounty[:], []byte(BountyApplicationSeed), contributorRecord[:])
}
