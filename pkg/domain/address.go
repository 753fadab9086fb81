package domain

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/mr-tron/base58"

	dErrors "bountyboard/pkg/domain-errors"
)

// AddressLength is the byte length of every identifier in the registry:
// wallets, realms, boards, bounties and derived record addresses.
const AddressLength = 32

// maxEncodedLength bounds base58 input before decoding. 32 bytes never encode
// to more than 44 characters.
const maxEncodedLength = 44

// Address is a 32-byte identifier. Wallet addresses are Ed25519 public keys.
// The text form is base58.
//
// Usage: construct via ParseAddress at trust boundaries; AddressFromBytes is
// for values already held as raw bytes (database rows, hashes).
type Address [AddressLength]byte

// ParseAddress decodes a base58 address.
//
// Errors: returns CodeInvalidInput when the value is empty, not base58, or not
// exactly 32 bytes once decoded.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address cannot be empty")
	}
	if len(s) > maxEncodedLength {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is too long")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, dErrors.New(dErrors.CodeInvalidInput, "address is not valid base58")
	}
	return AddressFromBytes(raw)
}

// MustParseAddress is ParseAddress for constants and test fixtures.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(fmt.Sprintf("domain: invalid address %q: %v", s, err))
	}
	return a
}

// AddressFromBytes copies exactly 32 bytes into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLength {
		return a, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("address must be %d bytes, got %d", AddressLength, len(b)))
	}
	copy(a[:], b)
	return a, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns a copy of the raw address bytes.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// IsZero reports whether the address is all zero bytes (the unset value).
func (a Address) IsZero() bool {
	return a == Address{}
}

// Equal compares two addresses byte for byte.
func (a Address) Equal(other Address) bool {
	return bytes.Equal(a[:], other[:])
}

// MarshalText renders the base58 form for JSON and YAML.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses the base58 form for JSON and YAML.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value stores the raw 32 bytes (BYTEA columns).
func (a Address) Value() (driver.Value, error) {
	return a.Bytes(), nil
}

// Scan reads a BYTEA column into the address.
func (a *Address) Scan(src any) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("scan address: unsupported type %T", src)
	}
	parsed, err := AddressFromBytes(b)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
