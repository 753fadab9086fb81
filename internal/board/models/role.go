package models

import (
	"bytes"
	"fmt"

	dErrors "bountyboard/pkg/domain-errors"
)

// RoleNameCapacity is the fixed byte capacity of a role name.
const RoleNameCapacity = 24

// RoleName is a fixed-capacity, zero-padded role name.
//
// Invariant: 1..24 bytes of content. Overflow is rejected rather than
// truncated so two distinct names can never collide after truncation.
type RoleName [RoleNameCapacity]byte

// ParseRoleName builds a RoleName from external input.
//
// Errors: CodeInvalidInput when the name is empty, longer than 24 bytes, or
// contains a NUL byte (which would be indistinguishable from padding).
func ParseRoleName(s string) (RoleName, error) {
	var r RoleName
	if s == "" {
		return r, dErrors.New(dErrors.CodeInvalidInput, "role name cannot be empty")
	}
	if len(s) > RoleNameCapacity {
		return r, dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("role name must be %d bytes or less", RoleNameCapacity))
	}
	if bytes.IndexByte([]byte(s), 0) >= 0 {
		return r, dErrors.New(dErrors.CodeInvalidInput, "role name cannot contain NUL bytes")
	}
	copy(r[:], s)
	return r, nil
}

// MustRoleName is ParseRoleName for constants and fixtures.
func MustRoleName(s string) RoleName {
	r, err := ParseRoleName(s)
	if err != nil {
		panic(err)
	}
	return r
}

// String returns the name without padding.
func (r RoleName) String() string {
	return string(bytes.TrimRight(r[:], "\x00"))
}

func (r RoleName) IsZero() bool {
	return r == RoleName{}
}

func (r RoleName) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RoleName) UnmarshalText(text []byte) error {
	parsed, err := ParseRoleName(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Permission names an action a role may perform on bounties. Enforcement lives
// with the bounty lifecycle; the registry only carries them.
type Permission string

const (
	PermissionCreateBounty              Permission = "createBounty"
	PermissionUpdateBounty              Permission = "updateBounty"
	PermissionDeleteBounty              Permission = "deleteBounty"
	PermissionAssignBounty              Permission = "assignBounty"
	PermissionRequestChangeToSubmission Permission = "requestChangeToSubmission"
	PermissionAcceptSubmission          Permission = "acceptSubmission"
	PermissionRejectSubmission          Permission = "rejectSubmission"
)

var validPermissions = map[Permission]bool{
	PermissionCreateBounty:              true,
	PermissionUpdateBounty:              true,
	PermissionDeleteBounty:              true,
	PermissionAssignBounty:              true,
	PermissionRequestChangeToSubmission: true,
	PermissionAcceptSubmission:          true,
	PermissionRejectSubmission:          true,
}

func (p Permission) IsValid() bool {
	return validPermissions[p]
}

func (p *Permission) UnmarshalText(text []byte) error {
	candidate := Permission(text)
	if !candidate.IsValid() {
		return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown permission %q", string(text)))
	}
	*p = candidate
	return nil
}

// RoleSetting is one entry of a board's role catalog.
type RoleSetting struct {
	Name        RoleName     `json:"role_name" yaml:"role_name"`
	Default     bool         `json:"default" yaml:"default"`
	Permissions []Permission `json:"permissions,omitempty" yaml:"permissions,omitempty"`
}

// RoleCatalog is a board's ordered list of valid roles.
type RoleCatalog []RoleSetting

// Contains reports whether name equals some entry, comparing all 24 bytes.
func (c RoleCatalog) Contains(name RoleName) bool {
	for _, r := range c {
		if r.Name == name {
			return true
		}
	}
	return false
}

// Validate fails with CodeInvalidRole when name is not in the catalog.
func (c RoleCatalog) Validate(name RoleName) error {
	if !c.Contains(name) {
		return dErrors.New(dErrors.CodeInvalidRole, fmt.Sprintf("role %q is not configured for this bounty board", name.String()))
	}
	return nil
}

// DefaultRole resolves the role given to self-registered contributors: the
// first entry flagged Default, otherwise the first entry in catalog order.
//
// Errors: CodeNoDefaultRole when the catalog is empty.
func (c RoleCatalog) DefaultRole() (RoleName, error) {
	if len(c) == 0 {
		return RoleName{}, dErrors.New(dErrors.CodeNoDefaultRole, "bounty board has no roles configured")
	}
	for _, r := range c {
		if r.Default {
			return r.Name, nil
		}
	}
	return c[0].Name, nil
}

// Find returns the setting for name.
func (c RoleCatalog) Find(name RoleName) (RoleSetting, bool) {
	for _, r := range c {
		if r.Name == name {
			return r, true
		}
	}
	return RoleSetting{}, false
}
