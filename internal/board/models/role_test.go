package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bountyboard/pkg/domain"
	dErrors "bountyboard/pkg/domain-errors"
)

func TestParseRoleName(t *testing.T) {
	t.Run("accepts names up to capacity", func(t *testing.T) {
		name := strings.Repeat("a", RoleNameCapacity)
		r, err := ParseRoleName(name)
		require.NoError(t, err)
		assert.Equal(t, name, r.String())
	})

	t.Run("pads short names with zero bytes", func(t *testing.T) {
		r := MustRoleName("Core")
		assert.Equal(t, "Core", r.String())
		assert.Equal(t, byte(0), r[4])
	})

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"overflow", strings.Repeat("a", RoleNameCapacity+1)},
		{"embedded NUL", "ad\x00min"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := ParseRoleName(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}

	t.Run("names sharing a 24-byte prefix stay distinct", func(t *testing.T) {
		prefix := strings.Repeat("x", RoleNameCapacity)
		_, err := ParseRoleName(prefix + "1")
		require.Error(t, err, "overflow must not truncate onto the prefix")
	})

	t.Run("json round-trips the trimmed form", func(t *testing.T) {
		raw, err := json.Marshal(MustRoleName("member"))
		require.NoError(t, err)
		assert.Equal(t, `"member"`, string(raw))

		var r RoleName
		require.NoError(t, json.Unmarshal(raw, &r))
		assert.Equal(t, MustRoleName("member"), r)
	})
}

func TestRoleCatalog(t *testing.T) {
	catalog := RoleCatalog{
		{Name: MustRoleName("member")},
		{Name: MustRoleName("admin"), Permissions: []Permission{PermissionCreateBounty}},
	}

	t.Run("validates every configured role", func(t *testing.T) {
		for _, r := range catalog {
			assert.NoError(t, catalog.Validate(r.Name))
		}
	})

	t.Run("rejects unknown roles with invalid role", func(t *testing.T) {
		err := catalog.Validate(MustRoleName("owner"))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidRole))
	})

	t.Run("comparison is exact", func(t *testing.T) {
		assert.False(t, catalog.Contains(MustRoleName("Member")))
		assert.False(t, catalog.Contains(MustRoleName("member ")))
	})

	t.Run("default falls back to the first entry", func(t *testing.T) {
		r, err := catalog.DefaultRole()
		require.NoError(t, err)
		assert.Equal(t, "member", r.String())
	})

	t.Run("an explicitly flagged default wins", func(t *testing.T) {
		flagged := RoleCatalog{
			{Name: MustRoleName("admin")},
			{Name: MustRoleName("newcomer"), Default: true},
		}
		r, err := flagged.DefaultRole()
		require.NoError(t, err)
		assert.Equal(t, "newcomer", r.String())
	})

	t.Run("empty catalog has no default", func(t *testing.T) {
		_, err := RoleCatalog{}.DefaultRole()
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNoDefaultRole))
	})

	t.Run("find returns permissions", func(t *testing.T) {
		setting, ok := catalog.Find(MustRoleName("admin"))
		require.True(t, ok)
		assert.Equal(t, []Permission{PermissionCreateBounty}, setting.Permissions)
	})
}

func TestBountyBoard_Check(t *testing.T) {
	valid := BountyBoard{
		Address: domain.Address{1},
		Realm:   domain.Address{2},
		Config:  BoardConfig{Roles: RoleCatalog{{Name: MustRoleName("member")}}},
	}
	assert.NoError(t, valid.Check())
	assert.False(t, valid.HasAuthority())

	dup := valid
	dup.Config.Roles = RoleCatalog{{Name: MustRoleName("member")}, {Name: MustRoleName("member")}}
	assert.True(t, dErrors.HasCode(dup.Check(), dErrors.CodeInvariantViolation))

	noRealm := valid
	noRealm.Realm = domain.Address{}
	assert.Error(t, noRealm.Check())
}

func TestPermission_UnmarshalText(t *testing.T) {
	var p Permission
	require.NoError(t, p.UnmarshalText([]byte("assignBounty")))
	assert.Equal(t, PermissionAssignBounty, p)
	assert.Error(t, p.UnmarshalText([]byte("launchRocket")))
}
