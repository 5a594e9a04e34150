package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, s := range []string{"admin", "agent", "customer"} {
		role, err := ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, role.String())
		assert.True(t, role.Valid())
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	// The role set is closed: nothing outside it may enter the system, not
	// even with plausible-looking values.
	for _, s := range []string{"", "superuser", "Admin", "ADMIN", "owner", " customer"} {
		_, err := ParseRole(s)
		assert.ErrorIs(t, err, ErrUnknownRole, "input %q", s)
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleAgent.Valid())
	assert.True(t, RoleCustomer.Valid())
	assert.False(t, Role("moderator").Valid())
	assert.False(t, Role("").Valid())
}
