package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAdmin(t *testing.T) {
	admin := UserIdentity{ID: "1", Role: RoleAdmin}
	user := UserIdentity{ID: "2", Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, IsValidRole(RoleUser))
	assert.True(t, IsValidRole(RoleAdmin))
	assert.False(t, IsValidRole("seller"))
	assert.False(t, IsValidRole(""))
}

func TestSeededUsers(t *testing.T) {
	users := SeededUsers()
	require.Len(t, users, 2)

	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, RoleAdmin, users[0].Role)
	assert.Equal(t, "user@example.com", users[1].Email)
	assert.Equal(t, RoleUser, users[1].Role)
}
