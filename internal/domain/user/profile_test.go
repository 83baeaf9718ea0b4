package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldops/internal/shared/authorization"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("dana@fieldops.example", "Dana Fuchs", authorization.RoleFieldEngineer)
	require.NoError(t, err)
	assert.Equal(t, "dana@fieldops.example", p.Email())
	assert.Equal(t, authorization.RoleFieldEngineer, p.Role())
	assert.True(t, p.IsActive())
	assert.True(t, p.CanBeAssigned())
}

func TestNewProfile_Invalid(t *testing.T) {
	_, err := NewProfile("", "Dana", authorization.RoleAdmin)
	require.Error(t, err)

	_, err = NewProfile("a@b.c", "", authorization.RoleAdmin)
	require.Error(t, err)

	_, err = NewProfile("a@b.c", "Dana", authorization.UserRole("manager"))
	require.Error(t, err)
}

func TestProfileChangeRoleAndDeactivate(t *testing.T) {
	p, err := NewProfile("dana@fieldops.example", "Dana Fuchs", authorization.RoleFieldEngineer)
	require.NoError(t, err)

	require.NoError(t, p.ChangeRole(authorization.RoleSupervisor))
	assert.Equal(t, authorization.RoleSupervisor, p.Role())
	assert.Error(t, p.ChangeRole(authorization.UserRole("boss")))

	p.Deactivate()
	assert.False(t, p.IsActive())
	assert.False(t, p.CanBeAssigned())
}

func TestReconstructProfile(t *testing.T) {
	now := time.Now().UTC()
	p, err := ReconstructProfile(ProfileAttributes{
		ID:        3,
		Email:     "miguel@fieldops.example",
		Name:      "Miguel Ortiz",
		Role:      authorization.RoleAdmin,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(3), p.ID())

	_, err = ReconstructProfile(ProfileAttributes{ID: 0, Role: authorization.RoleAdmin})
	require.Error(t, err)
}

func TestProfileSetIDOnce(t *testing.T) {
	p, err := NewProfile("a@b.c", "A", authorization.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, p.SetID(4))
	assert.Error(t, p.SetID(5))
}
