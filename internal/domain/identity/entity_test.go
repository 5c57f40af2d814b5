//go:build unit

package identity_test

import (
	"testing"
	"time"

	"tyreplus-backend/internal/domain/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMobile(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{name: "valid 10 digits", input: "9876543210"},
		{name: "too short", input: "987654321", errIs: identity.ErrInvalidMobile},
		{name: "too long", input: "98765432101", errIs: identity.ErrInvalidMobile},
		{name: "with country code", input: "+919876543210", errIs: identity.ErrInvalidMobile},
		{name: "letters", input: "98765abcde", errIs: identity.ErrInvalidMobile},
		{name: "empty", input: "", errIs: identity.ErrInvalidMobile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := identity.NewMobile(tt.input)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, m.String())
		})
	}
}

func TestIdentity(t *testing.T) {
	now := time.Now()
	mobile := identity.Mobile("9876543210")

	t.Run("guest customer", func(t *testing.T) {
		g := identity.NewGuest(mobile, identity.RoleCustomer, now)
		assert.Equal(t, "Guest Customer", g.Name())
		assert.Equal(t, identity.RoleCustomer, g.Role())
		assert.Nil(t, g.Email())
		assert.Nil(t, g.PasswordHash())
		require.NotNil(t, g.VerifiedAt())
	})

	t.Run("guest dealer", func(t *testing.T) {
		g := identity.NewGuest(mobile, identity.RoleDealer, now)
		assert.Equal(t, "Guest Dealer", g.Name())
		assert.Equal(t, identity.RoleDealer, g.Role())
	})

	t.Run("registered dealer requires valid email", func(t *testing.T) {
		d, err := identity.NewDealer(mobile, "Ravi Kumar", "ravi@tyres.example", "hash", now)
		require.NoError(t, err)
		require.NotNil(t, d.Email())
		assert.Equal(t, "ravi@tyres.example", *d.Email())

		_, err = identity.NewDealer(mobile, "Ravi Kumar", "not-an-email", "hash", now)
		assert.ErrorIs(t, err, identity.ErrInvalidEmail)
	})
}

func TestRole(t *testing.T) {
	r, err := identity.NewRole("dealer")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleDealer, r)

	_, err = identity.NewRole("admin")
	assert.ErrorIs(t, err, identity.ErrInvalidRole)

	// Roles are stored verbatim and the identities.role CHECK constraint
	// lists these exact strings; the serialized form must stay lowercase.
	assert.Equal(t, "customer", identity.RoleCustomer.String())
	assert.Equal(t, "dealer", identity.RoleDealer.String())

	_, err = identity.NewRole("DEALER")
	assert.ErrorIs(t, err, identity.ErrInvalidRole)
}
