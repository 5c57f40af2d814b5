//go:build unit

package commands_test

import (
	"context"
	"testing"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealerCommands_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	now := fixedNow()

	validInput := commands.UpdateProfileInput{
		BusinessName: "Sharma Tyres",
		OwnerName:    "Ravi Sharma",
		Address:      "12 MG Road, Bengaluru",
	}

	t.Run("upserts the profile and syncs the contact", func(t *testing.T) {
		u := newFakeUoW()
		dealer := identity.NewGuest(mustMobile(t, "9876543210"), identity.RoleDealer, now)
		require.NoError(t, u.tx.identities.Create(ctx, dealer))
		svc := commands.NewDealerCommands(u, clock.NewMockClock(now))

		email := "ravi@sharmatyres.in"
		input := validInput
		input.Email = &email
		require.NoError(t, svc.UpdateProfile(ctx, dealer.ID(), input))

		profile, err := u.tx.dealerProfiles.FindByIdentityID(ctx, dealer.ID())
		require.NoError(t, err)
		assert.Equal(t, "Sharma Tyres", profile.BusinessName())
		assert.Equal(t, "Ravi Sharma", profile.OwnerName())

		ident, err := u.tx.identities.FindByID(ctx, dealer.ID())
		require.NoError(t, err)
		assert.Equal(t, "Ravi Sharma", ident.Name())
		require.NotNil(t, ident.Email())
		assert.Equal(t, email, *ident.Email())
	})

	t.Run("omitted email keeps the stored one", func(t *testing.T) {
		u := newFakeUoW()
		dealer := identity.NewGuest(mustMobile(t, "9876543210"), identity.RoleDealer, now)
		require.NoError(t, u.tx.identities.Create(ctx, dealer))
		existing := "old@sharmatyres.in"
		require.NoError(t, u.tx.identities.UpdateContact(ctx, dealer.ID(), dealer.Name(), &existing))
		svc := commands.NewDealerCommands(u, clock.NewMockClock(now))

		require.NoError(t, svc.UpdateProfile(ctx, dealer.ID(), validInput))

		ident, err := u.tx.identities.FindByID(ctx, dealer.ID())
		require.NoError(t, err)
		require.NotNil(t, ident.Email())
		assert.Equal(t, existing, *ident.Email())
	})

	t.Run("blank business name", func(t *testing.T) {
		u := newFakeUoW()
		dealer := identity.NewGuest(mustMobile(t, "9876543210"), identity.RoleDealer, now)
		require.NoError(t, u.tx.identities.Create(ctx, dealer))
		svc := commands.NewDealerCommands(u, clock.NewMockClock(now))

		input := validInput
		input.BusinessName = "  "
		err := svc.UpdateProfile(ctx, dealer.ID(), input)
		require.ErrorIs(t, err, commands.ErrProfileValidation)
	})

	t.Run("unknown dealer", func(t *testing.T) {
		u := newFakeUoW()
		svc := commands.NewDealerCommands(u, clock.NewMockClock(now))

		err := svc.UpdateProfile(ctx, uuid.New(), validInput)
		require.ErrorIs(t, err, commands.ErrIdentityNotFound)
	})
}
