//go:build unit

package commands_test

import (
	"context"
	"testing"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/lead"
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadCommands_Create(t *testing.T) {
	ctx := context.Background()
	now := fixedNow()

	validInput := commands.CreateLeadInput{
		VehicleType:     "Car",
		TyreType:        "Tubeless",
		TyreBrand:       "MRF",
		VehicleModel:    "Swift",
		LocationArea:    "Koramangala",
		LocationPincode: "560034",
	}

	t.Run("persists a verified lead with the customer's mobile", func(t *testing.T) {
		u := newFakeUoW()
		customer := identity.NewGuest(mustMobile(t, "9876543210"), identity.RoleCustomer, now)
		require.NoError(t, u.tx.identities.Create(ctx, customer))
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		leadID, err := svc.Create(ctx, customer.ID(), validInput)
		require.NoError(t, err)

		got := u.tx.leads.byID[leadID]
		require.NotNil(t, got)
		assert.Equal(t, lead.StatusVerified, got.Status())
		assert.Equal(t, customer.Mobile(), got.CustomerMobile())
		assert.Equal(t, lead.DefaultUnlockCost, got.UnlockCost())
		require.NotNil(t, got.VerifiedAt())
	})

	t.Run("invalid pincode", func(t *testing.T) {
		u := newFakeUoW()
		customer := identity.NewGuest(mustMobile(t, "9876543210"), identity.RoleCustomer, now)
		require.NoError(t, u.tx.identities.Create(ctx, customer))
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		bad := validInput
		bad.LocationPincode = "5600"
		_, err := svc.Create(ctx, customer.ID(), bad)
		require.ErrorIs(t, err, commands.ErrLeadValidation)
		assert.Empty(t, u.tx.leads.byID)
	})

	t.Run("unknown customer", func(t *testing.T) {
		u := newFakeUoW()
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		_, err := svc.Create(ctx, uuid.New(), validInput)
		require.ErrorIs(t, err, commands.ErrIdentityNotFound)
	})
}

func TestLeadCommands_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := fixedNow()
	customerID := uuid.New()
	dealerID := uuid.New()

	seedSelectedLead := func(t *testing.T, u *fakeUoW) *lead.Lead {
		t.Helper()
		l := seedVerifiedLead(t, u, customerID, now)
		selected := lead.Reconstruct(l.ID(), l.CustomerID(), l.CustomerMobile(), l.Spec(),
			lead.StatusDealerSelected, l.UnlockCost(), &dealerID, l.CreatedAt(), l.VerifiedAt())
		u.tx.leads.byID[l.ID()] = selected
		return selected
	}

	t.Run("selected dealer moves the lead forward", func(t *testing.T) {
		for _, next := range []string{"FOLLOW_UP", "CONVERTED", "CLOSED"} {
			t.Run(next, func(t *testing.T) {
				u := newFakeUoW()
				l := seedSelectedLead(t, u)
				svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

				require.NoError(t, svc.UpdateStatus(ctx, dealerID, l.ID(), next))
				assert.Equal(t, lead.Status(next), u.tx.leads.byID[l.ID()].Status())
			})
		}
	})

	t.Run("only the selected dealer may update", func(t *testing.T) {
		u := newFakeUoW()
		l := seedSelectedLead(t, u)
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		err := svc.UpdateStatus(ctx, uuid.New(), l.ID(), "CONVERTED")
		require.ErrorIs(t, err, commands.ErrNotSelectedDealer)
	})

	t.Run("unknown status string", func(t *testing.T) {
		u := newFakeUoW()
		l := seedSelectedLead(t, u)
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		err := svc.UpdateStatus(ctx, dealerID, l.ID(), "SHIPPED")
		require.ErrorIs(t, err, commands.ErrInvalidStatus)
	})

	t.Run("illegal transition", func(t *testing.T) {
		u := newFakeUoW()
		l := seedSelectedLead(t, u)
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		err := svc.UpdateStatus(ctx, dealerID, l.ID(), "VERIFIED")
		require.ErrorIs(t, err, commands.ErrInvalidStateTransition)
		assert.Equal(t, lead.StatusDealerSelected, u.tx.leads.byID[l.ID()].Status())
	})

	t.Run("unknown lead", func(t *testing.T) {
		u := newFakeUoW()
		svc := commands.NewLeadCommands(u, clock.NewMockClock(now))

		err := svc.UpdateStatus(ctx, dealerID, uuid.New(), "CONVERTED")
		require.ErrorIs(t, err, commands.ErrLeadNotFound)
	})
}
