//go:build unit

package lead_test

import (
	"testing"
	"time"

	"tyreplus-backend/internal/domain/identity"
	"tyreplus-backend/internal/domain/lead"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() lead.Spec {
	return lead.Spec{
		VehicleType:     "Car",
		TyreType:        "Tubeless",
		TyreBrand:       "MRF",
		VehicleModel:    "Swift",
		LocationArea:    "Koramangala",
		LocationPincode: "560034",
	}
}

func TestLead(t *testing.T) {
	now := time.Now()
	customerID := uuid.New()
	mobile := identity.Mobile("9876543210")

	t.Run("basic success case", func(t *testing.T) {
		l, err := lead.New(customerID, mobile, validSpec(), now)
		require.NoError(t, err)
		require.NotNil(t, l)

		assert.NotEqual(t, uuid.Nil, l.ID())
		assert.Equal(t, lead.StatusNew, l.Status())
		assert.Equal(t, lead.DefaultUnlockCost, l.UnlockCost())
		assert.Nil(t, l.SelectedDealerID())
		assert.Nil(t, l.VerifiedAt())
		assert.True(t, l.IsOwnedBy(customerID))
	})

	t.Run("spec validation", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*lead.Spec)
			errIs  error
		}{
			{name: "missing vehicle type", mutate: func(s *lead.Spec) { s.VehicleType = " " }, errIs: lead.ErrMissingVehicleType},
			{name: "missing tyre type", mutate: func(s *lead.Spec) { s.TyreType = "" }, errIs: lead.ErrMissingTyreType},
			{name: "missing tyre brand", mutate: func(s *lead.Spec) { s.TyreBrand = "" }, errIs: lead.ErrMissingTyreBrand},
			{name: "missing location area", mutate: func(s *lead.Spec) { s.LocationArea = "" }, errIs: lead.ErrMissingLocationArea},
			{name: "pincode too short", mutate: func(s *lead.Spec) { s.LocationPincode = "56003" }, errIs: lead.ErrInvalidPincode},
			{name: "pincode too long", mutate: func(s *lead.Spec) { s.LocationPincode = "5600345" }, errIs: lead.ErrInvalidPincode},
			{name: "pincode non-numeric", mutate: func(s *lead.Spec) { s.LocationPincode = "56003a" }, errIs: lead.ErrInvalidPincode},
			{name: "vehicle model is optional", mutate: func(s *lead.Spec) { s.VehicleModel = "" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				spec := validSpec()
				tt.mutate(&spec)
				_, err := lead.New(customerID, mobile, spec, now)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("verify", func(t *testing.T) {
		l, err := lead.New(customerID, mobile, validSpec(), now)
		require.NoError(t, err)

		require.NoError(t, l.Verify(now))
		assert.Equal(t, lead.StatusVerified, l.Status())
		require.NotNil(t, l.VerifiedAt())
		assert.Equal(t, now, *l.VerifiedAt())

		assert.ErrorIs(t, l.Verify(now), lead.ErrInvalidStateTransition)
	})

	t.Run("mark offer received is idempotent", func(t *testing.T) {
		l, err := lead.New(customerID, mobile, validSpec(), now)
		require.NoError(t, err)
		require.NoError(t, l.Verify(now))

		l.MarkOfferReceived()
		assert.Equal(t, lead.StatusOfferReceived, l.Status())

		l.MarkOfferReceived()
		assert.Equal(t, lead.StatusOfferReceived, l.Status())
	})

	t.Run("selected dealer check", func(t *testing.T) {
		dealerID := uuid.New()
		l := lead.Reconstruct(uuid.New(), customerID, mobile, validSpec(),
			lead.StatusDealerSelected, lead.DefaultUnlockCost, &dealerID, now, &now)

		assert.True(t, l.IsSelectedDealer(dealerID))
		assert.False(t, l.IsSelectedDealer(uuid.New()))

		unselected := lead.Reconstruct(uuid.New(), customerID, mobile, validSpec(),
			lead.StatusVerified, lead.DefaultUnlockCost, nil, now, &now)
		assert.False(t, unselected.IsSelectedDealer(dealerID))
	})
}

func TestStatusTransitions(t *testing.T) {
	t.Run("allowed transitions", func(t *testing.T) {
		tests := []struct {
			from lead.Status
			to   lead.Status
		}{
			{lead.StatusNew, lead.StatusVerified},
			{lead.StatusNew, lead.StatusRejected},
			{lead.StatusNew, lead.StatusDuplicate},
			{lead.StatusVerified, lead.StatusOfferReceived},
			{lead.StatusVerified, lead.StatusFollowUp},
			{lead.StatusOfferReceived, lead.StatusDealerSelected},
			{lead.StatusDealerSelected, lead.StatusConverted},
			{lead.StatusDealerSelected, lead.StatusClosed},
			{lead.StatusDealerSelected, lead.StatusFollowUp},
			{lead.StatusFollowUp, lead.StatusConverted},
			{lead.StatusFollowUp, lead.StatusDealerSelected},
		}
		for _, tt := range tests {
			assert.True(t, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
		}
	})

	t.Run("rejected transitions", func(t *testing.T) {
		tests := []struct {
			from lead.Status
			to   lead.Status
		}{
			{lead.StatusNew, lead.StatusOfferReceived},
			{lead.StatusNew, lead.StatusDealerSelected},
			{lead.StatusVerified, lead.StatusConverted},
			{lead.StatusOfferReceived, lead.StatusVerified},
			{lead.StatusConverted, lead.StatusClosed},
			{lead.StatusRejected, lead.StatusVerified},
			{lead.StatusClosed, lead.StatusFollowUp},
			{lead.StatusDuplicate, lead.StatusVerified},
		}
		for _, tt := range tests {
			assert.False(t, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
		}
	})

	t.Run("terminal statuses accept nothing", func(t *testing.T) {
		all := []lead.Status{
			lead.StatusNew, lead.StatusVerified, lead.StatusOfferReceived,
			lead.StatusDealerSelected, lead.StatusConverted, lead.StatusRejected,
			lead.StatusDuplicate, lead.StatusClosed, lead.StatusFollowUp,
		}
		for _, terminal := range []lead.Status{lead.StatusConverted, lead.StatusRejected, lead.StatusDuplicate, lead.StatusClosed} {
			assert.True(t, terminal.IsTerminal())
			for _, next := range all {
				assert.False(t, terminal.CanTransitionTo(next), "%s -> %s", terminal, next)
			}
		}
	})

	t.Run("open statuses", func(t *testing.T) {
		assert.True(t, lead.StatusVerified.IsOpen())
		assert.True(t, lead.StatusOfferReceived.IsOpen())
		assert.False(t, lead.StatusNew.IsOpen())
		assert.False(t, lead.StatusDealerSelected.IsOpen())
		assert.False(t, lead.StatusClosed.IsOpen())
	})

	t.Run("status parsing", func(t *testing.T) {
		s, err := lead.NewStatus("FOLLOW_UP")
		require.NoError(t, err)
		assert.Equal(t, lead.StatusFollowUp, s)

		_, err = lead.NewStatus("verified")
		assert.ErrorIs(t, err, lead.ErrInvalidStatus)

		_, err = lead.NewStatus("")
		assert.ErrorIs(t, err, lead.ErrInvalidStatus)
	})
}
