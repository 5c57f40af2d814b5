package lead

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"tyreplus-backend/internal/domain/identity"

	"github.com/google/uuid"
)

var (
	ErrMissingVehicleType     = errors.New("vehicle type is required")
	ErrMissingTyreType        = errors.New("tyre type is required")
	ErrMissingTyreBrand       = errors.New("tyre brand is required")
	ErrMissingLocationArea    = errors.New("location area is required")
	ErrInvalidPincode         = errors.New("location pincode must be exactly 6 digits")
	ErrInvalidStateTransition = errors.New("invalid lead state transition")
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// DefaultUnlockCost is the flat credit price a dealer pays to bid on a
// lead. Stored per lead so it can vary later without a schema change.
const DefaultUnlockCost = 100

type Spec struct {
	VehicleType     string
	TyreType        string
	TyreBrand       string
	VehicleModel    string
	LocationArea    string
	LocationPincode string
}

func (s Spec) validate() error {
	if strings.TrimSpace(s.VehicleType) == "" {
		return ErrMissingVehicleType
	}
	if strings.TrimSpace(s.TyreType) == "" {
		return ErrMissingTyreType
	}
	if strings.TrimSpace(s.TyreBrand) == "" {
		return ErrMissingTyreBrand
	}
	if strings.TrimSpace(s.LocationArea) == "" {
		return ErrMissingLocationArea
	}
	if !pincodePattern.MatchString(s.LocationPincode) {
		return ErrInvalidPincode
	}
	return nil
}

// Lead is a customer's posted tyre requirement. customerMobile stays
// hidden from dealers until this dealer wins the selection.
type Lead struct {
	id               uuid.UUID
	customerID       uuid.UUID
	customerMobile   identity.Mobile
	spec             Spec
	status           Status
	unlockCost       int
	selectedDealerID *uuid.UUID
	createdAt        time.Time
	verifiedAt       *time.Time
}

func New(customerID uuid.UUID, customerMobile identity.Mobile, spec Spec, now time.Time) (*Lead, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &Lead{
		id:             uuid.New(),
		customerID:     customerID,
		customerMobile: customerMobile,
		spec:           spec,
		status:         StatusNew,
		unlockCost:     DefaultUnlockCost,
		createdAt:      now,
	}, nil
}

func Reconstruct(
	id, customerID uuid.UUID,
	customerMobile identity.Mobile,
	spec Spec,
	status Status,
	unlockCost int,
	selectedDealerID *uuid.UUID,
	createdAt time.Time,
	verifiedAt *time.Time,
) *Lead {
	return &Lead{
		id:               id,
		customerID:       customerID,
		customerMobile:   customerMobile,
		spec:             spec,
		status:           status,
		unlockCost:       unlockCost,
		selectedDealerID: selectedDealerID,
		createdAt:        createdAt,
		verifiedAt:       verifiedAt,
	}
}

// Verify marks the lead discoverable by dealers. Leads created by an
// OTP-authenticated customer are verified immediately after creation;
// moderation paths route to REJECTED or DUPLICATE instead.
func (l *Lead) Verify(now time.Time) error {
	if l.status != StatusNew {
		return ErrInvalidStateTransition
	}
	l.status = StatusVerified
	l.verifiedAt = &now
	return nil
}

// TransitionTo applies an administrative status move, enforcing the
// transition table.
func (l *Lead) TransitionTo(next Status) error {
	if !l.status.CanTransitionTo(next) {
		return ErrInvalidStateTransition
	}
	l.status = next
	return nil
}

// MarkOfferReceived bumps VERIFIED to OFFER_RECEIVED; later offers are a
// no-op so the call is idempotent.
func (l *Lead) MarkOfferReceived() {
	if l.status == StatusVerified {
		l.status = StatusOfferReceived
	}
}

func (l *Lead) IsOpenForOffers() bool {
	return l.status.IsOpen()
}

func (l *Lead) IsOwnedBy(customerID uuid.UUID) bool {
	return l.customerID == customerID
}

func (l *Lead) IsSelectedDealer(dealerID uuid.UUID) bool {
	return l.selectedDealerID != nil && *l.selectedDealerID == dealerID
}

func (l *Lead) ID() uuid.UUID                   { return l.id }
func (l *Lead) CustomerID() uuid.UUID           { return l.customerID }
func (l *Lead) CustomerMobile() identity.Mobile { return l.customerMobile }
func (l *Lead) Spec() Spec                      { return l.spec }
func (l *Lead) Status() Status                  { return l.status }
func (l *Lead) UnlockCost() int                 { return l.unlockCost }
func (l *Lead) SelectedDealerID() *uuid.UUID    { return l.selectedDealerID }
func (l *Lead) CreatedAt() time.Time            { return l.createdAt }
func (l *Lead) VerifiedAt() *time.Time          { return l.verifiedAt }
