package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingBusinessName = errors.New("business name is required")
	ErrMissingOwnerName    = errors.New("owner name is required")
)

// DealerProfile carries the business details collected at registration.
// Quick-login guest dealers have none until they complete their profile.
type DealerProfile struct {
	id           uuid.UUID
	identityID   uuid.UUID
	businessName string
	ownerName    string
	address      string
	updatedAt    time.Time
}

func NewDealerProfile(identityID uuid.UUID, businessName, ownerName, address string, now time.Time) (*DealerProfile, error) {
	if strings.TrimSpace(businessName) == "" {
		return nil, ErrMissingBusinessName
	}
	if strings.TrimSpace(ownerName) == "" {
		return nil, ErrMissingOwnerName
	}
	return &DealerProfile{
		id:           uuid.New(),
		identityID:   identityID,
		businessName: businessName,
		ownerName:    ownerName,
		address:      address,
		updatedAt:    now,
	}, nil
}

func ReconstructDealerProfile(id, identityID uuid.UUID, businessName, ownerName, address string, updatedAt time.Time) *DealerProfile {
	return &DealerProfile{
		id:           id,
		identityID:   identityID,
		businessName: businessName,
		ownerName:    ownerName,
		address:      address,
		updatedAt:    updatedAt,
	}
}

func (p *DealerProfile) Update(businessName, ownerName, address string, now time.Time) error {
	if strings.TrimSpace(businessName) == "" {
		return ErrMissingBusinessName
	}
	if strings.TrimSpace(ownerName) == "" {
		return ErrMissingOwnerName
	}
	p.businessName = businessName
	p.ownerName = ownerName
	p.address = address
	p.updatedAt = now
	return nil
}

func (p *DealerProfile) ID() uuid.UUID         { return p.id }
func (p *DealerProfile) IdentityID() uuid.UUID { return p.identityID }
func (p *DealerProfile) BusinessName() string  { return p.businessName }
func (p *DealerProfile) OwnerName() string     { return p.ownerName }
func (p *DealerProfile) Address() string       { return p.address }
func (p *DealerProfile) UpdatedAt() time.Time  { return p.updatedAt }
