package offer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPrice  = errors.New("offer price must be positive")
	ErrTooManyImages = errors.New("too many offer images")
)

const MaxImages = 5

// Offer is a dealer's bid on a lead. One offer per (lead, dealer) pair;
// the database enforces the uniqueness, the usecase maps the violation.
type Offer struct {
	id        uuid.UUID
	leadID    uuid.UUID
	dealerID  uuid.UUID
	price     int64
	condition string
	notes     string
	images    []string
	createdAt time.Time
}

func New(leadID, dealerID uuid.UUID, price int64, condition, notes string, images []string, now time.Time) (*Offer, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}
	return &Offer{
		id:        uuid.New(),
		leadID:    leadID,
		dealerID:  dealerID,
		price:     price,
		condition: condition,
		notes:     notes,
		images:    images,
		createdAt: now,
	}, nil
}

func Reconstruct(
	id, leadID, dealerID uuid.UUID,
	price int64,
	condition, notes string,
	images []string,
	createdAt time.Time,
) *Offer {
	return &Offer{
		id:        id,
		leadID:    leadID,
		dealerID:  dealerID,
		price:     price,
		condition: condition,
		notes:     notes,
		images:    images,
		createdAt: createdAt,
	}
}

func (o *Offer) ID() uuid.UUID        { return o.id }
func (o *Offer) LeadID() uuid.UUID    { return o.leadID }
func (o *Offer) DealerID() uuid.UUID  { return o.dealerID }
func (o *Offer) Price() int64         { return o.price }
func (o *Offer) Condition() string    { return o.condition }
func (o *Offer) Notes() string        { return o.notes }
func (o *Offer) Images() []string     { return o.images }
func (o *Offer) CreatedAt() time.Time { return o.createdAt }
