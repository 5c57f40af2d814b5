package wallet

import (
	"time"

	"github.com/google/uuid"
)

// CreditPackage is a purchasable credit bundle. Price is in the smallest
// currency unit (paise); credits plus bonus land in the wallet on a
// verified payment.
type CreditPackage struct {
	id           uuid.UUID
	name         string
	credits      int64
	bonusCredits int64
	priceAmount  int64
	currency     string
	active       bool
	createdAt    time.Time
}

func ReconstructPackage(
	id uuid.UUID,
	name string,
	credits, bonusCredits, priceAmount int64,
	currency string,
	active bool,
	createdAt time.Time,
) *CreditPackage {
	return &CreditPackage{
		id:           id,
		name:         name,
		credits:      credits,
		bonusCredits: bonusCredits,
		priceAmount:  priceAmount,
		currency:     currency,
		active:       active,
		createdAt:    createdAt,
	}
}

// TotalCredits is what actually lands in the wallet on purchase.
func (p *CreditPackage) TotalCredits() int64 {
	return p.credits + p.bonusCredits
}

func (p *CreditPackage) ID() uuid.UUID        { return p.id }
func (p *CreditPackage) Name() string         { return p.name }
func (p *CreditPackage) Credits() int64       { return p.credits }
func (p *CreditPackage) BonusCredits() int64  { return p.bonusCredits }
func (p *CreditPackage) PriceAmount() int64   { return p.priceAmount }
func (p *CreditPackage) Currency() string     { return p.currency }
func (p *CreditPackage) Active() bool         { return p.active }
func (p *CreditPackage) CreatedAt() time.Time { return p.createdAt }
