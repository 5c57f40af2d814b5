package queries

import (
	"time"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page is 1-based offset pagination matching the public API contract.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps out-of-range values instead of rejecting them.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Limit() int32 {
	return int32(p.Size)
}

func (p Page) Offset() int32 {
	return int32((p.Number - 1) * p.Size)
}

// LeadView is the customer-facing read model; it always carries the
// customer's own data so nothing is masked.
type LeadView struct {
	ID               uuid.UUID  `json:"id"`
	VehicleType      string     `json:"vehicleType"`
	TyreType         string     `json:"tyreType"`
	TyreBrand        string     `json:"tyreBrand"`
	VehicleModel     string     `json:"vehicleModel"`
	LocationArea     string     `json:"locationArea"`
	LocationPincode  string     `json:"locationPincode"`
	Status           string     `json:"status"`
	SelectedDealerID *uuid.UUID `json:"selectedDealerId,omitempty"`
	OfferCount       int64      `json:"offerCount"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// DealerLeadView masks CustomerMobile unless the viewing dealer won the
// selection.
type DealerLeadView struct {
	ID              uuid.UUID `json:"id"`
	VehicleType     string    `json:"vehicleType"`
	TyreType        string    `json:"tyreType"`
	TyreBrand       string    `json:"tyreBrand"`
	VehicleModel    string    `json:"vehicleModel"`
	LocationArea    string    `json:"locationArea"`
	LocationPincode string    `json:"locationPincode"`
	Status          string    `json:"status"`
	LeadCost        int       `json:"leadCost"`
	CustomerMobile  *string   `json:"customerMobile,omitempty"`
	HasMyOffer      bool      `json:"hasMyOffer"`
	IsSelected      bool      `json:"isSelected"`
	CreatedAt       time.Time `json:"createdAt"`
}

type OfferView struct {
	ID           uuid.UUID `json:"id"`
	LeadID       uuid.UUID `json:"leadId"`
	DealerID     uuid.UUID `json:"dealerId"`
	DealerName   string    `json:"dealerName"`
	BusinessName *string   `json:"businessName,omitempty"`
	Price        int64     `json:"price"`
	Condition    string    `json:"condition"`
	Notes        string    `json:"notes"`
	Images       []string  `json:"images"`
	Selected     bool      `json:"selected"`
	CreatedAt    time.Time `json:"createdAt"`
}

type TransactionView struct {
	ID          uuid.UUID `json:"id"`
	Type        string    `json:"type"`
	Amount      int64     `json:"amount"`
	Reason      string    `json:"reason"`
	ReferenceID *string   `json:"referenceId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type WalletView struct {
	TotalCredits int64             `json:"totalCredits"`
	TotalEarned  int64             `json:"totalEarned"`
	TotalSpent   int64             `json:"totalSpent"`
	Transactions []TransactionView `json:"transactions"`
}

type PackageView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Credits      int64     `json:"credits"`
	BonusCredits int64     `json:"bonusCredits"`
	PriceAmount  int64     `json:"priceAmount"`
	Currency     string    `json:"currency"`
}

type DealerProfileView struct {
	BusinessName string  `json:"businessName"`
	OwnerName    string  `json:"ownerName"`
	Email        *string `json:"email,omitempty"`
	Mobile       string  `json:"mobile"`
	Address      string  `json:"address"`
}

type DashboardView struct {
	AvailableLeads int64 `json:"availableLeads"`
	MyOffers       int64 `json:"myOffers"`
	UnlockedLeads  int64 `json:"unlockedLeads"`
	WalletBalance  int64 `json:"walletBalance"`
}
