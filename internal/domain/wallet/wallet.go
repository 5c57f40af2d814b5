package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInvalidAmount       = errors.New("credit amount must be positive")
)

// Wallet holds a dealer's credit balance. Balances never go negative;
// the debit path loads the row FOR UPDATE so concurrent spends serialize.
type Wallet struct {
	id          uuid.UUID
	dealerID    uuid.UUID
	balance     int64
	totalEarned int64
	totalSpent  int64
	updatedAt   time.Time
}

func New(dealerID uuid.UUID, now time.Time) *Wallet {
	return &Wallet{
		id:        uuid.New(),
		dealerID:  dealerID,
		updatedAt: now,
	}
}

func Reconstruct(id, dealerID uuid.UUID, balance, totalEarned, totalSpent int64, updatedAt time.Time) *Wallet {
	return &Wallet{
		id:          id,
		dealerID:    dealerID,
		balance:     balance,
		totalEarned: totalEarned,
		totalSpent:  totalSpent,
		updatedAt:   updatedAt,
	}
}

func (w *Wallet) Credit(amount int64, now time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	w.balance += amount
	w.totalEarned += amount
	w.updatedAt = now
	return nil
}

func (w *Wallet) Debit(amount int64, now time.Time) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if w.balance < amount {
		return ErrInsufficientCredits
	}
	w.balance -= amount
	w.totalSpent += amount
	w.updatedAt = now
	return nil
}

func (w *Wallet) CanAfford(amount int64) bool {
	return w.balance >= amount
}

func (w *Wallet) ID() uuid.UUID        { return w.id }
func (w *Wallet) DealerID() uuid.UUID  { return w.dealerID }
func (w *Wallet) Balance() int64       { return w.balance }
func (w *Wallet) TotalEarned() int64   { return w.totalEarned }
func (w *Wallet) TotalSpent() int64    { return w.totalSpent }
func (w *Wallet) UpdatedAt() time.Time { return w.updatedAt }
