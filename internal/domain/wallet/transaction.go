package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidReason = errors.New("invalid transaction reason")

type TxType string

const (
	TxCredit TxType = "CREDIT"
	TxDebit  TxType = "DEBIT"
)

// Reason tags each ledger entry with why credits moved.
type Reason string

const (
	ReasonPackagePurchase Reason = "PACKAGE_PURCHASE"
	ReasonPromoBonus      Reason = "PROMO_BONUS"
	ReasonTestRecharge    Reason = "TEST_RECHARGE"
	ReasonLeadUnlock      Reason = "LEAD_UNLOCK"
)

func NewReason(s string) (Reason, error) {
	switch Reason(s) {
	case ReasonPackagePurchase, ReasonPromoBonus, ReasonTestRecharge, ReasonLeadUnlock:
		return Reason(s), nil
	default:
		return "", ErrInvalidReason
	}
}

// Transaction is an append-only ledger entry. referenceID points at the
// lead for LEAD_UNLOCK debits and at the payment order for purchases.
type Transaction struct {
	id          uuid.UUID
	walletID    uuid.UUID
	txType      TxType
	amount      int64
	reason      Reason
	referenceID *string
	createdAt   time.Time
}

func NewTransaction(walletID uuid.UUID, txType TxType, amount int64, reason Reason, referenceID *string, now time.Time) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Transaction{
		id:          uuid.New(),
		walletID:    walletID,
		txType:      txType,
		amount:      amount,
		reason:      reason,
		referenceID: referenceID,
		createdAt:   now,
	}, nil
}

func ReconstructTransaction(
	id, walletID uuid.UUID,
	txType TxType,
	amount int64,
	reason Reason,
	referenceID *string,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:          id,
		walletID:    walletID,
		txType:      txType,
		amount:      amount,
		reason:      reason,
		referenceID: referenceID,
		createdAt:   createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID        { return t.id }
func (t *Transaction) WalletID() uuid.UUID  { return t.walletID }
func (t *Transaction) Type() TxType         { return t.txType }
func (t *Transaction) Amount() int64        { return t.amount }
func (t *Transaction) Reason() Reason       { return t.reason }
func (t *Transaction) ReferenceID() *string { return t.referenceID }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
