package wallet

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrOrderAlreadyPaid = errors.New("recharge order already paid")

type OrderStatus string

const (
	OrderCreated OrderStatus = "CREATED"
	OrderPaid    OrderStatus = "PAID"
	OrderFailed  OrderStatus = "FAILED"
)

// RechargeOrder tracks a payment-gateway order from initiation to
// verification. Credits land only after the gateway signature checks out,
// and at most once per order.
type RechargeOrder struct {
	id             uuid.UUID
	dealerID       uuid.UUID
	packageID      uuid.UUID
	gatewayOrderID string
	amount         int64
	currency       string
	status         OrderStatus
	paymentID      *string
	createdAt      time.Time
}

func NewRechargeOrder(dealerID, packageID uuid.UUID, gatewayOrderID string, amount int64, currency string, now time.Time) *RechargeOrder {
	return &RechargeOrder{
		id:             uuid.New(),
		dealerID:       dealerID,
		packageID:      packageID,
		gatewayOrderID: gatewayOrderID,
		amount:         amount,
		currency:       currency,
		status:         OrderCreated,
		createdAt:      now,
	}
}

func ReconstructRechargeOrder(
	id, dealerID, packageID uuid.UUID,
	gatewayOrderID string,
	amount int64,
	currency string,
	status OrderStatus,
	paymentID *string,
	createdAt time.Time,
) *RechargeOrder {
	return &RechargeOrder{
		id:             id,
		dealerID:       dealerID,
		packageID:      packageID,
		gatewayOrderID: gatewayOrderID,
		amount:         amount,
		currency:       currency,
		status:         status,
		paymentID:      paymentID,
		createdAt:      createdAt,
	}
}

func (o *RechargeOrder) IsPaid() bool {
	return o.status == OrderPaid
}

func (o *RechargeOrder) BelongsTo(dealerID uuid.UUID) bool {
	return o.dealerID == dealerID
}

func (o *RechargeOrder) ID() uuid.UUID          { return o.id }
func (o *RechargeOrder) DealerID() uuid.UUID    { return o.dealerID }
func (o *RechargeOrder) PackageID() uuid.UUID   { return o.packageID }
func (o *RechargeOrder) GatewayOrderID() string { return o.gatewayOrderID }
func (o *RechargeOrder) Amount() int64          { return o.amount }
func (o *RechargeOrder) Currency() string       { return o.currency }
func (o *RechargeOrder) Status() OrderStatus    { return o.status }
func (o *RechargeOrder) PaymentID() *string     { return o.paymentID }
func (o *RechargeOrder) CreatedAt() time.Time   { return o.createdAt }
