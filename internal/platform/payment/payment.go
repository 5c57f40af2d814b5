package payment

import "context"

// Order is a gateway-side payment order awaiting checkout.
type Order struct {
	GatewayOrderID string
	Amount         int64
	Currency       string
	KeyID          string
}

// Gateway creates payment orders and verifies completion signatures.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	// VerifySignature checks the checkout callback signature over
	// "<orderID>|<paymentID>".
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}
