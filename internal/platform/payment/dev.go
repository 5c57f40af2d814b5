package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DevGateway issues fake orders and accepts any signature. Wired only
// when the payment dev flag is set at boot.
type DevGateway struct{}

func NewDevGateway() *DevGateway {
	return &DevGateway{}
}

func (*DevGateway) CreateOrder(_ context.Context, amount int64, currency, _ string) (*Order, error) {
	return &Order{
		GatewayOrderID: fmt.Sprintf("order_dev_%s", uuid.NewString()),
		Amount:         amount,
		Currency:       currency,
		KeyID:          "rzp_test_dev",
	}, nil
}

func (*DevGateway) VerifySignature(string, string, string) bool {
	return true
}
