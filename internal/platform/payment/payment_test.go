//go:build unit

package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"tyreplus-backend/internal/pkg/config"
	"tyreplus-backend/internal/platform/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevGateway(t *testing.T) {
	g := payment.NewDevGateway()

	order, err := g.CreateOrder(context.Background(), 50000, "INR", "receipt-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.GatewayOrderID, "order_dev_"))
	assert.EqualValues(t, 50000, order.Amount)
	assert.Equal(t, "INR", order.Currency)

	assert.True(t, g.VerifySignature("any", "thing", "goes"))
}

func TestRazorpaySignature(t *testing.T) {
	secret := "test-key-secret"
	g, err := payment.NewRazorpayGateway(config.PaymentConfig{
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: secret,
	})
	require.NoError(t, err)

	orderID := "order_abc123"
	paymentID := "pay_xyz789"

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	valid := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, g.VerifySignature(orderID, paymentID, valid))
	assert.False(t, g.VerifySignature(orderID, paymentID, "tampered"))
	assert.False(t, g.VerifySignature(orderID, "pay_other", valid))
}

func TestRazorpayRequiresCredentials(t *testing.T) {
	_, err := payment.NewRazorpayGateway(config.PaymentConfig{})
	assert.Error(t, err)
}
