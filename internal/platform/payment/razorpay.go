package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"tyreplus-backend/internal/pkg/config"
	"tyreplus-backend/internal/pkg/errs"

	razorpay "github.com/razorpay/razorpay-go"
)

type RazorpayGateway struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayGateway(cfg config.PaymentConfig) (*RazorpayGateway, error) {
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, errs.New("missing razorpay credentials")
	}
	return &RazorpayGateway{
		client:    razorpay.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
		keyID:     cfg.RazorpayKeyID,
		keySecret: cfg.RazorpayKeySecret,
	}, nil
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to create razorpay order")
	}

	orderID, ok := body["id"].(string)
	if !ok {
		return nil, errs.New("razorpay order response missing id")
	}

	return &Order{
		GatewayOrderID: orderID,
		Amount:         amount,
		Currency:       currency,
		KeyID:          g.keyID,
	}, nil
}

func (g *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
