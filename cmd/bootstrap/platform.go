package bootstrap

import (
	"tyreplus-backend/internal/pkg/config"
	"tyreplus-backend/internal/platform/payment"
	"tyreplus-backend/internal/platform/sms"

	"go.uber.org/fx"
)

var PlatformModule = fx.Module("platform",
	fx.Provide(
		NewSmsSender,
		NewPaymentGateway,
	),
)

// NewSmsSender picks the no-op sender in dev mode, where the OTP code is
// echoed in the API response instead of delivered.
func NewSmsSender(cfg config.Config) (sms.Sender, error) {
	if cfg.Otp.DevMode {
		return sms.NewNoopSender(), nil
	}
	return sms.NewTwilioSender(cfg.Sms)
}

func NewPaymentGateway(cfg config.Config) (payment.Gateway, error) {
	if cfg.Payment.DevMode {
		return payment.NewDevGateway(), nil
	}
	return payment.NewRazorpayGateway(cfg.Payment)
}
