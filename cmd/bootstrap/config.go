package bootstrap

import (
	"tyreplus-backend/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.JWTConfig { return cfg.JWT },
		func(cfg config.Config) config.OtpConfig { return cfg.Otp },
		func(cfg config.Config) config.SmsConfig { return cfg.Sms },
		func(cfg config.Config) config.PaymentConfig { return cfg.Payment },
	),
)
