package bootstrap

import (
	"tyreplus-backend/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	PlatformModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
