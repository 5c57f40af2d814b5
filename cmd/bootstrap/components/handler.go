package components

import (
	"tyreplus-backend/internal/handler"
	"tyreplus-backend/internal/handler/api"
	"tyreplus-backend/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewLeadHandler,
		api.NewDealerHandler,
		api.NewWalletHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
