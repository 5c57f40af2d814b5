package components

import (
	"tyreplus-backend/internal/pkg/clock"
	"tyreplus-backend/internal/usecase/commands"
	"tyreplus-backend/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewLeadCommands,
		commands.NewOfferCommands,
		commands.NewDealerCommands,
		commands.NewWalletCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewLeadQueries,
		queries.NewDealerQueries,
		queries.NewWalletQueries,
	),
)
