package components

import (
	"tyreplus-backend/internal/infra/db"
	"tyreplus-backend/internal/infra/readstore"
	"tyreplus-backend/internal/infra/uow"
	"tyreplus-backend/internal/usecase/queries"
	"tyreplus-backend/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewLeadReadStore,
			fx.As(new(queries.LeadViewRepo)),
		),
		fx.Annotate(
			readstore.NewDealerReadStore,
			fx.As(new(queries.DealerViewRepo)),
		),
		fx.Annotate(
			readstore.NewWalletReadStore,
			fx.As(new(queries.WalletViewRepo)),
		),
	),
)

// NewDBTX hands the read side the bare pool; writes go through the
// unit of work instead.
func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
