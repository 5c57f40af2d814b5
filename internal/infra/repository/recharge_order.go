package repository

import (
	"context"
	"errors"
	"time"

	"tyreplus-backend/internal/domain/wallet"
	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RechargeOrderRepository struct {
	db db.DBTX
}

func NewRechargeOrderRepository(dbtx db.DBTX) *RechargeOrderRepository {
	return &RechargeOrderRepository{db: dbtx}
}

func (r *RechargeOrderRepository) Create(ctx context.Context, o *wallet.RechargeOrder) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO recharge_orders (id, dealer_id, package_id, gateway_order_id, amount, currency, status, payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		o.ID(), o.DealerID(), o.PackageID(), o.GatewayOrderID(),
		o.Amount(), o.Currency(), string(o.Status()), o.PaymentID(), o.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create recharge order", err)
	}
	return nil
}

func (r *RechargeOrderRepository) FindByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*wallet.RechargeOrder, error) {
	var (
		id        uuid.UUID
		dealerID  uuid.UUID
		packageID uuid.UUID
		amount    int64
		currency  string
		status    string
		paymentID *string
		createdAt time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, dealer_id, package_id, amount, currency, status, payment_id, created_at
		FROM recharge_orders
		WHERE gateway_order_id = $1`, gatewayOrderID,
	).Scan(&id, &dealerID, &packageID, &amount, &currency, &status, &paymentID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("recharge order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find recharge order", err)
	}
	return wallet.ReconstructRechargeOrder(
		id, dealerID, packageID, gatewayOrderID, amount, currency,
		wallet.OrderStatus(status), paymentID, createdAt,
	), nil
}

// MarkPaid settles the order exactly once; a replayed verify call sees
// zero rows and reports false.
func (r *RechargeOrderRepository) MarkPaid(ctx context.Context, id uuid.UUID, paymentID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE recharge_orders
		SET status = $2, payment_id = $3
		WHERE id = $1 AND status = $4`,
		id, string(wallet.OrderPaid), paymentID, string(wallet.OrderCreated))
	if err != nil {
		return false, infra.WrapRepoErr("failed to mark recharge order paid", err)
	}
	return tag.RowsAffected() == 1, nil
}
