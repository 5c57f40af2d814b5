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

type WalletRepository struct {
	db db.DBTX
}

func NewWalletRepository(dbtx db.DBTX) *WalletRepository {
	return &WalletRepository{db: dbtx}
}

func (r *WalletRepository) Create(ctx context.Context, w *wallet.Wallet) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO wallets (id, dealer_id, balance, total_earned, total_spent, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID(), w.DealerID(), w.Balance(), w.TotalEarned(), w.TotalSpent(), w.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create wallet", err)
	}
	return nil
}

func (r *WalletRepository) FindByDealerID(ctx context.Context, dealerID uuid.UUID) (*wallet.Wallet, error) {
	return r.findByDealerID(ctx, dealerID, false)
}

// FindByDealerIDForUpdate takes a row lock; every concurrent debit of the
// same wallet queues behind it.
func (r *WalletRepository) FindByDealerIDForUpdate(ctx context.Context, dealerID uuid.UUID) (*wallet.Wallet, error) {
	return r.findByDealerID(ctx, dealerID, true)
}

func (r *WalletRepository) findByDealerID(ctx context.Context, dealerID uuid.UUID, forUpdate bool) (*wallet.Wallet, error) {
	query := `
		SELECT id, balance, total_earned, total_spent, updated_at
		FROM wallets
		WHERE dealer_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var (
		id          uuid.UUID
		balance     int64
		totalEarned int64
		totalSpent  int64
		updatedAt   time.Time
	)
	err := r.db.QueryRow(ctx, query, dealerID).Scan(&id, &balance, &totalEarned, &totalSpent, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet", err)
	}
	return wallet.Reconstruct(id, dealerID, balance, totalEarned, totalSpent, updatedAt), nil
}

func (r *WalletRepository) SaveBalances(ctx context.Context, w *wallet.Wallet) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE wallets
		SET balance = $2, total_earned = $3, total_spent = $4, updated_at = $5
		WHERE id = $1`,
		w.ID(), w.Balance(), w.TotalEarned(), w.TotalSpent(), w.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save wallet balances", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("wallet not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *WalletRepository) AppendTransaction(ctx context.Context, t *wallet.Transaction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO credit_transactions (id, wallet_id, tx_type, amount, reason, reference_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID(), t.WalletID(), string(t.Type()), t.Amount(), string(t.Reason()), t.ReferenceID(), t.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append credit transaction", err)
	}
	return nil
}

func (r *WalletRepository) TransactionExistsByReference(ctx context.Context, walletID uuid.UUID, txType wallet.TxType, referenceID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM credit_transactions
			WHERE wallet_id = $1 AND tx_type = $2 AND reference_id = $3
		)`, walletID, string(txType), referenceID,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check transaction reference", err)
	}
	return exists, nil
}
