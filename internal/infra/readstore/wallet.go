package readstore

import (
	"context"
	"errors"

	"tyreplus-backend/internal/infra"
	"tyreplus-backend/internal/infra/db"
	"tyreplus-backend/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type WalletReadStore struct {
	db db.DBTX
}

func NewWalletReadStore(dbtx db.DBTX) *WalletReadStore {
	return &WalletReadStore{db: dbtx}
}

func (r *WalletReadStore) FindWalletWithTransactions(ctx context.Context, dealerID uuid.UUID, txLimit int32) (*queries.WalletView, error) {
	var (
		walletID uuid.UUID
		view     queries.WalletView
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, balance, total_earned, total_spent
		FROM wallets
		WHERE dealer_id = $1`, dealerID,
	).Scan(&walletID, &view.TotalCredits, &view.TotalEarned, &view.TotalSpent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("wallet not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find wallet", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, tx_type, amount, reason, reference_id, created_at
		FROM credit_transactions
		WHERE wallet_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, walletID, txLimit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list credit transactions", err)
	}
	defer rows.Close()

	view.Transactions = []queries.TransactionView{}
	for rows.Next() {
		var t queries.TransactionView
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.Reason, &t.ReferenceID, &t.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan credit transaction", err)
		}
		view.Transactions = append(view.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate credit transactions", err)
	}
	return &view, nil
}

func (r *WalletReadStore) FindActivePackages(ctx context.Context) ([]*queries.PackageView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, credits, bonus_credits, price_amount, currency
		FROM recharge_packages
		WHERE active
		ORDER BY price_amount ASC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list packages", err)
	}
	defer rows.Close()

	var result []*queries.PackageView
	for rows.Next() {
		var v queries.PackageView
		if err := rows.Scan(&v.ID, &v.Name, &v.Credits, &v.BonusCredits, &v.PriceAmount, &v.Currency); err != nil {
			return nil, infra.WrapRepoErr("failed to scan package view", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate packages", err)
	}
	return result, nil
}
