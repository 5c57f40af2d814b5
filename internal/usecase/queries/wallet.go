package queries

import (
	"context"

	"github.com/google/uuid"
)

type WalletQueries interface {
	GetWallet(ctx context.Context, dealerID uuid.UUID) (*WalletView, error)
	ListPackages(ctx context.Context) ([]*PackageView, error)
}

type WalletViewRepo interface {
	FindWalletWithTransactions(ctx context.Context, dealerID uuid.UUID, txLimit int32) (*WalletView, error)
	FindActivePackages(ctx context.Context) ([]*PackageView, error)
}

type walletQueriesImpl struct {
	repo WalletViewRepo
}

func NewWalletQueries(repo WalletViewRepo) WalletQueries {
	return &walletQueriesImpl{repo: repo}
}

// Transaction history is capped; older entries need no API today.
const walletHistoryLimit = 50

func (q *walletQueriesImpl) GetWallet(ctx context.Context, dealerID uuid.UUID) (*WalletView, error) {
	return q.repo.FindWalletWithTransactions(ctx, dealerID, walletHistoryLimit)
}

func (q *walletQueriesImpl) ListPackages(ctx context.Context) ([]*PackageView, error) {
	return q.repo.FindActivePackages(ctx)
}
