package queries

import (
	"context"

	"github.com/google/uuid"
)

type DealerQueries interface {
	GetProfile(ctx context.Context, dealerID uuid.UUID) (*DealerProfileView, error)
	GetDashboard(ctx context.Context, dealerID uuid.UUID) (*DashboardView, error)
}

type DealerViewRepo interface {
	FindProfile(ctx context.Context, dealerID uuid.UUID) (*DealerProfileView, error)
	CountDashboard(ctx context.Context, dealerID uuid.UUID) (*DashboardView, error)
}

type dealerQueriesImpl struct {
	repo DealerViewRepo
}

func NewDealerQueries(repo DealerViewRepo) DealerQueries {
	return &dealerQueriesImpl{repo: repo}
}

func (q *dealerQueriesImpl) GetProfile(ctx context.Context, dealerID uuid.UUID) (*DealerProfileView, error) {
	return q.repo.FindProfile(ctx, dealerID)
}

func (q *dealerQueriesImpl) GetDashboard(ctx context.Context, dealerID uuid.UUID) (*DashboardView, error) {
	return q.repo.CountDashboard(ctx, dealerID)
}
