package queries

import (
	"context"

	"tyreplus-backend/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNotLeadOwner = errs.New("lead belongs to another customer")

type LeadQueries interface {
	ListByCustomer(ctx context.Context, customerID uuid.UUID, page Page) ([]*LeadView, error)
	GetByIDForCustomer(ctx context.Context, customerID, leadID uuid.UUID) (*LeadView, error)
	ListOffersForLead(ctx context.Context, customerID, leadID uuid.UUID) ([]*OfferView, error)

	// ListDiscoverable hides leads the dealer already bid on.
	ListDiscoverable(ctx context.Context, dealerID uuid.UUID, page Page) ([]*DealerLeadView, error)
	ListUnlocked(ctx context.Context, dealerID uuid.UUID, page Page) ([]*DealerLeadView, error)
	GetByIDForDealer(ctx context.Context, dealerID, leadID uuid.UUID) (*DealerLeadView, error)
}

type LeadViewRepo interface {
	FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]*LeadView, error)
	FindByIDForCustomer(ctx context.Context, customerID, leadID uuid.UUID) (*LeadView, error)
	FindOwner(ctx context.Context, leadID uuid.UUID) (uuid.UUID, error)
	FindOffersByLead(ctx context.Context, leadID uuid.UUID) ([]*OfferView, error)
	FindDiscoverable(ctx context.Context, dealerID uuid.UUID, limit, offset int32) ([]*DealerLeadView, error)
	FindUnlocked(ctx context.Context, dealerID uuid.UUID, limit, offset int32) ([]*DealerLeadView, error)
	FindByIDForDealer(ctx context.Context, dealerID, leadID uuid.UUID) (*DealerLeadView, error)
}

type leadQueriesImpl struct {
	repo LeadViewRepo
}

func NewLeadQueries(repo LeadViewRepo) LeadQueries {
	return &leadQueriesImpl{repo: repo}
}

func (q *leadQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, page Page) ([]*LeadView, error) {
	return q.repo.FindByCustomer(ctx, customerID, page.Limit(), page.Offset())
}

func (q *leadQueriesImpl) GetByIDForCustomer(ctx context.Context, customerID, leadID uuid.UUID) (*LeadView, error) {
	return q.repo.FindByIDForCustomer(ctx, customerID, leadID)
}

// ListOffersForLead enforces ownership before exposing dealer bids. A
// lead that exists but belongs to someone else is ErrNotLeadOwner, not
// a not-found.
func (q *leadQueriesImpl) ListOffersForLead(ctx context.Context, customerID, leadID uuid.UUID) ([]*OfferView, error) {
	ownerID, err := q.repo.FindOwner(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if ownerID != customerID {
		return nil, ErrNotLeadOwner
	}
	return q.repo.FindOffersByLead(ctx, leadID)
}

func (q *leadQueriesImpl) ListDiscoverable(ctx context.Context, dealerID uuid.UUID, page Page) ([]*DealerLeadView, error) {
	return q.repo.FindDiscoverable(ctx, dealerID, page.Limit(), page.Offset())
}

func (q *leadQueriesImpl) ListUnlocked(ctx context.Context, dealerID uuid.UUID, page Page) ([]*DealerLeadView, error) {
	return q.repo.FindUnlocked(ctx, dealerID, page.Limit(), page.Offset())
}

func (q *leadQueriesImpl) GetByIDForDealer(ctx context.Context, dealerID, leadID uuid.UUID) (*DealerLeadView, error) {
	return q.repo.FindByIDForDealer(ctx, dealerID, leadID)
}
