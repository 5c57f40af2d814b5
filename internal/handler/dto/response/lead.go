package response

import (
	"tyreplus-backend/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type LeadListResponse struct {
	Leads []*queries.LeadView `json:"leads"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

type DealerLeadListResponse struct {
	Leads []*queries.DealerLeadView `json:"leads"`
	Page  int                       `json:"page"`
	Size  int                       `json:"size"`
}

type OfferListResponse struct {
	Offers []*queries.OfferView `json:"offers"`
}
