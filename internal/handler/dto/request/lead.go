package request

type CreateLeadRequest struct {
	VehicleType     string `json:"vehicleType" binding:"required"`
	TyreType        string `json:"tyreType" binding:"required"`
	TyreBrand       string `json:"tyreBrand" binding:"required"`
	VehicleModel    string `json:"vehicleModel"`
	LocationArea    string `json:"locationArea" binding:"required"`
	LocationPincode string `json:"locationPincode" binding:"required,len=6,numeric"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type SelectOfferRequest struct {
	OfferID string `json:"offerId" binding:"required,uuid"`
}
