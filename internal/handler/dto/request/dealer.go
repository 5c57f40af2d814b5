package request

type UpdateProfileRequest struct {
	BusinessName string  `json:"businessName" binding:"required"`
	OwnerName    string  `json:"ownerName" binding:"required"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Address      string  `json:"address"`
}
