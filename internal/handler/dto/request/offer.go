package request

type SubmitOfferRequest struct {
	Price     int64    `json:"price" binding:"required,gt=0"`
	Condition string   `json:"condition"`
	Notes     string   `json:"notes"`
	Images    []string `json:"images" binding:"max=5"`
}
