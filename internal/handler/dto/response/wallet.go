package response

import (
	"tyreplus-backend/internal/usecase/commands"
	"tyreplus-backend/internal/usecase/queries"
)

type PackageListResponse struct {
	Packages []*queries.PackageView `json:"packages"`
}

type InitiateRechargeResponse struct {
	OrderID     string `json:"orderId"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	KeyID       string `json:"keyId"`
	PackageName string `json:"packageName"`
}

func NewInitiateRechargeResponse(result *commands.InitiateRechargeResult) InitiateRechargeResponse {
	return InitiateRechargeResponse{
		OrderID:     result.OrderID,
		Amount:      result.Amount,
		Currency:    result.Currency,
		KeyID:       result.KeyID,
		PackageName: result.PackageName,
	}
}
