package request

type InitiateRechargeRequest struct {
	PackageID string `json:"packageId" binding:"required,uuid"`
}

type VerifyRechargeRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature" binding:"required"`
}

type TestRechargeRequest struct {
	PackageID string `json:"packageId" binding:"required,uuid"`
}
