package request

type VerifyPaymentRequest struct {
	GatewayPaymentID string `json:"gatewayPaymentId"`
	GatewayIntentID  string `json:"gatewayIntentId"`
	Signature        string `json:"signature"`
	OrderID          string `json:"orderId"`
}
