package response

import "time"

type IssueIntentResponse struct {
	Success   bool   `json:"success"`
	IntentID  string `json:"intentId"`
	OrderID   string `json:"orderId"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	PublicKey string `json:"publicKey"`
	Replayed  bool   `json:"replayed,omitempty"`
}

type VerifyPaymentResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type OrderStatusResponse struct {
	Success bool        `json:"success"`
	Order   OrderStatus `json:"order"`
}

type OrderStatus struct {
	OrderID     string    `json:"orderId"`
	Status      string    `json:"status"`
	ProductName string    `json:"productName"`
	Quantity    int64     `json:"quantity"`
	Weight      string    `json:"weight"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
