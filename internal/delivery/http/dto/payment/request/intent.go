package request

type IssueIntentRequest struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	DeliveryAddress string `json:"deliveryAddress"`
	City            string `json:"city"`
	Pincode         string `json:"pincode"`
	ProductID       string `json:"productId"`
	ProductName     string `json:"productName"`
	Quantity        int64  `json:"quantity"`
	Weight          string `json:"weight"`
	Notes           string `json:"notes,omitempty"`
	Amount          int64  `json:"amount"`
	RequestID       string `json:"requestId,omitempty"`
}
