package paymentdto

type CustomerParams struct {
	Name            string
	Email           string
	Phone           string
	DeliveryAddress string
	City            string
	Pincode         string
}

type ProductParams struct {
	ProductID   string
	ProductName string
	Quantity    int64
	Weight      string
}

type IssueIntentInput struct {
	Customer CustomerParams
	Product  ProductParams
	Notes    string
	// ClientAmount is what the storefront displayed. It is compared against
	// the catalog price and never stored.
	ClientAmount int64
	// RequestID is reused by the client across retries of one checkout.
	RequestID string
}

type VerifyCallbackInput struct {
	GatewayPaymentID string
	GatewayIntentID  string
	Signature        string
	OrderID          string
}
