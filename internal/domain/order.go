package domain

import "time"

type OrderStatus string

const (
	StatusPending OrderStatus = "pending"
	StatusPaid    OrderStatus = "paid"
	StatusFailed  OrderStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed
}

type CustomerInfo struct {
	Name            string
	Email           string
	Phone           string
	DeliveryAddress string
	City            string
	Pincode         string
}

type AmountInfo struct {
	UnitPrice   int64
	TotalAmount int64
	Currency    string
}

// Order is the ledger record reconciled against a single gateway intent.
// Amounts are minor currency units.
type Order struct {
	ID               string
	GatewayIntentID  string
	IdempotencyKey   string
	Receipt          string
	ProductID        string
	ProductName      string
	Quantity         int64
	Weight           string
	AmountInfo       AmountInfo
	Customer         CustomerInfo
	Notes            string
	Status           OrderStatus
	GatewayPaymentID string
	FailureReason    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// StatusTransition is a conditional write: it applies only while the stored
// status still equals From.
type StatusTransition struct {
	OrderID          string
	From             OrderStatus
	To               OrderStatus
	GatewayPaymentID string
	FailureReason    string
	At               time.Time
}
