package publisher

import (
	"encoding/json"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
)

type EventType string

const (
	EventIntentIssued   EventType = "payment.intent_issued"
	EventIntentDangling EventType = "payment.intent_dangling"
	EventOrderPaid      EventType = "payment.order_paid"
	EventOrderFailed    EventType = "payment.order_failed"
)

type PaymentEvent struct {
	Type             EventType `json:"type"`
	OrderID          string    `json:"order_id,omitempty"`
	GatewayIntentID  string    `json:"gateway_intent_id"`
	GatewayPaymentID string    `json:"gateway_payment_id,omitempty"`
	ProductID        string    `json:"product_id,omitempty"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status,omitempty"`
	Reason           string    `json:"reason,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Encode keys the message by order id, falling back to the intent id for
// intents that never got an order.
func (e PaymentEvent) Encode() (domain.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return domain.Message{}, err
	}
	key := e.OrderID
	if key == "" {
		key = e.GatewayIntentID
	}
	return domain.Message{Key: []byte(key), Value: value}, nil
}
