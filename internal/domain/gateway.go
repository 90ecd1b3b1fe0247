package domain

import "context"

type CreateIntentRequest struct {
	Amount         int64
	Currency       string
	Receipt        string
	IdempotencyKey string
	Notes          map[string]string
}

// PaymentIntent is the gateway-side order a customer pays against.
type PaymentIntent struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error)
	// PublicKey is the identifier the browser checkout needs.
	PublicKey() string
}
