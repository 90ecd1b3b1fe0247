package domain

import (
	"context"
	"time"
)

// DanglingIntent is a gateway intent whose local order could not be stored.
// Each one needs cancellation at the gateway.
type DanglingIntent struct {
	ID              string
	GatewayIntentID string
	IdempotencyKey  string
	ProductID       string
	CustomerEmail   string
	Amount          int64
	Currency        string
	ErrorMessage    string
	CreatedAt       time.Time
}

type DanglingIntentRepository interface {
	RecordDanglingIntent(ctx context.Context, intent *DanglingIntent) error
	ListDanglingIntents(ctx context.Context, since time.Time, limit int) ([]*DanglingIntent, error)
}
