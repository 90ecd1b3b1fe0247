package domain

import "context"

type OrderRepository interface {
	// CreateOrder returns ErrDuplicateOrder when the intent id or idempotency
	// key is already taken.
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetPendingOrderByIdempotencyKey(ctx context.Context, key string) (*Order, error)
	// TransitionStatus reports false when the order was not in t.From.
	TransitionStatus(ctx context.Context, t StatusTransition) (bool, error)
}
