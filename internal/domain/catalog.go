package domain

import "context"

// Product carries only what pricing needs from the storefront catalog.
// BasePrice is in minor currency units.
type Product struct {
	ID        string
	Name      string
	BasePrice int64
	Weights   []string
	Currency  string
	IsActive  bool
}

type PriceQuote struct {
	ProductID   string
	ProductName string
	Weight      string
	UnitPrice   int64
	Currency    string
}

type Catalog interface {
	// GetProduct returns ErrProductNotFound for unknown ids.
	GetProduct(ctx context.Context, productID string) (*Product, error)
}
