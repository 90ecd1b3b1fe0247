package usecase

import (
	"fmt"
	"math"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/shopspring/decimal"
)

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// QuotePrice computes the storefront unit price for one weight option:
// round(base_price * weight * factor), halves rounded away from zero.
func QuotePrice(product *domain.Product, weight string, factor decimal.Decimal) (*domain.PriceQuote, error) {
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %s is not available", domain.ErrValidation, product.ID)
	}

	w, err := decimal.NewFromString(weight)
	if err != nil || !w.IsPositive() {
		return nil, fmt.Errorf("%w: weight %q is not a positive number", domain.ErrValidation, weight)
	}
	if !weightOffered(product.Weights, w) {
		return nil, fmt.Errorf("%w: weight %s is not offered for product %s", domain.ErrValidation, weight, product.ID)
	}

	unit := decimal.NewFromInt(product.BasePrice).Mul(w).Mul(factor).Round(0)
	if !unit.IsPositive() || unit.GreaterThan(maxMinorUnits) {
		return nil, fmt.Errorf("%w: price for product %s is out of range", domain.ErrValidation, product.ID)
	}

	return &domain.PriceQuote{
		ProductID:   product.ID,
		ProductName: product.Name,
		Weight:      w.String(),
		UnitPrice:   unit.IntPart(),
		Currency:    product.Currency,
	}, nil
}

// TotalAmount multiplies without overflowing int64.
func TotalAmount(unitPrice, quantity int64) (int64, error) {
	if unitPrice <= 0 || quantity <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if quantity > math.MaxInt64/unitPrice {
		return 0, fmt.Errorf("%w: order total is out of range", domain.ErrValidation)
	}
	return unitPrice * quantity, nil
}

func weightOffered(offered []string, w decimal.Decimal) bool {
	for _, option := range offered {
		candidate, err := decimal.NewFromString(option)
		if err != nil {
			continue
		}
		if candidate.Equal(w) {
			return true
		}
	}
	return false
}
