package mappers

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/models"
)

// DefaultWeights is what the storefront offers when a product has none set.
var DefaultWeights = []string{"0.5", "1", "2"}

func ToDomainProduct(model *models.ProductModel, defaultCurrency string) (*domain.Product, error) {
	weights, err := decodeWeights(model.Weights)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", model.ID, err)
	}

	currency := defaultCurrency
	if model.Currency != nil && *model.Currency != "" {
		currency = *model.Currency
	}

	return &domain.Product{
		ID:        model.ID,
		Name:      model.Name,
		BasePrice: model.BasePrice,
		Weights:   weights,
		Currency:  currency,
		IsActive:  model.IsActive == nil || *model.IsActive,
	}, nil
}

// decodeWeights accepts both ["0.5","1"] and [0.5, 1].
func decodeWeights(raw []byte) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return append([]string(nil), DefaultWeights...), nil
	}

	var values []any
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode weights: %w", err)
	}

	weights := make([]string, 0, len(values))
	for _, v := range values {
		switch w := v.(type) {
		case string:
			weights = append(weights, w)
		case float64:
			weights = append(weights, strconv.FormatFloat(w, 'f', -1, 64))
		default:
			return nil, fmt.Errorf("unsupported weight value %v", v)
		}
	}
	return weights, nil
}
