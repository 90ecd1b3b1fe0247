package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/mappers"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultCatalogRepository struct {
	DB              *gorm.DB
	DefaultCurrency string
}

func NewDefaultCatalogRepository(db *gorm.DB, defaultCurrency string) *DefaultCatalogRepository {
	return &DefaultCatalogRepository{DB: db, DefaultCurrency: defaultCurrency}
}

func (r *DefaultCatalogRepository) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, domain.ErrProductNotFound
	}

	var product models.ProductModel
	err := r.DB.WithContext(ctx).
		Select("id", "name", "base_price", "weights", "currency", "is_active").
		First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return mappers.ToDomainProduct(&product, r.DefaultCurrency)
}
