package repository

import (
	"context"
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/mappers"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDanglingIntentRepository struct {
	DB *gorm.DB
}

func NewDefaultDanglingIntentRepository(db *gorm.DB) *DefaultDanglingIntentRepository {
	return &DefaultDanglingIntentRepository{DB: db}
}

func (r *DefaultDanglingIntentRepository) RecordDanglingIntent(ctx context.Context, intent *domain.DanglingIntent) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMDanglingIntent(intent)).Error
}

func (r *DefaultDanglingIntentRepository) ListDanglingIntents(ctx context.Context, since time.Time, limit int) ([]*domain.DanglingIntent, error) {
	var intentModels []models.DanglingIntentModel
	if err := r.DB.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(limit).
		Find(&intentModels).Error; err != nil {
		return nil, err
	}

	intents := make([]*domain.DanglingIntent, len(intentModels))
	for i := range intentModels {
		intents[i] = mappers.ToDomainDanglingIntent(&intentModels[i])
	}
	return intents, nil
}
