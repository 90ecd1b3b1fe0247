package mappers

import (
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/models"
)

func ToGORMDanglingIntent(intent *domain.DanglingIntent) *models.DanglingIntentModel {
	return &models.DanglingIntentModel{
		ID:              intent.ID,
		GatewayIntentID: intent.GatewayIntentID,
		IdempotencyKey:  intent.IdempotencyKey,
		ProductID:       intent.ProductID,
		CustomerEmail:   intent.CustomerEmail,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		ErrorMessage:    intent.ErrorMessage,
		CreatedAt:       intent.CreatedAt,
	}
}

func ToDomainDanglingIntent(model *models.DanglingIntentModel) *domain.DanglingIntent {
	return &domain.DanglingIntent{
		ID:              model.ID,
		GatewayIntentID: model.GatewayIntentID,
		IdempotencyKey:  model.IdempotencyKey,
		ProductID:       model.ProductID,
		CustomerEmail:   model.CustomerEmail,
		Amount:          model.Amount,
		Currency:        model.Currency,
		ErrorMessage:    model.ErrorMessage,
		CreatedAt:       model.CreatedAt,
	}
}
