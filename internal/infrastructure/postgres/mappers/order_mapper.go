package mappers

import (
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:              model.ID,
		GatewayIntentID: model.GatewayIntentID,
		IdempotencyKey:  model.IdempotencyKey,
		Receipt:         model.Receipt,
		ProductID:       model.ProductID,
		ProductName:     model.ProductName,
		Quantity:        model.Quantity,
		Weight:          model.Weight,
		AmountInfo: domain.AmountInfo{
			UnitPrice:   model.UnitPrice,
			TotalAmount: model.TotalAmount,
			Currency:    model.Currency,
		},
		Customer: domain.CustomerInfo{
			Name:            model.CustomerName,
			Email:           model.CustomerEmail,
			Phone:           model.CustomerPhone,
			DeliveryAddress: model.DeliveryAddress,
			City:            model.City,
			Pincode:         model.Pincode,
		},
		Notes:     model.Notes,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.GatewayPaymentID != nil {
		order.GatewayPaymentID = *model.GatewayPaymentID
	}
	if model.FailureReason != nil {
		order.FailureReason = *model.FailureReason
	}
	return order
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:               order.ID,
		GatewayIntentID:  order.GatewayIntentID,
		IdempotencyKey:   order.IdempotencyKey,
		Receipt:          order.Receipt,
		ProductID:        order.ProductID,
		ProductName:      order.ProductName,
		Quantity:         order.Quantity,
		Weight:           order.Weight,
		UnitPrice:        order.AmountInfo.UnitPrice,
		TotalAmount:      order.AmountInfo.TotalAmount,
		Currency:         order.AmountInfo.Currency,
		CustomerName:     order.Customer.Name,
		CustomerEmail:    order.Customer.Email,
		CustomerPhone:    order.Customer.Phone,
		DeliveryAddress:  order.Customer.DeliveryAddress,
		City:             order.Customer.City,
		Pincode:          order.Customer.Pincode,
		Notes:            order.Notes,
		Status:           order.Status,
		GatewayPaymentID: optional(order.GatewayPaymentID),
		FailureReason:    optional(order.FailureReason),
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
