package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	paymentdto "github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/usecase/dto/payment"
)

func (uc *DefaultPaymentUsecase) GetOrderStatus(ctx context.Context, orderID string) (*paymentdto.OrderStatusOutput, error) {
	if orderID == "" || len(orderID) > maxIDLength {
		return nil, fmt.Errorf("%w: invalid order id", domain.ErrValidation)
	}

	lctx, cancel := uc.ledgerContext(ctx)
	defer cancel()

	order, err := uc.OrderRepo.GetOrderByID(lctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrOrderNotFound, orderID)
		}
		uc.recordErrorMetrics("get_order_status", domain.ErrPersistence)
		return nil, fmt.Errorf("%w: load order %s: %v", domain.ErrPersistence, orderID, err)
	}

	return &paymentdto.OrderStatusOutput{
		OrderID:     order.ID,
		Status:      order.Status,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		Weight:      order.Weight,
		Amount:      order.AmountInfo.TotalAmount,
		Currency:    order.AmountInfo.Currency,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}, nil
}
