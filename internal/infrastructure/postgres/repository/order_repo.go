package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/mappers"
	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create order %s: %w", order.ID, domain.ErrDuplicateOrder)
		}
		return fmt.Errorf("create order %s: %w", order.ID, err)
	}
	order.CreatedAt = orderModel.CreatedAt
	order.UpdatedAt = orderModel.UpdatedAt
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	// ids are uuid columns; anything else cannot exist
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, domain.ErrOrderNotFound
	}

	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetPendingOrderByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	var order models.OrderModel
	err := r.DB.WithContext(ctx).
		Where("idempotency_key = ? AND status = ?", key, domain.StatusPending).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by idempotency key: %w", err)
	}
	return mappers.ToDomainOrder(&order), nil
}

// TransitionStatus is a single conditional UPDATE, so concurrent callers on
// different instances cannot both move the same order out of t.From.
func (r *DefaultOrderRepository) TransitionStatus(ctx context.Context, t domain.StatusTransition) (bool, error) {
	updates := map[string]any{
		"status":     t.To,
		"updated_at": t.At,
	}
	if t.GatewayPaymentID != "" {
		updates["gateway_payment_id"] = t.GatewayPaymentID
	}
	if t.FailureReason != "" {
		updates["failure_reason"] = t.FailureReason
	}

	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", t.OrderID, t.From).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("transition order %s %s->%s: %w", t.OrderID, t.From, t.To, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
