package models

import (
	"time"

	"github.com/Tanmay79-Startifie/SarvDham-Prasad/internal/domain"
)

type OrderModel struct {
	ID               string             `gorm:"primaryKey;type:uuid"`
	GatewayIntentID  string             `gorm:"not null;uniqueIndex:idx_orders_gateway_intent"`
	IdempotencyKey   string             `gorm:"not null;uniqueIndex:idx_orders_idempotency_key,where:status = 'pending'"`
	Receipt          string             `gorm:"not null"`
	ProductID        string             `gorm:"not null;index:idx_orders_product"`
	ProductName      string             `gorm:"not null"`
	Quantity         int64              `gorm:"not null"`
	Weight           string             `gorm:"not null"`
	UnitPrice        int64              `gorm:"not null"`
	TotalAmount      int64              `gorm:"not null"`
	Currency         string             `gorm:"not null"`
	CustomerName     string             `gorm:"not null"`
	CustomerEmail    string             `gorm:"not null;index:idx_orders_customer_email"`
	CustomerPhone    string             `gorm:"not null"`
	DeliveryAddress  string             `gorm:"not null"`
	City             string             `gorm:"not null"`
	Pincode          string             `gorm:"not null"`
	Notes            string
	Status           domain.OrderStatus `gorm:"not null;index:idx_orders_status"`
	GatewayPaymentID *string
	FailureReason    *string
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

func (OrderModel) TableName() string { return "orders" }
