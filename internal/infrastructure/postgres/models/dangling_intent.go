package models

import "time"

type DanglingIntentModel struct {
	ID              string    `gorm:"primaryKey"`
	GatewayIntentID string    `gorm:"not null;index:idx_dangling_gateway_intent"`
	IdempotencyKey  string    `gorm:"not null"`
	ProductID       string    `gorm:"not null"`
	CustomerEmail   string    `gorm:"not null"`
	Amount          int64     `gorm:"not null"`
	Currency        string    `gorm:"not null"`
	ErrorMessage    string    `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null;index:idx_dangling_created_at"`
}

func (DanglingIntentModel) TableName() string { return "dangling_intents" }
