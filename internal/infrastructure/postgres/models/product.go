package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProductModel maps the storefront catalog table. This service only reads it.
type ProductModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	Name      string
	BasePrice int64
	Weights   datatypes.JSON
	Currency  *string
	IsActive  *bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ProductModel) TableName() string { return "products" }
