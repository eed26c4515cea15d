package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"not null;index"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus     `gorm:"type:varchar(50);not null;default:'pending'"`
	IsActive        bool            `gorm:"not null"`
	ShippingAddress datatypes.JSON
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem keeps the product name, quantity and price as they were at checkout.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `gorm:"not null;index"`
	ProductID   uint            `gorm:"not null;index"`
	Product     *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	ProductName string          `gorm:"size:120;not null"`
	Quantity    int             `gorm:"not null"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
