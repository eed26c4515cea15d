package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ProductImage struct {
	ID        uint   `gorm:"primaryKey"`
	ProductID uint   `gorm:"not null;index"`
	ImagePath string `gorm:"size:255;not null"`
	CreatedAt time.Time
}

// Product is a catalog entry. Price is the live price; orders keep their own copy.
type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:120;not null;index"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description string          `gorm:"size:500"`
	Stock       int             `gorm:"not null"`
	IsActive    bool            `gorm:"not null"`
	Attributes  datatypes.JSON
	CategoryID  *uint          `gorm:"index"`
	Category    *Category      `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Images      []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Product) TableName() string {
	return "products"
}
