package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCartQuantity caps the quantity of a single cart line.
const MaxCartQuantity = 10000

// CartLine is one (user, product, quantity) entry of a user's cart.
type CartLine struct {
	ID        uint     `gorm:"primaryKey"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	User      *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_cart_user_product"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Quantity  int      `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartLine) TableName() string {
	return "carts"
}

// CartLineView is a cart line joined with the live product name and price.
type CartLineView struct {
	ProductID   uint
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	CreatedAt   time.Time
}

func (v CartLineView) LineTotal() decimal.Decimal {
	return v.Price.Mul(decimal.NewFromInt(int64(v.Quantity)))
}

// CartTotal sums the line totals of lines.
func CartTotal(lines []CartLineView) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal())
	}
	return total
}
