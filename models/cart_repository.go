package models

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrCartLineNotFound = errors.New("product not found in cart")

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// AddItem puts quantity units of a product in the user's cart, adding to an existing
// line for the same product.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID uint, quantity int) (*CartLine, error) {
	if quantity < 1 || quantity > MaxCartQuantity {
		return nil, ErrInvalidQuantity
	}

	var line CartLine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrProductNotFound
		}

		err := tx.Clauses(lockingFor(tx)...).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&line).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			line = CartLine{UserID: userID, ProductID: productID, Quantity: quantity}
			return tx.Omit(clause.Associations).Create(&line).Error
		}
		if err != nil {
			return err
		}

		if line.Quantity > MaxCartQuantity-quantity {
			return ErrInvalidQuantity
		}
		line.Quantity += quantity
		return tx.Model(&line).Update("quantity", line.Quantity).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrCartChanged
	}
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// SetQuantity overwrites the quantity of an existing cart line.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID uint, quantity int) (*CartLine, error) {
	if quantity < 1 || quantity > MaxCartQuantity {
		return nil, ErrInvalidQuantity
	}

	var line CartLine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockingFor(tx)...).
			Where("user_id = ? AND product_id = ?", userID, productID).
			First(&line).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartLineNotFound
			}
			return err
		}
		line.Quantity = quantity
		return tx.Model(&line).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID uint) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).Delete(&CartLine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCartLineNotFound
	}
	return nil
}

// ListLines returns the user's cart joined with current product names and prices.
func (r *CartRepository) ListLines(ctx context.Context, userID uint) ([]CartLineView, error) {
	lines := []CartLineView{}
	if err := r.db.WithContext(ctx).
		Table("carts").
		Select("carts.product_id, products.name AS product_name, carts.quantity, products.price, carts.created_at").
		Joins("JOIN products ON products.id = carts.product_id").
		Where("carts.user_id = ?", userID).
		Order("carts.id").
		Scan(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
