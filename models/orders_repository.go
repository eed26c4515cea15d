package models

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrOrderNotFound covers both a missing order and one owned by another user.
var ErrOrderNotFound = errors.New("order not found or unauthorized")

type OrdersRepository struct {
	db        *gorm.DB
	txOptions []*sql.TxOptions
}

type OrdersOption func(*OrdersRepository)

// WithCheckoutIsolation runs checkout transactions at the given isolation level.
func WithCheckoutIsolation(level sql.IsolationLevel) OrdersOption {
	return func(r *OrdersRepository) {
		r.txOptions = []*sql.TxOptions{{Isolation: level}}
	}
}

func NewOrdersRepository(db *gorm.DB, opts ...OrdersOption) *OrdersRepository {
	r := &OrdersRepository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Checkout turns the user's cart into a pending order. The order, its items and the
// removal of the cart lines are committed together or not at all. Item prices are
// copied from the products as read inside the transaction.
func (r *OrdersRepository) Checkout(ctx context.Context, userID uint, addressID *uint) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []CartLine
		if err := tx.Clauses(lockingFor(tx)...).
			Where("user_id = ?", userID).
			Order("id").
			Find(&lines).Error; err != nil {
			return fmt.Errorf("load cart of user %d: %w", userID, err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			productIDs = append(productIDs, line.ProductID)
		}
		var products []Product
		if err := tx.Clauses(lockingFor(tx)...).
			Where("id IN ?", productIDs).
			Find(&products).Error; err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		byID := make(map[uint]Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		order = Order{
			UserID:   userID,
			Status:   OrderStatusPending,
			IsActive: true,
		}
		if addressID != nil {
			address, err := findAddress(tx, userID, *addressID)
			if err != nil {
				return err
			}
			snapshot, err := json.Marshal(address.Snapshot())
			if err != nil {
				return err
			}
			order.ShippingAddress = datatypes.JSON(snapshot)
		}

		total := decimal.Zero
		items := make([]OrderItem, 0, len(lines))
		lineIDs := make([]uint, 0, len(lines))
		for _, line := range lines {
			product, ok := byID[line.ProductID]
			if !ok || !product.IsActive {
				return fmt.Errorf("%w: product %d", ErrProductUnavailable, line.ProductID)
			}
			item := OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				Price:       product.Price,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
			lineIDs = append(lineIDs, line.ID)
		}
		order.TotalPrice = total

		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		res := tx.Where("user_id = ? AND id IN ?", userID, lineIDs).Delete(&CartLine{})
		if res.Error != nil {
			return fmt.Errorf("clear cart of user %d: %w", userID, res.Error)
		}
		if res.RowsAffected != int64(len(lineIDs)) {
			return ErrCartChanged
		}

		order.Items = items
		return nil
	}, r.txOptions...)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrCartChanged
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first, with their items.
func (r *OrdersRepository) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	orders := []Order{}
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrdersRepository) GetForUser(ctx context.Context, userID, orderID uint) (*Order, error) {
	var order Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// Cancel moves a pending order owned by the user to cancelled.
func (r *OrdersRepository) Cancel(ctx context.Context, userID, orderID uint) (*Order, error) {
	var order Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(lockingFor(tx)...).
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if order.Status != OrderStatusPending {
			return ErrOrderNotCancellable
		}
		if err := tx.Model(&order).Update("status", OrderStatusCancelled).Error; err != nil {
			return err
		}
		order.Status = OrderStatusCancelled
		return tx.Where("order_id = ?", order.ID).Order("id").Find(&order.Items).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
