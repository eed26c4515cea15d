package utils

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type OrderEventType string

const (
	OrderPlaced    OrderEventType = "order.placed"
	OrderCancelled OrderEventType = "order.cancelled"
)

type OrderEventItem struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// OrderEvent describes a committed change to an order.
type OrderEvent struct {
	Type       OrderEventType   `json:"type"`
	OrderID    uint             `json:"order_id"`
	UserID     uint             `json:"user_id"`
	Status     string           `json:"status"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	Items      []OrderEventItem `json:"items"`
	OccurredAt time.Time        `json:"occurred_at"`
}

type OrderNotifier interface {
	NotifyOrder(ctx context.Context, event OrderEvent) error
}

// Notifiers fans an event out to every notifier and joins their errors.
type Notifiers []OrderNotifier

func (n Notifiers) NotifyOrder(ctx context.Context, event OrderEvent) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.NotifyOrder(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
