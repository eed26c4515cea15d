package controllers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
)

type CheckoutStore interface {
	Checkout(ctx context.Context, userID uint, addressID *uint) (*models.Order, error)
}

type OrderStore interface {
	CheckoutStore
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
	GetForUser(ctx context.Context, userID, orderID uint) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID uint) (*models.Order, error)
}

type CheckoutInput struct {
	AddressID *uint `json:"address_id"`
}

type CancelOrderInput struct {
	OrderID uint `json:"order_id" binding:"required"`
}

type OrderController struct {
	orders   OrderStore
	notifier utils.OrderNotifier
}

func NewOrderController(orders OrderStore, notifier utils.OrderNotifier) *OrderController {
	return &OrderController{orders: orders, notifier: notifier}
}

// PlaceOrder turns the caller's cart into an order, optionally shipped to one of
// their addresses.
func (c *OrderController) PlaceOrder(ctx *gin.Context) {
	placeOrder(ctx, c.orders, c.notifier)
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	orders, err := c.orders.ListByUser(ctx.Request.Context(), userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toOrderResponse(o)
	}
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	orderID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	order, err := c.orders.GetForUser(ctx.Request.Context(), userID, orderID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, toOrderResponse(*order))
}

func (c *OrderController) CancelOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input CancelOrderInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	order, err := c.orders.Cancel(ctx.Request.Context(), userID, input.OrderID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	notifyOrder(ctx.Request.Context(), c.notifier, utils.OrderCancelled, order)
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgOrderCancelled})
}

func placeOrder(ctx *gin.Context, orders CheckoutStore, notifier utils.OrderNotifier) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	// the body is optional
	var input CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		respondWithBindingError(ctx, err)
		return
	}

	order, err := orders.Checkout(ctx.Request.Context(), userID, input.AddressID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	notifyOrder(ctx.Request.Context(), notifier, utils.OrderPlaced, order)
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  msgOrderPlaced,
		"order_id": order.ID,
		"order":    toOrderResponse(*order),
	})
}

// notifyOrder runs after the order is committed; failures are only logged.
func notifyOrder(ctx context.Context, notifier utils.OrderNotifier, eventType utils.OrderEventType, order *models.Order) {
	if notifier == nil {
		return
	}

	items := make([]utils.OrderEventItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = utils.OrderEventItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}
	event := utils.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice,
		Items:      items,
		OccurredAt: time.Now(),
	}
	if err := notifier.NotifyOrder(ctx, event); err != nil {
		log.Printf("Order %d %s notification failed: %v", order.ID, eventType, err)
	}
}
