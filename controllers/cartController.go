package controllers

import (
	"context"
	"net/http"

	"github.com/Kariqs/ecommerce-shop-api/models"
	"github.com/Kariqs/ecommerce-shop-api/utils"
	"github.com/gin-gonic/gin"
)

type CartStore interface {
	AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.CartLine, error)
	SetQuantity(ctx context.Context, userID, productID uint, quantity int) (*models.CartLine, error)
	RemoveItem(ctx context.Context, userID, productID uint) error
	ListLines(ctx context.Context, userID uint) ([]models.CartLineView, error)
}

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"required,gte=1,lte=10000"`
}

type CartController struct {
	cart     CartStore
	orders   CheckoutStore
	notifier utils.OrderNotifier
}

func NewCartController(cart CartStore, orders CheckoutStore, notifier utils.OrderNotifier) *CartController {
	return &CartController{cart: cart, orders: orders, notifier: notifier}
}

func (c *CartController) AddToCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input CartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	line, err := c.cart.AddItem(ctx.Request.Context(), userID, input.ProductID, *input.Quantity)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgAddedToCart, "quantity": line.Quantity})
}

func (c *CartController) UpdateCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input CartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithBindingError(ctx, err)
		return
	}

	line, err := c.cart.SetQuantity(ctx.Request.Context(), userID, input.ProductID, *input.Quantity)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartUpdated, "quantity": line.Quantity})
}

func (c *CartController) RemoveFromCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	productID, ok := parseIDParam(ctx, "product_id")
	if !ok {
		return
	}

	if err := c.cart.RemoveItem(ctx.Request.Context(), userID, productID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgRemovedFromCart})
}

// ViewCart lists the cart lines at current prices. The cart total is sent in the
// X-Cart-Total header so the body stays a plain array.
func (c *CartController) ViewCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	lines, err := c.cart.ListLines(ctx.Request.Context(), userID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}

	resp := make([]CartLineResponse, len(lines))
	for i, l := range lines {
		resp[i] = toCartLineResponse(l)
	}
	ctx.Header("X-Cart-Total", models.CartTotal(lines).StringFixed(2))
	sendJSONResponse(ctx, http.StatusOK, resp)
}

func (c *CartController) Checkout(ctx *gin.Context) {
	placeOrder(ctx, c.orders, c.notifier)
}
