package routes

import "github.com/gin-gonic/gin"

func CartRoutes(api *gin.RouterGroup, h Handlers) {
	carts := api.Group("/admin/carts", h.RequireAuth)
	{
		carts.POST("/cart", h.Cart.AddToCart)
		carts.PUT("/cart", h.Cart.UpdateCart)
		carts.GET("/cart", h.Cart.ViewCart)
		carts.DELETE("/cart/:product_id", h.Cart.RemoveFromCart)
		carts.POST("/checkout", h.Cart.Checkout)
	}
}
