package routes

import "github.com/gin-gonic/gin"

func OrderRoutes(api *gin.RouterGroup, h Handlers) {
	orders := api.Group("/admin/orders", h.RequireAuth)
	{
		orders.POST("/orders", h.Orders.PlaceOrder)
		orders.GET("/orders", h.Orders.GetOrders)
		orders.GET("/orders/:id", h.Orders.GetOrder)
		orders.POST("/orders/cancel", h.Orders.CancelOrder)
	}
}
