package routes

import "github.com/gin-gonic/gin"

func CustomerRoutes(api *gin.RouterGroup, h Handlers) {
	customers := api.Group("/admin/customers", adminOnly(h)...)
	{
		customers.GET("/customers", h.Customers.GetCustomers)
		customers.GET("/customers/:id", h.Customers.GetCustomer)
		customers.PUT("/customers/:id/status", h.Customers.SetCustomerStatus)
	}
}
