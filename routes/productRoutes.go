package routes

import "github.com/gin-gonic/gin"

func ProductRoutes(api *gin.RouterGroup, h Handlers) {
	api.GET("/products", h.Products.GetProducts)
	api.GET("/products/:id", h.Products.GetProduct)

	admin := api.Group("/products", adminOnly(h)...)
	{
		admin.POST("", h.Products.CreateProduct)
		admin.PUT("/:id", h.Products.UpdateProduct)
		admin.DELETE("/:id", h.Products.DeleteProduct)
		admin.POST("/:id/images", h.Products.UploadProductImage)
	}
}
