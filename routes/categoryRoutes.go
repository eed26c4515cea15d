package routes

import "github.com/gin-gonic/gin"

func CategoryRoutes(api *gin.RouterGroup, h Handlers) {
	categories := api.Group("/admin/categories")
	{
		categories.GET("/categories", h.Category.GetCategories)
		categories.GET("/categories/:id", h.Category.GetCategory)
	}

	admin := api.Group("/admin/categories", adminOnly(h)...)
	{
		admin.POST("/categories", h.Category.CreateCategory)
		admin.PUT("/categories/:id", h.Category.UpdateCategory)
		admin.DELETE("/categories/:id", h.Category.DeleteCategory)
	}
}
