package routes

import "github.com/gin-gonic/gin"

func AuthRoutes(api *gin.RouterGroup, h Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		if h.LoginLimit != nil {
			auth.POST("/login", h.LoginLimit, h.Auth.Login)
		} else {
			auth.POST("/login", h.Auth.Login)
		}
	}
}
