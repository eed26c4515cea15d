package routes

import "github.com/gin-gonic/gin"

func ProfileRoutes(api *gin.RouterGroup, h Handlers) {
	profile := api.Group("", h.RequireAuth)
	{
		profile.GET("/profile", h.Profile.GetProfile)
		profile.PUT("/profile", h.Profile.UpdateProfile)
		profile.GET("/addresses", h.Profile.GetAddresses)
		profile.POST("/addresses", h.Profile.CreateAddress)
		profile.PUT("/addresses/:id", h.Profile.UpdateAddress)
		profile.DELETE("/addresses/:id", h.Profile.DeleteAddress)
	}
}
