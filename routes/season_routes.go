package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/altai-travel/booking/config/db"
	"github.com/altai-travel/booking/controllers/season_controller"
	middleware "github.com/altai-travel/booking/middlewares"
	"github.com/altai-travel/booking/middlewares/auth"
)

// RegisterSeasonRoutes registers season endpoints under a provider scope.
func RegisterSeasonRoutes(router *gin.Engine) {
	seasonController := season_controller.NewSeasonController(db.DB)

	api := router.Group("/api")

	api.GET("/providers/:provider_id/seasons",
		middleware.NewRateLimiter("30-1m", "list-seasons"),
		seasonController.ListSeasons)

	protected := api.Group("/providers/:provider_id/seasons")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("",
			middleware.NewRateLimiter("10-1m", "create-season"),
			seasonController.CreateSeason)
		protected.PATCH("/:season_id",
			middleware.NewRateLimiter("10-1m", "update-season"),
			seasonController.UpdateSeason)
		protected.DELETE("/:season_id",
			middleware.NewRateLimiter("5-1m", "delete-season"),
			seasonController.DeleteSeason)
	}
}
