package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/altai-travel/booking/config/db"
	"github.com/altai-travel/booking/controllers/provider_controller"
	middleware "github.com/altai-travel/booking/middlewares"
	"github.com/altai-travel/booking/middlewares/auth"
)

// RegisterProviderRoutes registers provider CRUD and blackout-date endpoints.
func RegisterProviderRoutes(router *gin.Engine) {
	providerController := provider_controller.NewProviderController(db.DB)

	api := router.Group("/api")

	api.GET("/providers",
		middleware.NewRateLimiter("30-1m", "list-providers"),
		providerController.ListProviders)
	api.GET("/providers/:provider_id",
		middleware.NewRateLimiter("30-1m", "get-provider"),
		providerController.GetProvider)
	api.GET("/providers/:provider_id/blocked-dates",
		middleware.NewRateLimiter("30-1m", "list-blocked-dates"),
		providerController.ListBlockedDates)

	protected := api.Group("/providers")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("",
			middleware.NewRateLimiter("10-1m", "create-provider"),
			providerController.CreateProvider)
		protected.PATCH("/:provider_id",
			middleware.NewRateLimiter("10-1m", "update-provider"),
			providerController.UpdateProvider)
		protected.DELETE("/:provider_id",
			middleware.NewRateLimiter("5-1m", "delete-provider"),
			providerController.DeleteProvider)

		protected.POST("/:provider_id/blocked-dates",
			middleware.CombinedRateLimiter("block-dates", "10-1m", "40-10m"),
			providerController.BlockDates)
		protected.DELETE("/:provider_id/blocked-dates/:day",
			middleware.NewRateLimiter("10-1m", "unblock-date"),
			providerController.UnblockDate)
	}
}
