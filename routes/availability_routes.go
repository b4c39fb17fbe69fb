package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/altai-travel/booking/config/db"
	"github.com/altai-travel/booking/controllers/availability_controller"
	middleware "github.com/altai-travel/booking/middlewares"
)

// RegisterAvailabilityRoutes registers the public availability read endpoints.
func RegisterAvailabilityRoutes(router *gin.Engine) {
	availabilityController := availability_controller.NewAvailabilityController(db.DB)

	api := router.Group("/api")
	{
		api.GET("/availability",
			middleware.NewRateLimiter("60-1m", "availability"),
			availabilityController.GetAvailability)

		api.GET("/providers/:provider_id/calendar",
			middleware.NewRateLimiter("60-1m", "provider-calendar"),
			availabilityController.GetProviderCalendar)
	}
}
