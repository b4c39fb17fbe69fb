package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/altai-travel/booking/config/db"
	"github.com/altai-travel/booking/controllers/service_controller"
	middleware "github.com/altai-travel/booking/middlewares"
	"github.com/altai-travel/booking/middlewares/auth"
)

// RegisterServiceRoutes registers service CRUD and quote endpoints.
func RegisterServiceRoutes(router *gin.Engine) {
	serviceController := service_controller.NewServiceController(db.DB)

	api := router.Group("/api")

	api.GET("/services/:service_id",
		middleware.NewRateLimiter("30-1m", "get-service"),
		serviceController.GetService)
	api.GET("/services/:service_id/quote",
		middleware.NewRateLimiter("30-1m", "get-quote"),
		serviceController.GetQuote)
	api.GET("/providers/:provider_id/services",
		middleware.NewRateLimiter("30-1m", "provider-services"),
		serviceController.ListProviderServices)

	protected := api.Group("/services")
	protected.Use(auth.AuthMiddleware())
	{
		protected.POST("",
			middleware.NewRateLimiter("10-1m", "create-service"),
			serviceController.CreateService)
		protected.PATCH("/:service_id",
			middleware.NewRateLimiter("10-1m", "update-service"),
			serviceController.UpdateService)
		protected.DELETE("/:service_id",
			middleware.NewRateLimiter("5-1m", "delete-service"),
			serviceController.DeleteService)
	}
}
