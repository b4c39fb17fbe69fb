package service_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/provider_models"
	"github.com/altai-travel/booking/models/season_models"
	"github.com/altai-travel/booking/models/service_models"
	"github.com/altai-travel/booking/models/shared_models"
	"github.com/altai-travel/booking/utils"
)

// ServiceController holds dependencies for service operations.
type ServiceController struct {
	DB *pgxpool.Pool
}

// NewServiceController creates a new instance of ServiceController.
func NewServiceController(db *pgxpool.Pool) *ServiceController {
	return &ServiceController{DB: db}
}

// CreateServiceRequest is the payload for POST /api/services.
type CreateServiceRequest struct {
	ProviderID uuid.UUID `json:"provider_id" binding:"required"`
	Category   string    `json:"category"`
	Title      string    `json:"title" binding:"required"`
	Price      float64   `json:"price" binding:"required,gt=0"`
}

// UpdateServiceRequest is the payload for PATCH /api/services/:service_id.
type UpdateServiceRequest struct {
	Category *string  `json:"category,omitempty"`
	Title    *string  `json:"title,omitempty"`
	Price    *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	IsActive *bool    `json:"is_active,omitempty"`
}

// requireOwner verifies the authenticated user owns the provider. On failure
// it writes the response and returns false.
func (sc *ServiceController) requireOwner(c *gin.Context, providerID uuid.UUID) bool {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return false
	}

	provider, err := provider_models.GetProviderByID(c.Request.Context(), sc.DB, providerID)
	if err != nil {
		sc.respondError(c, err)
		return false
	}
	if !provider.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your provider"})
		return false
	}
	return true
}

// CreateService handles POST /api/services. Only the provider's owner may
// create services under it.
func (sc *ServiceController) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	if !sc.requireOwner(c, req.ProviderID) {
		return
	}

	ctx := c.Request.Context()
	service, err := service_models.NewService(req.ProviderID, req.Category, req.Title, req.Price)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create service object: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	created, err := service_models.CreateService(ctx, sc.DB, service)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetService handles GET /api/services/:service_id.
func (sc *ServiceController) GetService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	service, err := service_models.GetServiceByID(c.Request.Context(), sc.DB, serviceID)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, service)
}

// ListProviderServices handles GET /api/providers/:provider_id/services.
func (sc *ServiceController) ListProviderServices(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	ctx := c.Request.Context()
	if _, err := provider_models.GetProviderByID(ctx, sc.DB, providerID); err != nil {
		sc.respondError(c, err)
		return
	}

	services, err := service_models.GetServicesByProvider(ctx, sc.DB, providerID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if services == nil {
		services = []service_models.Service{}
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// UpdateService handles PATCH /api/services/:service_id.
func (sc *ServiceController) UpdateService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	ctx := c.Request.Context()
	service, err := service_models.GetServiceByID(ctx, sc.DB, serviceID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if !sc.requireOwner(c, service.ProviderID) {
		return
	}

	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Title != nil {
		service.Title = *req.Title
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	updated, err := service_models.UpdateService(ctx, sc.DB, service)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteService handles DELETE /api/services/:service_id.
func (sc *ServiceController) DeleteService(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	ctx := c.Request.Context()
	service, err := service_models.GetServiceByID(ctx, sc.DB, serviceID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if !sc.requireOwner(c, service.ProviderID) {
		return
	}

	if err := service_models.DeleteService(ctx, sc.DB, serviceID); err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service deleted"})
}

// GetQuote handles GET /api/services/:service_id/quote?date=. It returns the
// service price together with the season label that applies on the date.
func (sc *ServiceController) GetQuote(c *gin.Context) {
	serviceID, err := uuid.Parse(c.Param("service_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
		return
	}

	day, err := shared_models.ParseDay(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	service, err := service_models.GetServiceByID(ctx, sc.DB, serviceID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if !service.IsActive {
		c.JSON(http.StatusConflict, gin.H{"error": "service is not active"})
		return
	}

	seasons, err := season_models.GetSeasonsByProvider(ctx, sc.DB, service.ProviderID)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_id": service.ID,
		"date":       day.Format(shared_models.DayFormat),
		"price":      service.Price,
		"season":     season_models.ResolveLabel(day, seasons, season_models.DefaultLabel),
	})
}

func (sc *ServiceController) respondError(c *gin.Context, err error) {
	status := utils.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("Service operation failed: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if errors.Is(err, utils.ErrNotFound) {
		c.JSON(status, gin.H{"error": "not found"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
