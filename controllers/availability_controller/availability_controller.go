package availability_controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/blocked_date_models"
	"github.com/altai-travel/booking/models/booking_models"
	"github.com/altai-travel/booking/models/provider_models"
	"github.com/altai-travel/booking/models/service_models"
	"github.com/altai-travel/booking/utils"
)

// AvailabilityController serves the booked/blocked date sets clients use to
// disable calendar days.
type AvailabilityController struct {
	DB *pgxpool.Pool
}

// NewAvailabilityController creates a new instance of AvailabilityController.
func NewAvailabilityController(db *pgxpool.Pool) *AvailabilityController {
	return &AvailabilityController{DB: db}
}

// AvailabilityResponse holds the occupied date sets of a provider calendar.
type AvailabilityResponse struct {
	Booked  []string `json:"booked"`
	Blocked []string `json:"blocked"`
}

// GetAvailability handles GET /api/availability?providerId=&serviceId=.
// Exactly one of the two query params must identify a valid provider; a
// service ID is resolved to its owning provider.
func (ac *AvailabilityController) GetAvailability(c *gin.Context) {
	providerParam := c.Query("providerId")
	serviceParam := c.Query("serviceId")

	if (providerParam == "") == (serviceParam == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of providerId or serviceId is required"})
		return
	}

	ctx := c.Request.Context()
	var providerID uuid.UUID
	var err error

	if serviceParam != "" {
		serviceID, parseErr := uuid.Parse(serviceParam)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid serviceId"})
			return
		}
		providerID, err = service_models.ResolveProviderID(ctx, ac.DB, serviceID)
		if err != nil {
			respondError(c, err, "Failed to resolve service")
			return
		}
	} else {
		providerID, err = uuid.Parse(providerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid providerId"})
			return
		}
		if _, err := provider_models.GetProviderByID(ctx, ac.DB, providerID); err != nil {
			respondError(c, err, "Failed to fetch provider")
			return
		}
	}

	resp, err := ac.readAvailability(ctx, providerID)
	if err != nil {
		respondError(c, err, "Failed to read availability")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProviderCalendar handles GET /api/providers/:provider_id/calendar, the
// path-scoped variant consumed by calendar widgets.
func (ac *AvailabilityController) GetProviderCalendar(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	ctx := c.Request.Context()
	if _, err := provider_models.GetProviderByID(ctx, ac.DB, providerID); err != nil {
		respondError(c, err, "Failed to fetch provider")
		return
	}

	resp, err := ac.readAvailability(ctx, providerID)
	if err != nil {
		respondError(c, err, "Failed to read availability")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// readAvailability unions the two occupied-date sources. Either both queries
// succeed or the caller gets an error; no partial results.
func (ac *AvailabilityController) readAvailability(ctx context.Context, providerID uuid.UUID) (*AvailabilityResponse, error) {
	booked, err := booking_models.GetBookedDays(ctx, ac.DB, providerID)
	if err != nil {
		return nil, err
	}
	blocked, err := blocked_date_models.GetBlockedDays(ctx, ac.DB, providerID)
	if err != nil {
		return nil, err
	}

	if booked == nil {
		booked = []string{}
	}
	if blocked == nil {
		blocked = []string{}
	}
	return &AvailabilityResponse{Booked: booked, Blocked: blocked}, nil
}

func respondError(c *gin.Context, err error, logMsg string) {
	status := utils.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("%s: %v", logMsg, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if errors.Is(err, utils.ErrNotFound) {
		c.JSON(status, gin.H{"error": "provider or service not found"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
