package provider_controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/blocked_date_models"
	"github.com/altai-travel/booking/models/provider_models"
	"github.com/altai-travel/booking/models/shared_models"
	"github.com/altai-travel/booking/utils"
)

// ProviderController holds dependencies for provider and blackout-date
// operations.
type ProviderController struct {
	DB *pgxpool.Pool
}

// NewProviderController creates a new instance of ProviderController.
func NewProviderController(db *pgxpool.Pool) *ProviderController {
	return &ProviderController{DB: db}
}

// CreateProviderRequest is the payload for POST /api/providers.
type CreateProviderRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// UpdateProviderRequest is the payload for PATCH /api/providers/:provider_id.
type UpdateProviderRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone *string `json:"phone,omitempty"`
}

// BlockDatesRequest accepts a single day or a list for blackout creation.
type BlockDatesRequest struct {
	Date  string   `json:"date,omitempty"`
	Dates []string `json:"dates,omitempty"`
}

// requireOwner loads a provider and verifies the authenticated user owns it.
// On failure it writes the response and returns false.
func (pc *ProviderController) requireOwner(c *gin.Context, providerID uuid.UUID) (*provider_models.Provider, bool) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return nil, false
	}

	provider, err := provider_models.GetProviderByID(c.Request.Context(), pc.DB, providerID)
	if err != nil {
		pc.respondError(c, err)
		return nil, false
	}
	if !provider.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your provider"})
		return nil, false
	}
	return provider, true
}

// CreateProvider handles POST /api/providers. The authenticated user becomes
// the provider's owner.
func (pc *ProviderController) CreateProvider(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	ownerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	provider, err := provider_models.NewProvider(ownerID, req.Name, req.Email, req.Phone)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create provider object: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	created, err := provider_models.CreateProvider(c.Request.Context(), pc.DB, provider)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetProvider handles GET /api/providers/:provider_id.
func (pc *ProviderController) GetProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	provider, err := provider_models.GetProviderByID(c.Request.Context(), pc.DB, providerID)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, provider)
}

// ListProviders handles GET /api/providers.
func (pc *ProviderController) ListProviders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	providers, total, err := provider_models.ListProviders(c.Request.Context(), pc.DB, page, limit)
	if err != nil {
		pc.respondError(c, err)
		return
	}
	if providers == nil {
		providers = []provider_models.Provider{}
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

// UpdateProvider handles PATCH /api/providers/:provider_id.
func (pc *ProviderController) UpdateProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	var req UpdateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	provider, ok := pc.requireOwner(c, providerID)
	if !ok {
		return
	}

	if req.Name != nil {
		provider.Name = *req.Name
	}
	if req.Email != nil {
		provider.Email = *req.Email
	}
	if req.Phone != nil {
		provider.Phone = *req.Phone
	}

	updated, err := provider_models.UpdateProvider(c.Request.Context(), pc.DB, provider)
	if err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteProvider handles DELETE /api/providers/:provider_id.
func (pc *ProviderController) DeleteProvider(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	if _, ok := pc.requireOwner(c, providerID); !ok {
		return
	}

	if err := provider_models.DeleteProvider(c.Request.Context(), pc.DB, providerID); err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "provider deleted"})
}

// ListBlockedDates handles GET /api/providers/:provider_id/blocked-dates.
func (pc *ProviderController) ListBlockedDates(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	ctx := c.Request.Context()
	if _, err := provider_models.GetProviderByID(ctx, pc.DB, providerID); err != nil {
		pc.respondError(c, err)
		return
	}

	blocked, err := blocked_date_models.ListBlockedDates(ctx, pc.DB, providerID)
	if err != nil {
		pc.respondError(c, err)
		return
	}
	if blocked == nil {
		blocked = []blocked_date_models.BlockedDate{}
	}

	c.JSON(http.StatusOK, gin.H{"blocked_dates": blocked})
}

// BlockDates handles POST /api/providers/:provider_id/blocked-dates.
// Accepts a single date or a list; already-blocked days are skipped.
func (pc *ProviderController) BlockDates(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	var req BlockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	days := req.Dates
	if req.Date != "" {
		days = append(days, req.Date)
	}
	days, err = shared_models.NormalizeDays(days)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(days) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one date is required"})
		return
	}

	if _, ok := pc.requireOwner(c, providerID); !ok {
		return
	}

	ctx := c.Request.Context()
	created := make([]blocked_date_models.BlockedDate, 0, len(days))
	for _, day := range days {
		bd, err := blocked_date_models.NewBlockedDate(providerID, day)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to create blocked date object: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if _, err := blocked_date_models.CreateBlockedDate(ctx, pc.DB, bd); err != nil {
			pc.respondError(c, err)
			return
		}
		created = append(created, *bd)
	}

	c.JSON(http.StatusCreated, gin.H{"blocked_dates": created})
}

// UnblockDate handles DELETE /api/providers/:provider_id/blocked-dates/:day.
func (pc *ProviderController) UnblockDate(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	if _, ok := pc.requireOwner(c, providerID); !ok {
		return
	}

	day := c.Param("day")
	if err := blocked_date_models.DeleteBlockedDate(c.Request.Context(), pc.DB, providerID, day); err != nil {
		pc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "date unblocked"})
}

func (pc *ProviderController) respondError(c *gin.Context, err error) {
	status := utils.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("Provider operation failed: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if errors.Is(err, utils.ErrNotFound) {
		c.JSON(status, gin.H{"error": "not found"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
