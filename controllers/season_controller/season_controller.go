package season_controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/provider_models"
	"github.com/altai-travel/booking/models/season_models"
	"github.com/altai-travel/booking/utils"
)

// SeasonController holds dependencies for season operations.
type SeasonController struct {
	DB *pgxpool.Pool
}

// NewSeasonController creates a new instance of SeasonController.
func NewSeasonController(db *pgxpool.Pool) *SeasonController {
	return &SeasonController{DB: db}
}

// SeasonRequest is the payload for creating or updating a season.
type SeasonRequest struct {
	Label     string `json:"label" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// requireOwner verifies the authenticated user owns the provider. On failure
// it writes the response and returns false.
func (sc *SeasonController) requireOwner(c *gin.Context, providerID uuid.UUID) bool {
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

// ListSeasons handles GET /api/providers/:provider_id/seasons.
func (sc *SeasonController) ListSeasons(c *gin.Context) {
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

	seasons, err := season_models.GetSeasonsByProvider(ctx, sc.DB, providerID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if seasons == nil {
		seasons = []season_models.Season{}
	}

	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// CreateSeason handles POST /api/providers/:provider_id/seasons. Only the
// provider's owner may create seasons; a range that overlaps an existing
// season of the same provider is rejected with 409.
func (sc *SeasonController) CreateSeason(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	season, err := season_models.NewSeason(providerID, req.Label, req.StartDate, req.EndDate)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	if !sc.requireOwner(c, providerID) {
		return
	}

	ctx := c.Request.Context()
	existing, err := season_models.GetSeasonsByProvider(ctx, sc.DB, providerID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if season_models.HasOverlap(existing, season.StartDate, season.EndDate, uuid.Nil) {
		c.JSON(http.StatusConflict, gin.H{"error": "season range overlaps an existing season"})
		return
	}

	created, err := season_models.CreateSeason(ctx, sc.DB, season)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateSeason handles PATCH /api/providers/:provider_id/seasons/:season_id.
func (sc *SeasonController) UpdateSeason(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	seasonID, err := uuid.Parse(c.Param("season_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid season id"})
		return
	}

	var req SeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	startDate, endDate, err := season_models.NormalizeRange(req.StartDate, req.EndDate)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	if !sc.requireOwner(c, providerID) {
		return
	}

	ctx := c.Request.Context()
	existing, err := season_models.GetSeasonsByProvider(ctx, sc.DB, providerID)
	if err != nil {
		sc.respondError(c, err)
		return
	}
	if season_models.HasOverlap(existing, startDate, endDate, seasonID) {
		c.JSON(http.StatusConflict, gin.H{"error": "season range overlaps an existing season"})
		return
	}

	season := &season_models.Season{
		ID:         seasonID,
		ProviderID: providerID,
		Label:      req.Label,
		StartDate:  startDate,
		EndDate:    endDate,
	}
	updated, err := season_models.UpdateSeason(ctx, sc.DB, season)
	if err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteSeason handles DELETE /api/providers/:provider_id/seasons/:season_id.
func (sc *SeasonController) DeleteSeason(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}
	seasonID, err := uuid.Parse(c.Param("season_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid season id"})
		return
	}

	if !sc.requireOwner(c, providerID) {
		return
	}

	if err := season_models.DeleteSeason(c.Request.Context(), sc.DB, seasonID, providerID); err != nil {
		sc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "season deleted"})
}

func (sc *SeasonController) respondError(c *gin.Context, err error) {
	status := utils.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("Season operation failed: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if errors.Is(err, utils.ErrNotFound) {
		c.JSON(status, gin.H{"error": "not found"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
