package booking_controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altai-travel/booking/logger"
	"github.com/altai-travel/booking/models/blocked_date_models"
	"github.com/altai-travel/booking/models/booking_models"
	"github.com/altai-travel/booking/models/provider_models"
	"github.com/altai-travel/booking/models/service_models"
	"github.com/altai-travel/booking/models/shared_models"
	"github.com/altai-travel/booking/utils"
	"github.com/altai-travel/booking/utils/mail"
)

// BookingController holds dependencies for booking operations.
type BookingController struct {
	DB *pgxpool.Pool
}

// NewBookingController creates a new instance of BookingController.
func NewBookingController(db *pgxpool.Pool) *BookingController {
	return &BookingController{DB: db}
}

// CreateBookingRequest is the payload for POST /api/bookings. The requested
// days come either as an explicit list or as an inclusive start/end range,
// never both.
type CreateBookingRequest struct {
	ProviderID   uuid.UUID  `json:"provider_id" binding:"required"`
	ServiceID    *uuid.UUID `json:"service_id,omitempty"`
	Dates        []string   `json:"dates,omitempty"`
	StartDate    string     `json:"start_date,omitempty"`
	EndDate      string     `json:"end_date,omitempty"`
	Note         string     `json:"note,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty" binding:"omitempty,email"`
	Attachments  []string   `json:"attachments,omitempty"`
}

// resolveDays expands the request into a normalized day list.
func (r *CreateBookingRequest) resolveDays() ([]string, error) {
	hasList := len(r.Dates) > 0
	hasRange := r.StartDate != "" || r.EndDate != ""

	switch {
	case hasList && hasRange:
		return nil, errors.New("provide either dates or start_date/end_date, not both")
	case hasList:
		return shared_models.NormalizeDays(r.Dates)
	case r.StartDate != "" && r.EndDate != "":
		return shared_models.ExpandDayRange(r.StartDate, r.EndDate)
	default:
		return nil, errors.New("at least one date is required")
	}
}

// CreateBooking handles POST /api/bookings. The conflict check and the insert
// run in one transaction under a per-provider advisory lock; losing a race
// yields the same 409 payload as an upfront conflict.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnLogger.Warnf("Failed to bind booking request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request data"})
		return
	}

	days, err := req.resolveDays()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	provider, err := provider_models.GetProviderByID(ctx, bc.DB, req.ProviderID)
	if err != nil {
		bc.respondError(c, err)
		return
	}

	// A service id must belong to the booked provider; availability itself is
	// provider-scoped.
	if req.ServiceID != nil {
		ownerID, err := service_models.ResolveProviderID(ctx, bc.DB, *req.ServiceID)
		if err != nil {
			bc.respondError(c, err)
			return
		}
		if ownerID != req.ProviderID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "service does not belong to provider"})
			return
		}
	}

	booking, err := booking_models.NewBooking(req.ProviderID, req.ServiceID, customerID, req.Note, req.ContactEmail, req.Attachments)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create booking object: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	created, conflicts, err := booking_models.CreateBookingWithDates(ctx, bc.DB, booking, days)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if len(conflicts) > 0 {
		c.JSON(http.StatusConflict, gin.H{"conflicts": conflicts})
		return
	}

	go mail.SendBookingRequestMail(provider.Email, provider.Name, created.Dates)

	c.JSON(http.StatusCreated, created)
}

// CheckConflicts handles GET /api/bookings/check. It is advisory: the
// authoritative check re-runs inside the booking transaction.
func (bc *BookingController) CheckConflicts(c *gin.Context) {
	providerParam := c.Query("providerId")
	serviceParam := c.Query("serviceId")
	if (providerParam == "") == (serviceParam == "") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of providerId or serviceId is required"})
		return
	}

	var days []string
	var err error
	if datesParam := c.Query("dates"); datesParam != "" {
		days, err = shared_models.NormalizeDays(strings.Split(datesParam, ","))
	} else if c.Query("startDate") != "" && c.Query("endDate") != "" {
		days, err = shared_models.ExpandDayRange(c.Query("startDate"), c.Query("endDate"))
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates or startDate/endDate required"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var providerID uuid.UUID
	if serviceParam != "" {
		serviceID, parseErr := uuid.Parse(serviceParam)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid serviceId"})
			return
		}
		providerID, err = service_models.ResolveProviderID(ctx, bc.DB, serviceID)
	} else {
		providerID, err = uuid.Parse(providerParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid providerId"})
			return
		}
		_, err = provider_models.GetProviderByID(ctx, bc.DB, providerID)
	}
	if err != nil {
		bc.respondError(c, err)
		return
	}

	booked, err := booking_models.GetBookedDays(ctx, bc.DB, providerID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	blocked, err := blocked_date_models.GetBlockedDays(ctx, bc.DB, providerID)
	if err != nil {
		bc.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"conflicts": booking_models.ComputeConflicts(days, booked, blocked)})
}

// GetBooking handles GET /api/bookings/:booking_id. Only the requester may
// read their booking.
func (bc *BookingController) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	booking, err := booking_models.GetBookingByID(c.Request.Context(), bc.DB, bookingID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if booking.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetMyBookings handles GET /api/bookings with status/page/limit filters.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	status := c.Query("status")
	page, limit := parsePagination(c)

	bookings, total, err := booking_models.GetBookingsByCustomer(c.Request.Context(), bc.DB, customerID, status, page, limit)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []booking_models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// UpdateBookingStatusRequest is the provider decision payload.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active rejected"`
}

// UpdateBookingStatus handles PATCH /api/bookings/:booking_id/status, the
// provider's accept/reject decision on a pending request. Only the owner of
// the booked provider may decide.
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be active or rejected"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	booking, err := booking_models.GetBookingByID(ctx, bc.DB, bookingID)
	if err != nil {
		bc.respondError(c, err)
		return
	}

	provider, err := provider_models.GetProviderByID(ctx, bc.DB, booking.ProviderID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if !provider.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your provider"})
		return
	}

	if booking.Status != shared_models.BookingStatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "only pending bookings can be decided"})
		return
	}

	if err := booking_models.UpdateBookingStatus(ctx, bc.DB, bookingID, req.Status); err != nil {
		bc.respondError(c, err)
		return
	}

	if booking.ContactEmail != "" {
		decision := "accepted"
		if req.Status == shared_models.BookingStatusRejected {
			decision = "rejected"
		}
		go mail.SendBookingDecisionMail(booking.ContactEmail, provider.Name, decision, booking.Dates)
	}

	booking.Status = req.Status
	c.JSON(http.StatusOK, booking)
}

// CancelBooking handles PATCH /api/bookings/:booking_id/cancel. The requester
// cancels their own booking; its dates become available again.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("booking_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	customerID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	booking, err := booking_models.GetBookingByID(ctx, bc.DB, bookingID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if booking.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your booking"})
		return
	}
	if !shared_models.IsOccupyingStatus(booking.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is already " + booking.Status})
		return
	}

	if err := booking_models.UpdateBookingStatus(ctx, bc.DB, bookingID, shared_models.BookingStatusCancelled); err != nil {
		bc.respondError(c, err)
		return
	}

	booking.Status = shared_models.BookingStatusCancelled
	c.JSON(http.StatusOK, booking)
}

// GetProviderBookings handles GET /api/providers/:provider_id/bookings for
// the provider-side dashboard. Only the provider's owner may list them.
func (bc *BookingController) GetProviderBookings(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("provider_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider id"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(utils.StatusCode(err), gin.H{"error": err.Error()})
		return
	}

	provider, err := provider_models.GetProviderByID(c.Request.Context(), bc.DB, providerID)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if !provider.IsOwnedBy(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your provider"})
		return
	}

	status := c.Query("status")
	page, limit := parsePagination(c)

	bookings, total, err := booking_models.GetBookingsByProvider(c.Request.Context(), bc.DB, providerID, status, page, limit)
	if err != nil {
		bc.respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []booking_models.Booking{}
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func (bc *BookingController) respondError(c *gin.Context, err error) {
	status := utils.StatusCode(err)
	if status == http.StatusInternalServerError {
		logger.ErrorLogger.Errorf("Booking operation failed: %v", err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	if errors.Is(err, utils.ErrNotFound) {
		c.JSON(status, gin.H{"error": "not found"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
