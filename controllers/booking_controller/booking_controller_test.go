package booking_controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockAuthMiddleware injects a fixed user id the way the JWT middleware does.
func mockAuthMiddleware(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}
}

func setupBookingRouter(userID uuid.UUID) *gin.Engine {
	r := gin.New()
	bc := NewBookingController(nil)

	r.GET("/api/bookings/check", bc.CheckConflicts)

	protected := r.Group("/api/bookings")
	protected.Use(mockAuthMiddleware(userID))
	{
		protected.POST("", bc.CreateBooking)
		protected.GET("/:booking_id", bc.GetBooking)
		protected.PATCH("/:booking_id/status", bc.UpdateBookingStatus)
		protected.PATCH("/:booking_id/cancel", bc.CancelBooking)
	}
	return r
}

func performRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingRejectsMalformedBody(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	w := performRequest(r, http.MethodPost, "/api/bookings", `{"provider_id": "not-a-uuid"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRequiresDates(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	body := `{"provider_id": "` + uuid.NewString() + `"}`
	w := performRequest(r, http.MethodPost, "/api/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one date is required")
}

func TestCreateBookingRejectsListAndRangeTogether(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	body := `{"provider_id": "` + uuid.NewString() + `", "dates": ["2025-06-10"], "start_date": "2025-06-10", "end_date": "2025-06-12"}`
	w := performRequest(r, http.MethodPost, "/api/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not both")
}

func TestCreateBookingRejectsInvalidDate(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	body := `{"provider_id": "` + uuid.NewString() + `", "dates": ["June 10th"]}`
	w := performRequest(r, http.MethodPost, "/api/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsReversedRange(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	body := `{"provider_id": "` + uuid.NewString() + `", "start_date": "2025-06-12", "end_date": "2025-06-10"}`
	w := performRequest(r, http.MethodPost, "/api/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsInvalidContactEmail(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	body := `{"provider_id": "` + uuid.NewString() + `", "dates": ["2025-06-10"], "contact_email": "nope"}`
	w := performRequest(r, http.MethodPost, "/api/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckConflictsRequiresExactlyOneScope(t *testing.T) {
	r := setupBookingRouter(uuid.New())

	w := performRequest(r, http.MethodGet, "/api/bookings/check?dates=2025-06-10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	both := "/api/bookings/check?providerId=" + uuid.NewString() + "&serviceId=" + uuid.NewString() + "&dates=2025-06-10"
	w = performRequest(r, http.MethodGet, both, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckConflictsRequiresDates(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	w := performRequest(r, http.MethodGet, "/api/bookings/check?providerId="+uuid.NewString(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "dates or startDate/endDate required")
}

func TestCheckConflictsRejectsBadProviderID(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	w := performRequest(r, http.MethodGet, "/api/bookings/check?providerId=abc&dates=2025-06-10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingRejectsInvalidID(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	w := performRequest(r, http.MethodGet, "/api/bookings/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	w := performRequest(r, http.MethodPatch, "/api/bookings/"+uuid.NewString()+"/status", `{"status": "approved"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "status must be active or rejected")
}

func TestCancelBookingRejectsInvalidID(t *testing.T) {
	r := setupBookingRouter(uuid.New())
	w := performRequest(r, http.MethodPatch, "/api/bookings/bad/cancel", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveDays(t *testing.T) {
	req := CreateBookingRequest{Dates: []string{"2025-06-12", "2025-06-10", "2025-06-10"}}
	days, err := req.resolveDays()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-12"}, days)

	req = CreateBookingRequest{StartDate: "2025-06-10", EndDate: "2025-06-12"}
	days, err = req.resolveDays()
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10", "2025-06-11", "2025-06-12"}, days)

	req = CreateBookingRequest{StartDate: "2025-06-10"}
	_, err = req.resolveDays()
	assert.Error(t, err, "a range needs both endpoints")
}

func setupUnauthenticatedRouter() *gin.Engine {
	r := gin.New()
	bc := NewBookingController(nil)
	r.PATCH("/api/bookings/:booking_id/status", bc.UpdateBookingStatus)
	r.GET("/api/providers/:provider_id/bookings", bc.GetProviderBookings)
	return r
}

func TestUpdateBookingStatusRequiresAuthenticatedOwner(t *testing.T) {
	r := setupUnauthenticatedRouter()
	w := performRequest(r, http.MethodPatch, "/api/bookings/"+uuid.NewString()+"/status", `{"status": "active"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProviderBookingsRequiresAuthenticatedOwner(t *testing.T) {
	r := setupUnauthenticatedRouter()
	w := performRequest(r, http.MethodGet, "/api/providers/"+uuid.NewString()+"/bookings", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
