package provider_controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter() *gin.Engine {
	r := gin.New()
	pc := NewProviderController(nil)
	r.POST("/api/providers", pc.CreateProvider)
	r.GET("/api/providers/:provider_id", pc.GetProvider)
	r.PATCH("/api/providers/:provider_id", pc.UpdateProvider)
	r.DELETE("/api/providers/:provider_id", pc.DeleteProvider)
	r.POST("/api/providers/:provider_id/blocked-dates", pc.BlockDates)
	r.DELETE("/api/providers/:provider_id/blocked-dates/:day", pc.UnblockDate)
	return r
}

func perform(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProviderRequiresName(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPost, "/api/providers", `{"email": "a@b.co"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProviderRejectsInvalidEmail(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPost, "/api/providers", `{"name": "Altai Tours", "email": "nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProviderRejectsMalformedID(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodGet, "/api/providers/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBlockDatesRequiresAtLeastOneDate(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPost, "/api/providers/"+uuid.NewString()+"/blocked-dates", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one date is required")
}

func TestBlockDatesRejectsInvalidDate(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPost, "/api/providers/"+uuid.NewString()+"/blocked-dates", `{"date": "June 10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnblockDateRejectsMalformedProviderID(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodDelete, "/api/providers/abc/blocked-dates/2025-06-10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProviderMutationsRequireAuthenticatedOwner(t *testing.T) {
	r := setupRouter()
	providerID := uuid.NewString()

	w := perform(r, http.MethodPost, "/api/providers", `{"name": "Altai Tours"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPatch, "/api/providers/"+providerID, `{"name": "Renamed"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodDelete, "/api/providers/"+providerID, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPost, "/api/providers/"+providerID+"/blocked-dates", `{"date": "2025-06-10"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodDelete, "/api/providers/"+providerID+"/blocked-dates/2025-06-10", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
