package service_controller

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
	sc := NewServiceController(nil)
	r.POST("/api/services", sc.CreateService)
	r.GET("/api/services/:service_id", sc.GetService)
	r.GET("/api/services/:service_id/quote", sc.GetQuote)
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

func TestCreateServiceRequiresFields(t *testing.T) {
	r := setupRouter()

	w := perform(r, http.MethodPost, "/api/services", `{"title": "Horse trek"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPost, "/api/services",
		`{"provider_id": "`+uuid.NewString()+`", "title": "Horse trek", "price": -10}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetServiceRejectsMalformedID(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodGet, "/api/services/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuoteRequiresValidDate(t *testing.T) {
	r := setupRouter()

	w := perform(r, http.MethodGet, "/api/services/"+uuid.NewString()+"/quote", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodGet, "/api/services/"+uuid.NewString()+"/quote?date=June", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetQuoteRejectsMalformedServiceID(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodGet, "/api/services/abc/quote?date=2025-06-10", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateServiceRequiresAuthenticatedOwner(t *testing.T) {
	r := setupRouter()
	body := `{"provider_id": "` + uuid.NewString() + `", "title": "Horse trek", "price": 120}`
	w := perform(r, http.MethodPost, "/api/services", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
