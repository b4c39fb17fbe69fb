package season_controller

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
	sc := NewSeasonController(nil)
	r.POST("/api/providers/:provider_id/seasons", sc.CreateSeason)
	r.PATCH("/api/providers/:provider_id/seasons/:season_id", sc.UpdateSeason)
	r.DELETE("/api/providers/:provider_id/seasons/:season_id", sc.DeleteSeason)
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

func TestCreateSeasonRejectsMalformedProviderID(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPost, "/api/providers/abc/seasons",
		`{"label": "high", "start_date": "2025-06-01", "end_date": "2025-08-31"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSeasonRequiresAllFields(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPost, "/api/providers/"+uuid.NewString()+"/seasons", `{"label": "high"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSeasonRejectsMalformedSeasonID(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodPatch, "/api/providers/"+uuid.NewString()+"/seasons/abc",
		`{"label": "high", "start_date": "2025-06-01", "end_date": "2025-08-31"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteSeasonRejectsMalformedIDs(t *testing.T) {
	r := setupRouter()
	w := perform(r, http.MethodDelete, "/api/providers/abc/seasons/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodDelete, "/api/providers/"+uuid.NewString()+"/seasons/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateSeasonRejectsMalformedRange(t *testing.T) {
	r := setupRouter()
	path := "/api/providers/" + uuid.NewString() + "/seasons/" + uuid.NewString()

	w := perform(r, http.MethodPatch, path,
		`{"label": "high", "start_date": "June 1st", "end_date": "2025-08-31"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = perform(r, http.MethodPatch, path,
		`{"label": "high", "start_date": "2025-08-31", "end_date": "2025-06-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSeasonMutationsRequireAuthenticatedOwner(t *testing.T) {
	r := setupRouter()
	providerID := uuid.NewString()
	body := `{"label": "high", "start_date": "2025-06-01", "end_date": "2025-08-31"}`

	w := perform(r, http.MethodPost, "/api/providers/"+providerID+"/seasons", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPatch, "/api/providers/"+providerID+"/seasons/"+uuid.NewString(), body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodDelete, "/api/providers/"+providerID+"/seasons/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
