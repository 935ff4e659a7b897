package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"report-generator-service/config"
	"report-generator-service/engine"
	"report-generator-service/models"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		FetchTimeout:         200 * time.Millisecond,
		FetchRetries:         0,
		MaxConcurrentFetches: 4,
		MaxImageDimension:    512,
		UserAgent:            "test",
		CurrencyLocale:       "en-US",
		CurrencySymbol:       "$",
		OSMTileURL:           "http://127.0.0.1:1/%d/%d/%d.png",
	}
	h := NewHandlers(engine.New(cfg))

	router := gin.New()
	api := router.Group("/api/v3")
	api.GET("/health", h.HealthCheck)
	api.POST("/reports/generate", h.GenerateReport)
	api.POST("/reports/generate/comparison", h.GenerateComparisonReport)
	return router
}

func testInspection() models.InspectionInput {
	return models.InspectionInput{
		Inspection: models.InspectionInfo{ID: "insp-1", InspectorName: "Dana"},
		Property:   models.PropertyInfo{Name: "Oak House", Address: "12 Oak St"},
		Rooms: []models.Room{{
			Name: "Kitchen",
			// Unreachable URL: generation falls back to a placeholder image.
			Photos: []models.Photo{{URL: "http://127.0.0.1:1/a.jpg"}},
		}},
	}
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v3/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "report-generator-service", resp["service"])
}

func TestGenerateReportInvalidJSON(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v3/reports/generate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request body")
}

func TestGenerateReportNoRooms(t *testing.T) {
	router := setupRouter()

	w := postJSON(t, router, "/api/v3/reports/generate", GenerateRequest{
		Inspection: models.InspectionInput{
			Inspection: models.InspectionInfo{ID: "insp-1"},
		},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least one room")
}

func TestGenerateReportUnknownVariant(t *testing.T) {
	router := setupRouter()

	w := postJSON(t, router, "/api/v3/reports/generate", GenerateRequest{
		Variant:    "fancy",
		Inspection: testInspection(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Unknown variant")
}

func TestGenerateReportStandard(t *testing.T) {
	router := setupRouter()

	w := postJSON(t, router, "/api/v3/reports/generate", GenerateRequest{
		Inspection: testInspection(),
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inspection-report.pdf")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestGenerateReportTemplatedInvalidTemplate(t *testing.T) {
	router := setupRouter()

	bad := models.PhotoLayout("5x5")
	w := postJSON(t, router, "/api/v3/reports/generate", GenerateRequest{
		Variant:    "templated",
		Template:   &models.TemplateOverride{Sections: &models.SectionsOverride{PhotoLayout: &bad}},
		Inspection: testInspection(),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sections.photo_layout", resp["field"])
}

func TestGenerateComparisonReport(t *testing.T) {
	router := setupRouter()

	after := testInspection()
	after.Inspection.ID = "insp-2"
	w := postJSON(t, router, "/api/v3/reports/generate/comparison", GenerateComparisonRequest{
		Before: testInspection(),
		After:  after,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
