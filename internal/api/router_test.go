package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoindus/site-backend-go/internal/config"
	"github.com/ecoindus/site-backend-go/internal/database"
	"github.com/ecoindus/site-backend-go/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "test.db")
	cfg.AdminKey = "admin-key"
	cfg.JWTSecret = "test-secret-0123456789abcdef-0123"
	cfg.RateLimitRPS = 100
	cfg.RateLimitBurst = 100
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	db, err := database.Setup(database.Config{Path: cfg.DBPath})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r, stop := SetupRouter(cfg, db)
	t.Cleanup(stop)
	return r
}

func do(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validConsultation() map[string]string {
	return map[string]string{
		"company_name":   "Test Company",
		"contact_name":   "João Silva",
		"email":          "joao@testcompany.com",
		"phone":          "(67) 99999-9999",
		"industry":       "manufacturing",
		"project_type":   "energy_efficiency",
		"message":        "Interested in energy efficiency consultation",
		"preferred_date": "2024-12-15",
	}
}

func TestSetupRouterStopReleasesLimiters(t *testing.T) {
	cfg := config.Default()
	cfg.DBPath = filepath.Join(t.TempDir(), "stop.db")
	cfg.AdminKey = "admin-key"
	cfg.JWTSecret = "test-secret-0123456789abcdef-0123"

	db, err := database.Setup(database.Config{Path: cfg.DBPath})
	require.NoError(t, err)
	defer db.Close()

	before := runtime.NumGoroutine()
	_, stop := SetupRouter(cfg, db)
	assert.Greater(t, runtime.NumGoroutine(), before)

	stop()
	stop()
	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, time.Second, 10*time.Millisecond)
}

func TestRootAndHealth(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/api/", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EcoIndus Solutions API")

	w = do(r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/nonexistent", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCalculateCarbon(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, path := range []string{"/api/calculate-carbon", "/api/calcular-carbono"} {
		t.Run(path, func(t *testing.T) {
			w := do(r, http.MethodPost, path+"?waste_amount=100", nil, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var got models.CalculationResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, 100.0, got.WasteAmount)
			assert.Equal(t, 0.0, got.EnergyUsage)
			assert.Equal(t, 45.0, got.CarbonSaved)
			assert.Equal(t, int64(20), got.TreesEquivalent)
			assert.Equal(t, 6750.0, got.RevenuePotential)
		})
	}

	w := do(r, http.MethodPost, "/api/calculate-carbon?waste_amount=100&energy_usage=500", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got models.CalculationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 195.0, got.CarbonSaved)
}

func TestCalculateCarbonRejectsBadInput(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, query := range []string{"", "?waste_amount=abc", "?waste_amount=-5", "?waste_amount=NaN", "?waste_amount=10&energy_usage=-1",
		"?waste_amount=1e20", "?waste_amount=3e306", "?waste_amount=10&energy_usage=1e13"} {
		w := do(r, http.MethodPost, "/api/calculate-carbon"+query, nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}

	w := do(r, http.MethodPost, "/api/calculate-carbon?waste_amount=0", nil, "")
	assert.Equal(t, http.StatusOK, w.Code, "explicit zero is a valid quantity")
}

func TestConsultationFlow(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodPost, "/api/consultation", validConsultation(), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created models.ConsultationRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Test Company", created.CompanyName)
	assert.Equal(t, models.StatusPending, created.Status)

	// listing requires a token
	w = do(r, http.MethodGet, "/api/consultations", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/token", map[string]string{"admin_key": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, "/api/auth/token", map[string]string{"admin_key": "admin-key"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	var tokenResp struct {
		Data models.TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokenResp))
	token := tokenResp.Data.Token
	require.NotEmpty(t, token)

	w = do(r, http.MethodGet, "/api/consultations", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Data models.ConsultationsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, int64(1), list.Data.Total)
	assert.Equal(t, 1, list.Data.TotalPages)
	require.Len(t, list.Data.Data, 1)
	assert.Equal(t, created.ID, list.Data.Data[0].ID)

	w = do(r, http.MethodGet, "/api/consultations/"+created.ID, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/consultations/missing", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConsultationValidation(t *testing.T) {
	r := newTestRouter(t, nil)

	tests := []struct {
		name   string
		mutate func(map[string]string)
	}{
		{name: "missing company", mutate: func(m map[string]string) { delete(m, "company_name") }},
		{name: "blank contact", mutate: func(m map[string]string) { m["contact_name"] = "  " }},
		{name: "bad email", mutate: func(m map[string]string) { m["email"] = "not-an-email" }},
		{name: "unknown project type", mutate: func(m map[string]string) { m["project_type"] = "mining" }},
		{name: "unknown industry", mutate: func(m map[string]string) { m["industry"] = "aerospace" }},
		{name: "bad date", mutate: func(m map[string]string) { m["preferred_date"] = "15/12/2024" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validConsultation()
			tt.mutate(body)
			w := do(r, http.MethodPost, "/api/consultation", body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	body := validConsultation()
	delete(body, "industry")
	delete(body, "message")
	delete(body, "preferred_date")
	w := do(r, http.MethodPost, "/api/consultation", body, "")
	assert.Equal(t, http.StatusOK, w.Code, "optional fields may be omitted")
}

func TestConsultationRateLimited(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.RateLimitRPS = 0.001
		cfg.RateLimitBurst = 1
	})

	w := do(r, http.MethodPost, "/api/consultation", validConsultation(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(r, http.MethodPost, "/api/consultation", validConsultation(), "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestAdminRoutesDisabledWithoutKey(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) { cfg.AdminKey = "" })

	w := do(r, http.MethodPost, "/api/auth/token", map[string]string{"admin_key": ""}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = do(r, http.MethodGet, "/api/consultations", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
