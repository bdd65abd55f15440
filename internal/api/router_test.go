package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"green-chemistry-helper/internal/api/handlers/reaction"
	"green-chemistry-helper/internal/core/chemistry"
	reactionService "green-chemistry-helper/internal/core/reaction"
	"green-chemistry-helper/internal/core/report"
	"green-chemistry-helper/internal/infrastructure/config"
	"green-chemistry-helper/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Version:   "test",
			PublicURL: "http://localhost:3000/results",
		},
		Server: config.ServerConfig{
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:  true,
			Requests: 1000,
			Window:   time.Minute,
		},
		DedupWindow: time.Millisecond,
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := report.NewMemoryStore(100, time.Hour, 0)
	t.Cleanup(func() { _ = store.Close() })

	cfg.App.Debug = true
	return SetupRouter(cfg, reactionService.NewService(store), nil)
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func analyze(t *testing.T, r http.Handler, body string) report.Report {
	t.Helper()
	w := request(r, http.MethodPost, "/api/v1/reactions/analyze", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	return rep
}

func TestAnalyzeAndGet(t *testing.T) {
	r := newTestRouter(t, testConfig())

	rep := analyze(t, r, `{
		"reactants": "Benzaldehyde + Acetone",
		"solvent": "Ethanol",
		"catalyst": "NaOH",
		"temperature": 50
	}`)

	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, "4-Phenyl-3-buten-2-one (Benzalacetone) (AI Predicted)", rep.Input.Products)
	assert.Equal(t, "50", rep.Input.Temperature)
	assert.Equal(t, chemistry.EcoRatingGood, rep.Result.EcoRating)
	assert.Empty(t, rep.Result.Issues)

	w := request(r, http.MethodGet, "/api/v1/reactions/"+rep.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var got report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, rep.ID, got.ID)
	assert.Equal(t, rep.Result, got.Result)
}

func TestAnalyze_ValidationError(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodPost, "/api/v1/reactions/analyze",
		`{"reactants":"123","solvent":"Water","temperature":"25"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
	assert.Equal(t, "Please enter chemical names, not just numbers or symbols", resp.Message)
}

func TestAnalyze_MalformedJSON(t *testing.T) {
	r := newTestRouter(t, testConfig())

	for _, body := range []string{`{`, `{"reactants":"a","unknown":1}`, `{"temperature":true}`, ``} {
		w := request(r, http.MethodPost, "/api/v1/reactions/analyze", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"code":"INVALID_REQUEST"`, body)
	}
}

func TestPredict(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodPost, "/api/v1/reactions/predict",
		`{"reactants":"Alcohol","catalyst":"H2SO4","temperature":"150"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp reaction.PredictResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Alkene + Water", resp.PredictedProduct)

	w = request(r, http.MethodPost, "/api/v1/reactions/predict", `{"reactants":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter at least one reactant")
}

func TestGet_NotFound(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodGet, "/api/v1/reactions/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"REPORT_NOT_FOUND"`)
}

func TestExport(t *testing.T) {
	r := newTestRouter(t, testConfig())
	rep := analyze(t, r, `{"reactants":"Benzene","products":"Nitrobenzene","solvent":"DMF","temperature":"120"}`)

	w := request(r, http.MethodGet, "/api/v1/reactions/"+rep.ID+"/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="`+rep.ID+`.md"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "- Eco-Rating: **Bad**")

	w = request(r, http.MethodGet, "/api/v1/reactions/"+rep.ID+"/export?format=yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ecoRating: Bad")

	w = request(r, http.MethodGet, "/api/v1/reactions/"+rep.ID+"/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FORMAT")
}

func TestShare(t *testing.T) {
	r := newTestRouter(t, testConfig())
	rep := analyze(t, r, `{"reactants":"Ethanol","products":"Ethene","solvent":"Water","temperature":"25"}`)

	w := request(r, http.MethodGet, "/api/v1/reactions/"+rep.ID+"/share", "")
	require.Equal(t, http.StatusOK, w.Code)

	var links report.ShareLinks
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.Equal(t, "http://localhost:3000/results?id="+rep.ID, links.URL)
	assert.Contains(t, links.Text, "got a Good eco-rating")

	w = request(r, http.MethodGet, "/api/v1/reactions/"+rep.ID+"/share?url="+url.QueryEscape("https://example.com/r/1"), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &links))
	assert.Equal(t, "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fexample.com%2Fr%2F1", links.Facebook)
}

func TestSolvents(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodGet, "/api/v1/solvents", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Solvents []reaction.SolventInfo `json:"solvents"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Solvents, len(chemistry.Solvents))
	assert.Equal(t, "Water", resp.Solvents[0].Name)
	assert.False(t, resp.Solvents[0].Hazardous)

	for _, s := range resp.Solvents {
		if s.Name == "Dichloromethane" {
			assert.True(t, s.Hazardous)
			assert.Equal(t, []string{"Ethyl Acetate", "Acetone", "2-MeTHF"}, s.Alternatives)
		}
	}
}

func TestCatalysts(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodGet, "/api/v1/catalysts", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Catalysts []chemistry.Alternative `json:"catalysts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, chemistry.HazardousCatalysts(), resp.Catalysts)
	require.NotEmpty(t, resp.Catalysts)
	assert.Equal(t, "Chromium", resp.Catalysts[0].Name)
}

func TestUnknownRouteAndMethod(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodGet, "/api/v1/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)

	w = request(r, http.MethodDelete, "/api/v1/solvents", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"METHOD_NOT_ALLOWED"`)
}

func TestHealthEndpoints(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := request(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "test", resp["version"])
	assert.Equal(t, "memory", resp["store"].(map[string]any)["driver"])
	assert.Equal(t, false, resp["export"].(map[string]any)["enabled"])

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/ready", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/live", "").Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Requests = 2
	r := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/solvents", "").Code)
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/api/v1/solvents", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodGet, "/api/v1/solvents", "").Code)

	// 健康檢查不受限流影響
	assert.Equal(t, http.StatusOK, request(r, http.MethodGet, "/live", "").Code)
}

func TestAnalyze_DuplicateRejected(t *testing.T) {
	cfg := testConfig()
	cfg.DedupWindow = time.Minute
	r := newTestRouter(t, cfg)

	body := `{"reactants":"Ethanol","products":"Ethene","solvent":"Water","temperature":"25"}`
	assert.Equal(t, http.StatusOK, request(r, http.MethodPost, "/api/v1/reactions/analyze", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, request(r, http.MethodPost, "/api/v1/reactions/analyze", body).Code)
}
