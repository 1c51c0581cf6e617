package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/internal/application/scoring"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/cache"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/handlers"
)

type routerFixture struct {
	server *httptest.Server
	client *common.MockServingClient
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "mission"}, nil)
	require.NoError(t, err)
	metrics := prometheus.NewAppMetrics(collector)

	client := common.NewMockServingClient()
	client.SetOffline(true)
	coord := cache.NewCoordinator(cache.WithRecorder(metrics))
	svc := scoring.NewService(client, coord, scoring.WithMetrics(metrics))

	router := NewRouter(RouterConfig{
		ScoringHandler:   handlers.NewScoringHandler(svc, nil, 0),
		HealthHandler:    handlers.NewHealthHandler("test"),
		Logger:           logging.NewNopLogger(),
		MetricsCollector: collector,
		AppMetrics:       metrics,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close()
		_ = coord.Close()
	})
	return &routerFixture{server: srv, client: client}
}

func (f *routerFixture) do(t *testing.T, method, path, body string) (int, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, f.server.URL+path, rd)
	require.NoError(t, err)
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestNewRouter_ScoringRoutesRegistered(t *testing.T) {
	f := newRouterFixture(t)

	paths := []string{
		"/api/v1/score/comprehensive",
		"/api/v1/price/recommend",
		"/api/v1/abuse/detect",
		"/api/v1/match/semantic",
		"/api/v1/match/intelligent",
		"/api/v1/match/inverse",
		"/api/v1/predict/success",
		"/api/v1/optimize/pricing-realtime",
		"/api/v1/analyze/behavior",
		"/api/v1/analyze/sentiment",
		"/api/v1/negotiate/price",
		"/api/v1/brief/analyze",
		"/api/v1/trust/calculate",
		"/api/v1/market/heat",
		"/api/v1/projects/p-1/preview-scoring",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			status, body := f.do(t, http.MethodPost, p, `{}`)
			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, `"source":"fallback"`)
		})
	}
	assert.Zero(t, f.client.Calls())
}

func TestNewRouter_PreviewGet(t *testing.T) {
	f := newRouterFixture(t)
	status, body := f.do(t, http.MethodGet, "/api/v1/projects/p-9/preview-scoring", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"project_id":"p-9"`)
}

func TestNewRouter_MalformedBodyIs400(t *testing.T) {
	f := newRouterFixture(t)
	status, body := f.do(t, http.MethodPost, "/api/v1/brief/analyze", `{"title":`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, `"code"`)
}

func TestNewRouter_WrongMethod(t *testing.T) {
	f := newRouterFixture(t)
	status, _ := f.do(t, http.MethodGet, "/api/v1/price/recommend", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestNewRouter_HealthAndStats(t *testing.T) {
	f := newRouterFixture(t)

	status, _ := f.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = f.do(t, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, status)

	status, body := f.do(t, http.MethodGet, "/api/v1/stats", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"ml_offline":true`)
}

func TestNewRouter_MetricsExposeRequests(t *testing.T) {
	f := newRouterFixture(t)
	f.do(t, http.MethodPost, "/api/v1/market/heat", `{"category":"web-development"}`)

	status, body := f.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "mission_http_requests_total")
	assert.Contains(t, body, `path="/api/v1/market/heat"`)
	assert.Contains(t, body, "mission_fallbacks_total")
}

func TestNewRouter_NilHandlersNoPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		h := NewRouter(RouterConfig{})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler("test"),
		CORSOrigins:   []string{"https://app.example.com"},
	})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/brief/analyze", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

//Personal.AI order the ending
