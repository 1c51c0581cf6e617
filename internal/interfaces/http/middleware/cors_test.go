package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func corsHandler(origins ...string) http.Handler {
	return CORS(DefaultCORSConfig(origins...))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func corsRequest(method, origin string, preflight bool) *http.Request {
	req := httptest.NewRequest(method, "/api/v1/brief/analyze", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	return req
}

func TestCORS_NoOriginPassesThrough(t *testing.T) {
	w := httptest.NewRecorder()
	corsHandler("https://app.example.com").ServeHTTP(w, corsRequest(http.MethodPost, "", false))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_ExactOrigin(t *testing.T) {
	w := httptest.NewRecorder()
	corsHandler("https://App.Example.com").ServeHTTP(w, corsRequest(http.MethodPost, "https://app.example.com", false))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "X-Request-ID", w.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	w := httptest.NewRecorder()
	corsHandler("https://app.example.com").ServeHTTP(w, corsRequest(http.MethodPost, "https://evil.test", false))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_SubdomainPattern(t *testing.T) {
	h := corsHandler("*.example.com")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, corsRequest(http.MethodGet, "https://admin.example.com", false))
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, corsRequest(http.MethodGet, "https://example.org", false))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Wildcard(t *testing.T) {
	w := httptest.NewRecorder()
	corsHandler("*").ServeHTTP(w, corsRequest(http.MethodGet, "https://anything.test", false))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	w := httptest.NewRecorder()
	corsHandler("https://app.example.com").ServeHTTP(w, corsRequest(http.MethodOptions, "https://app.example.com", true))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, POST, PUT, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestCORS_OptionsWithoutPreflightHeaderReachesHandler(t *testing.T) {
	w := httptest.NewRecorder()
	corsHandler("https://app.example.com").ServeHTTP(w, corsRequest(http.MethodOptions, "https://app.example.com", false))
	assert.Equal(t, http.StatusOK, w.Code)
}

//Personal.AI order the ending
