package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/internal/testutil"
)

func statusHandler(code int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestLogging_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
		msg    string
	}{
		{http.StatusOK, "info", "request completed"},
		{http.StatusBadRequest, "warn", "request rejected"},
		{http.StatusBadGateway, "error", "request failed"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			logger := testutil.NewMockLogger()
			h := RequestLogging(logger, DefaultLoggingConfig())(statusHandler(tt.status))

			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/price/recommend", nil))

			assert.Equal(t, tt.status, w.Code)
			require.True(t, logger.HasMessage(tt.level, tt.msg))
			entry := logger.GetMessages()[0]
			status, ok := entry.Field("status")
			require.True(t, ok)
			assert.Equal(t, tt.status, status)
			bytes, _ := entry.Field("bytes")
			assert.Equal(t, int64(2), bytes)
		})
	}
}

func TestRequestLogging_SkipsProbes(t *testing.T) {
	logger := testutil.NewMockLogger()
	h := RequestLogging(logger, DefaultLoggingConfig())(statusHandler(http.StatusOK))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Empty(t, logger.GetMessages())
}

func TestRequestLogging_RequestIDAndContextLogger(t *testing.T) {
	logger := testutil.NewMockLogger()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context(), nil).Debug("inside handler")
		w.WriteHeader(http.StatusOK)
	})
	h := chimw.RequestID(RequestLogging(logger, DefaultLoggingConfig())(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	msgs := logger.GetMessages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		id, ok := m.Field("request_id")
		require.True(t, ok)
		assert.Equal(t, "req-123", id)
	}
	assert.Equal(t, "inside handler", msgs[0].Message)
}

//Personal.AI order the ending
