package cli

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/internal/application/scoring"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/cache"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	apihttp "github.com/turtacn/MissionIntelligence/internal/interfaces/http"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/MissionIntelligence/pkg/client"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
)

func startAPIServer(t *testing.T) string {
	t.Helper()
	ml := common.NewMockServingClient()
	ml.SetOffline(true)
	coord := cache.NewCoordinator()
	svc := scoring.NewService(ml, coord)
	srv := httptest.NewServer(apihttp.NewRouter(apihttp.RouterConfig{
		ScoringHandler: handlers.NewScoringHandler(svc, nil, 0),
		HealthHandler:  handlers.NewHealthHandler("test"),
	}))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close()
		_ = coord.Close()
	})
	return srv.URL
}

func TestRemoteMode_StandardizeAndStats(t *testing.T) {
	url := startAPIServer(t)

	out, err := run(t, "", "--server", url, "standardize",
		"--title", "Refonte du site web",
		"--description", "Nous voulons un site React avec une API et PostgreSQL.",
		"--budget", "2500")
	require.NoError(t, err)
	var res brief.StandardizationResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "web-development", res.CategoryStd)

	out, err = run(t, "", "--server", url, "stats")
	require.NoError(t, err)
	var stats client.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, int64(1), stats.Requests)
	assert.True(t, stats.MLOffline)
}

func TestRemoteMode_PriceTable(t *testing.T) {
	url := startAPIServer(t)

	out, err := run(t, "", "--server", url, "-o", "table", "price",
		"--title", "Application mobile Flutter", "--budget", "8000")
	require.NoError(t, err)
	assert.Contains(t, out, "recommended")
	assert.Contains(t, out, "EUR")
}

func TestRemoteMode_InvalidServerURL(t *testing.T) {
	_, err := run(t, "", "--server", "ftp://nowhere", "stats")
	require.Error(t, err)
}

//Personal.AI order the ending
