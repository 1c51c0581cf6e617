package client

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appscoring "github.com/turtacn/MissionIntelligence/internal/application/scoring"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/cache"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	apihttp "github.com/turtacn/MissionIntelligence/internal/interfaces/http"
	"github.com/turtacn/MissionIntelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// newAPIClient serves the real router over an offline service.
func newAPIClient(t *testing.T) (*Client, *common.MockServingClient) {
	t.Helper()
	ml := common.NewMockServingClient()
	ml.SetOffline(true)
	coord := cache.NewCoordinator()
	svc := appscoring.NewService(ml, coord)
	srv := httptest.NewServer(apihttp.NewRouter(apihttp.RouterConfig{
		ScoringHandler: handlers.NewScoringHandler(svc, nil, 0),
		HealthHandler:  handlers.NewHealthHandler("test"),
	}))
	t.Cleanup(func() {
		srv.Close()
		_ = svc.Close()
		_ = coord.Close()
	})

	c, err := NewClient(srv.URL, WithRetryMax(0))
	require.NoError(t, err)
	return c, ml
}

func TestClient_StandardizeBrief(t *testing.T) {
	c, ml := newAPIClient(t)

	res, err := c.StandardizeBrief(context.Background(), &brief.Request{
		Title:       "Refonte du site web",
		Description: "Nous voulons un site React avec une API et PostgreSQL.",
		Budget:      2500,
	})
	require.NoError(t, err)
	assert.Equal(t, "web-development", res.CategoryStd)
	assert.Equal(t, scoring.SourceFallback, res.Source)
	assert.NoError(t, res.Validate())
	assert.Empty(t, ml.Calls())
}

func TestClient_ScoringOperations(t *testing.T) {
	c, _ := newAPIClient(t)
	ctx := context.Background()
	mission := scoring.Mission{Title: "API Go", Description: "Microservice de paiement en Go", Budget: 4000}

	score, err := c.CalculateComprehensiveScore(ctx, &scoring.ComprehensiveScoreRequest{
		Mission:  mission,
		Provider: scoring.Provider{ID: "u-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, scoring.SourceFallback, score.Source)

	price, err := c.RecommendPrice(ctx, &scoring.PriceRequest{Mission: mission, CompetitionLevel: "high"})
	require.NoError(t, err)
	assert.NoError(t, price.Validate())

	success, err := c.PredictSuccess(ctx, &scoring.SuccessRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, success.Source)

	trust, err := c.CalculateTrust(ctx, &scoring.TrustRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, trust.Source)

	heat, err := c.MarketHeat(ctx, &scoring.MarketHeatRequest{})
	require.NoError(t, err)
	assert.NotEmpty(t, heat.Source)
}

func TestClient_PreviewScoring_PathWins(t *testing.T) {
	c, _ := newAPIClient(t)

	res, err := c.PreviewScoring(context.Background(), "p-42", &scoring.PreviewRequest{
		ProjectID: "ignored",
		Mission:   scoring.Mission{Title: "Logo", Description: "Création d'un logo"},
		Proposals: []scoring.Proposal{
			{Provider: scoring.Provider{ID: "a"}},
			{Provider: scoring.Provider{ID: "b"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "p-42", res.ProjectID)
	assert.Len(t, res.Entries, 2)
	assert.Equal(t, 1, res.Entries[0].Rank)
}

func TestClient_StatsAndOffline(t *testing.T) {
	c, _ := newAPIClient(t)
	ctx := context.Background()

	_, err := c.StandardizeBrief(ctx, &brief.Request{Title: "Site vitrine"})
	require.NoError(t, err)

	s, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Requests)
	assert.True(t, s.MLOffline)

	s, err = c.SetOffline(ctx, false)
	require.NoError(t, err)
	assert.False(t, s.MLOffline)
}

//Personal.AI order the ending
