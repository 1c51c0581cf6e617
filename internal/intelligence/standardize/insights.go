package standardize

import (
	"context"
	"time"

	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
)

// InsightProvider contributes advisory fields to a standardized brief.
// Errors are not fatal: the engine drops the insights and keeps the result.
type InsightProvider interface {
	Insights(ctx context.Context, req brief.Request, draft *brief.StandardizationResult) (*brief.Insights, error)
}

type insightRequest struct {
	Brief      brief.Request `json:"brief"`
	Category   string        `json:"category"`
	Complexity int           `json:"complexity"`
	Missing    []string      `json:"missing_info,omitempty"`
	Quality    brief.Quality `json:"quality"`
}

// MLInsights asks the ML service for insights on a brief.
type MLInsights struct {
	client  common.ServingClient
	path    string
	timeout time.Duration
}

// NewMLInsights creates an insight provider over client.
func NewMLInsights(client common.ServingClient, cfg config.InsightsConfig) *MLInsights {
	p := &MLInsights{client: client, path: cfg.Path, timeout: cfg.Timeout}
	if p.path == "" {
		p.path = config.DefaultInsightsPath
	}
	if p.timeout <= 0 {
		p.timeout = config.DefaultInsightsTimeout
	}
	return p
}

// Insights implements InsightProvider.
func (p *MLInsights) Insights(ctx context.Context, req brief.Request, draft *brief.StandardizationResult) (*brief.Insights, error) {
	if p.client.Offline() {
		return nil, common.ErrServingOffline
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	in := insightRequest{
		Brief:      req,
		Category:   draft.CategoryStd,
		Complexity: draft.ComplexityScore,
		Quality:    draft.Quality,
	}
	for _, m := range draft.MissingInfo {
		in.Missing = append(in.Missing, m.Type)
	}
	var out brief.Insights
	if err := p.client.Post(ctx, p.path, in, &out); err != nil {
		return nil, err
	}
	if out.Provider == "" {
		out.Provider = "ml"
	}
	return &out, nil
}

//Personal.AI order the ending
