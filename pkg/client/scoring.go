package client

import (
	"context"
	"net/url"

	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

const apiPrefix = "/api/v1"

// Stats mirrors the server's /stats answer.
type Stats struct {
	Requests          int64   `json:"requests"`
	CacheHits         int64   `json:"cache_hits"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
	Errors            int64   `json:"errors"`
	CacheSize         int     `json:"cache_size"`
	MLOffline         bool    `json:"ml_offline"`
	BreakerState      string  `json:"breaker_state,omitempty"`
}

func call[Req, Res any](ctx context.Context, c *Client, path string, req *Req) (*Res, error) {
	var res Res
	if err := c.post(ctx, apiPrefix+path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CalculateComprehensiveScore(ctx context.Context, req *scoring.ComprehensiveScoreRequest) (*scoring.ComprehensiveScoreResult, error) {
	return call[scoring.ComprehensiveScoreRequest, scoring.ComprehensiveScoreResult](ctx, c, "/score/comprehensive", req)
}

func (c *Client) RecommendPrice(ctx context.Context, req *scoring.PriceRequest) (*scoring.PriceResult, error) {
	return call[scoring.PriceRequest, scoring.PriceResult](ctx, c, "/price/recommend", req)
}

func (c *Client) DetectAbuse(ctx context.Context, req *scoring.AbuseRequest) (*scoring.AbuseResult, error) {
	return call[scoring.AbuseRequest, scoring.AbuseResult](ctx, c, "/abuse/detect", req)
}

func (c *Client) SemanticMatch(ctx context.Context, req *scoring.SemanticMatchRequest) (*scoring.MatchResult, error) {
	return call[scoring.SemanticMatchRequest, scoring.MatchResult](ctx, c, "/match/semantic", req)
}

func (c *Client) InverseMatch(ctx context.Context, req *scoring.InverseMatchRequest) (*scoring.MatchResult, error) {
	return call[scoring.InverseMatchRequest, scoring.MatchResult](ctx, c, "/match/inverse", req)
}

func (c *Client) PredictSuccess(ctx context.Context, req *scoring.SuccessRequest) (*scoring.SuccessPrediction, error) {
	return call[scoring.SuccessRequest, scoring.SuccessPrediction](ctx, c, "/predict/success", req)
}

func (c *Client) NeuralPricing(ctx context.Context, req *scoring.NeuralPricingRequest) (*scoring.NeuralPricingResult, error) {
	return call[scoring.NeuralPricingRequest, scoring.NeuralPricingResult](ctx, c, "/optimize/pricing-realtime", req)
}

func (c *Client) AnalyzeBehavior(ctx context.Context, req *scoring.BehaviorRequest) (*scoring.BehaviorResult, error) {
	return call[scoring.BehaviorRequest, scoring.BehaviorResult](ctx, c, "/analyze/behavior", req)
}

func (c *Client) AnalyzeSentiment(ctx context.Context, req *scoring.SentimentRequest) (*scoring.SentimentResult, error) {
	return call[scoring.SentimentRequest, scoring.SentimentResult](ctx, c, "/analyze/sentiment", req)
}

func (c *Client) SuggestNegotiation(ctx context.Context, req *scoring.NegotiationRequest) (*scoring.NegotiationResult, error) {
	return call[scoring.NegotiationRequest, scoring.NegotiationResult](ctx, c, "/negotiate/price", req)
}

// StandardizeBrief posts a brief to /brief/analyze.
func (c *Client) StandardizeBrief(ctx context.Context, req *brief.Request) (*brief.StandardizationResult, error) {
	return call[brief.Request, brief.StandardizationResult](ctx, c, "/brief/analyze", req)
}

func (c *Client) CalculateTrust(ctx context.Context, req *scoring.TrustRequest) (*scoring.TrustResult, error) {
	return call[scoring.TrustRequest, scoring.TrustResult](ctx, c, "/trust/calculate", req)
}

func (c *Client) MarketHeat(ctx context.Context, req *scoring.MarketHeatRequest) (*scoring.MarketHeatResult, error) {
	return call[scoring.MarketHeatRequest, scoring.MarketHeatResult](ctx, c, "/market/heat", req)
}

// PreviewScoring scores the proposals of a project. The project ID in the
// path wins over req.ProjectID.
func (c *Client) PreviewScoring(ctx context.Context, projectID string, req *scoring.PreviewRequest) (*scoring.PreviewScoringResult, error) {
	if req == nil {
		req = &scoring.PreviewRequest{}
	}
	return call[scoring.PreviewRequest, scoring.PreviewScoringResult](ctx, c, "/projects/"+url.PathEscape(projectID)+"/preview-scoring", req)
}

// Stats returns the server's cache and ML client counters.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	if err := c.get(ctx, apiPrefix+"/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetOffline switches the server's ML client on or off and returns the
// resulting counters.
func (c *Client) SetOffline(ctx context.Context, offline bool) (*Stats, error) {
	var s Stats
	if err := c.put(ctx, apiPrefix+"/ml/offline", map[string]bool{"offline": offline}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

//Personal.AI order the ending
