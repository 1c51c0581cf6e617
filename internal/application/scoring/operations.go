package scoring

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/heuristic"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	"github.com/turtacn/MissionIntelligence/pkg/types/events"
	scoringtypes "github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Operation names, used as metric labels and event operations.
const (
	OpComprehensiveScore = "comprehensive_score"
	OpRecommendPrice     = "recommend_price"
	OpDetectAbuse        = "detect_abuse"
	OpSemanticMatch      = "semantic_match"
	OpInverseMatch       = "inverse_match"
	OpPredictSuccess     = "predict_success"
	OpNeuralPricing      = "neural_pricing"
	OpAnalyzeBehavior    = "analyze_behavior"
	OpAnalyzeSentiment   = "analyze_sentiment"
	OpSuggestNegotiation = "suggest_negotiation"
	OpStandardizeBrief   = "standardize_brief"
	OpCalculateTrust     = "calculate_trust"
	OpMarketHeat         = "market_heat"
	OpPreviewScoring     = "preview_scoring"
)

// ML endpoints.
const (
	PathComprehensiveScore = "/score/comprehensive"
	PathRecommendPrice     = "/price/recommend"
	PathDetectAbuse        = "/abuse/detect"
	PathSemanticMatch      = "/match/semantic"
	PathInverseMatch       = "/match/inverse"
	PathPredictSuccess     = "/predict/success"
	PathNeuralPricing      = "/optimize/pricing-realtime"
	PathAnalyzeBehavior    = "/analyze/behavior"
	PathAnalyzeSentiment   = "/analyze/sentiment"
	PathSuggestNegotiation = "/negotiate/price"
	PathStandardizeBrief   = "/brief/analyze"
	PathCalculateTrust     = "/trust/calculate"
	PathMarketHeat         = "/market/heat"
)

// PreviewPath is the ML endpoint of a project's preview scoring.
func PreviewPath(projectID string) string {
	return "/projects/" + url.PathEscape(projectID) + "/preview-scoring"
}

// normalized returns a deep copy of req with Normalize applied, so the
// caller's request is left untouched.
func normalized[T any, P interface {
	*T
	Normalize()
}](req *T) T {
	var out T
	if req == nil {
		P(&out).Normalize()
		return out
	}
	raw, err := json.Marshal(req)
	if err != nil || json.Unmarshal(raw, &out) != nil {
		out = *req
	}
	P(&out).Normalize()
	return out
}

// CalculateComprehensiveScore scores a provider's bid on a mission.
func (s *Service) CalculateComprehensiveScore(ctx context.Context, req *scoringtypes.ComprehensiveScoreRequest) *scoringtypes.ComprehensiveScoreResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.ComprehensiveScoreResult]{
		name:     OpComprehensiveScore,
		path:     PathComprehensiveScore,
		prefix:   "score:comprehensive",
		fallback: func(context.Context) *scoringtypes.ComprehensiveScoreResult { return s.scorer.ComprehensiveScore(r) },
		deflt:    defaultComprehensiveScore,
		source:   func(v *scoringtypes.ComprehensiveScoreResult) *string { return &v.Source },
	}, r)
}

// RecommendPrice suggests a price for a mission.
func (s *Service) RecommendPrice(ctx context.Context, req *scoringtypes.PriceRequest) *scoringtypes.PriceResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.PriceResult]{
		name:     OpRecommendPrice,
		path:     PathRecommendPrice,
		prefix:   "price:recommend",
		fallback: func(context.Context) *scoringtypes.PriceResult { return s.scorer.RecommendPrice(r) },
		deflt:    func() *scoringtypes.PriceResult { return defaultPrice(r.Mission) },
		source:   func(v *scoringtypes.PriceResult) *string { return &v.Source },
	}, r)
}

// DetectAbuse moderates a piece of user content.
func (s *Service) DetectAbuse(ctx context.Context, req *scoringtypes.AbuseRequest) *scoringtypes.AbuseResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.AbuseResult]{
		name:     OpDetectAbuse,
		path:     PathDetectAbuse,
		prefix:   "abuse:detect",
		fallback: func(context.Context) *scoringtypes.AbuseResult { return s.scorer.DetectAbuse(r) },
		deflt:    defaultAbuse,
		source:   func(v *scoringtypes.AbuseResult) *string { return &v.Source },
	}, r)
}

// SemanticMatch ranks candidate providers for a mission.
func (s *Service) SemanticMatch(ctx context.Context, req *scoringtypes.SemanticMatchRequest) *scoringtypes.MatchResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.MatchResult]{
		name:     OpSemanticMatch,
		path:     PathSemanticMatch,
		prefix:   "match:semantic",
		ttl:      10 * time.Minute,
		fallback: func(context.Context) *scoringtypes.MatchResult { return s.scorer.SemanticMatch(r) },
		deflt:    defaultMatches,
		source:   matchSource,
	}, r)
}

// InverseMatch ranks candidate missions for a provider.
func (s *Service) InverseMatch(ctx context.Context, req *scoringtypes.InverseMatchRequest) *scoringtypes.MatchResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.MatchResult]{
		name:     OpInverseMatch,
		path:     PathInverseMatch,
		prefix:   "match:inverse",
		ttl:      10 * time.Minute,
		fallback: func(context.Context) *scoringtypes.MatchResult { return s.scorer.InverseMatch(r) },
		deflt:    defaultMatches,
		source:   matchSource,
	}, r)
}

// PredictSuccess estimates the probability that a mission succeeds.
func (s *Service) PredictSuccess(ctx context.Context, req *scoringtypes.SuccessRequest) *scoringtypes.SuccessPrediction {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.SuccessPrediction]{
		name:     OpPredictSuccess,
		path:     PathPredictSuccess,
		prefix:   "success:predict",
		ttl:      3 * time.Minute,
		fallback: func(context.Context) *scoringtypes.SuccessPrediction { return s.scorer.PredictSuccess(r) },
		deflt:    func() *scoringtypes.SuccessPrediction { return heuristic.DefaultSuccess(r.Mission) },
		source:   func(v *scoringtypes.SuccessPrediction) *string { return &v.Source },
	}, r)
}

// NeuralPricing prices a bid against the competing bids.
func (s *Service) NeuralPricing(ctx context.Context, req *scoringtypes.NeuralPricingRequest) *scoringtypes.NeuralPricingResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.NeuralPricingResult]{
		name:     OpNeuralPricing,
		path:     PathNeuralPricing,
		prefix:   "pricing:realtime",
		ttl:      2 * time.Minute,
		bucket:   marketBucket,
		fallback: func(context.Context) *scoringtypes.NeuralPricingResult { return s.scorer.NeuralPricing(r) },
		deflt:    func() *scoringtypes.NeuralPricingResult { return defaultNeuralPricing(r.Mission) },
		source:   func(v *scoringtypes.NeuralPricingResult) *string { return &v.Source },
	}, r)
}

// AnalyzeBehavior profiles a user from their activity.
func (s *Service) AnalyzeBehavior(ctx context.Context, req *scoringtypes.BehaviorRequest) *scoringtypes.BehaviorResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.BehaviorResult]{
		name:     OpAnalyzeBehavior,
		path:     PathAnalyzeBehavior,
		prefix:   "behavior:analysis",
		fallback: func(context.Context) *scoringtypes.BehaviorResult { return s.scorer.AnalyzeBehavior(r) },
		deflt:    defaultBehavior,
		source:   func(v *scoringtypes.BehaviorResult) *string { return &v.Source },
	}, r)
}

// AnalyzeSentiment scores the polarity of a text.
func (s *Service) AnalyzeSentiment(ctx context.Context, req *scoringtypes.SentimentRequest) *scoringtypes.SentimentResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.SentimentResult]{
		name:     OpAnalyzeSentiment,
		path:     PathAnalyzeSentiment,
		prefix:   "sentiment:analysis",
		fallback: func(context.Context) *scoringtypes.SentimentResult { return s.scorer.AnalyzeSentiment(r) },
		deflt:    defaultSentiment,
		source:   func(v *scoringtypes.SentimentResult) *string { return &v.Source },
	}, r)
}

// SuggestNegotiation proposes how to answer a bid.
func (s *Service) SuggestNegotiation(ctx context.Context, req *scoringtypes.NegotiationRequest) *scoringtypes.NegotiationResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.NegotiationResult]{
		name:     OpSuggestNegotiation,
		path:     PathSuggestNegotiation,
		prefix:   "negotiation:price",
		fallback: func(context.Context) *scoringtypes.NegotiationResult { return s.scorer.Negotiate(r) },
		deflt:    func() *scoringtypes.NegotiationResult { return defaultNegotiation(r.Mission) },
		source:   func(v *scoringtypes.NegotiationResult) *string { return &v.Source },
	}, r)
}

// StandardizeBrief turns a client brief into a structured one.
func (s *Service) StandardizeBrief(ctx context.Context, req *brief.Request) *brief.StandardizationResult {
	r := normalized(req)
	return execute(ctx, s, operation[brief.StandardizationResult]{
		name:     OpStandardizeBrief,
		path:     PathStandardizeBrief,
		prefix:   "brief:standardize",
		ttl:      30 * time.Minute,
		fallback: func(ctx context.Context) *brief.StandardizationResult { return s.engine.Analyze(ctx, r) },
		deflt:    func() *brief.StandardizationResult { return defaultBrief(r) },
		source:   func(v *brief.StandardizationResult) *string { return &v.Source },
		computed: func(key string, res *brief.StandardizationResult) {
			if res.AnalysisID == "" {
				res.AnalysisID = uuid.NewString()
			}
			s.metrics.RecordBrief(res.CategoryStd, float64(res.Quality.Overall), float64(res.ComplexityScore))
			s.emit(events.New(events.TypeBriefStandardized, OpStandardizeBrief, key).
				With("analysis_id", res.AnalysisID).
				With("category", res.CategoryStd).
				With("source", res.Source))
		},
	}, r)
}

// CalculateTrust scores how much a provider can be trusted.
func (s *Service) CalculateTrust(ctx context.Context, req *scoringtypes.TrustRequest) *scoringtypes.TrustResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.TrustResult]{
		name:     OpCalculateTrust,
		path:     PathCalculateTrust,
		prefix:   "trust:calculate",
		fallback: func(context.Context) *scoringtypes.TrustResult { return s.scorer.CalculateTrust(r) },
		deflt:    defaultTrust,
		source:   func(v *scoringtypes.TrustResult) *string { return &v.Source },
	}, r)
}

// MarketHeat measures the activity of a category.
func (s *Service) MarketHeat(ctx context.Context, req *scoringtypes.MarketHeatRequest) *scoringtypes.MarketHeatResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.MarketHeatResult]{
		name:     OpMarketHeat,
		path:     PathMarketHeat,
		prefix:   "market:heat",
		bucket:   marketBucket,
		fallback: func(context.Context) *scoringtypes.MarketHeatResult { return s.scorer.MarketHeat(r) },
		deflt:    func() *scoringtypes.MarketHeatResult { return defaultMarketHeat(r.Category) },
		source:   func(v *scoringtypes.MarketHeatResult) *string { return &v.Source },
	}, r)
}

// PreviewScoring scores and ranks every proposal on a project.
func (s *Service) PreviewScoring(ctx context.Context, req *scoringtypes.PreviewRequest) *scoringtypes.PreviewScoringResult {
	r := normalized(req)
	return execute(ctx, s, operation[scoringtypes.PreviewScoringResult]{
		name:   OpPreviewScoring,
		prefix: "preview:score",
		call: func(ctx context.Context, out *scoringtypes.PreviewScoringResult) error {
			if r.ProjectID == "" {
				return common.ErrInferenceFailed.WithDetail("preview scoring without project id")
			}
			return s.client.Get(ctx, PreviewPath(r.ProjectID), out)
		},
		fallback: func(context.Context) *scoringtypes.PreviewScoringResult { return s.scorer.PreviewScoring(r) },
		deflt:    func() *scoringtypes.PreviewScoringResult { return defaultPreview(r.ProjectID) },
		source:   func(v *scoringtypes.PreviewScoringResult) *string { return &v.Source },
		computed: func(_ string, res *scoringtypes.PreviewScoringResult) {
			if res.ProjectID == "" {
				res.ProjectID = r.ProjectID
			}
		},
	}, r)
}

func matchSource(v *scoringtypes.MatchResult) *string { return &v.Source }

//Personal.AI order the ending
