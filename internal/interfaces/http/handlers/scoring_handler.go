package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/turtacn/MissionIntelligence/internal/application/scoring"
	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	scoringtypes "github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// ScoringService is the subset of *scoring.Service the handlers call.
type ScoringService interface {
	CalculateComprehensiveScore(ctx context.Context, req *scoringtypes.ComprehensiveScoreRequest) *scoringtypes.ComprehensiveScoreResult
	RecommendPrice(ctx context.Context, req *scoringtypes.PriceRequest) *scoringtypes.PriceResult
	DetectAbuse(ctx context.Context, req *scoringtypes.AbuseRequest) *scoringtypes.AbuseResult
	SemanticMatch(ctx context.Context, req *scoringtypes.SemanticMatchRequest) *scoringtypes.MatchResult
	InverseMatch(ctx context.Context, req *scoringtypes.InverseMatchRequest) *scoringtypes.MatchResult
	PredictSuccess(ctx context.Context, req *scoringtypes.SuccessRequest) *scoringtypes.SuccessPrediction
	NeuralPricing(ctx context.Context, req *scoringtypes.NeuralPricingRequest) *scoringtypes.NeuralPricingResult
	AnalyzeBehavior(ctx context.Context, req *scoringtypes.BehaviorRequest) *scoringtypes.BehaviorResult
	AnalyzeSentiment(ctx context.Context, req *scoringtypes.SentimentRequest) *scoringtypes.SentimentResult
	SuggestNegotiation(ctx context.Context, req *scoringtypes.NegotiationRequest) *scoringtypes.NegotiationResult
	StandardizeBrief(ctx context.Context, req *brief.Request) *brief.StandardizationResult
	CalculateTrust(ctx context.Context, req *scoringtypes.TrustRequest) *scoringtypes.TrustResult
	MarketHeat(ctx context.Context, req *scoringtypes.MarketHeatRequest) *scoringtypes.MarketHeatResult
	PreviewScoring(ctx context.Context, req *scoringtypes.PreviewRequest) *scoringtypes.PreviewScoringResult
	SetOffline(offline bool)
	Stats() scoring.Stats
}

// ScoringHandler exposes the scoring operations over HTTP.
// Every operation answers 200 with a schema-valid result; only bodies that
// cannot be decoded are rejected.
type ScoringHandler struct {
	svc         ScoringService
	logger      logging.Logger
	maxBodySize int64
}

// NewScoringHandler creates a ScoringHandler. maxBodySize <= 0 selects
// DefaultMaxBodySize.
func NewScoringHandler(svc ScoringService, logger logging.Logger, maxBodySize int64) *ScoringHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &ScoringHandler{svc: svc, logger: logger.Named("http.scoring"), maxBodySize: maxBodySize}
}

// serve decodes the request body into Req and writes op's result.
func serve[Req, Res any](h *ScoringHandler, op func(context.Context, *Req) *Res) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
			h.logger.Debug("rejecting request body", logging.String("path", r.URL.Path), logging.Err(err))
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, op(r.Context(), &req))
	}
}

func (h *ScoringHandler) ComprehensiveScore() http.HandlerFunc {
	return serve(h, h.svc.CalculateComprehensiveScore)
}

func (h *ScoringHandler) RecommendPrice() http.HandlerFunc { return serve(h, h.svc.RecommendPrice) }
func (h *ScoringHandler) DetectAbuse() http.HandlerFunc    { return serve(h, h.svc.DetectAbuse) }
func (h *ScoringHandler) SemanticMatch() http.HandlerFunc  { return serve(h, h.svc.SemanticMatch) }
func (h *ScoringHandler) InverseMatch() http.HandlerFunc   { return serve(h, h.svc.InverseMatch) }
func (h *ScoringHandler) PredictSuccess() http.HandlerFunc { return serve(h, h.svc.PredictSuccess) }
func (h *ScoringHandler) NeuralPricing() http.HandlerFunc  { return serve(h, h.svc.NeuralPricing) }
func (h *ScoringHandler) AnalyzeBehavior() http.HandlerFunc {
	return serve(h, h.svc.AnalyzeBehavior)
}
func (h *ScoringHandler) AnalyzeSentiment() http.HandlerFunc {
	return serve(h, h.svc.AnalyzeSentiment)
}
func (h *ScoringHandler) SuggestNegotiation() http.HandlerFunc {
	return serve(h, h.svc.SuggestNegotiation)
}
func (h *ScoringHandler) StandardizeBrief() http.HandlerFunc {
	return serve(h, h.svc.StandardizeBrief)
}
func (h *ScoringHandler) CalculateTrust() http.HandlerFunc { return serve(h, h.svc.CalculateTrust) }
func (h *ScoringHandler) MarketHeat() http.HandlerFunc     { return serve(h, h.svc.MarketHeat) }

// PreviewScoring handles GET and POST /projects/{id}/preview-scoring.
// A POST body carries the mission and proposals; the path id always wins.
func (h *ScoringHandler) PreviewScoring(w http.ResponseWriter, r *http.Request) {
	var req scoringtypes.PreviewRequest
	if r.Method == http.MethodPost {
		if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	req.ProjectID = chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, h.svc.PreviewScoring(r.Context(), &req))
}

// Stats handles GET /stats.
func (h *ScoringHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Stats())
}

// OfflineRequest toggles the ML offline mode.
type OfflineRequest struct {
	Offline bool `json:"offline"`
}

// SetOffline handles PUT /ml/offline.
func (h *ScoringHandler) SetOffline(w http.ResponseWriter, r *http.Request) {
	var req OfflineRequest
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		writeError(w, err)
		return
	}
	h.svc.SetOffline(req.Offline)
	h.logger.Info("ml offline mode changed", logging.Bool("offline", req.Offline))
	writeJSON(w, http.StatusOK, h.svc.Stats())
}

//Personal.AI order the ending
