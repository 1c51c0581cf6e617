package scoring

import (
	"math"
	"strings"
)

// ClientHistory summarizes the client's past missions.
type ClientHistory struct {
	MissionsPosted    int     `json:"missions_posted,omitempty"`
	MissionsCompleted int     `json:"missions_completed,omitempty"`
	AvgRating         float64 `json:"avg_rating,omitempty"`
	// PaymentReliability is in [0,1]; 0 means unknown.
	PaymentReliability float64 `json:"payment_reliability,omitempty"`
}

func (h *ClientHistory) Normalize() {
	h.MissionsPosted = max(h.MissionsPosted, 0)
	h.MissionsCompleted = max(0, min(h.MissionsCompleted, h.MissionsPosted))
	h.AvgRating = clamp(h.AvgRating, 0, 5)
	h.PaymentReliability = clamp(h.PaymentReliability, 0, 1)
}

// SuccessRequest asks for the probability that a mission completes well.
type SuccessRequest struct {
	Mission  Mission       `json:"mission"`
	Provider *Provider     `json:"provider,omitempty"`
	Bid      *Bid          `json:"bid,omitempty"`
	Client   ClientHistory `json:"client_history,omitempty"`
	// CompetitionLevel is low, medium or high; empty when unknown.
	CompetitionLevel string `json:"competition_level,omitempty"`
}

func (r *SuccessRequest) Normalize() {
	r.Mission.Normalize()
	if r.Provider != nil {
		r.Provider.Normalize()
	}
	if r.Bid != nil {
		r.Bid.Normalize()
	}
	r.Client.Normalize()
	r.CompetitionLevel = strings.ToLower(strings.TrimSpace(r.CompetitionLevel))
}

// Factor is one ranked contribution to a prediction.
type Factor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	// Impact is positive, negative or neutral.
	Impact string `json:"impact"`
}

// Risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// RiskItem is the assessment of one risk category.
type RiskItem struct {
	Category   string  `json:"category"`
	Level      string  `json:"level"`
	Score      float64 `json:"score"`
	Mitigation string  `json:"mitigation,omitempty"`
}

// SubScores are the five aggregated dimensions of a success prediction, each
// in [0,1].
type SubScores struct {
	Technical float64 `json:"technical"`
	Economic  float64 `json:"economic"`
	Temporal  float64 `json:"temporal"`
	Market    float64 `json:"market"`
	Quality   float64 `json:"quality"`
}

// SuccessPrediction is the predicted completion probability with its reasons.
type SuccessPrediction struct {
	Probability             float64    `json:"probability"`
	SubScores               SubScores  `json:"sub_scores"`
	KeyFactors              []Factor   `json:"key_factors"`
	RiskAssessment          []RiskItem `json:"risk_assessment"`
	OptimizationSuggestions []string   `json:"optimization_suggestions"`
	Confidence              float64    `json:"confidence"`
	Source                  string     `json:"source"`
}

func (p SuccessPrediction) Validate() error {
	if err := checkUnit("probability", p.Probability); err != nil {
		return err
	}
	if err := checkUnit("confidence", p.Confidence); err != nil {
		return err
	}
	return checkSource(p.Source)
}

func (p SuccessPrediction) ConfidenceScore() float64 { return p.Confidence * 100 }

// NeuralPricingRequest asks for a real-time price given the competing bids.
type NeuralPricingRequest struct {
	Mission          Mission   `json:"mission"`
	Provider         *Provider `json:"provider,omitempty"`
	CompetitorBids   []float64 `json:"competitor_bids,omitempty"`
	CompetitionLevel string    `json:"competition_level,omitempty"`
}

func (r *NeuralPricingRequest) Normalize() {
	r.Mission.Normalize()
	if r.Provider != nil {
		r.Provider.Normalize()
	}
	r.CompetitionLevel = strings.ToLower(strings.TrimSpace(r.CompetitionLevel))
	bids := r.CompetitorBids[:0:0]
	for _, b := range r.CompetitorBids {
		if b > 0 && !math.IsInf(b, 0) {
			bids = append(bids, b)
		}
	}
	r.CompetitorBids = bids
}

// Pricing strategies.
const (
	StrategyPenetration = "penetration"
	StrategyCompetitive = "competitive"
	StrategyPremium     = "premium"
)

// NeuralPricingResult is a real-time price with its estimated win chance.
type NeuralPricingResult struct {
	OptimalPrice   float64    `json:"optimal_price"`
	PriceRange     PriceRange `json:"price_range"`
	MarketMedian   float64    `json:"market_median,omitempty"`
	WinProbability float64    `json:"win_probability"`
	Confidence     float64    `json:"confidence"`
	Strategy       string     `json:"strategy"`
	Reasoning      []string   `json:"reasoning,omitempty"`
	Source         string     `json:"source"`
}

func (r NeuralPricingResult) Validate() error {
	if err := r.PriceRange.Validate(); err != nil {
		return err
	}
	if r.OptimalPrice < 0 {
		return invalid("optimal_price", "negative")
	}
	if err := checkUnit("win_probability", r.WinProbability); err != nil {
		return err
	}
	if err := checkUnit("confidence", r.Confidence); err != nil {
		return err
	}
	return checkSource(r.Source)
}

func (r NeuralPricingResult) ConfidenceScore() float64 { return r.Confidence * 100 }

//Personal.AI order the ending
