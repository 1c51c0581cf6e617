package scoring

import (
	"fmt"
	"math"
	"strings"
)

// AbuseRequest asks whether a piece of user content breaks platform rules.
type AbuseRequest struct {
	Content string `json:"content"`
	// ContentType is message, mission, bid or profile.
	ContentType string `json:"content_type,omitempty"`
	UserID      string `json:"user_id,omitempty"`
}

func (r *AbuseRequest) Normalize() {
	r.ContentType = strings.ToLower(strings.TrimSpace(r.ContentType))
	if r.ContentType == "" {
		r.ContentType = "message"
	}
}

// Moderation actions.
const (
	ActionAllow  = "allow"
	ActionReview = "review"
	ActionBlock  = "block"
)

// AbuseSignal is one piece of evidence found in the content.
type AbuseSignal struct {
	Type     string `json:"type"`
	Evidence string `json:"evidence,omitempty"`
	Weight   int    `json:"weight"`
}

// AbuseResult is the moderation verdict.
type AbuseResult struct {
	IsAbusive  bool          `json:"is_abusive"`
	RiskScore  int           `json:"risk_score"`
	Categories []string      `json:"categories"`
	Signals    []AbuseSignal `json:"signals,omitempty"`
	Action     string        `json:"action"`
	Source     string        `json:"source"`
}

func (r AbuseResult) Validate() error {
	if err := checkScore("risk_score", r.RiskScore); err != nil {
		return err
	}
	switch r.Action {
	case ActionAllow, ActionReview, ActionBlock:
	default:
		return invalid("action", r.Action)
	}
	return checkSource(r.Source)
}

// SentimentRequest asks for the polarity of a text (review, message, brief).
type SentimentRequest struct {
	Text string `json:"text"`
	// Language is fr or en; empty means auto.
	Language string `json:"language,omitempty"`
}

func (r *SentimentRequest) Normalize() {
	r.Text = strings.TrimSpace(r.Text)
	r.Language = strings.ToLower(strings.TrimSpace(r.Language))
}

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// SentimentResult has Score in [-1,1].
type SentimentResult struct {
	Score         float64  `json:"score"`
	Label         string   `json:"label"`
	Confidence    float64  `json:"confidence"`
	PositiveTerms []string `json:"positive_terms,omitempty"`
	NegativeTerms []string `json:"negative_terms,omitempty"`
	Source        string   `json:"source"`
}

func (r SentimentResult) Validate() error {
	if math.IsNaN(r.Score) || r.Score < -1 || r.Score > 1 {
		return invalid("score", fmt.Sprint(r.Score))
	}
	switch r.Label {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
	default:
		return invalid("label", r.Label)
	}
	if err := checkUnit("confidence", r.Confidence); err != nil {
		return err
	}
	return checkSource(r.Source)
}

func (r SentimentResult) ConfidenceScore() float64 { return r.Confidence * 100 }

// BehaviorRequest describes a user's activity on the platform.
type BehaviorRequest struct {
	UserID string `json:"user_id"`
	// Role is provider or client.
	Role              string  `json:"role,omitempty"`
	CompletedProjects int     `json:"completed_projects"`
	CancelledProjects int     `json:"cancelled_projects"`
	Disputes          int     `json:"disputes"`
	AvgResponseHours  float64 `json:"avg_response_hours,omitempty"`
	ActiveDaysLast30  int     `json:"active_days_last_30,omitempty"`
	LastActiveDays    int     `json:"last_active_days,omitempty"`
}

func (r *BehaviorRequest) Normalize() {
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
	if r.Role != "client" {
		r.Role = "provider"
	}
	r.CompletedProjects = max(r.CompletedProjects, 0)
	r.CancelledProjects = max(r.CancelledProjects, 0)
	r.Disputes = max(r.Disputes, 0)
	r.AvgResponseHours = math.Max(r.AvgResponseHours, 0)
	r.ActiveDaysLast30 = max(0, min(30, r.ActiveDaysLast30))
	r.LastActiveDays = max(r.LastActiveDays, 0)
}

// BehaviorResult profiles a user.
type BehaviorResult struct {
	Score           int      `json:"score"`
	Profile         string   `json:"profile"`
	Reliability     int      `json:"reliability"`
	Responsiveness  int      `json:"responsiveness"`
	Activity        int      `json:"activity"`
	Flags           []string `json:"flags,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Source          string   `json:"source"`
}

func (r BehaviorResult) Validate() error {
	for name, v := range map[string]int{
		"score": r.Score, "reliability": r.Reliability,
		"responsiveness": r.Responsiveness, "activity": r.Activity,
	} {
		if err := checkScore(name, v); err != nil {
			return err
		}
	}
	if r.Profile == "" {
		return invalid("profile", "empty")
	}
	return checkSource(r.Source)
}

// NegotiationRequest asks how to answer a bid.
type NegotiationRequest struct {
	Mission  Mission   `json:"mission"`
	Bid      Bid       `json:"bid"`
	Provider *Provider `json:"provider,omitempty"`
	Round    int       `json:"round,omitempty"`
}

func (r *NegotiationRequest) Normalize() {
	r.Mission.Normalize()
	r.Bid.Normalize()
	if r.Provider != nil {
		r.Provider.Normalize()
	}
	r.Round = max(r.Round, 1)
}

// Negotiation strategies.
const (
	NegotiationAccept           = "accept"
	NegotiationCounterOffer     = "counter_offer"
	NegotiationRenegotiateScope = "renegotiate_scope"
	NegotiationRaiseOffer       = "raise_offer"
)

// NegotiationResult is the suggested answer to a bid.
type NegotiationResult struct {
	Strategy        string     `json:"strategy"`
	SuggestedPrice  float64    `json:"suggested_price"`
	AcceptableRange PriceRange `json:"acceptable_range"`
	// Gap is (bid - budget) / budget.
	Gap        float64  `json:"gap"`
	Arguments  []string `json:"arguments,omitempty"`
	Confidence int      `json:"confidence"`
	Source     string   `json:"source"`
}

func (r NegotiationResult) Validate() error {
	switch r.Strategy {
	case NegotiationAccept, NegotiationCounterOffer, NegotiationRenegotiateScope, NegotiationRaiseOffer:
	default:
		return invalid("strategy", r.Strategy)
	}
	if r.SuggestedPrice < 0 {
		return invalid("suggested_price", "negative")
	}
	if err := r.AcceptableRange.Validate(); err != nil {
		return err
	}
	if err := checkScore("confidence", r.Confidence); err != nil {
		return err
	}
	return checkSource(r.Source)
}

func (r NegotiationResult) ConfidenceScore() float64 { return float64(r.Confidence) }

// TrustRequest asks for a provider's trust score.
type TrustRequest struct {
	Provider Provider `json:"provider"`
}

func (r *TrustRequest) Normalize() { r.Provider.Normalize() }

// TrustComponents are the weighted parts of a trust score, each 0..100.
type TrustComponents struct {
	Rating       int `json:"rating"`
	Reliability  int `json:"reliability"`
	Experience   int `json:"experience"`
	Verification int `json:"verification"`
	Tenure       int `json:"tenure"`
	Disputes     int `json:"disputes"`
}

// TrustResult has TrustScore in 0..100.
type TrustResult struct {
	TrustScore int             `json:"trust_score"`
	Level      string          `json:"level"`
	Components TrustComponents `json:"components"`
	Badges     []string        `json:"badges,omitempty"`
	Source     string          `json:"source"`
}

func (r TrustResult) Validate() error {
	if err := checkScore("trust_score", r.TrustScore); err != nil {
		return err
	}
	if r.Level == "" {
		return invalid("level", "empty")
	}
	return checkSource(r.Source)
}

// MarketHeatRequest describes the current activity in a category.
type MarketHeatRequest struct {
	Category        string  `json:"category"`
	OpenMissions    int     `json:"open_missions"`
	ActiveProviders int     `json:"active_providers"`
	RecentBids      int     `json:"recent_bids,omitempty"`
	AvgBudget       float64 `json:"avg_budget,omitempty"`
}

func (r *MarketHeatRequest) Normalize() {
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.OpenMissions = max(r.OpenMissions, 0)
	r.ActiveProviders = max(r.ActiveProviders, 0)
	r.RecentBids = max(r.RecentBids, 0)
	r.AvgBudget = math.Max(r.AvgBudget, 0)
}

// MarketHeatResult has HeatScore in 0..100 and a price multiplier.
type MarketHeatResult struct {
	Category          string  `json:"category"`
	HeatScore         int     `json:"heat_score"`
	Level             string  `json:"level"`
	DemandSupplyRatio float64 `json:"demand_supply_ratio"`
	BidsPerMission    float64 `json:"bids_per_mission"`
	PriceAdjustment   float64 `json:"price_adjustment"`
	Source            string  `json:"source"`
}

func (r MarketHeatResult) Validate() error {
	if err := checkScore("heat_score", r.HeatScore); err != nil {
		return err
	}
	if r.PriceAdjustment <= 0 || r.PriceAdjustment > 3 {
		return invalid("price_adjustment", fmt.Sprint(r.PriceAdjustment))
	}
	return checkSource(r.Source)
}

// SemanticMatchRequest ranks candidate providers for a mission.
type SemanticMatchRequest struct {
	Mission    Mission    `json:"mission"`
	Candidates []Provider `json:"candidates"`
	Limit      int        `json:"limit,omitempty"`
}

func (r *SemanticMatchRequest) Normalize() {
	r.Mission.Normalize()
	for i := range r.Candidates {
		r.Candidates[i].Normalize()
	}
	r.Limit = normalizeLimit(r.Limit)
}

// InverseMatchRequest ranks candidate missions for a provider.
type InverseMatchRequest struct {
	Provider   Provider  `json:"provider"`
	Candidates []Mission `json:"candidates"`
	Limit      int       `json:"limit,omitempty"`
}

func (r *InverseMatchRequest) Normalize() {
	r.Provider.Normalize()
	for i := range r.Candidates {
		r.Candidates[i].Normalize()
	}
	r.Limit = normalizeLimit(r.Limit)
}

// Match qualities.
const (
	MatchGood = "good"
	MatchFair = "fair"
)

// Match is one ranked candidate.
type Match struct {
	ID           string   `json:"id"`
	Similarity   float64  `json:"similarity"`
	Quality      string   `json:"quality"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
}

// MatchResult lists candidates by descending similarity.
type MatchResult struct {
	Matches []Match `json:"matches"`
	Source  string  `json:"source"`
}

func (r MatchResult) Validate() error {
	for _, m := range r.Matches {
		if err := checkUnit("similarity", m.Similarity); err != nil {
			return err
		}
	}
	return checkSource(r.Source)
}

//Personal.AI order the ending
