package scoring

import (
	"fmt"
	"strings"
)

// ComprehensiveScoreRequest asks for a full score of one bid on a mission.
type ComprehensiveScoreRequest struct {
	Mission  Mission  `json:"mission"`
	Provider Provider `json:"provider"`
	Bid      *Bid     `json:"bid,omitempty"`
}

func (r *ComprehensiveScoreRequest) Normalize() {
	r.Mission.Normalize()
	r.Provider.Normalize()
	if r.Bid != nil {
		r.Bid.Normalize()
	}
}

// DurationWeeks returns the bid duration, falling back to the mission's.
func (r ComprehensiveScoreRequest) DurationWeeks() float64 {
	if r.Bid != nil && r.Bid.DurationWeeks > 0 {
		return r.Bid.DurationWeeks
	}
	return r.Mission.DurationWeeks
}

// ComprehensiveScoreResult is the scored bid.
type ComprehensiveScoreResult struct {
	TotalScore   int            `json:"total_score"`
	Breakdown    ScoreBreakdown `json:"breakdown"`
	Explanations []string       `json:"explanations"`
	Source       string         `json:"source"`
}

func (r ComprehensiveScoreResult) Validate() error {
	if err := checkScore("total_score", r.TotalScore); err != nil {
		return err
	}
	if err := r.Breakdown.Validate(); err != nil {
		return err
	}
	return checkSource(r.Source)
}

// Fallback reports whether the result was computed locally.
func (r ComprehensiveScoreResult) Fallback() bool { return r.Source != SourceML }

// PriceRequest asks for a price recommendation on a mission.
type PriceRequest struct {
	Mission          Mission `json:"mission"`
	CompetitionLevel string  `json:"competition_level,omitempty"`
	ProviderID       string  `json:"provider_id,omitempty"`
}

func (r *PriceRequest) Normalize() {
	r.Mission.Normalize()
	r.CompetitionLevel = strings.ToLower(strings.TrimSpace(r.CompetitionLevel))
}

// Market positions.
const (
	PositionBudgetFriendly = "budget_friendly"
	PositionStandard       = "standard"
)

// PriceResult is a recommended price with its range.
type PriceResult struct {
	RecommendedPrice float64    `json:"recommended_price"`
	PriceRange       PriceRange `json:"price_range"`
	// Confidence is on a 0..100 scale.
	Confidence     int      `json:"confidence"`
	MarketPosition string   `json:"market_position"`
	Reasoning      []string `json:"reasoning,omitempty"`
	Source         string   `json:"source"`
}

func (r PriceResult) Validate() error {
	if err := r.PriceRange.Validate(); err != nil {
		return err
	}
	if r.RecommendedPrice < r.PriceRange.Min || r.RecommendedPrice > r.PriceRange.Max {
		return invalid("recommended_price", fmt.Sprint(r.RecommendedPrice))
	}
	if err := checkScore("confidence", r.Confidence); err != nil {
		return err
	}
	return checkSource(r.Source)
}

func (r PriceResult) ConfidenceScore() float64 { return float64(r.Confidence) }

// Proposal is one provider's bid inside a preview.
type Proposal struct {
	Provider Provider `json:"provider"`
	Bid      *Bid     `json:"bid,omitempty"`
}

// PreviewRequest asks for the preview scoring of every proposal on a project.
type PreviewRequest struct {
	ProjectID string     `json:"project_id"`
	Mission   Mission    `json:"mission"`
	Proposals []Proposal `json:"proposals,omitempty"`
}

func (r *PreviewRequest) Normalize() {
	r.ProjectID = strings.TrimSpace(r.ProjectID)
	r.Mission.Normalize()
	for i := range r.Proposals {
		r.Proposals[i].Provider.Normalize()
		if r.Proposals[i].Bid != nil {
			r.Proposals[i].Bid.Normalize()
		}
	}
}

// PreviewEntry is the score of one proposal.
type PreviewEntry struct {
	ProviderID string         `json:"provider_id"`
	TotalScore int            `json:"total_score"`
	Breakdown  ScoreBreakdown `json:"breakdown"`
	Rank       int            `json:"rank"`
}

// PreviewScoringResult ranks the proposals of a project, best first.
type PreviewScoringResult struct {
	ProjectID string         `json:"project_id"`
	Entries   []PreviewEntry `json:"entries"`
	Best      string         `json:"best,omitempty"`
	Source    string         `json:"source"`
}

func (r PreviewScoringResult) Validate() error {
	for _, e := range r.Entries {
		if err := checkScore("entries.total_score", e.TotalScore); err != nil {
			return err
		}
		if err := e.Breakdown.Validate(); err != nil {
			return err
		}
	}
	return checkSource(r.Source)
}

//Personal.AI order the ending
