package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

func TestProviderNormalize(t *testing.T) {
	rate := 1.4
	p := Provider{Rating: 7, CompletedProjects: -3, SuccessRate: &rate, Skills: []string{" Go ", "go", "", "React"}}
	p.Normalize()

	assert.Equal(t, 5.0, p.Rating)
	assert.Equal(t, 0, p.CompletedProjects)
	assert.Equal(t, 1.0, *p.SuccessRate)
	assert.Equal(t, []string{"Go", "React"}, p.Skills)
	assert.Equal(t, 1.4, rate, "caller's value must not be modified")
}

func TestMissionDefaults(t *testing.T) {
	m := Mission{Title: "  Site  ", Category: " Web-Development ", Complexity: 42, Urgency: "HIGH"}
	m.Normalize()

	assert.Equal(t, "Site", m.Title)
	assert.Equal(t, "web-development", m.Category)
	assert.Equal(t, "high", m.Urgency)
	assert.Equal(t, 10, m.Complexity)
	assert.Equal(t, DefaultBudget, m.BudgetOrDefault())

	m.Complexity = 0
	assert.Equal(t, DefaultComplexity, m.ComplexityOrDefault())
	m.Budget = 2500
	assert.Equal(t, 2500.0, m.BudgetOrDefault())
}

func TestComprehensiveScoreRequest_DurationWeeks(t *testing.T) {
	r := ComprehensiveScoreRequest{Mission: Mission{DurationWeeks: 4}}
	assert.Equal(t, 4.0, r.DurationWeeks())
	r.Bid = &Bid{Price: 100}
	assert.Equal(t, 4.0, r.DurationWeeks())
	r.Bid.DurationWeeks = 2
	assert.Equal(t, 2.0, r.DurationWeeks())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		v    interface{ Validate() error }
		ok   bool
	}{
		{"score ok", ComprehensiveScoreResult{TotalScore: 80, Breakdown: ScoreBreakdown{Price: 80}, Source: SourceML}, true},
		{"score total out of range", ComprehensiveScoreResult{TotalScore: 101}, false},
		{"score breakdown out of range", ComprehensiveScoreResult{Breakdown: ScoreBreakdown{Risk: -1}}, false},
		{"score unknown source", ComprehensiveScoreResult{Source: "oracle"}, false},
		{"price ok", PriceResult{RecommendedPrice: 100, PriceRange: PriceRange{Min: 90, Max: 110}, Confidence: 60}, true},
		{"price outside range", PriceResult{RecommendedPrice: 200, PriceRange: PriceRange{Min: 90, Max: 110}}, false},
		{"price inverted range", PriceResult{PriceRange: PriceRange{Min: 10, Max: 1}}, false},
		{"success ok", SuccessPrediction{Probability: 0.7, Confidence: 0.5}, true},
		{"success probability > 1", SuccessPrediction{Probability: 1.2}, false},
		{"sentiment ok", SentimentResult{Score: -0.4, Label: SentimentNegative, Confidence: 0.6}, true},
		{"sentiment label", SentimentResult{Label: "meh"}, false},
		{"abuse action", AbuseResult{RiskScore: 10}, false},
		{"abuse ok", AbuseResult{RiskScore: 10, Action: ActionAllow}, true},
		{"match similarity", MatchResult{Matches: []Match{{ID: "a", Similarity: 2}}}, false},
		{"negotiation ok", NegotiationResult{Strategy: NegotiationAccept, SuggestedPrice: 10, AcceptableRange: PriceRange{Min: 9, Max: 11}, Confidence: 70}, true},
		{"heat adjustment", MarketHeatResult{HeatScore: 50}, false},
		{"trust level", TrustResult{TrustScore: 50}, false},
		{"behavior profile", BehaviorResult{Score: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsCode(err, errors.CodeValidation), "got %v", err)
		})
	}
}

func TestConfidenceScoreScale(t *testing.T) {
	assert.Equal(t, 60.0, PriceResult{Confidence: 60}.ConfidenceScore())
	assert.InDelta(t, 95.0, SuccessPrediction{Confidence: 0.95}.ConfidenceScore(), 1e-9)
	assert.InDelta(t, 40.0, NeuralPricingResult{Confidence: 0.4}.ConfidenceScore(), 1e-9)
}

func TestNeuralPricingRequest_DropsInvalidBids(t *testing.T) {
	r := NeuralPricingRequest{CompetitorBids: []float64{100, -5, 0, 250}}
	r.Normalize()
	assert.Equal(t, []float64{100, 250}, r.CompetitorBids)
}

func TestMatchLimit(t *testing.T) {
	r := SemanticMatchRequest{}
	r.Normalize()
	assert.Equal(t, DefaultLimit, r.Limit)
	r.Limit = 1000
	r.Normalize()
	assert.Equal(t, MaxLimit, r.Limit)
}

//Personal.AI order the ending
