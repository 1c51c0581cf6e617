package scoring

import (
	"math"

	"github.com/google/uuid"

	"github.com/turtacn/MissionIntelligence/internal/intelligence/heuristic"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/standardize"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	scoringtypes "github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Source values, re-exported for callers of this package.
const (
	SourceML       = scoringtypes.SourceML
	SourceFallback = scoringtypes.SourceFallback
	SourceDefault  = scoringtypes.SourceDefault
)

// Default results are neutral and schema-valid. They are what a caller gets
// when neither the ML service nor the heuristics produced an answer.

func defaultComprehensiveScore() *scoringtypes.ComprehensiveScoreResult {
	return &scoringtypes.ComprehensiveScoreResult{
		TotalScore:   50,
		Breakdown:    scoringtypes.ScoreBreakdown{Price: 50, Quality: 50, Fit: 50, Delay: 50, Risk: 50, CompletionProbability: 45},
		Explanations: []string{"Score par défaut : analyse indisponible"},
		Source:       SourceDefault,
	}
}

func priceAround(v float64) scoringtypes.PriceRange {
	return scoringtypes.PriceRange{Min: round2(v * 0.9), Max: round2(v * 1.1)}
}

func defaultPrice(m scoringtypes.Mission) *scoringtypes.PriceResult {
	price := round2(m.BudgetOrDefault() * 0.8)
	return &scoringtypes.PriceResult{
		RecommendedPrice: price,
		PriceRange:       priceAround(price),
		Confidence:       30,
		MarketPosition:   scoringtypes.PositionStandard,
		Reasoning:        []string{"Prix par défaut basé sur le budget"},
		Source:           SourceDefault,
	}
}

func defaultAbuse() *scoringtypes.AbuseResult {
	return &scoringtypes.AbuseResult{Categories: []string{}, Action: scoringtypes.ActionReview, Source: SourceDefault}
}

func defaultMatches() *scoringtypes.MatchResult {
	return &scoringtypes.MatchResult{Matches: []scoringtypes.Match{}, Source: SourceDefault}
}

func defaultNeuralPricing(m scoringtypes.Mission) *scoringtypes.NeuralPricingResult {
	price := round2(m.BudgetOrDefault() * 0.8)
	return &scoringtypes.NeuralPricingResult{
		OptimalPrice:   price,
		PriceRange:     priceAround(price),
		MarketMedian:   price,
		WinProbability: 0.5,
		Confidence:     0.2,
		Strategy:       scoringtypes.StrategyCompetitive,
		Source:         SourceDefault,
	}
}

func defaultBehavior() *scoringtypes.BehaviorResult {
	return &scoringtypes.BehaviorResult{
		Score: 50, Profile: "unknown", Reliability: 50, Responsiveness: 50, Activity: 50,
		Source: SourceDefault,
	}
}

func defaultSentiment() *scoringtypes.SentimentResult {
	return &scoringtypes.SentimentResult{Label: scoringtypes.SentimentNeutral, Source: SourceDefault}
}

func defaultNegotiation(m scoringtypes.Mission) *scoringtypes.NegotiationResult {
	budget := m.BudgetOrDefault()
	return &scoringtypes.NegotiationResult{
		Strategy:        scoringtypes.NegotiationCounterOffer,
		SuggestedPrice:  round2(budget),
		AcceptableRange: scoringtypes.PriceRange{Min: round2(budget * 0.95), Max: round2(budget * 1.05)},
		Arguments:       []string{},
		Confidence:      20,
		Source:          SourceDefault,
	}
}

func defaultTrust() *scoringtypes.TrustResult {
	return &scoringtypes.TrustResult{TrustScore: 50, Level: heuristic.TrustMedium, Source: SourceDefault}
}

func defaultMarketHeat(category string) *scoringtypes.MarketHeatResult {
	return &scoringtypes.MarketHeatResult{
		Category:        category,
		HeatScore:       50,
		Level:           heuristic.HeatWarm,
		PriceAdjustment: 1,
		Source:          SourceDefault,
	}
}

func defaultPreview(projectID string) *scoringtypes.PreviewScoringResult {
	return &scoringtypes.PreviewScoringResult{ProjectID: projectID, Entries: []scoringtypes.PreviewEntry{}, Source: SourceDefault}
}

func defaultBrief(req brief.Request) *brief.StandardizationResult {
	lo, med, hi := standardize.SuggestPrice(1, 0, standardize.PositionStandard)
	title := []rune(req.Title)
	if len(title) == 0 {
		title = []rune("Mission")
	}
	return &brief.StandardizationResult{
		AnalysisID:         uuid.NewString(),
		TitleStd:           string(title[:min(len(title), brief.MaxTitleStdRunes)]),
		AcceptanceCriteria: []string{},
		CategoryStd:        standardize.CategoryOther,
		SubCategoryStd:     "general",
		TagsStd:            []string{standardize.CategoryOther},
		SkillsStd:          []string{},
		MissingInfo:        []brief.MissingInfo{},
		PriceSuggestedMin:  lo,
		PriceSuggestedMed:  med,
		PriceSuggestedMax:  hi,
		DelaySuggestedDays: standardize.SuggestDelayDays(1, 0),
		ComplexityScore:    1,
		Source:             SourceDefault,
	}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

//Personal.AI order the ending
