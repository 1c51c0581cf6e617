package heuristic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

func ptr(f float64) *float64 { return &f }

func TestSkillsMatch(t *testing.T) {
	assert.Equal(t, SkillsMatch([]string{"React"}, []string{"react"}), SkillsMatch([]string{"react"}, []string{"REACT"}))
	assert.Equal(t, 100, SkillsMatch([]string{"React"}, []string{"react"}))
	assert.Equal(t, 67, SkillsMatch([]string{"Go", "Kubernetes", "PostgreSQL"}, []string{"golang", "postgres"}))
	assert.Equal(t, 100, SkillsMatch([]string{"Développement"}, []string{"developpement web"}))
	assert.Equal(t, 0, SkillsMatch(nil, []string{"react"}))
	assert.Equal(t, 0, SkillsMatch([]string{"Rust"}, nil))
}

func TestPriceScore(t *testing.T) {
	tests := []struct {
		name      string
		bid, rate float64
		weeks     float64
		want      int
	}{
		{"at expected price", 700, 10, 2, 80},
		{"well below", 500, 10, 2, 90},
		{"50% above", 1050, 10, 2, 55},
		{"far above floors at 30", 7000, 10, 2, 30},
		{"no bid", 0, 10, 2, 70},
		{"no rate", 700, 0, 2, 70},
		{"no duration", 700, 10, 0, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceScore(tt.bid, tt.rate, tt.weeks))
		})
	}
}

func TestComprehensiveScore_ExcellentProvider(t *testing.T) {
	s := New()
	req := scoring.ComprehensiveScoreRequest{
		Mission: scoring.Mission{Title: "Dashboard", SkillsRequired: []string{"React", "Node.js"}, DurationWeeks: 4},
		Provider: scoring.Provider{
			ID: "p1", Rating: 5, CompletedProjects: 120, SuccessRate: ptr(1.0),
			HourlyRate: 50, Skills: []string{"react", "node.js", "typescript"},
		},
		Bid: &scoring.Bid{Price: 50 * 4 * 35},
	}
	res := s.ComprehensiveScore(req)

	assert.GreaterOrEqual(t, res.TotalScore, 80)
	assert.Equal(t, 95, res.TotalScore)
	assert.Equal(t, scoring.ScoreBreakdown{Price: 80, Quality: 100, Fit: 100, Delay: 75, Risk: 100, CompletionProbability: 86}, res.Breakdown)
	assert.Equal(t, FallbackNotice, res.Explanations[0])
	assert.Equal(t, scoring.SourceFallback, res.Source)
	require.NoError(t, res.Validate())
}

func TestComprehensiveScore_Defaults(t *testing.T) {
	res := New().ComprehensiveScore(scoring.ComprehensiveScoreRequest{})
	assert.Equal(t, 70, res.Breakdown.Price)
	assert.Equal(t, 80, res.Breakdown.Risk)
	assert.Equal(t, 0, res.Breakdown.Fit)
	assert.Equal(t, 18, res.TotalScore)
	require.NoError(t, res.Validate())
}

func TestPreviewScoring_RanksBestFirst(t *testing.T) {
	mission := scoring.Mission{SkillsRequired: []string{"Go"}}
	res := New().PreviewScoring(scoring.PreviewRequest{
		ProjectID: "42",
		Mission:   mission,
		Proposals: []scoring.Proposal{
			{Provider: scoring.Provider{ID: "weak", Rating: 2}},
			{Provider: scoring.Provider{ID: "strong", Rating: 5, CompletedProjects: 60, Skills: []string{"go"}}},
		},
	})
	require.Len(t, res.Entries, 2)
	assert.Equal(t, "strong", res.Best)
	assert.Equal(t, 1, res.Entries[0].Rank)
	assert.Equal(t, "weak", res.Entries[1].ProviderID)
	require.NoError(t, res.Validate())
}

func TestRecommendPrice(t *testing.T) {
	s := New()
	price := func(level string) *scoring.PriceResult {
		return s.RecommendPrice(scoring.PriceRequest{Mission: scoring.Mission{Budget: 5000}, CompetitionLevel: level})
	}
	high, medium, low := price("high"), price("medium"), price("low")
	assert.Less(t, high.RecommendedPrice, medium.RecommendedPrice)
	assert.Less(t, medium.RecommendedPrice, low.RecommendedPrice)
	assert.Equal(t, 3800.0, medium.RecommendedPrice)
	assert.Equal(t, scoring.PositionStandard, medium.MarketPosition)
	assert.Equal(t, medium.RecommendedPrice, price("unheard-of").RecommendedPrice)

	def := s.RecommendPrice(scoring.PriceRequest{})
	assert.Equal(t, 760.0, def.RecommendedPrice)
	assert.Equal(t, scoring.PriceRange{Min: 684, Max: 836}, def.PriceRange)
	assert.Equal(t, 60, def.Confidence)
	assert.Equal(t, scoring.PositionBudgetFriendly, def.MarketPosition)
	require.NoError(t, def.Validate())
}

func TestNeuralPricing(t *testing.T) {
	s := New()
	res := s.NeuralPricing(scoring.NeuralPricingRequest{
		Mission:        scoring.Mission{Budget: 5000},
		CompetitorBids: []float64{3400, 3000, 3200},
	})
	assert.Equal(t, 3920.0, res.OptimalPrice)
	assert.Equal(t, 3200.0, res.MarketMedian)
	assert.Equal(t, scoring.StrategyPremium, res.Strategy)
	assert.InDelta(t, 0.28, res.WinProbability, 0.01)
	assert.InDelta(t, 0.55, res.Confidence, 1e-9)
	require.NoError(t, res.Validate())

	alone := s.NeuralPricing(scoring.NeuralPricingRequest{Mission: scoring.Mission{Budget: 5000}})
	assert.Equal(t, 4400.0, alone.OptimalPrice)
	assert.Equal(t, scoring.StrategyCompetitive, alone.Strategy)
	assert.Equal(t, 0.5, alone.WinProbability)
}

func TestNegotiate(t *testing.T) {
	s := New()
	tests := []struct {
		bid       float64
		strategy  string
		suggested float64
	}{
		{1000, scoring.NegotiationAccept, 1000},
		{1200, scoring.NegotiationCounterOffer, 1100},
		{1500, scoring.NegotiationRenegotiateScope, 1100},
		{500, scoring.NegotiationRaiseOffer, 850},
	}
	for _, tt := range tests {
		res := s.Negotiate(scoring.NegotiationRequest{Mission: scoring.Mission{Budget: 1000}, Bid: scoring.Bid{Price: tt.bid}})
		assert.Equal(t, tt.strategy, res.Strategy, "bid %v", tt.bid)
		assert.Equal(t, tt.suggested, res.SuggestedPrice, "bid %v", tt.bid)
		require.NoError(t, res.Validate())
	}
}

func TestSimpleSuccessProbability(t *testing.T) {
	assert.InDelta(t, 0.75, SimpleSuccessProbability(scoring.Mission{Budget: 5000}), 1e-9)
	assert.InDelta(t, 0.525, SimpleSuccessProbability(scoring.Mission{Budget: 5000, Urgency: "high"}), 1e-9)
	assert.Equal(t, 0.95, SimpleSuccessProbability(scoring.Mission{Budget: 100000}))
	// budget 1000 and complexity 5 by default
	assert.InDelta(t, 0.63, SimpleSuccessProbability(scoring.Mission{}), 1e-9)
}

func uniform(v float64) SuccessFactors {
	return SuccessFactors{v, v, v, v, v, v, v, v, v, v, v, v, v, v, v}
}

func TestAggregateProbability_Bounds(t *testing.T) {
	assert.Equal(t, MaxProbability, AggregateProbability(uniform(1)))
	assert.Equal(t, MinProbability, AggregateProbability(uniform(0)))
	assert.InDelta(t, 0.5, AggregateProbability(uniform(0.5)), 1e-9)
}

func TestAggregateProbability_Adjustments(t *testing.T) {
	f := uniform(0.6)
	base := AggregateProbability(f)
	assert.InDelta(t, 0.6, base, 1e-9)

	f.SkillCoverage, f.ProviderRating, f.ClientTrack = 0.9, 0.9, 0.9
	withPattern := AggregateProbability(f)
	assert.Greater(t, withPattern-base, successPatternBonus)
}

func TestPredictSuccess(t *testing.T) {
	s := New()
	good := s.PredictSuccess(scoring.SuccessRequest{
		Mission: scoring.Mission{
			Budget: 8000, Complexity: 4, DurationWeeks: 6, Category: "web-development",
			SkillsRequired: []string{"React"}, Description: strings.Repeat("objectif fonctionnalite ", 80),
		},
		Provider:         &scoring.Provider{Rating: 4.9, CompletedProjects: 60, SuccessRate: ptr(0.97), Skills: []string{"React"}, AvgResponseHours: 1},
		Bid:              &scoring.Bid{Price: 7500},
		Client:           scoring.ClientHistory{MissionsPosted: 10, MissionsCompleted: 10, PaymentReliability: 1},
		CompetitionLevel: "low",
	})
	poor := s.PredictSuccess(scoring.SuccessRequest{
		Mission:  scoring.Mission{Budget: 500, Complexity: 9, Urgency: "high", Description: "vite"},
		Provider: &scoring.Provider{Rating: 2, SuccessRate: ptr(0.2), Skills: []string{"Excel"}},
		Bid:      &scoring.Bid{Price: 1500},
	})

	assert.Greater(t, good.Probability, poor.Probability)
	for _, p := range []*scoring.SuccessPrediction{good, poor} {
		assert.GreaterOrEqual(t, p.Probability, MinProbability)
		assert.LessOrEqual(t, p.Probability, MaxProbability)
		assert.Len(t, p.KeyFactors, maxKeyFactors)
		assert.Len(t, p.RiskAssessment, 5)
		require.NoError(t, p.Validate())
	}
	assert.Greater(t, good.Confidence, poor.Confidence)
	assert.NotEmpty(t, poor.OptimizationSuggestions)
}

func TestDefaultSuccess(t *testing.T) {
	d := DefaultSuccess(scoring.Mission{})
	assert.Equal(t, scoring.SourceDefault, d.Source)
	assert.Equal(t, 0.63, d.Probability)
	require.NoError(t, d.Validate())
}

func TestDetectAbuse(t *testing.T) {
	s := New()

	leak := s.DetectAbuse(scoring.AbuseRequest{Content: "Contactez-moi sur jean.dupont@mail.com ou au 06 12 34 56 78, paiement direct via PayPal"})
	assert.True(t, leak.IsAbusive)
	assert.Equal(t, 100, leak.RiskScore)
	assert.Equal(t, scoring.ActionBlock, leak.Action)
	assert.Equal(t, []string{AbuseContactLeak, AbusePaymentBypass}, leak.Categories)
	for _, sig := range leak.Signals {
		assert.NotContains(t, sig.Evidence, "dupont")
	}

	clean := s.DetectAbuse(scoring.AbuseRequest{Content: "Bonjour, je suis disponible pour votre projet React."})
	assert.False(t, clean.IsAbusive)
	assert.Equal(t, 0, clean.RiskScore)
	assert.Equal(t, scoring.ActionAllow, clean.Action)
	assert.NotNil(t, clean.Categories)

	link := s.DetectAbuse(scoring.AbuseRequest{Content: "voir mon portfolio https://example.com"})
	assert.Equal(t, 15, link.RiskScore)
	assert.False(t, link.IsAbusive)

	spam := s.DetectAbuse(scoring.AbuseRequest{Content: "PROMO PROMO PROMO PROMO PROMO PROMO PROMO AUJOURD'HUI"})
	assert.Contains(t, spam.Categories, AbuseSpam)
	assert.Contains(t, spam.Categories, AbuseShouting)
	require.NoError(t, spam.Validate())
}

func TestAnalyzeSentiment(t *testing.T) {
	s := New()

	pos := s.AnalyzeSentiment(scoring.SentimentRequest{Text: "Excellent travail, très professionnel et rapide"})
	assert.Equal(t, scoring.SentimentPositive, pos.Label)
	assert.Equal(t, 1.0, pos.Score)

	neg := s.AnalyzeSentiment(scoring.SentimentRequest{Text: "Pas satisfait du tout, travail en retard"})
	assert.Equal(t, scoring.SentimentNegative, neg.Label)
	assert.InDelta(t, -0.67, neg.Score, 0.001)
	assert.Contains(t, neg.NegativeTerms, "satisfait")

	neutral := s.AnalyzeSentiment(scoring.SentimentRequest{Text: "Le projet commence lundi"})
	assert.Equal(t, scoring.SentimentNeutral, neutral.Label)
	assert.Equal(t, 0.3, neutral.Confidence)
	require.NoError(t, neutral.Validate())
}

func TestAnalyzeBehavior(t *testing.T) {
	s := New()

	fresh := s.AnalyzeBehavior(scoring.BehaviorRequest{UserID: "u"})
	assert.Equal(t, "new_user", fresh.Profile)
	assert.Contains(t, fresh.Flags, FlagNewUser)

	reliable := s.AnalyzeBehavior(scoring.BehaviorRequest{
		CompletedProjects: 50, CancelledProjects: 1, AvgResponseHours: 1, ActiveDaysLast30: 25,
	})
	assert.Equal(t, 96, reliable.Score)
	assert.Equal(t, "reliable", reliable.Profile)
	assert.Empty(t, reliable.Flags)

	risky := s.AnalyzeBehavior(scoring.BehaviorRequest{
		CompletedProjects: 3, CancelledProjects: 4, Disputes: 2, AvgResponseHours: 72, LastActiveDays: 45,
	})
	assert.ElementsMatch(t, []string{FlagHighCancellation, FlagDisputeProne, FlagSlowResponder, FlagInactive}, risky.Flags)
	assert.Equal(t, "at_risk", risky.Profile)
	require.NoError(t, risky.Validate())
}

func TestCalculateTrust(t *testing.T) {
	s := New()
	top := s.CalculateTrust(scoring.TrustRequest{Provider: scoring.Provider{
		Rating: 4.9, CompletedProjects: 40, SuccessRate: ptr(0.95), Verified: true, MemberSinceMonths: 48,
	}})
	assert.Equal(t, 95, top.TrustScore)
	assert.Equal(t, TrustExcellent, top.Level)
	assert.Equal(t, []string{"verified", "top_rated", "veteran", "dispute_free"}, top.Badges)

	unknown := s.CalculateTrust(scoring.TrustRequest{})
	assert.Equal(t, TrustLow, unknown.Level)
	require.NoError(t, unknown.Validate())
}

func TestMarketHeat(t *testing.T) {
	s := New()
	hot := s.MarketHeat(scoring.MarketHeatRequest{Category: "web-development", OpenMissions: 50, ActiveProviders: 10, RecentBids: 20})
	assert.Equal(t, 93, hot.HeatScore)
	assert.Equal(t, HeatHot, hot.Level)
	assert.Equal(t, 1.18, hot.PriceAdjustment)

	cold := s.MarketHeat(scoring.MarketHeatRequest{Category: "writing", OpenMissions: 1, ActiveProviders: 100, RecentBids: 50})
	assert.Equal(t, 22, cold.HeatScore)
	assert.Equal(t, HeatCold, cold.Level)
	require.NoError(t, cold.Validate())

	empty := s.MarketHeat(scoring.MarketHeatRequest{})
	assert.Equal(t, "other", empty.Category)
	require.NoError(t, empty.Validate())
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"reseau", "api"}, Tokenize("Le Réseau, de l'API! api"))

	long := Tokenize(strings.Repeat("alpha beta gamma delta ", 2) + "t01 t02 t03 t04 t05 t06 t07 t08 t09 t10 t11 t12 t13 t14 t15 t16 t17 t18 t19 t20")
	assert.Len(t, long, MaxTokens)
	assert.Equal(t, "alpha", long[0])
}

func TestSemanticMatch(t *testing.T) {
	s := New()
	res := s.SemanticMatch(scoring.SemanticMatchRequest{
		Mission: scoring.Mission{Title: "Développement application React", Description: "avec API Node", SkillsRequired: []string{"React", "Node"}},
		Candidates: []scoring.Provider{
			{ID: "designer", Skills: []string{"Photoshop"}, Bio: "Designer graphique"},
			{ID: "dev", Skills: []string{"React", "Node", "TypeScript"}, Bio: "Développeur fullstack React"},
		},
		Limit: 10,
	})
	require.Len(t, res.Matches, 2)
	assert.Equal(t, "dev", res.Matches[0].ID)
	assert.Equal(t, 0.33, res.Matches[0].Similarity)
	assert.Equal(t, scoring.MatchGood, res.Matches[0].Quality)
	assert.Equal(t, []string{"react", "node"}, res.Matches[0].MatchedTerms)
	assert.Equal(t, scoring.MatchFair, res.Matches[1].Quality)
	require.NoError(t, res.Validate())
}

func TestInverseMatch(t *testing.T) {
	res := New().InverseMatch(scoring.InverseMatchRequest{
		Provider: scoring.Provider{Skills: []string{"Flutter", "Firebase"}, Bio: "mobile"},
		Candidates: []scoring.Mission{
			{ID: "web", Title: "Site vitrine WordPress"},
			{ID: "app", Title: "Application mobile Flutter", Description: "backend Firebase"},
		},
		Limit: 1,
	})
	require.Len(t, res.Matches, 1)
	assert.Equal(t, "app", res.Matches[0].ID)
	assert.Equal(t, 1.0, res.Matches[0].Similarity)
}

//Personal.AI order the ending
