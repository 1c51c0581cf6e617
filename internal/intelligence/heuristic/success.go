package heuristic

import (
	"math"
	"sort"
	"strings"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Dimension weights of the success aggregation.
const (
	WeightTechnical = 0.25
	WeightEconomic  = 0.30
	WeightTemporal  = 0.20
	WeightMarket    = 0.15
	WeightQuality   = 0.10
)

// Bounds and adjustments applied after the weighted sum.
const (
	MinProbability = 0.1
	MaxProbability = 0.98

	successPatternBonus   = 0.10
	riskIndicatorPenalty  = 0.15
	optimizationBonus     = 0.05
	successPatternTrigger = 0.8
	riskIndicatorTrigger  = 0.7
	optimizationTrigger   = 0.8

	maxKeyFactors = 5
)

// SimpleSuccessProbability is the coarse estimate used when nothing but the
// mission is known.
func SimpleSuccessProbability(m scoring.Mission) float64 {
	urgency := 1.0
	if m.Urgency == "high" {
		urgency = 0.7
	}
	budget := m.BudgetOrDefault()
	complexity := float64(m.ComplexityOrDefault())
	p := (0.5 + budget/10000*0.3 + (10-complexity)/10*0.2) * urgency
	return math.Min(0.95, p)
}

// SuccessFactors are the fifteen factor scores, each in [0,1], behind a
// success prediction.
type SuccessFactors struct {
	// technical
	SkillCoverage      float64
	ComplexityFit      float64
	ProviderExperience float64
	// economic
	BudgetAdequacy     float64
	PaymentReliability float64
	PriceRealism       float64
	// temporal
	UrgencyPressure float64
	DurationFit     float64
	Responsiveness  float64
	// market
	Competition    float64
	CategoryDemand float64
	ClientTrack    float64
	// quality
	ProviderRating  float64
	ProviderSuccess float64
	BriefClarity    float64
}

// ComputeFactors derives the factor scores from a request. Unknown inputs get
// a neutral value so that a sparse request still yields a usable estimate.
func ComputeFactors(req scoring.SuccessRequest) SuccessFactors {
	m := req.Mission
	complexity := float64(m.ComplexityOrDefault())
	budget := m.BudgetOrDefault()
	var f SuccessFactors

	f.ComplexityFit = 1 - (complexity-1)/9*0.6
	f.SkillCoverage, f.ProviderExperience = 0.6, 0.5
	f.ProviderRating, f.ProviderSuccess, f.Responsiveness = 0.6, 0.75, 0.7
	if p := req.Provider; p != nil {
		if len(m.SkillsRequired) > 0 {
			f.SkillCoverage = float64(SkillsMatch(m.SkillsRequired, p.Skills)) / 100
		}
		f.ProviderExperience = math.Min(1, float64(p.CompletedProjects)/50)
		f.ProviderRating = p.Rating / 5
		if p.SuccessRate != nil {
			f.ProviderSuccess = *p.SuccessRate
		}
		f.Responsiveness = responsiveness(p.AvgResponseHours)
	}

	expected := complexity * 800
	f.PriceRealism = math.Min(1, budget/expected)
	f.BudgetAdequacy = 0.7
	if req.Bid != nil && req.Bid.Price > 0 {
		ratio := req.Bid.Price / budget
		if ratio <= 1 {
			f.BudgetAdequacy = 1 - (1-ratio)*0.5
		} else {
			f.BudgetAdequacy = math.Max(0, 2-ratio)
		}
	}
	f.PaymentReliability = 0.7
	if req.Client.PaymentReliability > 0 {
		f.PaymentReliability = req.Client.PaymentReliability
	}

	switch m.Urgency {
	case "high":
		f.UrgencyPressure = 0.5
	case "medium":
		f.UrgencyPressure = 0.75
	default:
		f.UrgencyPressure = 0.9
	}
	f.DurationFit = 0.7
	weeks := m.DurationWeeks
	if req.Bid != nil && req.Bid.DurationWeeks > 0 {
		weeks = req.Bid.DurationWeeks
	}
	if weeks > 0 {
		f.DurationFit = math.Min(1, weeks/complexity)
	}

	switch req.CompetitionLevel {
	case scoring.CompetitionLow:
		f.Competition = 0.9
	case scoring.CompetitionHigh:
		f.Competition = 0.5
	default:
		f.Competition = 0.7
	}
	f.CategoryDemand = CategoryDemand(m.Category)
	f.ClientTrack = 0.6
	if req.Client.MissionsPosted > 0 {
		f.ClientTrack = float64(req.Client.MissionsCompleted) / float64(req.Client.MissionsPosted)
	}

	words := len(strings.Fields(m.Description))
	f.BriefClarity = clamp(float64(words)/150, 0.2, 1)
	return f
}

func responsiveness(hours float64) float64 {
	switch {
	case hours <= 0:
		return 0.7
	case hours <= 2:
		return 1
	case hours <= 12:
		return 0.8
	case hours <= 24:
		return 0.6
	default:
		return 0.4
	}
}

// SubScores averages the factors of each dimension.
func (f SuccessFactors) SubScores() scoring.SubScores {
	return scoring.SubScores{
		Technical: mean(f.SkillCoverage, f.ComplexityFit, f.ProviderExperience),
		Economic:  mean(f.BudgetAdequacy, f.PaymentReliability, f.PriceRealism),
		Temporal:  mean(f.UrgencyPressure, f.DurationFit, f.Responsiveness),
		Market:    mean(f.Competition, f.CategoryDemand, f.ClientTrack),
		Quality:   mean(f.ProviderRating, f.ProviderSuccess, f.BriefClarity),
	}
}

// SuccessPattern is high when the provider fits, is well rated and the
// client usually completes missions.
func (f SuccessFactors) SuccessPattern() float64 {
	return mean(f.SkillCoverage, f.ProviderRating, f.ClientTrack)
}

// RiskIndicator is high when the price, the deadline and the provider's
// record all look fragile.
func (f SuccessFactors) RiskIndicator() float64 {
	return mean(1-f.BudgetAdequacy, 1-f.UrgencyPressure, 1-f.ProviderSuccess)
}

// OptimizationPotential is high when the schedule, the market and the brief
// leave room to improve the outcome.
func (f SuccessFactors) OptimizationPotential() float64 {
	return mean(f.DurationFit, f.Competition, f.BriefClarity)
}

// AggregateProbability combines the sub-scores with the dimension weights and
// applies the bounded pattern adjustments.
func AggregateProbability(f SuccessFactors) float64 {
	s := f.SubScores()
	p := s.Technical*WeightTechnical +
		s.Economic*WeightEconomic +
		s.Temporal*WeightTemporal +
		s.Market*WeightMarket +
		s.Quality*WeightQuality
	if f.SuccessPattern() > successPatternTrigger {
		p += successPatternBonus
	}
	if f.RiskIndicator() > riskIndicatorTrigger {
		p -= riskIndicatorPenalty
	}
	if f.OptimizationPotential() > optimizationTrigger {
		p += optimizationBonus
	}
	return clamp(p, MinProbability, MaxProbability)
}

// PredictSuccess estimates the probability that the mission completes well
// and explains it.
func (s *Scorer) PredictSuccess(req scoring.SuccessRequest) *scoring.SuccessPrediction {
	f := ComputeFactors(req)
	sub := f.SubScores()

	return &scoring.SuccessPrediction{
		Probability:             round2(AggregateProbability(f)),
		SubScores:               roundSubScores(sub),
		KeyFactors:              rankFactors(f),
		RiskAssessment:          assessRisks(sub),
		OptimizationSuggestions: suggestions(f, sub),
		Confidence:              round2(dataConfidence(req)),
		Source:                  scoring.SourceFallback,
	}
}

// DefaultSuccess is the minimal prediction built from the mission alone.
func DefaultSuccess(m scoring.Mission) *scoring.SuccessPrediction {
	return &scoring.SuccessPrediction{
		Probability:             round2(clamp(SimpleSuccessProbability(m), MinProbability, MaxProbability)),
		KeyFactors:              []scoring.Factor{},
		RiskAssessment:          []scoring.RiskItem{},
		OptimizationSuggestions: []string{},
		Confidence:              0.3,
		Source:                  scoring.SourceDefault,
	}
}

func roundSubScores(s scoring.SubScores) scoring.SubScores {
	return scoring.SubScores{
		Technical: round2(s.Technical),
		Economic:  round2(s.Economic),
		Temporal:  round2(s.Temporal),
		Market:    round2(s.Market),
		Quality:   round2(s.Quality),
	}
}

func rankFactors(f SuccessFactors) []scoring.Factor {
	w := func(dim float64) float64 { return dim / 3 }
	all := []scoring.Factor{
		{Name: "skill_coverage", Score: f.SkillCoverage, Weight: w(WeightTechnical)},
		{Name: "complexity_fit", Score: f.ComplexityFit, Weight: w(WeightTechnical)},
		{Name: "provider_experience", Score: f.ProviderExperience, Weight: w(WeightTechnical)},
		{Name: "budget_adequacy", Score: f.BudgetAdequacy, Weight: w(WeightEconomic)},
		{Name: "payment_reliability", Score: f.PaymentReliability, Weight: w(WeightEconomic)},
		{Name: "price_realism", Score: f.PriceRealism, Weight: w(WeightEconomic)},
		{Name: "urgency_pressure", Score: f.UrgencyPressure, Weight: w(WeightTemporal)},
		{Name: "duration_fit", Score: f.DurationFit, Weight: w(WeightTemporal)},
		{Name: "responsiveness", Score: f.Responsiveness, Weight: w(WeightTemporal)},
		{Name: "competition", Score: f.Competition, Weight: w(WeightMarket)},
		{Name: "category_demand", Score: f.CategoryDemand, Weight: w(WeightMarket)},
		{Name: "client_track_record", Score: f.ClientTrack, Weight: w(WeightMarket)},
		{Name: "provider_rating", Score: f.ProviderRating, Weight: w(WeightQuality)},
		{Name: "provider_success", Score: f.ProviderSuccess, Weight: w(WeightQuality)},
		{Name: "brief_clarity", Score: f.BriefClarity, Weight: w(WeightQuality)},
	}
	// Rank by weighted distance from neutral: the factors that moved the
	// estimate most come first.
	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].Score-0.5)*all[i].Weight > math.Abs(all[j].Score-0.5)*all[j].Weight
	})
	top := all[:maxKeyFactors]
	for i := range top {
		top[i].Score = round2(top[i].Score)
		top[i].Weight = round2(top[i].Weight)
		switch {
		case top[i].Score >= 0.7:
			top[i].Impact = "positive"
		case top[i].Score < 0.4:
			top[i].Impact = "negative"
		default:
			top[i].Impact = "neutral"
		}
	}
	return top
}

func assessRisks(s scoring.SubScores) []scoring.RiskItem {
	items := []struct {
		category   string
		score      float64
		mitigation string
	}{
		{"technical", s.Technical, "confirm the provider's experience with the required stack"},
		{"budget", s.Economic, "align budget and scope before starting"},
		{"timeline", s.Temporal, "agree on intermediate milestones"},
		{"market", s.Market, "widen the call for proposals"},
		{"quality", s.Quality, "detail the brief and the acceptance criteria"},
	}
	out := make([]scoring.RiskItem, 0, len(items))
	for _, it := range items {
		risk := round2(1 - it.score)
		level := scoring.RiskLow
		switch {
		case risk > 0.6:
			level = scoring.RiskHigh
		case risk > 0.35:
			level = scoring.RiskMedium
		}
		item := scoring.RiskItem{Category: it.category, Level: level, Score: risk}
		if level != scoring.RiskLow {
			item.Mitigation = it.mitigation
		}
		out = append(out, item)
	}
	return out
}

func suggestions(f SuccessFactors, s scoring.SubScores) []string {
	var out []string
	if f.SkillCoverage < 0.6 {
		out = append(out, "favour providers covering more of the required skills")
	}
	if f.PriceRealism < 0.7 {
		out = append(out, "raise the budget closer to the expected cost of this complexity")
	}
	if f.BudgetAdequacy < 0.5 {
		out = append(out, "negotiate the bid price or reduce the scope")
	}
	if s.Temporal < 0.6 {
		out = append(out, "relax the deadline or split delivery into milestones")
	}
	if f.BriefClarity < 0.5 {
		out = append(out, "expand the description with goals, features and constraints")
	}
	if f.ClientTrack < 0.5 {
		out = append(out, "secure payment in escrow to reassure providers")
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// dataConfidence grows with the amount of information in the request.
func dataConfidence(req scoring.SuccessRequest) float64 {
	c := 0.5
	if req.Provider != nil {
		c += 0.1
	}
	if req.Bid != nil && req.Bid.Price > 0 {
		c += 0.1
	}
	if req.Client.MissionsPosted > 0 {
		c += 0.1
	}
	if req.Mission.DurationWeeks > 0 {
		c += 0.05
	}
	if req.Mission.Complexity > 0 {
		c += 0.05
	}
	if req.Mission.Budget > 0 {
		c += 0.05
	}
	return math.Min(0.95, c)
}

//Personal.AI order the ending
