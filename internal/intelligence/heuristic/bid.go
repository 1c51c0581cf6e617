package heuristic

import (
	"fmt"
	"math"
	"sort"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

const (
	// hoursPerWeek converts an hourly rate and a duration in weeks into the
	// price a provider would normally ask.
	hoursPerWeek = 35.0

	neutralPriceScore = 70
	defaultRiskScore  = 80
	fallbackDelay     = 75
)

// PriceScore scores a bid price against the provider's expected price.
// Without a bid or without an expected price the score is neutral.
func PriceScore(bidPrice, hourlyRate, durationWeeks float64) int {
	expected := hourlyRate * durationWeeks * hoursPerWeek
	if bidPrice <= 0 || expected <= 0 {
		return neutralPriceScore
	}
	ratio := bidPrice / expected
	switch {
	case ratio < 0.8:
		return 90
	case ratio <= 1.0:
		return 80
	default:
		return roundInt(math.Max(30, 80-(ratio-1)*50))
	}
}

// ComprehensiveScore scores a bid from the provider's track record, the skill
// fit and the price.
func (s *Scorer) ComprehensiveScore(req scoring.ComprehensiveScoreRequest) *scoring.ComprehensiveScoreResult {
	p := req.Provider
	quality := clampInt(roundInt(p.Rating/5*100), 0, 100)
	experience := clampInt(p.CompletedProjects*2, 0, 100)
	fit := SkillsMatch(req.Mission.SkillsRequired, p.Skills)

	bidPrice := 0.0
	if req.Bid != nil {
		bidPrice = req.Bid.Price
	}
	price := PriceScore(bidPrice, p.HourlyRate, req.DurationWeeks())

	total := roundInt(mean(float64(quality), float64(experience), float64(fit), float64(price)))
	risk := defaultRiskScore
	if p.SuccessRate != nil {
		risk = clampInt(roundInt(*p.SuccessRate*100), 0, 100)
	}

	return &scoring.ComprehensiveScoreResult{
		TotalScore: total,
		Breakdown: scoring.ScoreBreakdown{
			Price:                 price,
			Quality:               quality,
			Fit:                   fit,
			Delay:                 fallbackDelay,
			Risk:                  risk,
			CompletionProbability: roundInt(float64(total) * 0.9),
		},
		Explanations: []string{
			FallbackNotice,
			fmt.Sprintf("quality %d from a %.1f/5 rating", quality, p.Rating),
			fmt.Sprintf("experience %d from %d completed projects", experience, p.CompletedProjects),
			fmt.Sprintf("skills fit %d%%", fit),
			priceExplanation(price, bidPrice),
		},
		Source: scoring.SourceFallback,
	}
}

func priceExplanation(score int, bid float64) string {
	if bid <= 0 {
		return fmt.Sprintf("price %d: no bid price to compare", score)
	}
	switch {
	case score >= 90:
		return fmt.Sprintf("price %d: bid well below the provider's usual rate", score)
	case score >= 80:
		return fmt.Sprintf("price %d: bid in line with the provider's usual rate", score)
	default:
		return fmt.Sprintf("price %d: bid above the provider's usual rate", score)
	}
}

// PreviewScoring scores every proposal of a project and ranks them, best
// first. Ties keep the submission order.
func (s *Scorer) PreviewScoring(req scoring.PreviewRequest) *scoring.PreviewScoringResult {
	entries := make([]scoring.PreviewEntry, 0, len(req.Proposals))
	for _, prop := range req.Proposals {
		res := s.ComprehensiveScore(scoring.ComprehensiveScoreRequest{
			Mission:  req.Mission,
			Provider: prop.Provider,
			Bid:      prop.Bid,
		})
		entries = append(entries, scoring.PreviewEntry{
			ProviderID: prop.Provider.ID,
			TotalScore: res.TotalScore,
			Breakdown:  res.Breakdown,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].TotalScore > entries[j].TotalScore })
	for i := range entries {
		entries[i].Rank = i + 1
	}

	out := &scoring.PreviewScoringResult{ProjectID: req.ProjectID, Entries: entries, Source: scoring.SourceFallback}
	if len(entries) > 0 {
		out.Best = entries[0].ProviderID
	}
	return out
}

//Personal.AI order the ending
