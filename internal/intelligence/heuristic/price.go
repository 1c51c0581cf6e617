package heuristic

import (
	"fmt"
	"math"
	"sort"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

const (
	fallbackPriceConfidence = 60
	budgetFriendlyCeiling   = 3000.0
)

// CompetitionMultiplier maps a competition level to its price multiplier.
// Unknown levels are treated as medium.
func CompetitionMultiplier(level string) float64 {
	switch level {
	case scoring.CompetitionLow:
		return 1.1
	case scoring.CompetitionHigh:
		return 0.85
	default:
		return 0.95
	}
}

// RecommendPrice derives a price from the mission budget and the level of
// competition.
func (s *Scorer) RecommendPrice(req scoring.PriceRequest) *scoring.PriceResult {
	budget := req.Mission.BudgetOrDefault()
	mult := CompetitionMultiplier(req.CompetitionLevel)
	recommended := round2(budget * 0.8 * mult)

	position := scoring.PositionStandard
	if recommended < budgetFriendlyCeiling {
		position = scoring.PositionBudgetFriendly
	}
	level := req.CompetitionLevel
	if level == "" {
		level = scoring.CompetitionMedium
	}

	return &scoring.PriceResult{
		RecommendedPrice: recommended,
		PriceRange: scoring.PriceRange{
			Min: round2(recommended * 0.9),
			Max: round2(recommended * 1.1),
		},
		Confidence:     fallbackPriceConfidence,
		MarketPosition: position,
		Reasoning: []string{
			fmt.Sprintf("base of 80%% of a %.0f budget", budget),
			fmt.Sprintf("x%.2f for %s competition", mult, level),
		},
		Source: scoring.SourceFallback,
	}
}

// competitionFromBids guesses the competition level from the number of bids.
func competitionFromBids(n int) string {
	switch {
	case n >= 10:
		return scoring.CompetitionHigh
	case n >= 4:
		return scoring.CompetitionMedium
	default:
		return scoring.CompetitionLow
	}
}

func median(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	c := append([]float64(nil), vs...)
	sort.Float64s(c)
	mid := len(c) / 2
	if len(c)%2 == 0 {
		return (c[mid-1] + c[mid]) / 2
	}
	return c[mid]
}

// NeuralPricing blends the budget-based recommendation with the median of
// the competing bids and estimates the chance of winning at that price.
func (s *Scorer) NeuralPricing(req scoring.NeuralPricingRequest) *scoring.NeuralPricingResult {
	level := req.CompetitionLevel
	if level == "" {
		level = competitionFromBids(len(req.CompetitorBids))
	}
	base := s.RecommendPrice(scoring.PriceRequest{Mission: req.Mission, CompetitionLevel: level}).RecommendedPrice
	med := median(req.CompetitorBids)

	optimal := base
	reasoning := []string{fmt.Sprintf("budget-based price %.2f (%s competition)", base, level)}
	if med > 0 {
		optimal = 0.6*base + 0.4*med
		reasoning = append(reasoning, fmt.Sprintf("blended with a competitor median of %.2f over %d bids", med, len(req.CompetitorBids)))
	}
	if req.Provider != nil && req.Provider.Rating >= 4.5 {
		optimal *= 1.05
		reasoning = append(reasoning, "premium of 5% for a top-rated provider")
	}
	optimal = round2(optimal)

	win := 0.5
	strategy := scoring.StrategyCompetitive
	if med > 0 {
		win = clamp(0.5+(med-optimal)/med, 0.05, 0.95)
		switch {
		case optimal < 0.9*med:
			strategy = scoring.StrategyPenetration
		case optimal > 1.1*med:
			strategy = scoring.StrategyPremium
		}
	}

	return &scoring.NeuralPricingResult{
		OptimalPrice:   optimal,
		PriceRange:     scoring.PriceRange{Min: round2(optimal * 0.9), Max: round2(optimal * 1.1)},
		MarketMedian:   round2(med),
		WinProbability: round2(win),
		Confidence:     round2(0.4 + math.Min(0.4, 0.05*float64(len(req.CompetitorBids)))),
		Strategy:       strategy,
		Reasoning:      reasoning,
		Source:         scoring.SourceFallback,
	}
}

// Negotiate suggests how to answer a bid given the mission budget.
func (s *Scorer) Negotiate(req scoring.NegotiationRequest) *scoring.NegotiationResult {
	budget := req.Mission.BudgetOrDefault()
	bid := req.Bid.Price
	if bid <= 0 {
		bid = budget
	}
	gap := (bid - budget) / budget

	var (
		strategy  string
		suggested float64
		args      []string
	)
	switch {
	case gap < -0.3:
		strategy = scoring.NegotiationRaiseOffer
		suggested = budget * 0.85
		args = []string{
			fmt.Sprintf("bid is %.0f%% under the budget, which often signals an underestimated scope", -gap*100),
			"a realistic price protects delivery quality",
		}
	case gap <= 0.05:
		strategy = scoring.NegotiationAccept
		suggested = bid
		args = []string{"bid is within 5% of the budget"}
	case gap <= 0.25:
		strategy = scoring.NegotiationCounterOffer
		suggested = budget + (bid-budget)*0.5
		args = []string{
			fmt.Sprintf("bid exceeds the budget by %.0f%%", gap*100),
			"meeting halfway keeps the provider engaged",
		}
	default:
		strategy = scoring.NegotiationRenegotiateScope
		suggested = budget * 1.1
		args = []string{
			fmt.Sprintf("bid exceeds the budget by %.0f%%", gap*100),
			"reduce the scope or split the mission into phases",
		}
	}
	suggested = round2(suggested)

	lo, hi := math.Min(suggested, budget), math.Max(suggested, budget)
	return &scoring.NegotiationResult{
		Strategy:        strategy,
		SuggestedPrice:  suggested,
		AcceptableRange: scoring.PriceRange{Min: round2(lo * 0.95), Max: round2(hi * 1.05)},
		Gap:             round2(gap),
		Arguments:       args,
		Confidence:      max(40, 70-5*(max(req.Round, 1)-1)),
		Source:          scoring.SourceFallback,
	}
}

//Personal.AI order the ending
