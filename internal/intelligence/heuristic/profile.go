package heuristic

import (
	"math"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Behavior flags.
const (
	FlagHighCancellation = "high_cancellation"
	FlagDisputeProne     = "dispute_prone"
	FlagSlowResponder    = "slow_responder"
	FlagInactive         = "inactive"
	FlagNewUser          = "new_user"
)

// AnalyzeBehavior profiles a user from completion, dispute, response and
// activity figures.
func (s *Scorer) AnalyzeBehavior(req scoring.BehaviorRequest) *scoring.BehaviorResult {
	total := req.CompletedProjects + req.CancelledProjects
	reliability := 50
	if total > 0 {
		reliability = roundInt(float64(req.CompletedProjects) / float64(total) * 100)
	}
	disputeRate := float64(req.Disputes) / float64(max(total, 1))

	resp := 60
	switch h := req.AvgResponseHours; {
	case h <= 0:
	case h <= 1:
		resp = 100
	case h <= 4:
		resp = 85
	case h <= 12:
		resp = 70
	case h <= 24:
		resp = 50
	default:
		resp = 30
	}

	activity := roundInt(float64(req.ActiveDaysLast30) / 30 * 100)
	if req.LastActiveDays > 30 {
		activity = min(activity, 20)
	}

	disputeScore := 100 - math.Min(100, disputeRate*300)
	score := clampInt(roundInt(0.45*float64(reliability)+0.25*float64(resp)+0.2*float64(activity)+0.1*disputeScore), 0, 100)

	var flags, recs []string
	if total >= 5 && float64(req.CancelledProjects)/float64(total) > 0.2 {
		flags = append(flags, FlagHighCancellation)
		recs = append(recs, "review the causes of cancelled projects")
	}
	if disputeRate > 0.1 {
		flags = append(flags, FlagDisputeProne)
		recs = append(recs, "clarify deliverables upfront to limit disputes")
	}
	if req.AvgResponseHours > 24 {
		flags = append(flags, FlagSlowResponder)
		recs = append(recs, "answer messages within a day")
	}
	if req.LastActiveDays > 30 {
		flags = append(flags, FlagInactive)
	}
	if total == 0 {
		flags = append(flags, FlagNewUser)
		recs = append(recs, "complete a first small mission to build a track record")
	}

	profile := "at_risk"
	switch {
	case total == 0:
		profile = "new_user"
	case score >= 80:
		profile = "reliable"
	case score >= 60:
		profile = "regular"
	case score >= 40:
		profile = "inconsistent"
	}

	return &scoring.BehaviorResult{
		Score:           score,
		Profile:         profile,
		Reliability:     reliability,
		Responsiveness:  resp,
		Activity:        activity,
		Flags:           flags,
		Recommendations: recs,
		Source:          scoring.SourceFallback,
	}
}

// Trust levels.
const (
	TrustLow       = "low"
	TrustMedium    = "medium"
	TrustHigh      = "high"
	TrustExcellent = "excellent"
)

// CalculateTrust weighs rating, success, experience, verification, tenure and
// disputes into a 0..100 trust score.
func (s *Scorer) CalculateTrust(req scoring.TrustRequest) *scoring.TrustResult {
	p := req.Provider
	c := scoring.TrustComponents{
		Rating:       clampInt(roundInt(p.Rating/5*100), 0, 100),
		Reliability:  70,
		Experience:   clampInt(p.CompletedProjects*2, 0, 100),
		Verification: 30,
		Tenure:       clampInt(roundInt(float64(p.MemberSinceMonths)*100/24), 0, 100),
		Disputes:     clampInt(100-p.Disputes*20, 0, 100),
	}
	if p.SuccessRate != nil {
		c.Reliability = clampInt(roundInt(*p.SuccessRate*100), 0, 100)
	}
	if p.Verified {
		c.Verification = 100
	}

	score := clampInt(roundInt(
		0.30*float64(c.Rating)+
			0.25*float64(c.Reliability)+
			0.15*float64(c.Experience)+
			0.10*float64(c.Verification)+
			0.10*float64(c.Tenure)+
			0.10*float64(c.Disputes)), 0, 100)

	level := TrustLow
	switch {
	case score >= 85:
		level = TrustExcellent
	case score >= 70:
		level = TrustHigh
	case score >= 50:
		level = TrustMedium
	}

	var badges []string
	if p.Verified {
		badges = append(badges, "verified")
	}
	if p.Rating >= 4.8 && p.CompletedProjects >= 20 {
		badges = append(badges, "top_rated")
	}
	if p.MemberSinceMonths >= 36 {
		badges = append(badges, "veteran")
	}
	if p.Disputes == 0 && p.CompletedProjects >= 10 {
		badges = append(badges, "dispute_free")
	}

	return &scoring.TrustResult{TrustScore: score, Level: level, Components: c, Badges: badges, Source: scoring.SourceFallback}
}

// Heat levels.
const (
	HeatCold = "cold"
	HeatCool = "cool"
	HeatWarm = "warm"
	HeatHot  = "hot"
)

// MarketHeat rates how busy a category is and the price adjustment that
// follows.
func (s *Scorer) MarketHeat(req scoring.MarketHeatRequest) *scoring.MarketHeatResult {
	ratio := float64(req.OpenMissions) / float64(max(req.ActiveProviders, 1))
	bidsPerMission := float64(req.RecentBids) / float64(max(req.OpenMissions, 1))
	demand := CategoryDemand(req.Category)

	heat := clampInt(roundInt(
		math.Min(ratio, 1)*40+
			demand*40+
			math.Max(0, 20-bidsPerMission*2)), 0, 100)

	level := HeatCold
	switch {
	case heat >= 75:
		level = HeatHot
	case heat >= 50:
		level = HeatWarm
	case heat >= 25:
		level = HeatCool
	}

	category := req.Category
	if category == "" {
		category = "other"
	}
	return &scoring.MarketHeatResult{
		Category:          category,
		HeatScore:         heat,
		Level:             level,
		DemandSupplyRatio: round2(ratio),
		BidsPerMission:    round2(bidsPerMission),
		PriceAdjustment:   round2(0.9 + float64(heat)/100*0.3),
		Source:            scoring.SourceFallback,
	}
}

//Personal.AI order the ending
