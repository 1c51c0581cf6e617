// Package scoring holds the request and result types exchanged with the
// scoring service and the external ML service. Optional fields carry zero
// values; Normalize fills in the defaults the scorers rely on and Validate
// checks the ranges of a result before it is trusted.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// Result sources.
const (
	SourceML       = "ml"
	SourceFallback = "fallback"
	SourceDefault  = "default"
)

// Defaults applied by Normalize.
const (
	DefaultBudget     = 1000.0
	DefaultComplexity = 5
	DefaultLimit      = 10
	MaxLimit          = 100
)

// Competition levels.
const (
	CompetitionLow    = "low"
	CompetitionMedium = "medium"
	CompetitionHigh   = "high"
)

// Provider is a freelancer as seen by the scorers.
type Provider struct {
	ID                string   `json:"id"`
	Name              string   `json:"name,omitempty"`
	Rating            float64  `json:"rating"`
	CompletedProjects int      `json:"completed_projects"`
	CancelledProjects int      `json:"cancelled_projects,omitempty"`
	// SuccessRate is in [0,1]; nil when unknown.
	SuccessRate       *float64 `json:"success_rate,omitempty"`
	HourlyRate        float64  `json:"hourly_rate"`
	Skills            []string `json:"skills"`
	Bio               string   `json:"bio,omitempty"`
	Verified          bool     `json:"verified,omitempty"`
	MemberSinceMonths int      `json:"member_since_months,omitempty"`
	Disputes          int      `json:"disputes,omitempty"`
	AvgResponseHours  float64  `json:"avg_response_hours,omitempty"`
}

// Normalize clamps numeric fields into their domains and trims skills.
func (p *Provider) Normalize() {
	p.Rating = clamp(p.Rating, 0, 5)
	p.CompletedProjects = max(p.CompletedProjects, 0)
	p.CancelledProjects = max(p.CancelledProjects, 0)
	p.Disputes = max(p.Disputes, 0)
	p.MemberSinceMonths = max(p.MemberSinceMonths, 0)
	p.HourlyRate = math.Max(p.HourlyRate, 0)
	p.AvgResponseHours = math.Max(p.AvgResponseHours, 0)
	if p.SuccessRate != nil {
		r := clamp(*p.SuccessRate, 0, 1)
		p.SuccessRate = &r
	}
	p.Skills = cleanList(p.Skills)
}

// Mission is a client request as seen by the scorers.
type Mission struct {
	ID             string   `json:"id,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category,omitempty"`
	Budget         float64  `json:"budget,omitempty"`
	DurationWeeks  float64  `json:"duration_weeks,omitempty"`
	SkillsRequired []string `json:"skills_required,omitempty"`
	// Urgency is one of low, medium, high.
	Urgency string `json:"urgency,omitempty"`
	// Complexity is on a 1..10 scale; 0 means unknown.
	Complexity int `json:"complexity,omitempty"`
}

// Normalize trims text fields and clamps numbers. Budget and complexity are
// left at zero when absent; use BudgetOrDefault and ComplexityOrDefault.
func (m *Mission) Normalize() {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Category = strings.ToLower(strings.TrimSpace(m.Category))
	m.Urgency = strings.ToLower(strings.TrimSpace(m.Urgency))
	m.Budget = math.Max(m.Budget, 0)
	m.DurationWeeks = math.Max(m.DurationWeeks, 0)
	if m.Complexity != 0 {
		m.Complexity = max(1, min(10, m.Complexity))
	}
	m.SkillsRequired = cleanList(m.SkillsRequired)
}

// BudgetOrDefault returns the budget, or DefaultBudget when absent.
func (m Mission) BudgetOrDefault() float64 {
	if m.Budget <= 0 {
		return DefaultBudget
	}
	return m.Budget
}

// ComplexityOrDefault returns the complexity, or DefaultComplexity when absent.
func (m Mission) ComplexityOrDefault() int {
	if m.Complexity <= 0 {
		return DefaultComplexity
	}
	return m.Complexity
}

// Text returns title and description joined.
func (m Mission) Text() string {
	return strings.TrimSpace(m.Title + " " + m.Description)
}

// Bid is a provider's priced proposal.
type Bid struct {
	ProviderID    string  `json:"provider_id,omitempty"`
	Price         float64 `json:"price"`
	DurationWeeks float64 `json:"duration_weeks,omitempty"`
	Message       string  `json:"message,omitempty"`
}

func (b *Bid) Normalize() {
	b.Price = math.Max(b.Price, 0)
	b.DurationWeeks = math.Max(b.DurationWeeks, 0)
	b.Message = strings.TrimSpace(b.Message)
}

// PriceRange is an inclusive price interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r PriceRange) Validate() error {
	if r.Min < 0 || r.Max < r.Min {
		return invalid("price_range", fmt.Sprintf("[%v, %v]", r.Min, r.Max))
	}
	return nil
}

// ScoreBreakdown holds the component scores of a bid, each in 0..100.
type ScoreBreakdown struct {
	Price                 int `json:"price"`
	Quality               int `json:"quality"`
	Fit                   int `json:"fit"`
	Delay                 int `json:"delay"`
	Risk                  int `json:"risk"`
	CompletionProbability int `json:"completion_probability"`
}

func (b ScoreBreakdown) Validate() error {
	fields := map[string]int{
		"price": b.Price, "quality": b.Quality, "fit": b.Fit,
		"delay": b.Delay, "risk": b.Risk, "completion_probability": b.CompletionProbability,
	}
	for name, v := range fields {
		if err := checkScore("breakdown."+name, v); err != nil {
			return err
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func invalid(field, value string) error {
	return errors.Validation("invalid " + field).WithDetail(value)
}

func checkScore(field string, v int) error {
	if v < 0 || v > 100 {
		return invalid(field, fmt.Sprint(v))
	}
	return nil
}

func checkUnit(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return invalid(field, fmt.Sprint(v))
	}
	return nil
}

func checkSource(s string) error {
	switch s {
	case "", SourceML, SourceFallback, SourceDefault:
		return nil
	}
	return invalid("source", s)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// cleanList trims entries and drops empty ones and case-insensitive duplicates.
func cleanList(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
	}
	return out
}

func normalizeLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	return min(n, MaxLimit)
}

//Personal.AI order the ending
