// Package heuristic holds the deterministic scoring, pricing and text
// heuristics used whenever the ML service cannot answer. Nothing here does
// I/O, and the same input always produces the same output.
package heuristic

import (
	"math"
	"strings"
)

// FallbackNotice opens the explanations of every locally computed score.
const FallbackNotice = "fallback mode: heuristic scoring, ML service unavailable"

// Scorer groups the heuristics. The zero value is ready to use.
type Scorer struct{}

// New returns a Scorer.
func New() *Scorer { return &Scorer{} }

// SkillsMatch returns the percentage of required skills covered by the
// provider's skills. Comparison is case and accent insensitive and a required
// skill matches when either string contains the other. No required skills
// yields 0.
func SkillsMatch(required, provider []string) int {
	need, have := normalizeSkills(required), normalizeSkills(provider)
	matched := 0
	for _, r := range need {
		for _, h := range have {
			if strings.Contains(r, h) || strings.Contains(h, r) {
				matched++
				break
			}
		}
	}
	return roundInt(float64(matched) / float64(max(len(need), 1)) * 100)
}

func normalizeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(Fold(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// categoryDemand is the relative demand per mission category, in [0,1].
var categoryDemand = map[string]float64{
	"web-development":    0.85,
	"mobile-development": 0.8,
	"data-ai":            0.8,
	"design":             0.7,
	"marketing":          0.65,
	"writing":            0.55,
	"consulting":         0.6,
	"other":              0.6,
}

// CategoryDemand returns the demand for category, 0.6 when unknown.
func CategoryDemand(category string) float64 {
	if d, ok := categoryDemand[strings.ToLower(category)]; ok {
		return d
	}
	return categoryDemand["other"]
}

func roundInt(v float64) int { return int(math.Round(v)) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 { return math.Max(lo, math.Min(hi, v)) }

func clampInt(v, lo, hi int) int { return max(lo, min(hi, v)) }

func mean(vs ...float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

//Personal.AI order the ending
