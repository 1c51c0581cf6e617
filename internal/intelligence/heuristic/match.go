package heuristic

import (
	"sort"
	"strings"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// goodMatchThreshold separates "good" from "fair" matches.
const goodMatchThreshold = 0.3

type candidate struct {
	id   string
	text string
}

// rank scores every candidate against query and keeps the best limit,
// highest similarity first. Ties keep the input order.
func rank(query string, candidates []candidate, limit int) []scoring.Match {
	q := Tokenize(query)
	out := make([]scoring.Match, 0, len(candidates))
	for _, c := range candidates {
		sim, shared := Similarity(q, Tokenize(c.text))
		quality := scoring.MatchFair
		if sim > goodMatchThreshold {
			quality = scoring.MatchGood
		}
		out = append(out, scoring.Match{ID: c.id, Similarity: round2(sim), Quality: quality, MatchedTerms: shared})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func missionText(m scoring.Mission) string {
	return strings.Join(append([]string{m.Title, m.Description}, m.SkillsRequired...), " ")
}

func providerText(p scoring.Provider) string {
	return strings.Join(append(append([]string{}, p.Skills...), p.Bio), " ")
}

// SemanticMatch ranks providers by how much of the mission's vocabulary their
// profile covers.
func (s *Scorer) SemanticMatch(req scoring.SemanticMatchRequest) *scoring.MatchResult {
	cands := make([]candidate, 0, len(req.Candidates))
	for _, p := range req.Candidates {
		cands = append(cands, candidate{id: p.ID, text: providerText(p)})
	}
	return &scoring.MatchResult{Matches: rank(missionText(req.Mission), cands, req.Limit), Source: scoring.SourceFallback}
}

// InverseMatch ranks missions by how much of the provider's vocabulary they
// use.
func (s *Scorer) InverseMatch(req scoring.InverseMatchRequest) *scoring.MatchResult {
	cands := make([]candidate, 0, len(req.Candidates))
	for _, m := range req.Candidates {
		cands = append(cands, candidate{id: m.ID, text: missionText(m)})
	}
	return &scoring.MatchResult{Matches: rank(providerText(req.Provider), cands, req.Limit), Source: scoring.SourceFallback}
}

//Personal.AI order the ending
