package heuristic

import (
	"math"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// sentimentLexicon holds folded French and English terms with their polarity.
var sentimentLexicon = map[string]float64{
	// positive
	"excellent": 2, "parfait": 2, "parfaite": 2, "perfect": 2, "outstanding": 2, "remarquable": 2,
	"great": 1.5, "super": 1.5, "genial": 1.5, "amazing": 1.5, "bravo": 1.5, "recommande": 1.5, "recommend": 1.5,
	"good": 1, "bon": 1, "bonne": 1, "bien": 1, "satisfait": 1, "satisfied": 1, "happy": 1, "content": 1,
	"rapide": 1, "fast": 1, "professionnel": 1, "professional": 1, "reactif": 1, "responsive": 1,
	"qualite": 0.5, "quality": 0.5, "merci": 0.5, "thanks": 0.5, "clear": 0.5, "clair": 0.5,
	// negative
	"terrible": -2, "horrible": -2, "awful": -2, "arnaque": -2, "scam": -2, "catastrophe": -2, "nul": -2,
	"bad": -1.5, "mauvais": -1.5, "mauvaise": -1.5, "decu": -1.5, "decevant": -1.5, "disappointed": -1.5,
	"retard": -1, "late": -1, "delay": -1, "lent": -1, "slow": -1, "probleme": -1, "problem": -1, "bug": -1,
	"bugs": -1, "incomplete": -1, "incomplet": -1, "unprofessional": -1.5, "rude": -1.5, "impoli": -1.5,
	"cher": -0.5, "expensive": -0.5, "confus": -0.5, "confusing": -0.5,
}

var negations = map[string]bool{
	"not": true, "never": true, "no": true, "pas": true, "jamais": true, "aucun": true, "aucune": true,
	"ni": true, "without": true, "sans": true,
}

// negationWindow is how many following words a negation flips.
const negationWindow = 3

// AnalyzeSentiment scores a text in [-1,1] from a bilingual lexicon with
// negation handling.
func (s *Scorer) AnalyzeSentiment(req scoring.SentimentRequest) *scoring.SentimentResult {
	words := Words(req.Text)
	var (
		total, magnitude float64
		pos, neg         []string
		flip             int
	)
	for _, w := range words {
		if negations[w] {
			flip = negationWindow
			continue
		}
		weight, ok := sentimentLexicon[w]
		if flip > 0 {
			flip--
			if ok {
				weight = -weight
			}
		}
		if !ok {
			continue
		}
		total += weight
		magnitude += math.Abs(weight)
		if weight > 0 {
			pos = append(pos, w)
		} else {
			neg = append(neg, w)
		}
	}

	score := 0.0
	if magnitude > 0 {
		// Few opinion words give a damped score.
		score = total / magnitude * math.Min(1, magnitude/3)
	}
	score = round2(clamp(score, -1, 1))

	label := scoring.SentimentNeutral
	switch {
	case score > 0.15:
		label = scoring.SentimentPositive
	case score < -0.15:
		label = scoring.SentimentNegative
	}
	matched := len(pos) + len(neg)
	return &scoring.SentimentResult{
		Score:         score,
		Label:         label,
		Confidence:    round2(math.Min(0.9, 0.3+0.1*float64(matched))),
		PositiveTerms: pos,
		NegativeTerms: neg,
		Source:        scoring.SourceFallback,
	}
}

//Personal.AI order the ending
