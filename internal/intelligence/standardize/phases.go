package standardize

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/turtacn/MissionIntelligence/internal/intelligence/heuristic"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?;\n]+`)
	bulletLine    = regexp.MustCompile(`(?m)^\s*[-*•]\s+`)
	numberedLine  = regexp.MustCompile(`(?m)^\s*\d+[.)]\s+`)
	numericToken  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

// document is a normalized brief plus the derived views every phase reads.
type document struct {
	req       brief.Request
	text      string
	folded    string
	sentences []string
	words     []string
}

func newDocument(req brief.Request) *document {
	text := req.FullText()
	d := &document{req: req, text: text, folded: heuristic.Fold(text), words: heuristic.Words(text)}
	for _, s := range sentenceSplit.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" && len(heuristic.Words(s)) > 0 {
			d.sentences = append(d.sentences, s)
		}
	}
	return d
}

func analyzeLinguistic(d *document) brief.Linguistic {
	out := brief.Linguistic{
		Sentences: len(d.sentences),
		Words:     len(d.words),
		Questions: strings.Count(d.text, "?"),
	}
	if len(d.words) > 0 {
		unique := make(map[string]struct{}, len(d.words))
		for _, w := range d.words {
			unique[w] = struct{}{}
		}
		out.VocabularyRichness = round2(float64(len(unique)) / float64(len(d.words)))
		out.AvgSentenceWords = round2(float64(len(d.words)) / float64(max(len(d.sentences), 1)))
	}

	structural := 0
	if bulletLine.MatchString(d.req.Description) || numberedLine.MatchString(d.req.Description) {
		structural += 40
	}
	if strings.Contains(d.req.Description, "\n") {
		structural += 30
	}
	if out.Questions > 0 {
		structural += 10
	}
	if out.Sentences >= 3 {
		structural += 20
	}
	out.StructuralScore = min(structural, 100)
	out.InformationDensity = min(qualityVocabulary.count(d.folded)*10, 100)
	return out
}

// technicalFindings keeps the matched terms per technology category.
type technicalFindings struct {
	brief.Technical
	terms map[string][]string
}

func (t technicalFindings) has(category string) bool { return len(t.terms[category]) > 0 }

func analyzeTechnical(d *document) technicalFindings {
	out := technicalFindings{terms: make(map[string][]string)}
	seen := make(map[string]bool)
	for _, cat := range techCategories {
		matched := cat.terms.matches(d.folded)
		if len(matched) == 0 {
			continue
		}
		out.terms[cat.name] = matched
		out.Technologies = append(out.Technologies, cat.name)
		for _, term := range matched {
			name := displayName(term)
			if !seen[name] {
				seen[name] = true
				out.Stack = append(out.Stack, name)
			}
		}
	}
	out.ArchitectureIndicators = architectureIndicators.matches(d.folded)
	score := float64(len(out.Technologies)) + 0.5*float64(len(out.ArchitectureIndicators))
	out.ComplexityScore = max(1, min(10, int(math.Round(score))))
	return out
}

// BusinessValue combines the business sub-scores into a 0..10 value.
func BusinessValue(b brief.Business) float64 {
	v := 2 + 0.5*float64(b.ValueIndicators) + 0.5*float64(b.StrategicKeywords) +
		1.5*b.MarketImpact + 1.5*b.UserBenefitClarity + b.CompetitiveAdvantage
	return math.Round(math.Min(10, v)*10) / 10
}

func analyzeBusiness(d *document) brief.Business {
	out := brief.Business{
		ValueIndicators:      min(valueIndicators.count(d.folded), 10),
		StrategicKeywords:    min(strategicKeywords.count(d.folded), 10),
		MarketImpact:         ratio(marketImpactTerms.count(d.folded), 3),
		UserBenefitClarity:   ratio(userBenefitTerms.count(d.folded), 2),
		CompetitiveAdvantage: ratio(competitiveTerms.count(d.folded), 2),
	}
	out.BusinessValue = BusinessValue(out)
	return out
}

// CompetitionForBudget maps a budget to the expected competition level.
func CompetitionForBudget(budget float64) string {
	switch {
	case budget > 10000:
		return "low"
	case budget > 3000:
		return "medium"
	default:
		return "high"
	}
}

// PositioningForBudget maps a budget to a price positioning.
func PositioningForBudget(budget float64) string {
	switch {
	case budget > 10000:
		return PositionPremium
	case budget > 3000:
		return PositionStandardPlus
	case budget > 1000:
		return PositionStandard
	default:
		return PositionBudget
	}
}

func analyzeMarket(req brief.Request, category string) brief.Market {
	profile, ok := marketTable[category]
	if !ok {
		profile = marketTable[CategoryOther]
	}
	out := brief.Market{
		Demand:           profile.demand,
		Competition:      "medium",
		PricePositioning: profile.positioning,
		Seasonality:      profile.seasonality,
	}
	if req.HasBudget() {
		out.Competition = CompetitionForBudget(req.Budget)
		out.PricePositioning = PositioningForBudget(req.Budget)
	}
	return out
}

func hasTimeline(d *document) bool {
	return d.req.Timeline != "" || timelineCues.any(d.folded)
}

func analyzeQuality(d *document, ling brief.Linguistic, tech technicalFindings) brief.Quality {
	completeness := 0
	if d.req.Title != "" {
		completeness += 15
	}
	switch n := utf8.RuneCountInString(d.req.Description); {
	case n >= 100:
		completeness += 25
	case n >= 30:
		completeness += 10
	}
	if d.req.HasBudget() {
		completeness += 20
	}
	if hasTimeline(d) {
		completeness += 15
	}
	if len(d.req.SkillsRequired) > 0 || len(tech.Technologies) > 0 {
		completeness += 15
	}
	if len(d.req.Constraints) > 0 || constraintTerms.any(d.folded) {
		completeness += 10
	}

	clarity := 0
	if ling.Words > 0 {
		clarity = 100
		if ling.AvgSentenceWords > 20 {
			clarity = max(20, int(math.Round(100-(ling.AvgSentenceWords-20)*4)))
		}
	}

	structure := 0
	if numberedLine.MatchString(d.req.Description) {
		structure += 25
	}
	if bulletLine.MatchString(d.req.Description) {
		structure += 25
	}
	if strings.Contains(d.req.Description, "\n") {
		structure += 25
	}
	if strings.Contains(d.folded, "objectif") {
		structure += 25
	}

	specificity := min(100, precisionAdverbs.count(d.folded)*15+len(numericToken.FindAllString(d.text, -1))*10)

	q := brief.Quality{
		Completeness: min(completeness, 100),
		Clarity:      clarity,
		Structure:    structure,
		Specificity:  specificity,
	}
	q.Overall = int(math.Round(float64(q.Completeness+q.Clarity+q.Structure+q.Specificity) / 4))
	return q
}

func ratio(n, full int) float64 { return math.Min(1, float64(n)/float64(full)) }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

//Personal.AI order the ending
