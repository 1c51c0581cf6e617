package standardize

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/turtacn/MissionIntelligence/internal/intelligence/heuristic"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
)

// fuzzyThreshold is the minimum bigram overlap for a fuzzy skill match.
const fuzzyThreshold = 0.8

func standardTitle(d *document, tech technicalFindings) string {
	title := d.req.Title
	if title == "" && len(d.sentences) > 0 {
		title = d.sentences[0]
	}
	if title == "" {
		title = "Mission"
	}
	words := strings.Fields(title)
	for i, w := range words {
		if i > 0 && frenchStopWords[strings.ToLower(w)] {
			words[i] = strings.ToLower(w)
			continue
		}
		words[i] = capitalize(w)
	}
	title = strings.Join(words, " ")
	if len(tech.Stack) > 0 {
		lead := tech.Stack[0]
		if !strings.Contains(heuristic.Fold(title), heuristic.Fold(lead)) {
			title += " (" + lead + ")"
		}
	}
	return truncate(title, brief.MaxTitleStdRunes)
}

func standardSummary(d *document, tech technicalFindings) string {
	type scored struct {
		idx   int
		score int
	}
	var matched []string
	for _, cat := range tech.Technologies {
		matched = append(matched, tech.terms[cat]...)
	}
	stackTerms := newTermList(matched...)
	ranked := make([]scored, len(d.sentences))
	for i, s := range d.sentences {
		f := heuristic.Fold(s)
		ranked[i] = scored{i, 2*stackTerms.count(f) + businessOutcomeTerms.count(f) + constraintTerms.count(f)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > 3 {
		ranked = ranked[:3]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].idx < ranked[j].idx })

	parts := make([]string, 0, len(ranked)+1)
	for _, r := range ranked {
		parts = append(parts, d.sentences[r.idx]+".")
	}
	if len(tech.Stack) > 0 {
		parts = append(parts, "Technologies : "+strings.Join(tech.Stack, ", ")+".")
	}
	return truncate(strings.Join(parts, " "), brief.MaxSummaryRunes)
}

var baselineCriteria = []string{
	"Les fonctionnalités décrites dans le brief sont livrées et opérationnelles",
	"Le code source et la documentation sont remis au client",
	"La recette est validée par le client",
	"Les délais convenus sont respectés",
}

func acceptanceCriteria(req brief.Request, tech technicalFindings, bv float64) []string {
	out := append([]string(nil), baselineCriteria...)
	if tech.has(TechFrontend) {
		out = append(out, "L'interface est responsive et compatible avec les navigateurs récents")
	}
	if tech.has(TechBackend) {
		out = append(out, "Les API sont documentées et sécurisées")
	}
	if tech.has(TechMobile) {
		out = append(out, "L'application est publiée sur les stores cibles")
	}
	if req.Budget > 5000 {
		out = append(out, "Un point d'avancement hebdomadaire est assuré")
	}
	if bv > 6 {
		out = append(out, "Les indicateurs métier attendus sont mesurables après la mise en production")
	}
	if len(out) > brief.MaxAcceptanceCriteria {
		out = out[:brief.MaxAcceptanceCriteria]
	}
	return out
}

// categorize picks the category whose patterns match the largest share of
// the text. A declared category that is known wins.
func categorize(d *document) string {
	if d.req.Category != "" && knownCategory(d.req.Category) {
		return d.req.Category
	}
	best, bestShare := CategoryOther, 0.0
	for _, cat := range categoryTable {
		share := float64(cat.patterns.count(d.folded)) / float64(len(cat.patterns.terms))
		if share > bestShare {
			best, bestShare = cat.name, share
		}
	}
	return best
}

func subCategory(tech technicalFindings) string {
	switch {
	case tech.has(TechAIML):
		return "ai-ml"
	case tech.has(TechFrontend) && tech.has(TechBackend):
		return "fullstack"
	case tech.has(TechMobile):
		return "mobile"
	case tech.has(TechFrontend):
		return "frontend"
	case tech.has(TechBackend):
		return "backend"
	case tech.has(TechDatabase):
		return "data"
	case tech.has(TechDevOps) || tech.has(TechCloud):
		return "infrastructure"
	default:
		return "general"
	}
}

func complexityBand(c int) string {
	switch {
	case c <= 3:
		return "complexity-low"
	case c <= 6:
		return "complexity-medium"
	default:
		return "complexity-high"
	}
}

func valueBand(bv float64) string {
	switch {
	case bv > 7:
		return "value-high"
	case bv > 4:
		return "value-medium"
	default:
		return "value-low"
	}
}

func tags(category string, tech technicalFindings, bv float64) []string {
	raw := []string{category}
	for _, t := range tech.Technologies {
		raw = append(raw, strings.ToLower(t))
	}
	raw = append(raw, complexityBand(tech.ComplexityScore), valueBand(bv))
	return dedupeCap(raw, brief.MaxTags)
}

type rankedSkill struct {
	name  string
	score int
	order int
}

// extractSkills ranks declared, detected and implied skills.
func extractSkills(d *document, category string, tech technicalFindings) []string {
	byKey := make(map[string]*rankedSkill)
	var order int
	add := func(name string, score int) {
		key := heuristic.Fold(name)
		if s, ok := byKey[key]; ok {
			s.score += score
			return
		}
		byKey[key] = &rankedSkill{name: name, score: score, order: order}
		order++
	}

	for _, s := range d.req.SkillsRequired {
		add(s, 15)
	}
	words := distinct(d.words)
	for _, entry := range categorySkills[category] {
		score := 0
		if entry.direct.any(d.folded) || fuzzyContains(words, heuristic.Fold(entry.name)) {
			score += 10
		}
		score += 2 * entry.related.count(d.folded)
		if score > 0 {
			add(entry.name, score)
		}
	}
	for _, t := range tech.Technologies {
		for _, s := range techSkills[t] {
			add(s, 5)
		}
	}

	ranked := make([]*rankedSkill, 0, len(byKey))
	for _, s := range byKey {
		ranked = append(ranked, s)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].order < ranked[j].order
	})
	out := make([]string, 0, min(len(ranked), brief.MaxSkills))
	for _, s := range ranked {
		if len(out) == brief.MaxSkills {
			break
		}
		out = append(out, s.name)
	}
	return out
}

// fuzzyContains reports whether one of words is close to a single-word skill.
func fuzzyContains(words []string, skill string) bool {
	if strings.ContainsAny(skill, " ") || utf8.RuneCountInString(skill) < 4 {
		return false
	}
	for _, w := range words {
		if Dice(w, skill) >= fuzzyThreshold {
			return true
		}
	}
	return false
}

// Dice is the Sørensen-Dice coefficient of the character bigrams of a and b.
func Dice(a, b string) float64 {
	if a == b {
		return 1
	}
	ab, bb := bigrams(a), bigrams(b)
	if len(ab) == 0 || len(bb) == 0 {
		return 0
	}
	counts := make(map[string]int, len(ab))
	for _, g := range ab {
		counts[g]++
	}
	shared := 0
	for _, g := range bb {
		if counts[g] > 0 {
			counts[g]--
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(ab)+len(bb))
}

func bigrams(s string) []string {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	out := make([]string, 0, len(r)-1)
	for i := 0; i+1 < len(r); i++ {
		out = append(out, string(r[i:i+2]))
	}
	return out
}

func missingInfo(d *document, quality brief.Quality, tech technicalFindings, business brief.Business) []brief.MissingInfo {
	var out []brief.MissingInfo
	if !d.req.HasBudget() {
		out = append(out, brief.MissingInfo{
			Type:        brief.MissingBudget,
			Description: "Aucun budget n'est indiqué",
			Priority:    brief.PriorityHigh,
			Suggestion:  "Indiquez une fourchette de budget pour recevoir des offres adaptées",
			Examples:    []string{"Entre 2 000 et 3 500 €", "Budget maximum : 5 000 €"},
		})
	}
	if !hasTimeline(d) {
		out = append(out, brief.MissingInfo{
			Type:        brief.MissingTimeline,
			Description: "Aucun délai ni échéance n'est précisé",
			Priority:    brief.PriorityHigh,
			Suggestion:  "Précisez la date de livraison souhaitée ou la durée du projet",
			Examples:    []string{"Livraison sous 4 semaines", "Mise en ligne avant le 15 mars"},
		})
	}
	if quality.Specificity < 60 {
		out = append(out, brief.MissingInfo{
			Type:        brief.MissingTechnicalSpecs,
			Description: "Les spécifications manquent de détails chiffrés",
			Priority:    brief.PriorityMedium,
			Suggestion:  "Ajoutez des volumes, des contraintes et des exigences précises",
			Examples:    []string{"Environ 500 produits au catalogue", "Au moins 1 000 utilisateurs simultanés"},
		})
	}
	if len(d.req.SkillsRequired) == 0 && len(tech.Technologies) == 0 {
		out = append(out, brief.MissingInfo{
			Type:        brief.MissingSkills,
			Description: "Aucune compétence ni technologie n'est mentionnée",
			Priority:    brief.PriorityMedium,
			Suggestion:  "Listez les compétences ou technologies attendues",
			Examples:    []string{"React, Node.js, PostgreSQL", "Figma et design system"},
		})
	}
	if business.UserBenefitClarity < 0.5 {
		out = append(out, brief.MissingInfo{
			Type:        brief.MissingBusinessContext,
			Description: "Le bénéfice pour les utilisateurs finaux n'est pas explicité",
			Priority:    brief.PriorityLow,
			Suggestion:  "Décrivez qui utilisera le livrable et ce qu'il leur apportera",
			Examples:    []string{"Permettre aux clients de commander en ligne"},
		})
	}
	return out
}

// SuggestPrice returns the min, median and max price for a brief.
func SuggestPrice(complexity int, businessValue float64, positioning string) (lo, med, hi float64) {
	base := float64(complexity) * 800
	switch {
	case businessValue > 7:
		base *= 1.3
	case businessValue > 5:
		base *= 1.15
	}
	if m, ok := positionMultipliers[positioning]; ok {
		base *= m
	}
	return math.Round(base * 0.8), math.Round(base), math.Round(base * 1.3)
}

// SuggestDelayDays returns the suggested duration in days, at least a week.
func SuggestDelayDays(complexity int, businessValue float64) int {
	extra := 0.0
	if businessValue > 6 {
		extra = 7
	}
	return max(7, int(math.Round(float64(complexity)*5+extra)))
}

func contextRichness(ling brief.Linguistic) int {
	return min(100, int(math.Round(ling.VocabularyRichness*60))+min(40, ling.Sentences*5))
}

func richness(ling brief.Linguistic, complexity int, bv float64) int {
	parts := []float64{
		math.Min(100, float64(ling.InformationDensity)),
		math.Min(100, float64(complexity*10)),
		math.Min(100, bv*10),
		float64(contextRichness(ling)),
	}
	sum := 0.0
	for _, p := range parts {
		sum += p
	}
	return int(math.Round(sum / float64(len(parts))))
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}

func distinct(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

func dedupeCap(in []string, n int) []string {
	out := distinct(in)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

//Personal.AI order the ending
