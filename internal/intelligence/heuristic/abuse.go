package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Abuse categories.
const (
	AbuseContactLeak   = "contact_leak"
	AbusePaymentBypass = "payment_bypass"
	AbuseExternalLink  = "external_link"
	AbuseSpam          = "spam"
	AbuseShouting      = "shouting"
)

const (
	abusiveThreshold = 50
	blockThreshold   = 70
	reviewThreshold  = 40
)

var (
	emailRe   = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe   = regexp.MustCompile(`(?:\+|00)?\d(?:[\s.\-]?\d){8,13}`)
	linkRe    = regexp.MustCompile(`(?i)\b(?:https?://|www\.)\S+`)
	handleRe  = regexp.MustCompile(`(?i)\b(?:whats\s?app|telegram|signal|skype|discord|wechat)\b`)
	paymentRe = regexp.MustCompile(`(?i)(?:paypal|western\s+union|bitcoin|crypto|virement\s+direct|paiement\s+direct|hors\s+(?:de\s+la\s+)?plateforme|outside\s+(?:of\s+)?the\s+platform|pay\s+me\s+directly|payez[- ]moi\s+directement)`)
)

type abuseRule struct {
	kind     string
	category string
	weight   int
	find     func(string) string
}

func regexFinder(re *regexp.Regexp) func(string) string {
	return func(s string) string { return re.FindString(s) }
}

var abuseRules = []abuseRule{
	{"email", AbuseContactLeak, 40, regexFinder(emailRe)},
	{"phone", AbuseContactLeak, 40, regexFinder(phoneRe)},
	{"messaging_handle", AbuseContactLeak, 30, regexFinder(handleRe)},
	{"off_platform_payment", AbusePaymentBypass, 50, regexFinder(paymentRe)},
	{"external_link", AbuseExternalLink, 15, regexFinder(linkRe)},
	{"repetition", AbuseSpam, 20, findRepetition},
	{"uppercase", AbuseShouting, 10, findShouting},
}

// DetectAbuse looks for contact leaks, payment bypass attempts, links, spam
// and shouting.
func (s *Scorer) DetectAbuse(req scoring.AbuseRequest) *scoring.AbuseResult {
	risk := 0
	categories := []string{}
	var signals []scoring.AbuseSignal
	seen := map[string]bool{}

	for _, rule := range abuseRules {
		hit := rule.find(req.Content)
		if hit == "" {
			continue
		}
		risk += rule.weight
		signals = append(signals, scoring.AbuseSignal{Type: rule.kind, Evidence: mask(hit), Weight: rule.weight})
		if !seen[rule.category] {
			seen[rule.category] = true
			categories = append(categories, rule.category)
		}
	}
	risk = min(risk, 100)

	action := scoring.ActionAllow
	switch {
	case risk >= blockThreshold:
		action = scoring.ActionBlock
	case risk >= reviewThreshold:
		action = scoring.ActionReview
	}
	return &scoring.AbuseResult{
		IsAbusive:  risk >= abusiveThreshold,
		RiskScore:  risk,
		Categories: categories,
		Signals:    signals,
		Action:     action,
		Source:     scoring.SourceFallback,
	}
}

// findRepetition reports a word of more than two letters used more than five
// times making up over a third of the text.
func findRepetition(s string) string {
	words := Words(s)
	if len(words) < 6 {
		return ""
	}
	counts := map[string]int{}
	for _, w := range words {
		if len([]rune(w)) > 2 {
			counts[w]++
		}
	}
	for w, n := range counts {
		if n > 5 && float64(n)/float64(len(words)) > 0.33 {
			return w
		}
	}
	return ""
}

func findShouting(s string) string {
	letters, upper := 0, 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters >= 20 && float64(upper)/float64(letters) > 0.7 {
		return firstRunes(s, 20)
	}
	return ""
}

// mask keeps the first three characters of a match.
func mask(s string) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= 3 {
		return string(r)
	}
	return string(r[:3]) + "***"
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

//Personal.AI order the ending
