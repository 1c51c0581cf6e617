package cache

import (
	"strings"
	"time"
)

// TTLs chosen by the adaptive policy.
const (
	VolatileTTL       = 60 * time.Second
	AnalysisTTL       = 300 * time.Second
	ProfileTTL        = 1800 * time.Second
	HighConfidenceTTL = 600 * time.Second
	DefaultTTL        = 300 * time.Second

	// HighConfidenceThreshold is on the 0..100 confidence scale.
	HighConfidenceThreshold = 90.0
)

// ConfidenceReporter is implemented by values that carry a confidence or
// quality indicator on a 0..100 scale.
type ConfidenceReporter interface {
	ConfidenceScore() float64
}

var keyRules = []struct {
	terms []string
	ttl   time.Duration
}{
	{[]string{"market", "price"}, VolatileTTL},
	{[]string{"score", "analysis"}, AnalysisTTL},
	{[]string{"profile", "trust"}, ProfileTTL},
}

// ResolveTTL returns explicit when it is positive. Otherwise the first key
// rule whose term appears in key decides; failing that, a value reporting a
// confidence above HighConfidenceThreshold lives HighConfidenceTTL and
// anything else DefaultTTL.
func ResolveTTL(key string, explicit time.Duration, value interface{}) time.Duration {
	if explicit > 0 {
		return explicit
	}
	k := strings.ToLower(key)
	for _, rule := range keyRules {
		for _, term := range rule.terms {
			if strings.Contains(k, term) {
				return rule.ttl
			}
		}
	}
	if cr, ok := value.(ConfidenceReporter); ok && cr.ConfidenceScore() > HighConfidenceThreshold {
		return HighConfidenceTTL
	}
	return DefaultTTL
}

//Personal.AI order the ending
