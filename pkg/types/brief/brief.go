// Package brief defines the client brief submitted for standardization and
// the structured result produced from it.
package brief

import (
	"html"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

const (
	MaxTitleRunes       = 200
	MaxDescriptionRunes = 20000
	MaxListItems        = 30
)

var (
	ErrBriefEmpty   = errors.New(errors.ErrCodeBriefEmpty, "brief has neither title nor description")
	ErrBriefTooLong = errors.New(errors.ErrCodeBriefTooLong, "brief description too long")
)

var (
	stripPolicy = bluemonday.StrictPolicy()
	spaceRun    = regexp.MustCompile(`[ \t\f\v]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
)

// ClientHistory is what the platform knows about the brief's author.
type ClientHistory struct {
	MissionsPosted    int     `json:"missions_posted,omitempty"`
	MissionsCompleted int     `json:"missions_completed,omitempty"`
	AvgBudget         float64 `json:"avg_budget,omitempty"`
}

// Request is a raw client brief.
type Request struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	// Budget is in euros; 0 means not provided.
	Budget float64 `json:"budget,omitempty"`
	// Timeline is free text such as "3 semaines" or "ASAP".
	Timeline       string         `json:"timeline,omitempty"`
	SkillsRequired []string       `json:"skills_required,omitempty"`
	Constraints    []string       `json:"constraints,omitempty"`
	ClientHistory  *ClientHistory `json:"client_history,omitempty"`
}

// Normalize strips markup, collapses whitespace and bounds every field. It
// keeps line breaks in the description since they carry structure.
func (r *Request) Normalize() {
	r.Title = truncateRunes(collapse(sanitize(r.Title), true), MaxTitleRunes)
	r.Description = truncateRunes(collapse(sanitize(r.Description), false), MaxDescriptionRunes)
	r.Category = strings.ToLower(strings.TrimSpace(r.Category))
	r.Timeline = collapse(sanitize(r.Timeline), true)
	if math.IsNaN(r.Budget) || r.Budget < 0 {
		r.Budget = 0
	}
	r.SkillsRequired = cleanItems(r.SkillsRequired)
	r.Constraints = cleanItems(r.Constraints)
}

// Validate rejects a brief with no text at all.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Description) == "" {
		return ErrBriefEmpty
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionRunes {
		return ErrBriefTooLong
	}
	return nil
}

// HasBudget reports whether a positive budget was provided.
func (r Request) HasBudget() bool { return r.Budget > 0 }

// FullText returns title, description and constraints as one text.
func (r Request) FullText() string {
	parts := []string{r.Title, r.Description}
	parts = append(parts, r.Constraints...)
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func sanitize(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

func collapse(s string, singleLine bool) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if singleLine {
		return strings.Join(strings.Fields(s), " ")
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(l, " "))
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n"))
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func cleanItems(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = collapse(sanitize(s), true)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, s)
		if len(out) == MaxListItems {
			break
		}
	}
	return out
}

//Personal.AI order the ending
