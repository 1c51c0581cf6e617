package brief

import (
	"fmt"

	"github.com/turtacn/MissionIntelligence/pkg/errors"
)

// Bounds of a StandardizationResult.
const (
	MaxAcceptanceCriteria = 8
	MaxTags               = 10
	MaxSkills             = 12
	MaxTitleStdRunes      = 80
	MaxSummaryRunes       = 300
)

// Priorities of a MissingInfo item.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// MissingInfo types.
const (
	MissingBudget          = "budget_range"
	MissingTimeline        = "timeline"
	MissingTechnicalSpecs  = "technical_specs"
	MissingSkills          = "skills"
	MissingBusinessContext = "business_context"
)

// Quality holds the quality sub-scores of a brief, each 0..100.
type Quality struct {
	Overall      int `json:"overall"`
	Completeness int `json:"completeness"`
	Clarity      int `json:"clarity"`
	Structure    int `json:"structure"`
	Specificity  int `json:"specificity"`
}

// MissingInfo is one gap in the brief with a concrete way to fill it.
type MissingInfo struct {
	Type        string   `json:"type"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Suggestion  string   `json:"suggestion"`
	Examples    []string `json:"examples,omitempty"`
}

// Linguistic is the output of the linguistic phase.
type Linguistic struct {
	Sentences          int     `json:"sentences"`
	Words              int     `json:"words"`
	VocabularyRichness float64 `json:"vocabulary_richness"`
	StructuralScore    int     `json:"structural_score"`
	InformationDensity int     `json:"information_density"`
	AvgSentenceWords   float64 `json:"avg_sentence_words"`
	Questions          int     `json:"questions"`
}

// Technical is the output of the technical-complexity phase.
type Technical struct {
	// Technologies are the detected technology categories (Frontend, Backend...).
	Technologies           []string `json:"technologies"`
	// Stack lists the matched technology terms, in display form.
	Stack                  []string `json:"stack,omitempty"`
	ArchitectureIndicators []string `json:"architecture_indicators,omitempty"`
	ComplexityScore        int      `json:"complexity_score"`
}

// Business is the output of the business-value phase.
type Business struct {
	ValueIndicators      int     `json:"value_indicators"`
	StrategicKeywords    int     `json:"strategic_keywords"`
	MarketImpact         float64 `json:"market_impact"`
	UserBenefitClarity   float64 `json:"user_benefit_clarity"`
	CompetitiveAdvantage float64 `json:"competitive_advantage"`
	BusinessValue        float64 `json:"business_value"`
}

// Market is the output of the market-context phase.
type Market struct {
	Demand           string `json:"demand"`
	Competition      string `json:"competition"`
	PricePositioning string `json:"price_positioning"`
	Seasonality      string `json:"seasonality,omitempty"`
}

// Phases collects the raw phase outputs behind a result.
type Phases struct {
	Linguistic Linguistic `json:"linguistic"`
	Technical  Technical  `json:"technical"`
	Business   Business   `json:"business"`
	Market     Market     `json:"market"`
}

// Insights are optional advisory fields contributed by an external model.
type Insights struct {
	Provider        string   `json:"provider,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	Risks           []string `json:"risks,omitempty"`
	Opportunities   []string `json:"opportunities,omitempty"`
}

// Empty reports whether no advisory field is set.
func (i *Insights) Empty() bool {
	return i == nil || len(i.Recommendations)+len(i.Risks)+len(i.Opportunities) == 0
}

// StandardizationResult is the structured form of a brief.
type StandardizationResult struct {
	AnalysisID         string        `json:"analysis_id"`
	TitleStd           string        `json:"title_std"`
	SummaryStd         string        `json:"summary_std"`
	AcceptanceCriteria []string      `json:"acceptance_criteria"`
	CategoryStd        string        `json:"category_std"`
	SubCategoryStd     string        `json:"sub_category_std"`
	TagsStd            []string      `json:"tags_std"`
	SkillsStd          []string      `json:"skills_std"`
	Quality            Quality       `json:"quality"`
	MissingInfo        []MissingInfo `json:"missing_info"`
	PriceSuggestedMin  float64       `json:"price_suggested_min"`
	PriceSuggestedMed  float64       `json:"price_suggested_med"`
	PriceSuggestedMax  float64       `json:"price_suggested_max"`
	DelaySuggestedDays int           `json:"delay_suggested_days"`
	RichnessScore      int           `json:"richness_score"`
	ComplexityScore    int           `json:"complexity_score"`
	BusinessValue      float64       `json:"business_value"`
	Phases             *Phases       `json:"phases,omitempty"`
	Insights           *Insights     `json:"insights,omitempty"`
	Source             string        `json:"source"`
}

// HasMissing reports whether the result flags the given missing-info type.
func (r StandardizationResult) HasMissing(kind string) bool {
	for _, m := range r.MissingInfo {
		if m.Type == kind {
			return true
		}
	}
	return false
}

// Validate checks the bounds every producer must honour.
func (r StandardizationResult) Validate() error {
	switch {
	case len(r.AcceptanceCriteria) > MaxAcceptanceCriteria:
		return invalid("acceptance_criteria", fmt.Sprint(len(r.AcceptanceCriteria)))
	case len(r.TagsStd) > MaxTags:
		return invalid("tags_std", fmt.Sprint(len(r.TagsStd)))
	case len(r.SkillsStd) > MaxSkills:
		return invalid("skills_std", fmt.Sprint(len(r.SkillsStd)))
	case r.PriceSuggestedMin < 0 || r.PriceSuggestedMin > r.PriceSuggestedMed || r.PriceSuggestedMed > r.PriceSuggestedMax:
		return invalid("price_suggested", fmt.Sprintf("%v/%v/%v", r.PriceSuggestedMin, r.PriceSuggestedMed, r.PriceSuggestedMax))
	case r.DelaySuggestedDays < 1:
		return invalid("delay_suggested_days", fmt.Sprint(r.DelaySuggestedDays))
	case r.CategoryStd == "":
		return invalid("category_std", "empty")
	}
	for name, v := range map[string]int{
		"overall": r.Quality.Overall, "completeness": r.Quality.Completeness,
		"clarity": r.Quality.Clarity, "structure": r.Quality.Structure, "specificity": r.Quality.Specificity,
	} {
		if v < 0 || v > 100 {
			return invalid("quality."+name, fmt.Sprint(v))
		}
	}
	for _, m := range r.MissingInfo {
		switch m.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return invalid("missing_info.priority", m.Priority)
		}
	}
	return nil
}

// ConfidenceScore is the overall quality of the brief.
func (r StandardizationResult) ConfidenceScore() float64 { return float64(r.Quality.Overall) }

func invalid(field, value string) error {
	return errors.Validation("invalid " + field).WithDetail(value)
}

//Personal.AI order the ending
