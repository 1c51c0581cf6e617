// Package standardize turns a free-text client brief into a structured one.
//
// Analysis runs in five phases over the normalized text (linguistic,
// technical complexity, business value, market context, quality) and a
// synthesis step that derives the standardized title, summary, acceptance
// criteria, categorization, skills, missing information and price range.
// Everything is deterministic; an optional InsightProvider may add advisory
// fields on top.
package standardize

import (
	"context"

	"github.com/google/uuid"

	"github.com/turtacn/MissionIntelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

// Engine runs the standardization pipeline. It is safe for concurrent use.
type Engine struct {
	insights InsightProvider
	logger   logging.Logger
	newID    func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithInsights enables an advisory insight provider.
func WithInsights(p InsightProvider) Option {
	return func(e *Engine) { e.insights = p }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithIDGenerator replaces the analysis id generator.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// NewEngine creates an engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.NewNopLogger(),
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.Named("standardize")
	return e
}

// Analyze standardizes req. The request is normalized first; an empty brief
// still yields a complete, low-quality result.
func (e *Engine) Analyze(ctx context.Context, req brief.Request) *brief.StandardizationResult {
	req.Normalize()
	d := newDocument(req)

	ling := analyzeLinguistic(d)
	tech := analyzeTechnical(d)
	business := analyzeBusiness(d)
	category := categorize(d)
	market := analyzeMarket(req, category)
	quality := analyzeQuality(d, ling, tech)

	bv := business.BusinessValue
	lo, med, hi := SuggestPrice(tech.ComplexityScore, bv, market.PricePositioning)

	res := &brief.StandardizationResult{
		AnalysisID:         e.newID(),
		TitleStd:           standardTitle(d, tech),
		SummaryStd:         standardSummary(d, tech),
		AcceptanceCriteria: acceptanceCriteria(req, tech, bv),
		CategoryStd:        category,
		SubCategoryStd:     subCategory(tech),
		TagsStd:            tags(category, tech, bv),
		SkillsStd:          extractSkills(d, category, tech),
		Quality:            quality,
		MissingInfo:        missingInfo(d, quality, tech, business),
		PriceSuggestedMin:  lo,
		PriceSuggestedMed:  med,
		PriceSuggestedMax:  hi,
		DelaySuggestedDays: SuggestDelayDays(tech.ComplexityScore, bv),
		RichnessScore:      richness(ling, tech.ComplexityScore, bv),
		ComplexityScore:    tech.ComplexityScore,
		BusinessValue:      bv,
		Phases: &brief.Phases{
			Linguistic: ling,
			Technical:  tech.Technical,
			Business:   business,
			Market:     market,
		},
		Source: scoring.SourceFallback,
	}
	if res.MissingInfo == nil {
		res.MissingInfo = []brief.MissingInfo{}
	}

	if e.insights != nil {
		ins, err := e.insights.Insights(ctx, req, res)
		switch {
		case err != nil:
			e.logger.Debug("insights skipped", logging.String("analysis_id", res.AnalysisID), logging.Err(err))
		case !ins.Empty():
			res.Insights = ins
		}
	}
	return res
}

//Personal.AI order the ending
