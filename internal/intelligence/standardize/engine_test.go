package standardize

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/MissionIntelligence/internal/config"
	"github.com/turtacn/MissionIntelligence/internal/intelligence/common"
	"github.com/turtacn/MissionIntelligence/pkg/types/brief"
	"github.com/turtacn/MissionIntelligence/pkg/types/scoring"
)

func shopBrief() brief.Request {
	return brief.Request{
		Title: "Refonte du site web de notre boutique",
		Description: "Nous souhaitons refondre notre site web avec React et une API connectée à PostgreSQL. " +
			"Le site doit permettre aux clients de commander en ligne facilement. " +
			"Livraison attendue en 6 semaines.",
		Budget: 2500,
	}
}

func newTestEngine(opts ...Option) *Engine {
	return NewEngine(append([]Option{WithIDGenerator(func() string { return "an-1" })}, opts...)...)
}

func TestEngine_Analyze_WebBrief(t *testing.T) {
	res := newTestEngine().Analyze(context.Background(), shopBrief())
	require.NoError(t, res.Validate())

	assert.Equal(t, "an-1", res.AnalysisID)
	assert.Equal(t, scoring.SourceFallback, res.Source)
	assert.Equal(t, CategoryWeb, res.CategoryStd)
	assert.Equal(t, "fullstack", res.SubCategoryStd)
	assert.Equal(t, 3, res.ComplexityScore)
	assert.Equal(t, []string{TechFrontend, TechBackend, TechDatabase}, res.Phases.Technical.Technologies)
	assert.Equal(t, []string{"React", "API", "PostgreSQL"}, res.Phases.Technical.Stack)
	assert.Empty(t, res.Phases.Technical.ArchitectureIndicators)

	assert.Equal(t, "Refonte du Site Web de Notre Boutique (React)", res.TitleStd)
	assert.Contains(t, res.SummaryStd, "Technologies : React, API, PostgreSQL.")
	assert.NotContains(t, res.SummaryStd, "Livraison")
	assert.LessOrEqual(t, utf8.RuneCountInString(res.SummaryStd), brief.MaxSummaryRunes)

	assert.Len(t, res.AcceptanceCriteria, 6)
	assert.Equal(t, []string{CategoryWeb, "frontend", "backend", "database", "complexity-low", "value-low"}, res.TagsStd)
	assert.Equal(t, "API", res.SkillsStd[0])
	assert.Subset(t, res.SkillsStd, []string{"React", "JavaScript", "SQL"})

	assert.InDelta(t, 2.5, res.BusinessValue, 1e-9)
	assert.Equal(t, "standard", res.Phases.Market.PricePositioning)
	assert.Equal(t, "high", res.Phases.Market.Competition)
	assert.Equal(t, 1920.0, res.PriceSuggestedMin)
	assert.Equal(t, 2400.0, res.PriceSuggestedMed)
	assert.Equal(t, 3120.0, res.PriceSuggestedMax)
	assert.Equal(t, 15, res.DelaySuggestedDays)

	assert.Equal(t, brief.Quality{Overall: 53, Completeness: 100, Clarity: 100, Structure: 0, Specificity: 10}, res.Quality)
	require.Len(t, res.MissingInfo, 2)
	assert.Equal(t, brief.MissingTechnicalSpecs, res.MissingInfo[0].Type)
	assert.Equal(t, brief.PriorityMedium, res.MissingInfo[0].Priority)
	assert.Equal(t, brief.MissingBusinessContext, res.MissingInfo[1].Type)
	assert.Nil(t, res.Insights)
	assert.GreaterOrEqual(t, res.RichnessScore, 0)
	assert.LessOrEqual(t, res.RichnessScore, 100)
}

func TestEngine_Analyze_MissingBudgetAndTimeline(t *testing.T) {
	res := newTestEngine().Analyze(context.Background(), brief.Request{
		Title:       "Logo",
		Description: "Création d'un logo pour une association.",
	})
	require.NoError(t, res.Validate())

	assert.Equal(t, CategoryDesign, res.CategoryStd)
	require.GreaterOrEqual(t, len(res.MissingInfo), 2)
	assert.Equal(t, brief.MissingBudget, res.MissingInfo[0].Type)
	assert.Equal(t, brief.PriorityHigh, res.MissingInfo[0].Priority)
	assert.Equal(t, brief.MissingTimeline, res.MissingInfo[1].Type)
	assert.Equal(t, brief.PriorityHigh, res.MissingInfo[1].Priority)
	assert.True(t, res.HasMissing(brief.MissingSkills))
	for _, m := range res.MissingInfo {
		assert.NotEmpty(t, m.Suggestion)
		assert.NotEmpty(t, m.Examples)
		assert.LessOrEqual(t, len(m.Examples), 2)
	}
	assert.Equal(t, 1, res.ComplexityScore)
	assert.Equal(t, 7, res.DelaySuggestedDays)
}

func TestEngine_Analyze_EmptyBrief(t *testing.T) {
	res := newTestEngine().Analyze(context.Background(), brief.Request{})
	require.NoError(t, res.Validate())
	assert.Equal(t, "Mission", res.TitleStd)
	assert.Equal(t, CategoryOther, res.CategoryStd)
	assert.Equal(t, 0, res.Quality.Clarity)
	assert.Len(t, res.AcceptanceCriteria, len(baselineCriteria))
}

func TestEngine_Analyze_DeclaredCategoryWins(t *testing.T) {
	req := shopBrief()
	req.Category = "Marketing"
	res := newTestEngine().Analyze(context.Background(), req)
	assert.Equal(t, CategoryMarketing, res.CategoryStd)

	req.Category = "astrology"
	res = newTestEngine().Analyze(context.Background(), req)
	assert.Equal(t, CategoryWeb, res.CategoryStd)
}

func TestAnalyzeTechnical_ArchitectureIndicators(t *testing.T) {
	d := newDocument(brief.Request{
		Title:       "Plateforme temps réel",
		Description: "Architecture microservices déployée avec Docker et Kubernetes.",
	})
	tech := analyzeTechnical(d)
	assert.Equal(t, []string{TechDevOps}, tech.Technologies)
	assert.Equal(t, []string{"microservices", "temps reel"}, tech.ArchitectureIndicators)
	assert.Equal(t, 2, tech.ComplexityScore)
}

func TestAnalyzeTechnical_ClampsToTen(t *testing.T) {
	d := newDocument(brief.Request{Description: "React, Django, MongoDB sur AWS, app iOS, chatbot NLP, Docker. " +
		"Microservices, big data, temps réel, haute disponibilité, streaming, websocket, blockchain, multi-tenant."})
	assert.Equal(t, 10, analyzeTechnical(d).ComplexityScore)
}

func TestAnalyzeMarket(t *testing.T) {
	tests := []struct {
		budget      float64
		category    string
		competition string
		positioning string
	}{
		{20000, CategoryWeb, "low", PositionPremium},
		{5000, CategoryWeb, "medium", PositionStandardPlus},
		{2000, CategoryWeb, "high", PositionStandard},
		{800, CategoryWeb, "high", PositionBudget},
		{0, CategoryDataAI, "medium", PositionPremium},
		{0, "unknown", "medium", PositionStandard},
	}
	for _, tt := range tests {
		m := analyzeMarket(brief.Request{Budget: tt.budget}, tt.category)
		assert.Equal(t, tt.competition, m.Competition, "budget %v", tt.budget)
		assert.Equal(t, tt.positioning, m.PricePositioning, "budget %v", tt.budget)
	}
}

func TestSuggestPrice(t *testing.T) {
	lo, med, hi := SuggestPrice(3, 8, PositionStandard)
	assert.Equal(t, []float64{2496, 3120, 4056}, []float64{lo, med, hi})

	_, med, _ = SuggestPrice(3, 6, PositionPremium)
	assert.Equal(t, 3864.0, med)

	prev := 0.0
	for c := 1; c <= 10; c++ {
		lo, med, hi := SuggestPrice(c, 4, PositionStandard)
		assert.Greater(t, med, prev)
		assert.LessOrEqual(t, lo, med)
		assert.LessOrEqual(t, med, hi)
		prev = med
	}
}

func TestSuggestDelayDays(t *testing.T) {
	assert.Equal(t, 7, SuggestDelayDays(1, 2))
	assert.Equal(t, 15, SuggestDelayDays(3, 6))
	assert.Equal(t, 22, SuggestDelayDays(3, 6.5))
	assert.Equal(t, 57, SuggestDelayDays(10, 9))
}

func TestBusinessValue(t *testing.T) {
	assert.Equal(t, 2.0, BusinessValue(brief.Business{}))
	assert.Equal(t, 10.0, BusinessValue(brief.Business{ValueIndicators: 10, StrategicKeywords: 10}))
	assert.Equal(t, 6.5, BusinessValue(brief.Business{ValueIndicators: 2, MarketImpact: 1, UserBenefitClarity: 1, CompetitiveAdvantage: 0.5}))
}

func TestDice(t *testing.T) {
	assert.Equal(t, 1.0, Dice("react", "react"))
	assert.Equal(t, 0.0, Dice("a", "react"))
	assert.GreaterOrEqual(t, Dice("wordpres", "wordpress"), fuzzyThreshold)
	assert.Less(t, Dice("notre", "node.js"), fuzzyThreshold)
}

func TestExtractSkills_DeclaredFirstAndCapped(t *testing.T) {
	req := brief.Request{
		SkillsRequired: []string{"Figma"},
		Description:    "Site wordpres avec React, Vue.js, Angular, Node.js, PHP, Symfony, Laravel, Shopify, TypeScript, HTML, API, SQL et Docker.",
	}
	d := newDocument(req)
	tech := analyzeTechnical(d)
	skills := extractSkills(d, CategoryWeb, tech)
	assert.Len(t, skills, brief.MaxSkills)
	assert.Equal(t, "Figma", skills[0])
	assert.Contains(t, skills, "WordPress")
}

type stubInsights struct {
	out *brief.Insights
	err error
}

func (s stubInsights) Insights(context.Context, brief.Request, *brief.StandardizationResult) (*brief.Insights, error) {
	return s.out, s.err
}

func TestEngine_Insights(t *testing.T) {
	ins := &brief.Insights{Provider: "stub", Risks: []string{"scope creep"}}
	res := newTestEngine(WithInsights(stubInsights{out: ins})).Analyze(context.Background(), shopBrief())
	assert.Equal(t, ins, res.Insights)

	res = newTestEngine(WithInsights(stubInsights{err: errors.New("down")})).Analyze(context.Background(), shopBrief())
	assert.Nil(t, res.Insights)

	res = newTestEngine(WithInsights(stubInsights{out: &brief.Insights{}})).Analyze(context.Background(), shopBrief())
	assert.Nil(t, res.Insights)
}

func TestMLInsights(t *testing.T) {
	client := common.NewMockServingClient()
	client.PostFunc = common.RespondJSON(`{"recommendations":["Préciser le catalogue"]}`)
	p := NewMLInsights(client, config.InsightsConfig{})

	res := newTestEngine(WithInsights(p)).Analyze(context.Background(), shopBrief())
	require.NotNil(t, res.Insights)
	assert.Equal(t, "ml", res.Insights.Provider)
	assert.Equal(t, []string{"Préciser le catalogue"}, res.Insights.Recommendations)
	assert.EqualValues(t, 1, client.CallsTo(config.DefaultInsightsPath))

	client.SetOffline(true)
	res = newTestEngine(WithInsights(p)).Analyze(context.Background(), shopBrief())
	assert.Nil(t, res.Insights)
	assert.EqualValues(t, 1, client.Calls())
}

//Personal.AI order the ending
