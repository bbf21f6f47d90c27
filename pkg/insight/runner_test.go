package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/domain"
)

func fixedRunner(rules []Rule) *Runner {
	var n int
	return NewRunner(rules,
		WithClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }),
		WithIDGenerator(func() string { n++; return "ins-" + string(rune('a'+n-1)) }),
	)
}

func retentionNode() *domain.QuestionNode {
	return &domain.QuestionNode{ID: "retention_rate", Kind: domain.KindFreeText, Prompt: "What is your retention rate?"}
}

func TestHighRetentionProducesBenchmarkInsight(t *testing.T) {
	r := fixedRunner(DefaultRules())
	bc := domain.BusinessContext{Industry: "saas"}.Merge("retention_rate", domain.TextAnswer("75"))

	insights := r.Evaluate(retentionNode(), domain.TextAnswer("75"), bc)

	var kinds []domain.InsightKind
	for _, ins := range insights {
		kinds = append(kinds, ins.Kind)
	}
	require.Contains(t, kinds, domain.InsightBenchmark)
	require.Contains(t, kinds, domain.InsightPattern)
	assert.NotContains(t, kinds, domain.InsightRisk)

	for _, ins := range insights {
		if ins.Kind == domain.InsightBenchmark {
			assert.Contains(t, ins.Content, "at or above")
			assert.Equal(t, ConfidenceBenchmark, ins.Confidence)
			assert.Equal(t, []string{"retention_rate"}, ins.DataPoints)
		}
		if ins.Kind == domain.InsightPattern {
			assert.Contains(t, ins.Content, "exceptional")
			assert.Equal(t, ConfidencePattern, ins.Confidence)
		}
	}
}

func TestLowRetentionProducesRiskInsight(t *testing.T) {
	r := fixedRunner(DefaultRules())
	bc := domain.BusinessContext{Industry: "saas"}.Merge("retention_rate", domain.TextAnswer("25"))

	insights := r.Evaluate(retentionNode(), domain.TextAnswer("25"), bc)

	var risk *domain.RealTimeInsight
	for i := range insights {
		if insights[i].Kind == domain.InsightRisk {
			risk = &insights[i]
		}
	}
	require.NotNil(t, risk, "expected a risk insight for 25%% retention")
	assert.Contains(t, risk.Content, "significant risk")
	assert.Equal(t, ConfidenceRisk, risk.Confidence)
	assert.Contains(t, risk.Recommendations, "Implement customer success program")
}

func TestBenchmarkUsesIndustryTable(t *testing.T) {
	r := fixedRunner(DefaultRules())

	// 45% is below-average for saas (good=70) but above-good for
	// ecommerce (good=40).
	saas := domain.BusinessContext{Industry: "saas"}
	ecom := domain.BusinessContext{Industry: "ecommerce"}

	for _, tc := range []struct {
		bc   domain.BusinessContext
		want string
	}{
		{saas.Merge("retention_rate", domain.TextAnswer("45")), "below average"},
		{ecom.Merge("retention_rate", domain.TextAnswer("45")), "at or above"},
	} {
		insights := r.Evaluate(retentionNode(), domain.TextAnswer("45"), tc.bc)
		found := false
		for _, ins := range insights {
			if ins.Kind == domain.InsightBenchmark {
				assert.Contains(t, ins.Content, tc.want)
				found = true
			}
		}
		require.True(t, found)
	}
}

func TestOrganicGrowthOpportunity(t *testing.T) {
	r := fixedRunner(DefaultRules())
	node := &domain.QuestionNode{ID: "growth_strategy", Kind: domain.KindSingleChoice, Prompt: "How do you grow?"}
	bc := domain.BusinessContext{}.Merge("growth_strategy", domain.TextAnswer("organic"))

	insights := r.Evaluate(node, domain.TextAnswer("organic"), bc)

	require.Len(t, insights, 1)
	assert.Equal(t, domain.InsightOpportunity, insights[0].Kind)
	assert.Contains(t, insights[0].Content, "beyond organic")
	assert.Equal(t, []string{
		"Implement digital marketing channels",
		"Develop a referral program",
		"Consider sales team expansion",
	}, insights[0].Recommendations)
}

func TestNodeBoundRulesRequireCatalogReference(t *testing.T) {
	r := fixedRunner(DefaultRules())

	// welcome_engagement only fires when the node lists it.
	plain := &domain.QuestionNode{ID: "welcome", Kind: domain.KindConversation, Prompt: "Hi"}
	wired := &domain.QuestionNode{ID: "welcome", Kind: domain.KindConversation, Prompt: "Hi", InsightRules: []string{"welcome_engagement"}}
	answer := domain.TextAnswer("we are struggling with churn and slow growth")
	bc := domain.BusinessContext{}

	assert.Empty(t, r.Evaluate(plain, answer, bc))

	insights := r.Evaluate(wired, answer, bc)
	require.Len(t, insights, 1)
	assert.Equal(t, ConfidenceEngagement, insights[0].Confidence)
}

func TestConversationNodesSkipGeneralPass(t *testing.T) {
	r := fixedRunner(DefaultRules())
	node := &domain.QuestionNode{ID: "retention_rate", Kind: domain.KindConversation, Prompt: "chat"}
	bc := domain.BusinessContext{}.Merge("retention_rate", domain.TextAnswer("25"))

	assert.Empty(t, r.Evaluate(node, domain.TextAnswer("25"), bc))
}

func TestPanickingRuleIsIsolated(t *testing.T) {
	rules := []Rule{
		{
			ID:         "explosive",
			Kind:       domain.InsightPattern,
			Confidence: 0.5,
			Condition:  func(domain.Answer, domain.BusinessContext) bool { return true },
			Generate: func(domain.Answer, domain.BusinessContext) (string, []string) {
				panic("rule bug")
			},
		},
		{
			ID:         "survivor",
			Kind:       domain.InsightTrend,
			Confidence: 0.6,
			Condition:  func(domain.Answer, domain.BusinessContext) bool { return true },
			Generate: func(domain.Answer, domain.BusinessContext) (string, []string) {
				return "still here", nil
			},
		},
	}
	r := fixedRunner(rules)
	node := &domain.QuestionNode{ID: "q1", Kind: domain.KindFreeText, Prompt: "?"}

	insights := r.Evaluate(node, domain.TextAnswer("x"), domain.BusinessContext{})

	require.Len(t, insights, 1)
	assert.Equal(t, "still here", insights[0].Content)
}

func TestUnknownBoundRuleIsSkipped(t *testing.T) {
	r := fixedRunner(nil)
	node := &domain.QuestionNode{ID: "q1", Kind: domain.KindConversation, Prompt: "?", InsightRules: []string{"missing"}}

	assert.Empty(t, r.Evaluate(node, domain.TextAnswer("x"), domain.BusinessContext{}))
}

func TestDefaultCatalogRulesResolve(t *testing.T) {
	r := fixedRunner(DefaultRules())
	for id := range r.bound {
		assert.True(t, r.bound[id].NodeBound)
	}
	for _, want := range []string{"welcome_engagement", "loyalty_advantage", "unclear_direction"} {
		_, ok := r.bound[want]
		assert.True(t, ok, "missing bound rule %s", want)
	}
}
