package insight

import (
	"fmt"

	"github.com/canopyhq/canopy/pkg/domain"
)

// Retention-rate thresholds used by the generic detectors, on top of the
// per-industry benchmark bands.
const (
	retentionPatternHigh  = 70
	retentionPatternLow   = 30
	retentionOpportunity  = 50
	retentionRiskCritical = 30
)

// DefaultRules returns the standard rule set: the node-bound rules the
// built-in catalog references plus the general pattern, opportunity,
// risk, benchmark and trend detectors.
func DefaultRules() []Rule {
	return []Rule{
		// --- node-bound rules (referenced by catalog node IDs) ---
		{
			ID:         "welcome_engagement",
			Kind:       domain.InsightPattern,
			Confidence: ConfidenceEngagement,
			NodeBound:  true,
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				return len([]rune(a.String())) > 10
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "I see you're facing some real challenges. Let me understand your current approach better.", nil
			},
		},
		{
			ID:         "loyalty_advantage",
			Kind:       domain.InsightOpportunity,
			Confidence: ConfidenceAdvantage,
			NodeBound:  true,
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				return a.Matches("loyalty_program")
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "An established loyalty program is a real competitive advantage. Let's quantify how well it retains customers.",
					[]string{
						"Track repeat-purchase rate by loyalty tier",
						"Use loyalty data to target win-back campaigns",
					}
			},
		},
		{
			ID:         "unclear_direction",
			Kind:       domain.InsightRisk,
			Confidence: ConfidenceRisk,
			NodeBound:  true,
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				return a.Matches("unsure")
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "Not knowing what keeps customers around is a strategic blind spot worth closing first.",
					[]string{
						"Interview recent churned customers",
						"Instrument repeat-usage metrics before investing in acquisition",
					}
			},
		},

		// --- general pass: pattern detection ---
		{
			ID:         "retention_pattern",
			Kind:       domain.InsightPattern,
			Confidence: ConfidencePattern,
			AppliesTo:  []string{"retention_rate"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				rate, ok := a.AsNumber()
				return ok && (rate > retentionPatternHigh || rate < retentionPatternLow)
			},
			Generate: func(a domain.Answer, _ domain.BusinessContext) (string, []string) {
				rate, _ := a.AsNumber()
				if rate > retentionPatternHigh {
					return "I'm seeing an exceptional retention pattern here. This is well above industry standards!", nil
				}
				return "I'm noticing a concerning pattern with your retention rate. This needs immediate attention.", nil
			},
		},

		// --- general pass: opportunity detection ---
		{
			ID:         "organic_growth_ceiling",
			Kind:       domain.InsightOpportunity,
			Confidence: ConfidenceOpportunity,
			AppliesTo:  []string{"growth_strategy"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				return a.Matches("organic")
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "I see a great opportunity to scale your growth beyond organic methods.",
					[]string{
						"Implement digital marketing channels",
						"Develop a referral program",
						"Consider sales team expansion",
					}
			},
		},
		{
			ID:         "referral_leverage",
			Kind:       domain.InsightOpportunity,
			Confidence: ConfidenceOpportunity,
			AppliesTo:  []string{"growth_strategy"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				return a.Matches("referrals")
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "Referrals are your primary growth channel. A structured program would maximize this advantage.",
					[]string{
						"Create incentives for both referrers and referees",
						"Track and optimize referral conversion rates",
					}
			},
		},
		{
			ID:         "retention_improvement",
			Kind:       domain.InsightOpportunity,
			Confidence: ConfidenceOpportunity,
			AppliesTo:  []string{"retention_rate"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				rate, ok := a.AsNumber()
				return ok && rate < retentionOpportunity
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "There's significant opportunity to improve your retention rate.", nil
			},
		},

		// --- general pass: risk detection ---
		{
			ID:         "retention_risk",
			Kind:       domain.InsightRisk,
			Confidence: ConfidenceRisk,
			AppliesTo:  []string{"retention_rate"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				rate, ok := a.AsNumber()
				return ok && rate < retentionRiskCritical
			},
			Generate: func(_ domain.Answer, _ domain.BusinessContext) (string, []string) {
				return "Your low retention rate poses a significant risk to sustainable growth.",
					[]string{
						"Implement customer success program",
						"Conduct exit interviews",
						"Improve product-market fit",
					}
			},
		},

		// --- general pass: benchmark comparison ---
		{
			ID:         "retention_benchmark",
			Kind:       domain.InsightBenchmark,
			Confidence: ConfidenceBenchmark,
			AppliesTo:  []string{"retention_rate"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				_, ok := a.AsNumber()
				return ok
			},
			Generate: func(a domain.Answer, bc domain.BusinessContext) (string, []string) {
				rate, _ := a.AsNumber()
				band, _ := BenchmarkFor(bc.Industry, "retention_rate")
				industry := bc.Industry
				if industry == "" {
					industry = defaultIndustry
				}
				switch {
				case rate >= band.Good:
					return fmt.Sprintf("A %.0f%% retention rate is at or above the good threshold (%.0f%%) for %s businesses.", rate, band.Good, industry), nil
				case rate >= band.Average:
					return fmt.Sprintf("A %.0f%% retention rate is around average for %s businesses; the good threshold is %.0f%%.", rate, industry, band.Good),
						[]string{"Focus on upselling and cross-selling to existing customers"}
				default:
					return fmt.Sprintf("A %.0f%% retention rate is below average for %s businesses (average is %.0f%%).", rate, industry, band.Average),
						[]string{"Implement customer feedback loops to understand churn reasons"}
				}
			},
		},

		// --- general pass: trend detection ---
		{
			ID:         "hypergrowth_ambition",
			Kind:       domain.InsightTrend,
			Confidence: ConfidenceTrend,
			AppliesTo:  []string{"growth_pace"},
			Condition: func(a domain.Answer, _ domain.BusinessContext) bool {
				return a.Matches("2x_3x") || a.Matches("3x_plus")
			},
			Generate: func(_ domain.Answer, bc domain.BusinessContext) (string, []string) {
				recs := []string{"Pressure-test your unit economics before accelerating spend"}
				if rate, ok := bc.NumericAnswer("retention_rate"); ok && rate < retentionOpportunity {
					recs = append(recs, "Fix retention before funding hypergrowth acquisition")
				}
				return "You're targeting a hypergrowth trajectory. Companies that sustain this pace invest early in retention and operational discipline.", recs
			},
		},
	}
}
