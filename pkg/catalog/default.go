package catalog

import "github.com/canopyhq/canopy/pkg/domain"

// Default returns the built-in business-discovery catalog. The catalog is
// plain data; branching and insight behavior live in the resolver and the
// insight rules the node IDs are bound to.
func Default() *Catalog {
	c, err := New(defaultNodes())
	if err != nil {
		// The built-in catalog is validated by tests; a defect here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return c
}

func defaultNodes() []domain.QuestionNode {
	return []domain.QuestionNode{
		{
			ID:       "welcome",
			Kind:     domain.KindConversation,
			Prompt:   "Hi! I'm your business growth consultant. Let's start by understanding your business better. What's the biggest challenge you're facing right now in growing your business?",
			Position: 1,
			Required: true,
			InsightRules: []string{
				"welcome_engagement",
			},
		},
		{
			ID:       "business_overview",
			Kind:     domain.KindFreeText,
			Prompt:   "Briefly describe what your business offers, who you serve, and how you deliver value.",
			Position: 2,
			Required: true,
		},
		{
			ID:       "growth_metrics",
			Kind:     domain.KindRanking,
			Prompt:   "Rank the metrics you track most closely to measure growth, most important first.",
			Position: 3,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "revenue", Label: "Revenue"},
				{Value: "profit_margin", Label: "Profit Margin"},
				{Value: "customer_ltv", Label: "Customer Lifetime Value (LTV)"},
				{Value: "customer_acquisition_cost", Label: "Customer Acquisition Cost (CAC)"},
				{Value: "churn_rate", Label: "Customer Churn Rate"},
				{Value: "conversion_rate", Label: "Conversion Rate"},
			},
		},
		{
			ID:       "growth_strategy",
			Kind:     domain.KindSingleChoice,
			Prompt:   "What is your primary growth strategy today?",
			Position: 4,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "digital_marketing", Label: "Digital marketing", Description: "Paid and organic digital channels"},
				{Value: "referrals", Label: "Referrals", Description: "Word of mouth and referral programs"},
				{Value: "sales_team", Label: "Outbound sales team", Description: "Proactive sales outreach"},
				{Value: "organic", Label: "Organic only", Description: "No structured acquisition motion yet"},
			},
		},
		{
			ID:       "challenge_followup",
			Kind:     domain.KindConditional,
			Prompt:   "Which lever best describes how you keep customers today?",
			Position: 5,
			Required: true,
			Options: []domain.QuestionOption{
				{
					Value:       "loyalty_program",
					Label:       "An established loyalty program",
					Description: "Structured rewards keeping customers engaged",
					FollowUps:   []string{"retention_rate"},
				},
				{Value: "discounting", Label: "Discounts and promotions"},
				{Value: "customer_success", Label: "Hands-on customer success"},
				{Value: "unsure", Label: "Honestly, we're not sure"},
			},
			InsightRules: []string{
				"loyalty_advantage",
				"unclear_direction",
			},
		},
		{
			ID:       "business_priorities",
			Kind:     domain.KindRanking,
			Prompt:   "Rank the following priorities from most to least important to your business right now.",
			Position: 6,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "growth", Label: "Growth", Description: "Expanding customer base and revenue"},
				{Value: "profitability", Label: "Profitability", Description: "Improving margins"},
				{Value: "efficiency", Label: "Efficiency", Description: "Optimizing operations"},
				{Value: "innovation", Label: "Innovation", Description: "New products or services"},
				{Value: "brand_equity", Label: "Brand Equity", Description: "Recognition and loyalty"},
			},
		},
		{
			ID:       "retention_rate",
			Kind:     domain.KindFreeText,
			Prompt:   "What percentage of your customers are still with you after 12 months? A rough number is fine.",
			Position: 7,
			Required: true,
		},
		{
			ID:       "strategy_decision_method",
			Kind:     domain.KindSingleChoice,
			Prompt:   "How do you currently make big strategic decisions?",
			Position: 8,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "gut_feel", Label: "Mostly gut instinct or experience"},
				{Value: "data_driven", Label: "Primarily based on data and analytics"},
				{Value: "team_alignment", Label: "Collective input and cross-functional alignment"},
				{Value: "executive_top_down", Label: "Top-down executive leadership"},
				{Value: "board_pressure", Label: "Board or investor direction"},
				{Value: "mixed", Label: "A mix of the above"},
			},
		},
		{
			ID:       "team_alignment",
			Kind:     domain.KindSingleChoice,
			Prompt:   "How aligned is your team on company goals and direction?",
			Position: 9,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "fully_aligned", Label: "Fully aligned and collaborative"},
				{Value: "mostly_aligned", Label: "Mostly aligned, occasional friction"},
				{Value: "some_misalignment", Label: "Some misalignment across departments"},
				{Value: "not_aligned", Label: "No clear alignment, teams work in silos"},
				{Value: "other", Label: "Other", FollowUps: []string{"team_alignment_other"}},
			},
		},
		{
			ID:           "team_alignment_other",
			Kind:         domain.KindFreeText,
			Prompt:       "Tell us more about your team's alignment situation.",
			Position:     10,
			FollowUpOnly: true,
		},
		{
			ID:       "growth_pace",
			Kind:     domain.KindSingleChoice,
			Prompt:   "What is your ideal pace of growth?",
			Position: 11,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "10_25", Label: "10-25% YoY", Description: "Steady, sustainable growth"},
				{Value: "25_50", Label: "25-50% YoY", Description: "Moderate acceleration"},
				{Value: "50_100", Label: "50-100% YoY", Description: "Fast growth trajectory"},
				{Value: "2x_3x", Label: "2x-3x", Description: "Rapid scaling"},
				{Value: "3x_plus", Label: "3x+", Description: "Hypergrowth mode"},
				{Value: "unsure", Label: "Unsure"},
			},
		},
		{
			ID:       "future_success",
			Kind:     domain.KindFreeText,
			Prompt:   "What would a wildly successful next 12 months look like for your business?",
			Position: 12,
			Required: true,
		},
		{
			ID:       "unresolved_issue",
			Kind:     domain.KindFreeText,
			Prompt:   "What's one thing you know you need to fix, but haven't yet?",
			Position: 13,
			Required: true,
		},
		{
			ID:       "final_confirmation",
			Kind:     domain.KindSingleChoice,
			Prompt:   "Ready to level up? This path is built for ambitious businesses willing to do the work. Are you in?",
			Position: 14,
			Required: true,
			Options: []domain.QuestionOption{
				{Value: "yes_ready", Label: "Yes, I'm ready to grow."},
				{Value: "no_not_ready", Label: "No, not at this time."},
			},
		},
	}
}
