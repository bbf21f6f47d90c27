package runtime

import (
	"strings"

	"github.com/canopyhq/canopy/pkg/domain"
)

// industryKeywords maps free-text markers to the benchmark industries.
// First match wins, so more specific markers come first.
var industryKeywords = []struct {
	industry string
	markers  []string
}{
	{"saas", []string{"saas", "software", "subscription", "platform", "app"}},
	{"ecommerce", []string{"ecommerce", "e-commerce", "online store", "shop", "retail", "marketplace"}},
	{"services", []string{"agency", "consulting", "consultancy", "freelance", "services"}},
}

// companySizes maps free-text markers to a coarse size bucket.
var companySizes = []struct {
	size    string
	markers []string
}{
	{"solo", []string{"just me", "solo", "one-person", "myself"}},
	{"small", []string{"small team", "a few people", "family business", "startup"}},
	{"large", []string{"enterprise", "hundreds of", "large team", "big company"}},
}

// growthStages maps the growth_pace option values to a coarse stage.
var growthStages = map[string]string{
	"10_25":   "steady",
	"25_50":   "scaling",
	"50_100":  "scaling",
	"2x_3x":   "hypergrowth",
	"3x_plus": "hypergrowth",
	"unsure":  "exploring",
}

// deriveBusinessFields opportunistically fills the context summary
// fields from answer content. Existing values are never overwritten by
// weaker signals from later answers.
func deriveBusinessFields(bc *domain.BusinessContext, questionID string, answer domain.Answer) {
	switch questionID {
	case "business_overview":
		text := strings.ToLower(answer.String())
		if bc.Industry == "" {
		industry:
			for _, entry := range industryKeywords {
				for _, marker := range entry.markers {
					if strings.Contains(text, marker) {
						bc.Industry = entry.industry
						break industry
					}
				}
			}
		}
		if bc.CompanySize == "" {
		size:
			for _, entry := range companySizes {
				for _, marker := range entry.markers {
					if strings.Contains(text, marker) {
						bc.CompanySize = entry.size
						break size
					}
				}
			}
		}
	case "growth_pace":
		if stage, ok := growthStages[answer.String()]; ok {
			bc.GrowthStage = stage
		}
	}
}
