package insight

// Band holds the good/average/poor cut-offs for one metric within an
// industry.
type Band struct {
	Good    float64
	Average float64
	Poor    float64
}

// industryBenchmarks maps industry -> metric -> band. The tables mirror
// the published consulting benchmarks the product ships with; "saas" is
// the default when the context carries no industry.
var industryBenchmarks = map[string]map[string]Band{
	"saas": {
		"retention_rate":   {Good: 70, Average: 50, Poor: 30},
		"acquisition_cost": {Good: 50, Average: 150, Poor: 300},
		"growth_rate":      {Good: 20, Average: 10, Poor: 5},
	},
	"ecommerce": {
		"retention_rate":   {Good: 40, Average: 25, Poor: 15},
		"acquisition_cost": {Good: 25, Average: 50, Poor: 100},
		"growth_rate":      {Good: 15, Average: 8, Poor: 3},
	},
	"services": {
		"retention_rate":   {Good: 80, Average: 60, Poor: 40},
		"acquisition_cost": {Good: 100, Average: 200, Poor: 400},
		"growth_rate":      {Good: 12, Average: 6, Poor: 2},
	},
}

const defaultIndustry = "saas"

// BenchmarkFor returns the band for a metric in the given industry,
// falling back to the default industry for unknown ones.
func BenchmarkFor(industry, metric string) (Band, bool) {
	table, ok := industryBenchmarks[industry]
	if !ok {
		table = industryBenchmarks[defaultIndustry]
	}
	band, ok := table[metric]
	return band, ok
}
