package domain

import "time"

// InsightKind categorizes a generated insight.
type InsightKind string

const (
	InsightPattern     InsightKind = "pattern"
	InsightOpportunity InsightKind = "opportunity"
	InsightRisk        InsightKind = "risk"
	InsightBenchmark   InsightKind = "benchmark"
	InsightTrend       InsightKind = "trend"
)

// RealTimeInsight is an immutable, timestamped observation produced by a
// rule evaluator. Insights are appended to the conversation state and
// handed to the persistence boundary; they are never mutated or
// deduplicated (a persistently bad metric should keep surfacing).
type RealTimeInsight struct {
	ID      string      `json:"id"`
	Kind    InsightKind `json:"kind"`
	Content string      `json:"content"`

	// Confidence is a fixed property of the generating rule, in [0,1].
	Confidence float64 `json:"confidence"`

	// DataPoints lists the question IDs that produced the insight.
	DataPoints []string `json:"data_points"`

	Recommendations []string  `json:"recommendations,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
