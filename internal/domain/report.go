package domain

import "time"

// SchemaVersion tags the category-score shape persisted inside a report so
// consumers can discriminate between revisions of the matrix keying.
const SchemaVersion = "v1"

// GeneratedBy records which synthesis path actually produced a report's content.
type GeneratedBy string

const (
	// GeneratedLocal marks a report built purely from the heuristic pipeline.
	GeneratedLocal GeneratedBy = "local"
	// GeneratedAI marks a report whose summary and recommendations came from
	// the external summarizer.
	GeneratedAI GeneratedBy = "ai-assisted"
	// GeneratedAIDegraded marks a run where the summarizer was configured but
	// failed or returned unusable output, so local results were kept.
	GeneratedAIDegraded GeneratedBy = "ai-degraded"
)

// Timeframe restricts the analyzed feedback window.
type Timeframe string

const (
	TimeframeAll     Timeframe = ""
	TimeframeDaily   Timeframe = "daily"
	TimeframeWeekly  Timeframe = "weekly"
	TimeframeMonthly Timeframe = "monthly"
)

// Trend is a labeled, human-readable insight. It must never carry raw
// customer text.
type Trend struct {
	Label          string
	Recommendation string
}

// Recommendation is a deduplicated actionable suggestion. Within one
// synthesis output no two recommendations share an advice string.
type Recommendation struct {
	Advice  string
	Topics  []string
	Actions []string
}

// AIInsights carries the summarizer-provided portion of a report.
type AIInsights struct {
	Source          string
	Recommendations []Recommendation
}

// Stats aggregates corpus-level numbers for a report.
type Stats struct {
	TotalFeedback int
	AvgSentiment  float64
}

// CategoryBreakdown is the category/parameter view of one feedback window.
// Scores are keyed category -> parameter, clamped to [0,10] with one decimal.
type CategoryBreakdown struct {
	Counts       map[Category]int
	AvgSentiment map[Category]float64
	Scores       map[Category]map[Parameter]float64
}

// Meta describes how and for which scope a report was produced.
type Meta struct {
	GeneratedBy   GeneratedBy
	Timeframe     Timeframe
	SchemaVersion string
}

// Report is a point-in-time analytical snapshot for a business. Reports are
// immutable once persisted; duplicates for the same business are acceptable.
type Report struct {
	ID          string
	BusinessID  string
	GeneratedAt time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Summary     string
	Trends      []Trend
	AIInsights  *AIInsights
	Stats       Stats
	Categories  CategoryBreakdown
	Meta        Meta
}
