package synthesis

import (
	"fmt"
	"strings"

	"FeedbackInsights/internal/analytics"
	"FeedbackInsights/internal/domain"
)

// localKeywordBudget is how many extracted keywords feed the rule table.
const localKeywordBudget = 6

// Localize produces summary, trends and recommendations from the heuristic
// rule table alone. It is the safety net: always available, no external
// calls.
func Localize(keywords []string, stats domain.Stats) (string, []domain.Trend, []domain.Recommendation) {
	if len(keywords) > localKeywordBudget {
		keywords = keywords[:localKeywordBudget]
	}

	var recs []domain.Recommendation
	for _, kw := range keywords {
		advice, _ := analytics.MatchAdvice(kw)
		recs = MergeRecommendations(recs, domain.Recommendation{
			Advice: advice,
			Topics: []string{kw},
		})
	}
	if len(recs) == 0 {
		recs = append(recs, domain.Recommendation{Advice: analytics.GenericAdvice})
	}

	trends := make([]domain.Trend, 0, len(recs))
	for _, rec := range recs {
		label := strings.Join(rec.Topics, ", ")
		if label == "" {
			label = "overall"
		}
		trends = append(trends, domain.Trend{Label: label, Recommendation: rec.Advice})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyzed %d feedback items (average sentiment %.1f).\n",
		stats.TotalFeedback, stats.AvgSentiment)
	for i, rec := range recs {
		fmt.Fprintf(&b, "%d. %s", i+1, rec.Advice)
		if len(rec.Topics) > 0 {
			fmt.Fprintf(&b, " (topics: %s)", strings.Join(rec.Topics, ", "))
		}
		b.WriteByte('\n')
	}

	return strings.TrimRight(b.String(), "\n"), trends, recs
}
