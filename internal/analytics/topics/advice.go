package topics

import (
	"strings"

	"FeedbackInsights/internal/analytics"
	"FeedbackInsights/internal/domain"
)

const (
	triageSize      = 5
	triageSentiment = -1.0
)

// clusterAdvice picks the advice line for a topic: the ordered keyword rule
// table over the joined top terms first, then sentiment/size fallbacks,
// then the generic default.
func clusterAdvice(topic domain.Topic) string {
	termText := strings.Join(topic.TopTerms, " ")
	if advice, matched := analytics.MatchAdvice(termText); matched {
		return advice
	}
	if topic.Size >= triageSize && topic.AvgSentiment <= triageSentiment {
		return "A sizable group of customers is unhappy about this theme; triage it with the team this week."
	}
	if topic.AvgSentiment > 1 {
		return "Customers respond well to this theme; keep doing what works and mention it in marketing."
	}
	return analytics.GenericAdvice
}
