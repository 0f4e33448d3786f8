package synthesis

import (
	"fmt"
	"strings"

	"FeedbackInsights/internal/domain"
)

// maxSampleItems bounds how much raw feedback enters the prompt.
const maxSampleItems = 200

// BuildPrompt renders the instruction block plus a bounded feedback sample.
// The contract demands a single JSON object and forbids echoing raw
// customer text back into the report.
func BuildPrompt(items []domain.FeedbackItem, keywords []string, stats domain.Stats) string {
	var b strings.Builder

	b.WriteString(`Analyze the customer feedback below and respond with exactly one JSON object, no markdown, with this shape:
{
  "summary": "2-4 sentence overview",
  "recommendations": [{"advice": "...", "topics": ["..."], "actions": ["..."]}],
  "trends": [{"label": "...", "recommendation": "..."}],
  "categories": {
    "scores": {"complaint|feedback|suggestion": {"quality|food|service": 0-10}},
    "distribution": {"complaint|feedback|suggestion": count}
  }
}
Never include raw customer text, names, or contact details in any field.
`)

	fmt.Fprintf(&b, "\nContext: %d feedback items, average sentiment %.2f, dominant keywords: %s.\n",
		stats.TotalFeedback, stats.AvgSentiment, strings.Join(keywords, ", "))

	b.WriteString("\nFeedback sample:\n")
	n := len(items)
	if n > maxSampleItems {
		n = maxSampleItems
	}
	for _, item := range items[:n] {
		line := strings.TrimSpace(item.Text)
		if line == "" {
			continue
		}
		if item.Rating != nil {
			fmt.Fprintf(&b, "- [%d/5] %s\n", *item.Rating, line)
		} else {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}

	return b.String()
}
