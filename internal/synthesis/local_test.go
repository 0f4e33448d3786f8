package synthesis

import (
	"strings"
	"testing"

	"FeedbackInsights/internal/domain"
)

func TestLocalizeGroupsByAdvice(t *testing.T) {
	t.Parallel()

	// "wait" and "slow" map to the same advice and must collapse into one
	// recommendation carrying both topics.
	keywords := []string{"wait", "slow", "expensive"}
	summary, trends, recs := Localize(keywords, domain.Stats{TotalFeedback: 10, AvgSentiment: -1.2})

	if len(recs) != 2 {
		t.Fatalf("expected 2 grouped recommendations, got %d", len(recs))
	}
	if len(recs[0].Topics) != 2 {
		t.Fatalf("expected wait+slow grouped, got topics %v", recs[0].Topics)
	}
	if len(trends) != len(recs) {
		t.Fatalf("expected one trend per recommendation, got %d/%d", len(trends), len(recs))
	}
	if !strings.Contains(summary, "1.") || !strings.Contains(summary, "2.") {
		t.Fatalf("expected a numbered summary, got %q", summary)
	}
	if !strings.Contains(summary, "10 feedback items") {
		t.Fatalf("expected the corpus size in the summary, got %q", summary)
	}
}

func TestLocalizeKeywordBudget(t *testing.T) {
	t.Parallel()

	keywords := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel"}
	_, trends, _ := Localize(keywords, domain.Stats{TotalFeedback: 3})

	if len(trends) > localKeywordBudget {
		t.Fatalf("expected at most %d trends, got %d", localKeywordBudget, len(trends))
	}
}

func TestLocalizeEmptyKeywords(t *testing.T) {
	t.Parallel()

	summary, trends, recs := Localize(nil, domain.Stats{TotalFeedback: 1})
	if len(recs) != 1 || len(trends) != 1 {
		t.Fatalf("expected the generic fallback recommendation, got %d recs / %d trends", len(recs), len(trends))
	}
	if summary == "" {
		t.Fatalf("expected a non-empty summary")
	}
}
