package analytics

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractKeywordsOrdering(t *testing.T) {
	t.Parallel()

	text := "pizza pizza pizza service service coffee"
	got := ExtractKeywords(text, 10)
	want := []string{"pizza", "service", "coffee"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestExtractKeywordsTieBreakByFirstOccurrence(t *testing.T) {
	t.Parallel()

	text := "burger salad burger salad dessert"
	got := ExtractKeywords(text, 3)
	want := []string{"burger", "salad", "dessert"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected stable tie-break %v, got %v", want, got)
	}
}

func TestExtractKeywordsFilters(t *testing.T) {
	t.Parallel()

	text := "the and is to ok it pizza was great"
	got := ExtractKeywords(text, 10)

	if len(got) > 10 {
		t.Fatalf("expected at most topN tokens, got %d", len(got))
	}
	for _, kw := range got {
		if stopwords[kw] {
			t.Fatalf("stopword %q leaked into keywords", kw)
		}
		if len(kw) < minKeywordLen {
			t.Fatalf("short token %q leaked into keywords", kw)
		}
	}
}

func TestExtractKeywordsRespectsTopN(t *testing.T) {
	t.Parallel()

	text := strings.Repeat("alpha beta gamma delta epsilon ", 3)
	got := ExtractKeywords(text, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(got))
	}
}

func TestCleanTextStripsMarkup(t *testing.T) {
	t.Parallel()

	got := CleanText("<p>great <b>food</b></p>")
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("markup survived cleaning: %q", got)
	}
	if !strings.Contains(got, "great") || !strings.Contains(got, "food") {
		t.Fatalf("visible text lost during cleaning: %q", got)
	}

	plain := "no markup here"
	if CleanText(plain) != plain {
		t.Fatalf("plain text must pass through unchanged")
	}
}
