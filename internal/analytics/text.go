package analytics

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// CleanText strips embedded HTML markup from feedback text. Submissions
// arrive through web forms and occasionally carry pasted markup; analysis
// only ever sees the visible text.
func CleanText(text string) string {
	if !strings.ContainsRune(text, '<') {
		return text
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	cleaned := strings.TrimSpace(doc.Text())
	if cleaned == "" {
		return text
	}
	return cleaned
}

// Tokenize splits text into lowercase alphanumeric runs.
func Tokenize(text string) []string {
	text = strings.ToLower(CleanText(text))
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// containsAny reports whether the lowercased text contains any of the
// phrases. Phrases may include spaces, so this is a substring match rather
// than a token match.
func containsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
