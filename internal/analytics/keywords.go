package analytics

import "sort"

// stopwords are dropped before frequency counting.
var stopwords = map[string]bool{
	"the": true, "and": true, "is": true, "in": true, "at": true,
	"of": true, "a": true, "an": true, "to": true, "for": true,
	"with": true, "on": true, "it": true, "this": true, "that": true,
	"was": true, "are": true, "as": true, "but": true, "be": true,
	"by": true, "from": true, "or": true, "we": true, "they": true,
	"you": true, "had": true, "have": true, "has": true, "my": true,
	"our": true, "their": true, "there": true, "were": true, "very": true,
}

const minKeywordLen = 3

// ExtractKeywords returns up to topN tokens of the text ordered by
// descending frequency, stopwords and tokens shorter than three characters
// removed. Ties are broken by first occurrence, so the result is stable.
func ExtractKeywords(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}

	freq := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, tok := range Tokenize(text) {
		if stopwords[tok] || len(tok) < minKeywordLen {
			continue
		}
		if _, ok := freq[tok]; !ok {
			firstSeen[tok] = i
		}
		freq[tok]++
	}

	tokens := make([]string, 0, len(freq))
	for tok := range freq {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		a, b := tokens[i], tokens[j]
		if freq[a] != freq[b] {
			return freq[a] > freq[b]
		}
		return firstSeen[a] < firstSeen[b]
	})

	if len(tokens) > topN {
		tokens = tokens[:topN]
	}
	return tokens
}
