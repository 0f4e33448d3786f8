package analytics

// lexicon maps tokens to signed weights, AFINN style. The subset below is
// tuned to hospitality feedback vocabulary; unknown tokens score zero.
var lexicon = map[string]int{
	"amazing":       4,
	"awesome":       4,
	"excellent":     3,
	"fantastic":     4,
	"perfect":       3,
	"wonderful":     4,
	"delicious":     3,
	"love":          3,
	"loved":         3,
	"best":          3,
	"great":         3,
	"fresh":         2,
	"tasty":         2,
	"friendly":      2,
	"helpful":       2,
	"clean":         2,
	"fast":          1,
	"quick":         1,
	"good":          3,
	"nice":          3,
	"happy":         3,
	"enjoyed":       2,
	"recommend":     2,
	"polite":        2,
	"welcoming":     2,
	"cozy":          2,
	"fair":          2,
	"worth":         2,
	"bad":           -3,
	"poor":          -2,
	"terrible":      -3,
	"awful":         -3,
	"horrible":      -3,
	"worst":         -3,
	"disgusting":    -3,
	"disappointed":  -2,
	"disappointing": -2,
	"unhappy":       -2,
	"hate":          -3,
	"hated":         -3,
	"rude":          -2,
	"slow":          -2,
	"dirty":         -2,
	"filthy":        -3,
	"cold":          -1,
	"bland":         -2,
	"stale":         -2,
	"soggy":         -2,
	"expensive":     -1,
	"overpriced":    -2,
	"noisy":         -1,
	"crowded":       -1,
	"mediocre":      -1,
	"wrong":         -2,
	"broken":        -1,
	"waste":         -1,
	"complain":      -2,
	"refund":        -2,
}

// negators flip the sign of the next scored token.
var negators = map[string]bool{
	"not":   true,
	"never": true,
	"no":    true,
}

// Sentiment scores a text by summing lexicon weights of its tokens. A
// negator flips the weight of the following scored token. Scores are
// unbounded but small for short texts.
func Sentiment(text string) int {
	score := 0
	negated := false
	for _, tok := range Tokenize(text) {
		if negators[tok] {
			negated = true
			continue
		}
		w, ok := lexicon[tok]
		if !ok {
			continue
		}
		if negated {
			w = -w
			negated = false
		}
		score += w
	}
	return score
}

// AverageSentiment returns the arithmetic mean sentiment over all non-empty
// texts. The second result is false when no text contributed, so callers
// can treat the window as "no data" instead of reporting NaN.
func AverageSentiment(texts []string) (float64, bool) {
	sum, n := 0, 0
	for _, t := range texts {
		if t == "" {
			continue
		}
		sum += Sentiment(t)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return float64(sum) / float64(n), true
}
