package topics

import (
	"math"
	"sort"
)

const (
	perDocTermCap = 50
	vocabularyCap = 200
)

// corpus holds document-frequency statistics and per-document TF-IDF maps.
type corpus struct {
	docs  [][]string
	idf   map[string]float64
	tfidf []map[string]float64
}

func newCorpus(docs [][]string) *corpus {
	c := &corpus{docs: docs, idf: make(map[string]float64)}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, w := range doc {
			if !seen[w] {
				df[w]++
				seen[w] = true
			}
		}
	}

	n := float64(len(docs))
	for w, f := range df {
		c.idf[w] = math.Log(n/float64(f)) + 1.0
	}

	c.tfidf = make([]map[string]float64, len(docs))
	for i, doc := range docs {
		tf := make(map[string]int)
		for _, w := range doc {
			tf[w]++
		}
		m := make(map[string]float64, len(tf))
		for w, cnt := range tf {
			m[w] = float64(cnt) / float64(len(doc)) * c.idf[w]
		}
		c.tfidf[i] = m
	}

	return c
}

// vocabulary builds the bounded global term list: each document contributes
// its top terms by raw frequency, aggregated counts pick the global cap.
func (c *corpus) vocabulary() []string {
	global := make(map[string]int)
	order := make(map[string]int)
	next := 0

	for _, doc := range c.docs {
		tf := make(map[string]int)
		var terms []string
		for _, w := range doc {
			if tf[w] == 0 {
				terms = append(terms, w)
			}
			tf[w]++
		}
		sort.SliceStable(terms, func(i, j int) bool {
			return tf[terms[i]] > tf[terms[j]]
		})
		if len(terms) > perDocTermCap {
			terms = terms[:perDocTermCap]
		}
		for _, w := range terms {
			if _, ok := global[w]; !ok {
				order[w] = next
				next++
			}
			global[w] += tf[w]
		}
	}

	vocab := make([]string, 0, len(global))
	for w := range global {
		vocab = append(vocab, w)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if global[vocab[i]] != global[vocab[j]] {
			return global[vocab[i]] > global[vocab[j]]
		}
		return order[vocab[i]] < order[vocab[j]]
	})
	if len(vocab) > vocabularyCap {
		vocab = vocab[:vocabularyCap]
	}
	return vocab
}

// vectorize projects every document onto the fixed vocabulary using TF-IDF
// weights.
func (c *corpus) vectorize(vocab []string) [][]float64 {
	vectors := make([][]float64, len(c.docs))
	for i := range c.docs {
		vec := make([]float64, len(vocab))
		for j, w := range vocab {
			vec[j] = c.tfidf[i][w]
		}
		vectors[i] = vec
	}
	return vectors
}
