package topics

import (
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"FeedbackInsights/internal/analytics"
	"FeedbackInsights/internal/domain"
)

const (
	// MaxDocuments bounds the corpus fed into clustering.
	MaxDocuments = 1000

	minClusters    = 2
	maxClusters    = 6
	topTermCount   = 8
	maxExamples    = 3
	labelTermCount = 3
)

// Clusterer groups feedback items into labeled topic clusters.
type Clusterer struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewClusterer builds a clusterer; the logger may be nil.
func NewClusterer(logger *slog.Logger) *Clusterer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clusterer{logger: logger, now: time.Now}
}

// Cluster vectorizes up to MaxDocuments items with TF-IDF over a bounded
// vocabulary and runs k-means with k = clamp(round(sqrt(n)), 2, 6). Any
// clustering failure degrades to a single cluster holding every document;
// topic exploration never aborts.
func (c *Clusterer) Cluster(items []domain.FeedbackItem) []domain.Topic {
	if len(items) == 0 {
		return nil
	}
	if len(items) > MaxDocuments {
		items = items[:MaxDocuments]
	}

	docs := make([][]string, len(items))
	for i, item := range items {
		docs[i] = analytics.Tokenize(item.Text)
	}

	corp := newCorpus(docs)
	vocab := corp.vocabulary()
	vectors := corp.vectorize(vocab)

	k := clusterCount(len(items))
	assign, err := kmeans(vectors, k)
	if err != nil {
		c.logger.Warn("clustering failed, falling back to a single cluster",
			"error", err, "documents", len(items))
		assign = make([]int, len(items))
		k = 1
	}

	topics := make([]domain.Topic, 0, k)
	for ci := 0; ci < k; ci++ {
		var members []int
		for i, a := range assign {
			if a == ci {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			continue
		}
		topics = append(topics, c.buildTopic(len(topics), members, items, corp))
	}
	return topics
}

func (c *Clusterer) buildTopic(id int, members []int, items []domain.FeedbackItem, corp *corpus) domain.Topic {
	terms := topTerms(members, corp)

	texts := make([]string, len(members))
	for i, m := range members {
		texts[i] = items[m].Text
	}
	avg, _ := analytics.AverageSentiment(texts)

	topic := domain.Topic{
		ID:           id,
		Size:         len(members),
		TopTerms:     terms,
		Label:        label(terms),
		AvgSentiment: avg,
		Timeseries:   c.timeseries(members, items),
	}

	for _, m := range members[:min(maxExamples, len(members))] {
		topic.Examples = append(topic.Examples, domain.TopicExample{
			Text:      items[m].Text,
			ID:        items[m].ID,
			CreatedAt: items[m].CreatedAt,
		})
	}

	topic.Advice = clusterAdvice(topic)
	return topic
}

// timeseries counts cluster members per week over the trailing window,
// oldest bucket first. Items older than the window are dropped.
func (c *Clusterer) timeseries(members []int, items []domain.FeedbackItem) []int {
	series := make([]int, domain.TimeseriesWeeks)
	now := c.now()
	const week = 7 * 24 * time.Hour
	for _, m := range members {
		age := now.Sub(items[m].CreatedAt)
		if age < 0 {
			age = 0
		}
		bucket := int(age / week)
		if bucket >= domain.TimeseriesWeeks {
			continue
		}
		series[domain.TimeseriesWeeks-1-bucket]++
	}
	return series
}

// topTerms aggregates TF-IDF weight per term across cluster members and
// returns the heaviest ones.
func topTerms(members []int, corp *corpus) []string {
	weight := make(map[string]float64)
	for _, m := range members {
		for w, v := range corp.tfidf[m] {
			weight[w] += v
		}
	}
	terms := make([]string, 0, len(weight))
	for w := range weight {
		terms = append(terms, w)
	}
	sort.Slice(terms, func(i, j int) bool {
		if weight[terms[i]] != weight[terms[j]] {
			return weight[terms[i]] > weight[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > topTermCount {
		terms = terms[:topTermCount]
	}
	return terms
}

func label(terms []string) string {
	if len(terms) == 0 {
		return "general"
	}
	n := min(labelTermCount, len(terms))
	return strings.Join(terms[:n], " / ")
}

func clusterCount(documents int) int {
	k := int(math.Round(math.Sqrt(float64(documents))))
	if k < minClusters {
		k = minClusters
	}
	if k > maxClusters {
		k = maxClusters
	}
	return k
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
