package domain

import "time"

// TimeseriesWeeks is the number of weekly buckets reported per topic.
const TimeseriesWeeks = 8

// TopicExample is a short excerpt of the original feedback inside a cluster.
type TopicExample struct {
	Text      string
	ID        string
	CreatedAt time.Time
}

// Topic is one cluster of feedback items sharing similar vocabulary. Topics
// are produced fresh on each clustering call and served directly to the
// caller; they are never persisted as report state.
type Topic struct {
	ID           int
	Size         int
	Label        string
	TopTerms     []string
	AvgSentiment float64
	Examples     []TopicExample // at most 3
	Timeseries   []int          // TimeseriesWeeks buckets, oldest first
	Advice       string
}
