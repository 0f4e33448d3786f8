package analytics

import (
	"math"

	"FeedbackInsights/internal/domain"
)

// complaintKeywords and suggestionKeywords drive the rule-based
// classification. Order does not matter here: the first rule that matches a
// category wins at the rule level, not the keyword level.
var complaintKeywords = []string{
	"bad", "terrible", "awful", "not happy", "disappointed",
	"worst", "complain", "rude", "slow", "never",
}

var suggestionKeywords = []string{
	"suggest", "could", "should", "recommend", "wish",
	"would be nice", "maybe", "consider",
}

// parameterKeywords select the subset of a category's items that speak to a
// scoring dimension.
var parameterKeywords = map[domain.Parameter][]string{
	domain.ParameterQuality: {
		"quality", "fresh", "stale", "clean", "dirty", "experience",
		"atmosphere", "ambience", "place",
	},
	domain.ParameterFood: {
		"food", "meal", "dish", "taste", "flavor", "portion", "menu",
		"drink", "coffee", "pizza", "burger", "dessert",
	},
	domain.ParameterService: {
		"service", "staff", "waiter", "waitress", "server", "wait",
		"order", "friendly", "rude", "slow", "delivery",
	},
}

const complaintRatingCeiling = 2

// Categorize classifies one feedback item into exactly one category:
// a low rating wins, then complaint keywords, then suggestion keywords,
// then the feedback default.
func Categorize(item domain.FeedbackItem) domain.Category {
	if item.Rating != nil && *item.Rating <= complaintRatingCeiling {
		return domain.CategoryComplaint
	}
	text := CleanText(item.Text)
	if containsAny(text, complaintKeywords) {
		return domain.CategoryComplaint
	}
	if containsAny(text, suggestionKeywords) {
		return domain.CategorySuggestion
	}
	return domain.CategoryFeedback
}

// BreakdownCategories builds the per-category counts, sentiment averages and
// the category x parameter score matrix for a feedback window.
func BreakdownCategories(items []domain.FeedbackItem) domain.CategoryBreakdown {
	buckets := make(map[domain.Category][]domain.FeedbackItem)
	for _, item := range items {
		cat := Categorize(item)
		buckets[cat] = append(buckets[cat], item)
	}

	breakdown := domain.CategoryBreakdown{
		Counts:       make(map[domain.Category]int),
		AvgSentiment: make(map[domain.Category]float64),
		Scores:       make(map[domain.Category]map[domain.Parameter]float64),
	}

	for _, cat := range domain.Categories {
		members := buckets[cat]
		breakdown.Counts[cat] = len(members)

		catAvg := averageItemSentiment(members)
		breakdown.AvgSentiment[cat] = catAvg

		scores := make(map[domain.Parameter]float64, len(domain.Parameters))
		for _, param := range domain.Parameters {
			subset := filterByKeywords(members, parameterKeywords[param])
			avg := catAvg
			if len(subset) > 0 {
				avg = averageItemSentiment(subset)
			}
			scores[param] = ParameterScore(avg)
		}
		breakdown.Scores[cat] = scores
	}

	return breakdown
}

// ParameterScore maps an average sentiment onto the [0,10] scale: clamp to
// [-5,5], shift by +5, round to one decimal.
func ParameterScore(avgSentiment float64) float64 {
	clamped := math.Max(-5, math.Min(5, avgSentiment))
	return Round1(clamped + 5)
}

// Round1 rounds to one decimal digit.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func averageItemSentiment(items []domain.FeedbackItem) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0
	for _, item := range items {
		sum += Sentiment(item.Text)
	}
	return float64(sum) / float64(len(items))
}

func filterByKeywords(items []domain.FeedbackItem, keywords []string) []domain.FeedbackItem {
	var out []domain.FeedbackItem
	for _, item := range items {
		if containsAny(CleanText(item.Text), keywords) {
			out = append(out, item)
		}
	}
	return out
}
