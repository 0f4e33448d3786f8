package domain

import "time"

// Category buckets every feedback item into exactly one slot.
type Category string

const (
	CategoryComplaint  Category = "complaint"
	CategoryFeedback   Category = "feedback"
	CategorySuggestion Category = "suggestion"
)

// Categories lists the buckets in their canonical report order.
var Categories = []Category{CategoryComplaint, CategoryFeedback, CategorySuggestion}

// Parameter is one of the fixed scoring dimensions inside a category.
type Parameter string

const (
	ParameterQuality Parameter = "quality"
	ParameterFood    Parameter = "food"
	ParameterService Parameter = "service"
)

// Parameters lists the scoring dimensions in their canonical report order.
var Parameters = []Parameter{ParameterQuality, ParameterFood, ParameterService}

// FeedbackItem is one customer submission tied to a business. It is owned by
// the ingestion side and read-only input here: the engine never mutates it.
type FeedbackItem struct {
	ID         string
	BusinessID string
	Text       string
	Rating     *int // 1..5 when the customer left one
	CreatedAt  time.Time
}

// FeedbackStats summarizes a business's raw feedback volume.
type FeedbackStats struct {
	Total         int
	Rated         int
	AverageRating float64
	ByRating      map[int]int
}
