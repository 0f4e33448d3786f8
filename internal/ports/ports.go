package ports

import (
	"context"
	"time"

	"FeedbackInsights/internal/domain"
)

// FetchOptions bounds a feedback window query.
type FetchOptions struct {
	Since time.Time // zero means no lower bound
	Limit int
}

// FeedbackStore reads customer feedback owned by the ingestion side.
// The engine never mutates feedback.
type FeedbackStore interface {
	Fetch(ctx context.Context, businessID string, opts FetchOptions) ([]domain.FeedbackItem, error)
	Stats(ctx context.Context, businessID string) (domain.FeedbackStats, error)
}

// ReportStore persists generated reports. Append-only: reports are never
// updated after creation.
type ReportStore interface {
	Create(ctx context.Context, report *domain.Report) error
	Latest(ctx context.Context, businessID string) (*domain.Report, error)
}

// BusinessDirectory answers existence and batch-eligibility questions about
// businesses without exposing their full records.
type BusinessDirectory interface {
	Exists(ctx context.Context, businessID string) (bool, error)
	ListAutoAnalyze(ctx context.Context) ([]string, error)
}

// SummarizeOptions bounds a single summarizer invocation.
type SummarizeOptions struct {
	MaxTokens int
}

// Summarizer sends a prompt to the external summarization collaborator and
// returns its raw text. It offers no structural guarantee over the output.
type Summarizer interface {
	Summarize(ctx context.Context, prompt string, opts SummarizeOptions) (string, error)
}

// Scheduler controls when the batch job executes.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
