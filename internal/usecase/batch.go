package usecase

import (
	"context"
	"errors"
	"log/slog"

	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/ports"
)

// BatchFailure records one business the batch could not process.
type BatchFailure struct {
	BusinessID string
	Err        error
}

// BatchResult accumulates the outcome of one scheduled run.
type BatchResult struct {
	Generated []string
	Skipped   []string
	Failures  []BatchFailure
}

// Batch runs scheduled report generation for every business flagged for
// automated analysis.
type Batch struct {
	reports    *ReportService
	businesses ports.BusinessDirectory
	timeframe  domain.Timeframe
	logger     *slog.Logger
}

// NewBatch wires the batch job; the logger may be nil.
func NewBatch(reports *ReportService, businesses ports.BusinessDirectory, timeframe domain.Timeframe, logger *slog.Logger) *Batch {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batch{reports: reports, businesses: businesses, timeframe: timeframe, logger: logger}
}

// Run iterates eligible businesses sequentially, bounding load on the
// external summarizer. Each business has its own error boundary: an empty
// window is a skip, any other failure is logged and recorded, and neither
// stops the rest of the batch.
func (b *Batch) Run(ctx context.Context) BatchResult {
	var result BatchResult

	ids, err := b.businesses.ListAutoAnalyze(ctx)
	if err != nil {
		b.logger.Error("cannot list businesses for batch analysis", "error", err)
		result.Failures = append(result.Failures, BatchFailure{Err: err})
		return result
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			result.Failures = append(result.Failures, BatchFailure{BusinessID: id, Err: ctx.Err()})
			break
		}

		_, err := b.reports.Analyze(ctx, id, b.timeframe)
		switch {
		case err == nil:
			result.Generated = append(result.Generated, id)
		case errors.Is(err, domain.ErrNoFeedback):
			result.Skipped = append(result.Skipped, id)
		default:
			b.logger.Error("batch analysis failed for business", "business", id, "error", err)
			result.Failures = append(result.Failures, BatchFailure{BusinessID: id, Err: err})
		}
	}

	b.logger.Info("batch analysis finished",
		"generated", len(result.Generated),
		"skipped", len(result.Skipped),
		"failed", len(result.Failures))
	return result
}
