package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"FeedbackInsights/internal/analytics"
	"FeedbackInsights/internal/analytics/topics"
	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/ports"
	"FeedbackInsights/internal/synthesis"
)

const (
	// analyzeItemCap bounds the window for the analysis report.
	analyzeItemCap = 500
	// corpusKeywordCount is how many keywords are extracted from the
	// joined corpus before synthesis trims them further.
	corpusKeywordCount = 12
)

// ReportServiceDeps wires the driven adapters into the report use case.
type ReportServiceDeps struct {
	Feedback    ports.FeedbackStore
	Reports     ports.ReportStore
	Businesses  ports.BusinessDirectory
	Synthesizer *synthesis.Synthesizer
	Clusterer   *topics.Clusterer
	Logger      *slog.Logger
}

// ReportService turns a window of raw feedback into a persisted insight
// report. Each run works on its own fetched snapshot; no state is shared
// across concurrent runs.
type ReportService struct {
	feedback    ports.FeedbackStore
	reports     ports.ReportStore
	businesses  ports.BusinessDirectory
	synthesizer *synthesis.Synthesizer
	clusterer   *topics.Clusterer
	logger      *slog.Logger
	now         func() time.Time
}

// NewReportService constructs the report use case.
func NewReportService(deps ReportServiceDeps) *ReportService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clusterer := deps.Clusterer
	if clusterer == nil {
		clusterer = topics.NewClusterer(logger.With("component", "clusterer"))
	}
	return &ReportService{
		feedback:    deps.Feedback,
		reports:     deps.Reports,
		businesses:  deps.Businesses,
		synthesizer: deps.Synthesizer,
		clusterer:   clusterer,
		logger:      logger,
		now:         time.Now,
	}
}

// Analyze generates and persists a report for one business. It returns
// domain.ErrBusinessNotFound for unknown businesses, domain.ErrNoFeedback
// when the window is empty (no report persisted), and a
// *domain.PersistenceError when the report store rejects the write.
func (s *ReportService) Analyze(ctx context.Context, businessID string, timeframe domain.Timeframe) (*domain.Report, error) {
	if err := s.checkBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	since, err := windowStart(s.now(), timeframe)
	if err != nil {
		return nil, err
	}

	items, err := s.feedback.Fetch(ctx, businessID, ports.FetchOptions{Since: since, Limit: analyzeItemCap})
	if err != nil {
		return nil, fmt.Errorf("fetch feedback: %w", err)
	}

	texts := make([]string, 0, len(items))
	for _, item := range items {
		if t := strings.TrimSpace(item.Text); t != "" {
			texts = append(texts, t)
		}
	}
	avgSentiment, ok := analytics.AverageSentiment(texts)
	if len(items) == 0 || !ok {
		return nil, domain.ErrNoFeedback
	}

	stats := domain.Stats{TotalFeedback: len(items), AvgSentiment: avgSentiment}
	keywords := analytics.ExtractKeywords(strings.Join(texts, "\n"), corpusKeywordCount)
	breakdown := analytics.BreakdownCategories(items)

	result, err := s.synthesizer.Synthesize(ctx, synthesis.Input{
		Items:      items,
		Keywords:   keywords,
		Stats:      stats,
		Categories: breakdown,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}

	report := s.assemble(businessID, timeframe, items, stats, result)
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, &domain.PersistenceError{BusinessID: businessID, Err: err}
	}

	s.logger.Info("report generated",
		"business", businessID,
		"items", stats.TotalFeedback,
		"generatedBy", report.Meta.GeneratedBy)
	return report, nil
}

// ExploreTopics clusters the most recent feedback into labeled topics.
// Topics are served directly and never persisted.
func (s *ReportService) ExploreTopics(ctx context.Context, businessID string) ([]domain.Topic, error) {
	if err := s.checkBusiness(ctx, businessID); err != nil {
		return nil, err
	}

	items, err := s.feedback.Fetch(ctx, businessID, ports.FetchOptions{Limit: topics.MaxDocuments})
	if err != nil {
		return nil, fmt.Errorf("fetch feedback: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrNoFeedback
	}

	return s.clusterer.Cluster(items), nil
}

// LatestReport returns the most recent persisted report for a business.
func (s *ReportService) LatestReport(ctx context.Context, businessID string) (*domain.Report, error) {
	if err := s.checkBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.reports.Latest(ctx, businessID)
}

// FeedbackStats exposes raw volume statistics for a business.
func (s *ReportService) FeedbackStats(ctx context.Context, businessID string) (domain.FeedbackStats, error) {
	if err := s.checkBusiness(ctx, businessID); err != nil {
		return domain.FeedbackStats{}, err
	}
	return s.feedback.Stats(ctx, businessID)
}

func (s *ReportService) checkBusiness(ctx context.Context, businessID string) error {
	if businessID == "" {
		return domain.ErrBusinessNotFound
	}
	if s.businesses == nil {
		return nil
	}
	exists, err := s.businesses.Exists(ctx, businessID)
	if err != nil {
		return fmt.Errorf("lookup business: %w", err)
	}
	if !exists {
		return domain.ErrBusinessNotFound
	}
	return nil
}

// assemble builds the immutable report snapshot. Items arrive newest-first,
// so the period bounds come from the window's edges.
func (s *ReportService) assemble(businessID string, timeframe domain.Timeframe, items []domain.FeedbackItem, stats domain.Stats, result synthesis.Result) *domain.Report {
	return &domain.Report{
		ID:          uuid.NewString(),
		BusinessID:  businessID,
		GeneratedAt: s.now(),
		PeriodStart: items[len(items)-1].CreatedAt,
		PeriodEnd:   items[0].CreatedAt,
		Summary:     result.Summary,
		Trends:      result.Trends,
		AIInsights:  result.AIInsights,
		Stats:       stats,
		Categories:  result.Categories,
		Meta: domain.Meta{
			GeneratedBy:   result.GeneratedBy,
			Timeframe:     timeframe,
			SchemaVersion: domain.SchemaVersion,
		},
	}
}

// windowStart resolves a timeframe to the lower bound of the feedback
// window: start of day, of the ISO week, or of the calendar month. The zero
// timeframe means no lower bound.
func windowStart(now time.Time, timeframe domain.Timeframe) (time.Time, error) {
	switch timeframe {
	case domain.TimeframeAll:
		return time.Time{}, nil
	case domain.TimeframeDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	case domain.TimeframeWeekly:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // ISO weeks start on Monday
		}
		return day.AddDate(0, 0, -(weekday - 1)), nil
	case domain.TimeframeMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("unknown timeframe %q", timeframe)
	}
}
