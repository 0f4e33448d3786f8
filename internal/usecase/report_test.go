package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/ports"
	"FeedbackInsights/internal/synthesis"
)

type fakeFeedbackStore struct {
	items    []domain.FeedbackItem
	stats    domain.FeedbackStats
	err      error
	lastOpts ports.FetchOptions
}

func (f *fakeFeedbackStore) Fetch(ctx context.Context, businessID string, opts ports.FetchOptions) ([]domain.FeedbackItem, error) {
	f.lastOpts = opts
	return f.items, f.err
}

func (f *fakeFeedbackStore) Stats(ctx context.Context, businessID string) (domain.FeedbackStats, error) {
	return f.stats, f.err
}

type fakeReportStore struct {
	created   []*domain.Report
	latest    *domain.Report
	createErr error
}

func (f *fakeReportStore) Create(ctx context.Context, report *domain.Report) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, report)
	return nil
}

func (f *fakeReportStore) Latest(ctx context.Context, businessID string) (*domain.Report, error) {
	return f.latest, nil
}

type fakeDirectory struct {
	known map[string]bool
	auto  []string
	err   error
}

func (f *fakeDirectory) Exists(ctx context.Context, businessID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.known[businessID], nil
}

func (f *fakeDirectory) ListAutoAnalyze(ctx context.Context) ([]string, error) {
	return f.auto, f.err
}

func newestFirst(texts []string, ratings []int) []domain.FeedbackItem {
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	items := make([]domain.FeedbackItem, len(texts))
	for i, text := range texts {
		var rating *int
		if ratings != nil {
			r := ratings[i]
			rating = &r
		}
		items[i] = domain.FeedbackItem{
			ID:         "f" + string(rune('a'+i)),
			BusinessID: "b1",
			Text:       text,
			Rating:     rating,
			CreatedAt:  base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return items
}

func newService(feedback *fakeFeedbackStore, reports *fakeReportStore, dir *fakeDirectory) *ReportService {
	return NewReportService(ReportServiceDeps{
		Feedback:    feedback,
		Reports:     reports,
		Businesses:  dir,
		Synthesizer: synthesis.New(nil, nil, synthesis.Options{}),
	})
}

func TestAnalyzeLocalOnly(t *testing.T) {
	t.Parallel()

	feedback := &fakeFeedbackStore{items: newestFirst([]string{
		"The wait was terrible and the staff seemed overwhelmed",
		"Great food, loved the pasta",
		"Service was slow but friendly",
		"Too expensive for what you get",
		"Would suggest adding vegetarian options",
		"Amazing experience overall",
		"The soup was cold when it arrived",
		"Clean place, nice music",
		"My order was wrong twice",
		"Delicious dessert, will come back",
	}, []int{1, 5, 3, 2, 4, 5, 2, 4, 1, 5})}
	reports := &fakeReportStore{}
	dir := &fakeDirectory{known: map[string]bool{"b1": true}}

	svc := newService(feedback, reports, dir)
	report, err := svc.Analyze(context.Background(), "b1", domain.TimeframeAll)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if len(reports.created) != 1 {
		t.Fatalf("expected exactly one persisted report, got %d", len(reports.created))
	}
	if report.Meta.GeneratedBy != domain.GeneratedLocal {
		t.Fatalf("expected local generation, got %s", report.Meta.GeneratedBy)
	}
	if report.Meta.SchemaVersion != domain.SchemaVersion {
		t.Fatalf("wrong schema version %q", report.Meta.SchemaVersion)
	}
	if report.Stats.TotalFeedback != 10 {
		t.Fatalf("expected 10 items counted, got %d", report.Stats.TotalFeedback)
	}
	if report.ID == "" {
		t.Fatalf("report must carry a generated id")
	}
	if !report.PeriodEnd.After(report.PeriodStart) {
		t.Fatalf("period bounds inverted: %v .. %v", report.PeriodStart, report.PeriodEnd)
	}

	for _, cat := range domain.Categories {
		for _, param := range domain.Parameters {
			score := report.Categories.Scores[cat][param]
			if score < 0 || score > 10 {
				t.Fatalf("score %s/%s out of range: %f", cat, param, score)
			}
		}
	}
	if len(report.Trends) == 0 {
		t.Fatalf("expected local trends")
	}
	if feedback.lastOpts.Limit != analyzeItemCap {
		t.Fatalf("fetch must be capped at %d, got %d", analyzeItemCap, feedback.lastOpts.Limit)
	}
}

func TestAnalyzeNoFeedback(t *testing.T) {
	t.Parallel()

	reports := &fakeReportStore{}
	svc := newService(&fakeFeedbackStore{}, reports, &fakeDirectory{known: map[string]bool{"b1": true}})

	_, err := svc.Analyze(context.Background(), "b1", domain.TimeframeAll)
	if !errors.Is(err, domain.ErrNoFeedback) {
		t.Fatalf("expected ErrNoFeedback, got %v", err)
	}
	if len(reports.created) != 0 {
		t.Fatalf("empty window must not persist a report")
	}
}

func TestAnalyzeWhitespaceOnlyFeedback(t *testing.T) {
	t.Parallel()

	feedback := &fakeFeedbackStore{items: newestFirst([]string{"   ", "\n\t"}, nil)}
	svc := newService(feedback, &fakeReportStore{}, &fakeDirectory{known: map[string]bool{"b1": true}})

	_, err := svc.Analyze(context.Background(), "b1", domain.TimeframeAll)
	if !errors.Is(err, domain.ErrNoFeedback) {
		t.Fatalf("expected ErrNoFeedback for blank texts, got %v", err)
	}
}

func TestAnalyzeUnknownBusiness(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeFeedbackStore{}, &fakeReportStore{}, &fakeDirectory{known: map[string]bool{}})

	_, err := svc.Analyze(context.Background(), "ghost", domain.TimeframeAll)
	if !errors.Is(err, domain.ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}

	_, err = svc.Analyze(context.Background(), "", domain.TimeframeAll)
	if !errors.Is(err, domain.ErrBusinessNotFound) {
		t.Fatalf("empty id must behave as unknown, got %v", err)
	}
}

func TestAnalyzePersistFailure(t *testing.T) {
	t.Parallel()

	feedback := &fakeFeedbackStore{items: newestFirst([]string{"good food", "bad service"}, nil)}
	reports := &fakeReportStore{createErr: errors.New("disk full")}
	svc := newService(feedback, reports, &fakeDirectory{known: map[string]bool{"b1": true}})

	_, err := svc.Analyze(context.Background(), "b1", domain.TimeframeAll)
	var persistErr *domain.PersistenceError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected *PersistenceError, got %v", err)
	}
	if persistErr.BusinessID != "b1" {
		t.Fatalf("persistence error must name the business, got %q", persistErr.BusinessID)
	}
}

func TestAnalyzeUnknownTimeframe(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeFeedbackStore{}, &fakeReportStore{}, &fakeDirectory{known: map[string]bool{"b1": true}})
	if _, err := svc.Analyze(context.Background(), "b1", domain.Timeframe("yearly")); err == nil {
		t.Fatalf("expected error for unknown timeframe")
	}
}

func TestWindowStart(t *testing.T) {
	t.Parallel()

	// 2026-08-29 is a Saturday.
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		timeframe domain.Timeframe
		want      time.Time
	}{
		{domain.TimeframeAll, time.Time{}},
		{domain.TimeframeDaily, time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)},
		{domain.TimeframeWeekly, time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
		{domain.TimeframeMonthly, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		got, err := windowStart(now, tc.timeframe)
		if err != nil {
			t.Fatalf("%s: %v", tc.timeframe, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.timeframe, got, tc.want)
		}
	}

	sunday := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	got, err := windowStart(sunday, domain.TimeframeWeekly)
	if err != nil {
		t.Fatalf("weekly on sunday: %v", err)
	}
	if want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Fatalf("sunday must map to the preceding monday, got %v", got)
	}
}

func TestExploreTopics(t *testing.T) {
	t.Parallel()

	feedback := &fakeFeedbackStore{items: newestFirst([]string{
		"pizza crust amazing pizza",
		"pizza toppings fresh pizza great",
		"pizza dough perfect pizza",
		"waiter rude service waiter",
		"waiter slow service waiter bad",
		"waiter forgot order service waiter",
	}, nil)}
	svc := newService(feedback, &fakeReportStore{}, &fakeDirectory{known: map[string]bool{"b1": true}})

	topicList, err := svc.ExploreTopics(context.Background(), "b1")
	if err != nil {
		t.Fatalf("topics failed: %v", err)
	}
	if len(topicList) == 0 {
		t.Fatalf("expected at least one topic")
	}
	total := 0
	for _, topic := range topicList {
		total += topic.Size
		if topic.Label == "" {
			t.Fatalf("topic %d has no label", topic.ID)
		}
	}
	if total != 6 {
		t.Fatalf("topics must partition the corpus, got %d of 6", total)
	}
}

func TestExploreTopicsNoFeedback(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeFeedbackStore{}, &fakeReportStore{}, &fakeDirectory{known: map[string]bool{"b1": true}})
	if _, err := svc.ExploreTopics(context.Background(), "b1"); !errors.Is(err, domain.ErrNoFeedback) {
		t.Fatalf("expected ErrNoFeedback, got %v", err)
	}
}

func TestLatestReport(t *testing.T) {
	t.Parallel()

	stored := &domain.Report{ID: "r1", BusinessID: "b1"}
	svc := newService(&fakeFeedbackStore{}, &fakeReportStore{latest: stored}, &fakeDirectory{known: map[string]bool{"b1": true}})

	got, err := svc.LatestReport(context.Background(), "b1")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if got != stored {
		t.Fatalf("expected the stored report back")
	}
}
