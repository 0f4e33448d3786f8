package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/ports"
)

// PostgresReportStore persists generated reports. Reports are append-only:
// there is no update path.
type PostgresReportStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.ReportStore = (*PostgresReportStore)(nil)

// NewPostgresReportStore wires a sql.DB implementation.
func NewPostgresReportStore(db *sql.DB) *PostgresReportStore {
	return &PostgresReportStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// reportRow is the persisted JSON shape of the structured report columns.
type reportRow struct {
	Trends     []domain.Trend           `json:"trends"`
	AIInsights *domain.AIInsights       `json:"aiInsights,omitempty"`
	Stats      domain.Stats             `json:"stats"`
	Categories domain.CategoryBreakdown `json:"categories"`
	Meta       domain.Meta              `json:"meta"`
}

// Create inserts a new report snapshot.
func (s *PostgresReportStore) Create(ctx context.Context, report *domain.Report) error {
	if s.db == nil {
		return nil
	}

	payload, err := json.Marshal(reportRow{
		Trends:     report.Trends,
		AIInsights: report.AIInsights,
		Stats:      report.Stats,
		Categories: report.Categories,
		Meta:       report.Meta,
	})
	if err != nil {
		return fmt.Errorf("marshal report payload: %w", err)
	}

	labels := make([]string, 0, len(report.Trends))
	for _, t := range report.Trends {
		labels = append(labels, t.Label)
	}

	query, args, err := s.builder.
		Insert("reports").
		Columns("id", "business_id", "generated_at", "period_start", "period_end",
			"summary", "trend_labels", "generated_by", "payload").
		Values(report.ID, report.BusinessID, report.GeneratedAt, report.PeriodStart,
			report.PeriodEnd, report.Summary, pq.StringArray(labels),
			string(report.Meta.GeneratedBy), payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("build report insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Latest returns the most recent report for a business, or nil when none
// exists.
func (s *PostgresReportStore) Latest(ctx context.Context, businessID string) (*domain.Report, error) {
	if s.db == nil {
		return nil, nil
	}

	query, args, err := s.builder.
		Select("id", "business_id", "generated_at", "period_start", "period_end",
			"summary", "payload").
		From("reports").
		Where(sq.Eq{"business_id": businessID}).
		OrderBy("generated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build latest query: %w", err)
	}

	var report domain.Report
	var payload []byte
	row := s.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&report.ID, &report.BusinessID, &report.GeneratedAt,
		&report.PeriodStart, &report.PeriodEnd, &report.Summary, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan latest report: %w", err)
	}

	var rowData reportRow
	if err := json.Unmarshal(payload, &rowData); err != nil {
		return nil, fmt.Errorf("unmarshal report payload: %w", err)
	}
	report.Trends = rowData.Trends
	report.AIInsights = rowData.AIInsights
	report.Stats = rowData.Stats
	report.Categories = rowData.Categories
	report.Meta = rowData.Meta

	return &report, nil
}
