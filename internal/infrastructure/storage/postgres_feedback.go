package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"FeedbackInsights/internal/domain"
	"FeedbackInsights/internal/ports"
)

// PostgresFeedbackStore reads feedback owned by the ingestion service.
// The engine only ever queries; it never writes feedback.
type PostgresFeedbackStore struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.FeedbackStore = (*PostgresFeedbackStore)(nil)

// NewPostgresFeedbackStore wires a sql.DB implementation.
func NewPostgresFeedbackStore(db *sql.DB) *PostgresFeedbackStore {
	return &PostgresFeedbackStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Fetch returns the business's feedback ordered by recency, optionally
// bounded below by opts.Since and capped at opts.Limit.
func (s *PostgresFeedbackStore) Fetch(ctx context.Context, businessID string, opts ports.FetchOptions) ([]domain.FeedbackItem, error) {
	if s.db == nil {
		return nil, nil
	}

	q := s.builder.
		Select("id", "business_id", "content", "rating", "created_at").
		From("feedback").
		Where(sq.Eq{"business_id": businessID}).
		OrderBy("created_at DESC")
	if !opts.Since.IsZero() {
		q = q.Where(sq.GtOrEq{"created_at": opts.Since})
	}
	if opts.Limit > 0 {
		q = q.Limit(uint64(opts.Limit))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build feedback query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	var items []domain.FeedbackItem
	for rows.Next() {
		var item domain.FeedbackItem
		var rating sql.NullInt64
		if err := rows.Scan(&item.ID, &item.BusinessID, &item.Text, &rating, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int64)
			item.Rating = &r
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feedback rows: %w", err)
	}

	return items, nil
}

// Stats aggregates raw feedback volume and rating distribution.
func (s *PostgresFeedbackStore) Stats(ctx context.Context, businessID string) (domain.FeedbackStats, error) {
	stats := domain.FeedbackStats{ByRating: make(map[int]int)}
	if s.db == nil {
		return stats, nil
	}

	query, args, err := s.builder.
		Select("COUNT(*)", "COUNT(rating)", "COALESCE(AVG(rating), 0)").
		From("feedback").
		Where(sq.Eq{"business_id": businessID}).
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("build stats query: %w", err)
	}
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&stats.Total, &stats.Rated, &stats.AverageRating); err != nil {
		return stats, fmt.Errorf("scan stats: %w", err)
	}

	query, args, err = s.builder.
		Select("rating", "COUNT(*)").
		From("feedback").
		Where(sq.Eq{"business_id": businessID}).
		Where(sq.NotEq{"rating": nil}).
		GroupBy("rating").
		ToSql()
	if err != nil {
		return stats, fmt.Errorf("build rating query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return stats, fmt.Errorf("query rating distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return stats, fmt.Errorf("scan rating row: %w", err)
		}
		stats.ByRating[rating] = count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate rating rows: %w", err)
	}

	return stats, nil
}
