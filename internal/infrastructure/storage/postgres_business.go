package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"FeedbackInsights/internal/ports"
)

// PostgresBusinessDirectory answers lookups against the businesses table
// owned by the administration service.
type PostgresBusinessDirectory struct {
	db      *sql.DB
	builder sq.StatementBuilderType
}

var _ ports.BusinessDirectory = (*PostgresBusinessDirectory)(nil)

// NewPostgresBusinessDirectory wires a sql.DB implementation.
func NewPostgresBusinessDirectory(db *sql.DB) *PostgresBusinessDirectory {
	return &PostgresBusinessDirectory{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Exists reports whether the business identifier is known and active.
func (d *PostgresBusinessDirectory) Exists(ctx context.Context, businessID string) (bool, error) {
	if d.db == nil {
		return false, nil
	}

	query, args, err := d.builder.
		Select("1").
		From("businesses").
		Where(sq.Eq{"id": businessID, "is_active": true}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = d.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query business: %w", err)
	}
	return true, nil
}

// ListAutoAnalyze returns active businesses flagged for scheduled analysis.
func (d *PostgresBusinessDirectory) ListAutoAnalyze(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, nil
	}

	query, args, err := d.builder.
		Select("id").
		From("businesses").
		Where(sq.Eq{"is_active": true, "auto_analyze": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query businesses: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan business id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate business rows: %w", err)
	}

	return ids, nil
}
