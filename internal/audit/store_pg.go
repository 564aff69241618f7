package audit

import (
	"context"
	"database/sql"
)

// PGStore persists query records in Postgres.
type PGStore struct {
	DB *sql.DB
}

// Add inserts a record.
func (s *PGStore) Add(ctx context.Context, rec Record) error {
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO query_log (id, query, created_at) VALUES ($1, $2, $3)`,
		rec.ID, rec.Query, rec.CreatedAt,
	)
	return err
}

// Recent returns up to limit records, newest first.
func (s *PGStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, query, created_at FROM query_log ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
