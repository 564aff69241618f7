// Package audit records submitted query text for audit trails. It mirrors
// the lightweight query log the analysis service keeps server-side; the
// conversation transcript itself is never persisted.
package audit

import (
	"context"
	"time"
)

// Record is one logged query.
type Record struct {
	ID        string
	Query     string
	CreatedAt time.Time
}

// Store persists query records.
type Store interface {
	Add(ctx context.Context, rec Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}
