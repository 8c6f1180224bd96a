package repository

import (
	"context"

	"github.com/adaai/leadcapture/internal/entity"
)

// DefaultListLimit caps how many rows a snapshot read may return.
const DefaultListLimit = 100

// LeadsRepository describes persistence operations for captured leads. Two
// interchangeable implementations exist: an embedded SQLite file for local
// single-process use and PostgreSQL for deployments with multiple stateless
// instances. Callers depend only on this contract.
type LeadsRepository interface {
	// EnsureSchema creates the leads table if absent. Idempotent.
	EnsureSchema(ctx context.Context) error
	// Insert atomically persists a validated lead and returns the
	// store-generated identifier. The store assigns created_at itself.
	Insert(ctx context.Context, lead entity.Lead) (int64, error)
	// List returns the most recent leads, ids descending, truncated to
	// limit (clamped to DefaultListLimit).
	List(ctx context.Context, limit int) ([]entity.Lead, error)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > DefaultListLimit {
		return DefaultListLimit
	}
	return limit
}
