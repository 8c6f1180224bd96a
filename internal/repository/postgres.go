package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adaai/leadcapture/internal/entity"
)

// pgxPool is the subset of pgxpool.Pool the repository needs, kept narrow so
// tests can substitute stubs.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXLeadsRepository implements LeadsRepository on PostgreSQL using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed leads repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

const pgLeadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    company TEXT NOT NULL,
    service TEXT NOT NULL,
    details TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema creates the leads table if absent. Safe to call repeatedly.
func (r *PGXLeadsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, pgLeadsSchema); err != nil {
		return fmt.Errorf("ensure leads schema: %w", err)
	}
	return nil
}

// Insert persists one lead row and returns the generated id. The database
// assigns created_at via the column default.
func (r *PGXLeadsRepository) Insert(ctx context.Context, lead entity.Lead) (int64, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO leads (name, email, phone, company, service, details)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Service, lead.Details)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return id, nil
}

// List retrieves the newest leads first, ids descending.
func (r *PGXLeadsRepository) List(ctx context.Context, limit int) ([]entity.Lead, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, name, email, phone, company, service, details, created_at
        FROM leads
        ORDER BY id DESC
        LIMIT $1
    `, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var l entity.Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Service, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}
