package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/adaai/leadcapture/internal/entity"
)

// SQLiteLeadsRepository implements LeadsRepository on an embedded SQLite
// database. Durable across restarts; intended for single-process access.
type SQLiteLeadsRepository struct {
	db *sql.DB
}

// NewSQLiteLeadsRepository wraps an open SQLite handle.
func NewSQLiteLeadsRepository(db *sql.DB) *SQLiteLeadsRepository {
	return &SQLiteLeadsRepository{db: db}
}

const sqliteLeadsSchema = `
CREATE TABLE IF NOT EXISTS leads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    phone TEXT NOT NULL,
    company TEXT NOT NULL,
    service TEXT NOT NULL,
    details TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
)`

// EnsureSchema creates the leads table if absent. Safe to call repeatedly.
func (r *SQLiteLeadsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, sqliteLeadsSchema); err != nil {
		return fmt.Errorf("ensure leads schema: %w", err)
	}
	return nil
}

// Insert persists one lead row and returns the generated id. The store writes
// created_at itself so callers can never supply a timestamp.
func (r *SQLiteLeadsRepository) Insert(ctx context.Context, lead entity.Lead) (int64, error) {
	createdAt := time.Now().UTC().Format(time.RFC3339)
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO leads (name, email, phone, company, service, details, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `, lead.Name, lead.Email, lead.Phone, lead.Company, lead.Service, lead.Details, createdAt)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("lead insert id: %w", err)
	}
	return id, nil
}

// List retrieves the newest leads first, ids descending.
func (r *SQLiteLeadsRepository) List(ctx context.Context, limit int) ([]entity.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, email, phone, company, service, details, created_at
        FROM leads
        ORDER BY id DESC
        LIMIT ?
    `, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []entity.Lead
	for rows.Next() {
		var (
			l         entity.Lead
			createdAt string
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.Service, &l.Details, &createdAt); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		ts, err := parseSQLiteTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		l.CreatedAt = ts
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

// parseSQLiteTime accepts the store's RFC3339 writes plus the bare
// datetime('now') format used by the column default.
func parseSQLiteTime(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
