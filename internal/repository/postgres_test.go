package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubLeadRows struct {
	count  int
	served int
}

func (s *stubLeadRows) Close()                                       {}
func (s *stubLeadRows) Err() error                                   { return nil }
func (s *stubLeadRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (s *stubLeadRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (s *stubLeadRows) Values() ([]any, error)                       { return nil, nil }
func (s *stubLeadRows) RawValues() [][]byte                          { return nil }
func (s *stubLeadRows) Conn() *pgx.Conn                              { return nil }

func (s *stubLeadRows) Next() bool {
	if s.served >= s.count {
		return false
	}
	s.served++
	return true
}

func (s *stubLeadRows) Scan(dest ...any) error {
	if s.served == 0 {
		return errors.New("scan called before next")
	}
	// Rows come back ids descending.
	id := int64(s.count - s.served + 1)
	*dest[0].(*int64) = id
	*dest[1].(*string) = "Jane Doe"
	*dest[2].(*string) = "jane@example.com"
	*dest[3].(*string) = "+1 555-123-4567"
	*dest[4].(*string) = "Acme"
	*dest[5].(*string) = "Consulting"
	*dest[6].(*string) = "Need a audit"
	*dest[7].(*time.Time) = time.Now()
	return nil
}

type stubLeadRow struct {
	id  int64
	err error
}

func (s stubLeadRow) Scan(dest ...any) error {
	if s.err != nil {
		return s.err
	}
	*dest[0].(*int64) = s.id
	return nil
}

type stubLeadPool struct {
	execCount int
	lastSQL   string
	lastArgs  []any
	execErr   error
	queryErr  error
	rows      *stubLeadRows
	row       stubLeadRow
}

func (p *stubLeadPool) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	p.execCount++
	p.lastSQL = sql
	return pgconn.CommandTag{}, p.execErr
}

func (p *stubLeadPool) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	p.lastSQL = sql
	p.lastArgs = args
	if p.queryErr != nil {
		return nil, p.queryErr
	}
	return p.rows, nil
}

func (p *stubLeadPool) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p.lastSQL = sql
	p.lastArgs = args
	return p.row
}

func TestPGXLeadsRepository_EnsureSchemaIdempotent(t *testing.T) {
	pool := &stubLeadPool{}
	repo := &PGXLeadsRepository{pool: pool}

	for i := 0; i < 2; i++ {
		if err := repo.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("ensure schema call %d: %v", i+1, err)
		}
	}
	if pool.execCount != 2 {
		t.Fatalf("expected two exec calls, got %d", pool.execCount)
	}
	if !strings.Contains(pool.lastSQL, "CREATE TABLE IF NOT EXISTS leads") {
		t.Fatalf("expected create-if-absent schema, got %s", pool.lastSQL)
	}
}

func TestPGXLeadsRepository_Insert(t *testing.T) {
	pool := &stubLeadPool{row: stubLeadRow{id: 42}}
	repo := &PGXLeadsRepository{pool: pool}

	id, err := repo.Insert(context.Background(), sampleLead(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if !strings.Contains(pool.lastSQL, "RETURNING id") {
		t.Fatalf("expected insert to return the generated id")
	}
	if len(pool.lastArgs) != 6 {
		t.Fatalf("expected six insert args, got %d", len(pool.lastArgs))
	}
}

func TestPGXLeadsRepository_InsertError(t *testing.T) {
	pool := &stubLeadPool{row: stubLeadRow{err: errors.New("connection reset")}}
	repo := &PGXLeadsRepository{pool: pool}

	if _, err := repo.Insert(context.Background(), sampleLead(1)); err == nil {
		t.Fatalf("expected error to surface")
	}
}

func TestPGXLeadsRepository_List(t *testing.T) {
	pool := &stubLeadPool{rows: &stubLeadRows{count: 3}}
	repo := &PGXLeadsRepository{pool: pool}

	leads, err := repo.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(leads) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(leads))
	}
	if leads[0].ID <= leads[1].ID {
		t.Fatalf("expected ids descending, got %+v", leads)
	}
	if !strings.Contains(pool.lastSQL, "ORDER BY id DESC") {
		t.Fatalf("expected newest-first ordering")
	}
	if len(pool.lastArgs) != 1 || pool.lastArgs[0].(int) != DefaultListLimit {
		t.Fatalf("expected zero limit clamped to %d, got %v", DefaultListLimit, pool.lastArgs)
	}
}

func TestPGXLeadsRepository_ListError(t *testing.T) {
	pool := &stubLeadPool{queryErr: errors.New("connection refused")}
	repo := &PGXLeadsRepository{pool: pool}

	if _, err := repo.List(context.Background(), 10); err == nil {
		t.Fatalf("expected error to surface")
	}
}

func TestClampLimit(t *testing.T) {
	if clampLimit(0) != DefaultListLimit || clampLimit(-5) != DefaultListLimit {
		t.Fatalf("expected non-positive limits clamped")
	}
	if clampLimit(500) != DefaultListLimit {
		t.Fatalf("expected oversized limit clamped")
	}
	if clampLimit(10) != 10 {
		t.Fatalf("expected in-range limit preserved")
	}
}
