package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"obras/internal/sheets"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "obras.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEnsureTabAndRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	header := []string{"id", "name", "initial_budget", "start_date"}
	if err := s.EnsureTab(ctx, "Obras_Info", header); err != nil {
		t.Fatalf("ensure tab: %v", err)
	}
	// Idempotent: a second call must not duplicate the header.
	if err := s.EnsureTab(ctx, "Obras_Info", header); err != nil {
		t.Fatalf("ensure tab again: %v", err)
	}

	if err := s.AppendRow(ctx, "Obras_Info", []string{"001", "Casa Alpha", "50000.00", "2024-01-10"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	values, err := s.ReadValues(ctx, "Obras_Info")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("got %d rows, want 2 (header + data)", len(values))
	}
	if values[0][0] != "id" || values[1][1] != "Casa Alpha" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestOverwriteRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.EnsureTab(ctx, "Despesas_Semanas", []string{"project_id", "week_number", "reference_date", "amount"}); err != nil {
		t.Fatalf("ensure tab: %v", err)
	}
	if err := s.AppendRow(ctx, "Despesas_Semanas", []string{"001", "1", "2024-01-15", "10.00"}); err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := s.OverwriteRow(ctx, "Despesas_Semanas", 2, []string{"001", "1", "2024-01-16", "12.00"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	values, _ := s.ReadValues(ctx, "Despesas_Semanas")
	if values[1][3] != "12.00" {
		t.Fatalf("row not overwritten: %v", values[1])
	}

	if err := s.OverwriteRow(ctx, "Despesas_Semanas", 9, []string{"x"}); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestMissingTab(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.ReadValues(ctx, "Nope"); !errors.Is(err, sheets.ErrWorksheetNotFound) {
		t.Fatalf("read: got %v, want ErrWorksheetNotFound", err)
	}
	if err := s.AppendRow(ctx, "Nope", []string{"x"}); !errors.Is(err, sheets.ErrWorksheetNotFound) {
		t.Fatalf("append: got %v, want ErrWorksheetNotFound", err)
	}
}
