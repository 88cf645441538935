package memory

import (
	"context"
	"errors"
	"testing"

	"obras/internal/sheets"
)

func newTestStore() *Store {
	return New(map[string][]string{
		"Obras_Info": {"id", "name", "initial_budget", "start_date"},
	})
}

func TestAppendAndRead(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if err := s.AppendRow(ctx, "Obras_Info", []string{"001", "Casa Alpha", "50000.00", "2024-01-10"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	values, err := s.ReadValues(ctx, "Obras_Info")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(values) != 2 || values[1][1] != "Casa Alpha" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestOverwriteRow(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	s.Seed("Obras_Info",
		[]string{"001", "Casa Alpha", "50000.00", "2024-01-10"},
		[]string{"002", "Casa Beta", "10000.00", "2024-02-01"},
	)

	if err := s.OverwriteRow(ctx, "Obras_Info", 2, []string{"001", "Casa Alpha II", "60000.00", "2024-01-10"}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	values, _ := s.ReadValues(ctx, "Obras_Info")
	if values[1][1] != "Casa Alpha II" {
		t.Fatalf("row not overwritten: %v", values[1])
	}
	if values[2][1] != "Casa Beta" {
		t.Fatalf("unrelated row changed: %v", values[2])
	}

	if err := s.OverwriteRow(ctx, "Obras_Info", 9, []string{"x"}); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestMissingTab(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	if _, err := s.ReadValues(ctx, "Nope"); !errors.Is(err, sheets.ErrWorksheetNotFound) {
		t.Fatalf("read: got %v, want ErrWorksheetNotFound", err)
	}
	if err := s.AppendRow(ctx, "Nope", []string{"x"}); !errors.Is(err, sheets.ErrWorksheetNotFound) {
		t.Fatalf("append: got %v, want ErrWorksheetNotFound", err)
	}
}

func TestReadReturnsCopy(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()
	s.Seed("Obras_Info", []string{"001", "Casa Alpha", "50000.00", "2024-01-10"})

	values, _ := s.ReadValues(ctx, "Obras_Info")
	values[1][1] = "mutated"

	again, _ := s.ReadValues(ctx, "Obras_Info")
	if again[1][1] != "Casa Alpha" {
		t.Fatalf("caller mutation leaked into the store: %v", again[1])
	}
}
