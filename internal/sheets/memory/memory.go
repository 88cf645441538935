// Package memory is an in-memory sheets.Store used by tests and local
// runs. Tabs are plain cell matrices behind a mutex, which makes it
// stricter than the real store: the spreadsheet service offers no
// isolation at all.
package memory

import (
	"context"
	"fmt"
	"sync"

	"obras/internal/sheets"
)

type Store struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

// New creates a store with the given tabs, each seeded with its header row.
func New(headers map[string][]string) *Store {
	tabs := make(map[string][][]string, len(headers))
	for tab, header := range headers {
		tabs[tab] = [][]string{append([]string(nil), header...)}
	}
	return &Store{tabs: tabs}
}

var _ sheets.Store = (*Store)(nil)

func (s *Store) ReadValues(_ context.Context, tab string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tab)
	}
	return copyMatrix(rows), nil
}

func (s *Store) AppendRow(_ context.Context, tab string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tab)
	}
	s.tabs[tab] = append(rows, append([]string(nil), values...))
	return nil
}

func (s *Store) OverwriteRow(_ context.Context, tab string, row int, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, ok := s.tabs[tab]
	if !ok {
		return fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tab)
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("row %d out of range for tab %s (%d rows)", row, tab, len(rows))
	}
	s.tabs[tab][row-1] = append([]string(nil), values...)
	return nil
}

// Seed replaces a tab's data rows, keeping the header. Test helper.
func (s *Store) Seed(tab string, rows ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tabs[tab]
	if !ok || len(existing) == 0 {
		return
	}
	next := [][]string{existing[0]}
	for _, r := range rows {
		next = append(next, append([]string(nil), r...))
	}
	s.tabs[tab] = next
}

func copyMatrix(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, row := range in {
		out[i] = append([]string(nil), row...)
	}
	return out
}
