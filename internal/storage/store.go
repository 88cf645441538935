// Package storage is a SQLite-backed sheets.Store for running the tracker
// against a local file instead of a spreadsheet service. Each tab is kept
// as ordered rows of JSON-encoded cells, so the row-scan semantics of the
// store contract carry over unchanged.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"obras/internal/sheets"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ sheets.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureTab creates a tab with its header row when it does not exist yet.
// Called at startup for the three configured tabs.
func (s *Store) EnsureTab(ctx context.Context, tab string, header []string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheet_rows WHERE tab = ?`, tab).Scan(&n); err != nil {
		return fmt.Errorf("count tab %s: %w", tab, err)
	}
	if n > 0 {
		return nil
	}
	cells, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO sheet_rows (tab, pos, cells) VALUES (?, 1, ?)`, tab, string(cells)); err != nil {
		return fmt.Errorf("seed tab %s: %w", tab, err)
	}
	return nil
}

func (s *Store) ReadValues(ctx context.Context, tab string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT cells FROM sheet_rows WHERE tab = ? ORDER BY pos`, tab)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sheets.ErrUnavailable, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var cells string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var row []string
		if err := json.Unmarshal([]byte(cells), &row); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", sheets.ErrUnavailable, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tab)
	}
	return out, nil
}

func (s *Store) AppendRow(ctx context.Context, tab string, values []string) error {
	cells, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", sheets.ErrUnavailable, err)
	}
	defer tx.Rollback()

	var max sql.NullInt64
	if err := tx.QueryRowContext(ctx, `SELECT MAX(pos) FROM sheet_rows WHERE tab = ?`, tab).Scan(&max); err != nil {
		return fmt.Errorf("max pos for %s: %w", tab, err)
	}
	if !max.Valid {
		return fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tab)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO sheet_rows (tab, pos, cells) VALUES (?, ?, ?)`, tab, max.Int64+1, string(cells)); err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return tx.Commit()
}

func (s *Store) OverwriteRow(ctx context.Context, tab string, row int, values []string) error {
	if row < 1 {
		return fmt.Errorf("row %d out of range for tab %s", row, tab)
	}
	cells, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE sheet_rows SET cells = ? WHERE tab = ? AND pos = ?`, string(cells), tab, row)
	if err != nil {
		return fmt.Errorf("%w: %v", sheets.ErrUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("row %d out of range for tab %s", row, tab)
	}
	return nil
}
