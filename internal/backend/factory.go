// Package backend builds the sheets.Store selected by configuration.
// Memory is the default for local runs, sheets talks to the live
// spreadsheet, and sqlite keeps the same tab model in a local file.
package backend

import (
	"context"
	"fmt"

	"obras/internal/config"
	"obras/internal/core"
	"obras/internal/log"
	"obras/internal/sheets"
	gsheet "obras/internal/sheets/google"
	"obras/internal/sheets/memory"
	"obras/internal/storage"
)

// CleanupFunc releases resources held by a backend. May be nil.
type CleanupFunc func() error

// Result pairs a store with its cleanup function.
type Result struct {
	Store   sheets.Store
	Cleanup CleanupFunc
}

// Tab headers every backend starts from. The sheets backend assumes the
// spreadsheet already carries them; memory and sqlite seed them.
func headers(cfg *config.Config) map[string][]string {
	return map[string][]string{
		cfg.ProjectsTab: {core.ColProjectID, core.ColProjectName, core.ColInitialBudget, core.ColStartDate},
		cfg.ExpensesTab: {core.ColExpenseProject, core.ColWeekNumber, core.ColReferenceDate, core.ColAmount},
		cfg.UsersTab:    {core.ColUsername, core.ColUserName, core.ColPassword},
	}
}

// New creates the store named by cfg.DataBackend.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	switch cfg.DataBackend {
	case "memory":
		return newMemory(cfg, logger)
	case "sheets":
		return newSheets(ctx, cfg, logger)
	case "sqlite":
		return newSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported data backend: %s", cfg.DataBackend)
	}
}

func newMemory(cfg *config.Config, logger *log.Logger) (*Result, error) {
	store := memory.New(headers(cfg))
	logger.Info("Initialized memory backend")
	return &Result{Store: store}, nil
}

func newSheets(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	cli, err := gsheet.New(ctx, cfg.SpreadsheetID)
	if err != nil {
		return nil, fmt.Errorf("initialize Google Sheets client: %w", err)
	}
	logger.Info("Initialized Google Sheets backend",
		log.FieldSpreadsheetID, cfg.SpreadsheetID)
	return &Result{Store: cli}, nil
}

func newSQLite(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	store, err := storage.New(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite store: %w", err)
	}
	for tab, header := range headers(cfg) {
		if err := store.EnsureTab(ctx, tab, header); err != nil {
			store.Close()
			return nil, fmt.Errorf("ensure tab %s: %w", tab, err)
		}
	}
	logger.Info("Initialized SQLite backend",
		log.FieldDBPath, cfg.SQLiteDBPath)
	return &Result{Store: store, Cleanup: store.Close}, nil
}
