// Package service wires the store ports to the core computations: the
// snapshot cache for reads, and the fetch-locate-write sequences for
// mutations. Every mutation is a single append or single row overwrite;
// that one store call is the atomic unit, and nothing larger is.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"obras/internal/cache"
	"obras/internal/core"
	"obras/internal/log"
	"obras/internal/sheets"

	"golang.org/x/sync/errgroup"
)

const snapshotKey = "snapshot"

type Tracker struct {
	store       sheets.Store
	projectsTab string
	expensesTab string
	snapshot    *cache.TTLCache[core.Snapshot]
	logger      *log.Logger
}

func New(store sheets.Store, projectsTab, expensesTab string, snapshotTTL time.Duration, logger *log.Logger) *Tracker {
	return &Tracker{
		store:       store,
		projectsTab: projectsTab,
		expensesTab: expensesTab,
		snapshot:    cache.NewTTL[core.Snapshot](snapshotTTL),
		logger:      logger.WithComponent(log.ComponentTracker),
	}
}

// Snapshot returns the current typed view of both tabs, cached on a
// bounded TTL. The two tabs load concurrently. A missing tab degrades to
// empty data so the rest of the page still renders; anything else aborts
// the read.
func (t *Tracker) Snapshot(ctx context.Context) (core.Snapshot, error) {
	if snap, ok := t.snapshot.Get(snapshotKey); ok {
		return snap, nil
	}

	var projectValues, expenseValues [][]string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projectValues, err = t.readTab(gctx, t.projectsTab)
		return err
	})
	g.Go(func() error {
		var err error
		expenseValues, err = t.readTab(gctx, t.expensesTab)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.Snapshot{}, err
	}

	snap := core.Snapshot{
		Projects: core.ProjectsFromValues(projectValues),
		Expenses: core.ExpensesFromValues(expenseValues),
	}
	t.snapshot.Set(snapshotKey, snap)
	return snap, nil
}

func (t *Tracker) readTab(ctx context.Context, tab string) ([][]string, error) {
	values, err := t.store.ReadValues(ctx, tab)
	if errors.Is(err, sheets.ErrWorksheetNotFound) {
		t.logger.WarnContext(ctx, "Tab not found, rendering empty data", log.FieldTab, tab)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", tab, err)
	}
	return values, nil
}

// Invalidate drops the cached snapshot so the next read re-fetches.
func (t *Tracker) Invalidate() {
	t.snapshot.Delete(snapshotKey)
}

// CleanExpired implements cache.Cleaner.
func (t *Tracker) CleanExpired() int {
	return t.snapshot.CleanExpired()
}

// Status computes the financial status of every project, in store order.
func (t *Tracker) Status(ctx context.Context) ([]core.FinancialStatus, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return core.Reconcile(snap.Projects, snap.Expenses), nil
}

// Report returns one project's status and its full expense history,
// ordered by week ascending.
func (t *Tracker) Report(ctx context.Context, projectID string) (core.FinancialStatus, []core.ExpenseEntry, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return core.FinancialStatus{}, nil, err
	}
	want := core.NormalizeID(projectID)
	for _, st := range core.Reconcile(snap.Projects, snap.Expenses) {
		if core.NormalizeID(st.ProjectID) == want {
			return st, core.ProjectExpenses(snap.Expenses, projectID), nil
		}
	}
	return core.FinancialStatus{}, nil, fmt.Errorf("project %s: %w", projectID, core.ErrNotFound)
}

// NextProjectID previews the identifier the next registration would get.
// Advisory only; the registration itself re-reads and re-allocates.
func (t *Tracker) NextProjectID(ctx context.Context) (string, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return core.NextProjectID(snap.Projects), nil
}

// NextWeek previews the week number the next expense entry would get.
func (t *Tracker) NextWeek(ctx context.Context, projectID string) (int, error) {
	snap, err := t.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	return core.NextWeek(snap.Expenses, projectID), nil
}

// RegisterProject allocates the next identifier from a fresh read and
// appends one row. Validation failures happen before any store call.
func (t *Tracker) RegisterProject(ctx context.Context, name string, budget core.Money, start core.Date) (core.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.Project{}, core.ErrEmptyName
	}
	if budget.Cents <= 0 {
		return core.Project{}, core.ErrInvalidBudget
	}

	values, err := t.store.ReadValues(ctx, t.projectsTab)
	if err != nil {
		return core.Project{}, fmt.Errorf("read %s: %w", t.projectsTab, err)
	}
	p := core.Project{
		ID:            core.NextProjectID(core.ProjectsFromValues(values)),
		Name:          name,
		InitialBudget: budget,
		StartDate:     start,
	}
	row := []string{p.ID, p.Name, p.InitialBudget.Storage(), p.StartDate.Storage()}
	if err := t.store.AppendRow(ctx, t.projectsTab, row); err != nil {
		return core.Project{}, fmt.Errorf("append project: %w", err)
	}

	t.Invalidate()
	t.logger.InfoContext(ctx, "Project registered",
		log.FieldOperation, log.OpRegisterProject,
		log.FieldProjectID, p.ID,
		log.FieldProjectName, p.Name,
		log.FieldAmountCents, p.InitialBudget.Cents)
	return p, nil
}

// UpdateProject locates the project's row by identifier and overwrites its
// four cells in place. A missing row reports not-found and writes nothing.
func (t *Tracker) UpdateProject(ctx context.Context, id, name string, budget core.Money, start core.Date) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return core.ErrEmptyName
	}
	if budget.Cents < 0 {
		return core.ErrInvalidBudget
	}

	values, err := t.store.ReadValues(ctx, t.projectsTab)
	if err != nil {
		return fmt.Errorf("read %s: %w", t.projectsTab, err)
	}
	row, ok := core.LocateProjectRow(values, id)
	if !ok {
		return fmt.Errorf("project %s: %w", id, core.ErrNotFound)
	}
	cells := []string{core.NormalizeID(id), name, budget.Storage(), start.Storage()}
	if err := t.store.OverwriteRow(ctx, t.projectsTab, row, cells); err != nil {
		return fmt.Errorf("overwrite project: %w", err)
	}

	t.Invalidate()
	t.logger.InfoContext(ctx, "Project updated",
		log.FieldOperation, log.OpUpdateProject,
		log.FieldProjectID, core.NormalizeID(id),
		log.FieldRow, row)
	return nil
}

// RegisterExpense appends the next week's entry for an existing project;
// an unknown project reports not-found and writes nothing. The week
// number is one past the highest already recorded, from a fresh read.
func (t *Tracker) RegisterExpense(ctx context.Context, projectID string, amount core.Money, ref core.Date) (core.ExpenseEntry, error) {
	id := core.NormalizeID(projectID)
	if id == "" {
		return core.ExpenseEntry{}, core.ErrEmptyID
	}
	if amount.Cents < 0 {
		return core.ExpenseEntry{}, core.ErrNegativeAmount
	}

	projects, err := t.store.ReadValues(ctx, t.projectsTab)
	if err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("read %s: %w", t.projectsTab, err)
	}
	if _, ok := core.LocateProjectRow(projects, id); !ok {
		return core.ExpenseEntry{}, fmt.Errorf("project %s: %w", id, core.ErrNotFound)
	}

	values, err := t.store.ReadValues(ctx, t.expensesTab)
	if err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("read %s: %w", t.expensesTab, err)
	}
	e := core.ExpenseEntry{
		ProjectID:     id,
		Week:          core.NextWeek(core.ExpensesFromValues(values), id),
		ReferenceDate: ref,
		Amount:        amount,
	}
	row := []string{e.ProjectID, strconv.Itoa(e.Week), e.ReferenceDate.Storage(), e.Amount.Storage()}
	if err := t.store.AppendRow(ctx, t.expensesTab, row); err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("append expense: %w", err)
	}

	t.Invalidate()
	t.logger.InfoContext(ctx, "Expense registered",
		log.FieldOperation, log.OpRegisterExpense,
		log.FieldProjectID, e.ProjectID,
		log.FieldWeek, e.Week,
		log.FieldAmountCents, e.Amount.Cents)
	return e, nil
}

// UpdateExpense locates an entry by its (project id, week) natural key and
// overwrites it. A missing row reports not-found and writes nothing.
func (t *Tracker) UpdateExpense(ctx context.Context, projectID string, week int, amount core.Money, ref core.Date) error {
	id := core.NormalizeID(projectID)
	if id == "" {
		return core.ErrEmptyID
	}
	if week < 1 {
		return core.ErrInvalidWeek
	}
	if amount.Cents < 0 {
		return core.ErrNegativeAmount
	}

	values, err := t.store.ReadValues(ctx, t.expensesTab)
	if err != nil {
		return fmt.Errorf("read %s: %w", t.expensesTab, err)
	}
	row, ok := core.LocateExpenseRow(values, id, week)
	if !ok {
		return fmt.Errorf("expense %s week %d: %w", id, week, core.ErrNotFound)
	}
	cells := []string{id, strconv.Itoa(week), ref.Storage(), amount.Storage()}
	if err := t.store.OverwriteRow(ctx, t.expensesTab, row, cells); err != nil {
		return fmt.Errorf("overwrite expense: %w", err)
	}

	t.Invalidate()
	t.logger.InfoContext(ctx, "Expense updated",
		log.FieldOperation, log.OpUpdateExpense,
		log.FieldProjectID, id,
		log.FieldWeek, week,
		log.FieldRow, row)
	return nil
}
