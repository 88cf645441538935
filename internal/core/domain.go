package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Date wraps time.Time; the zero value means "unset" and renders as N/A.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Project struct {
		ID            string
		Name          string
		InitialBudget Money
		StartDate     Date
	}

	// ExpenseEntry is one week's recorded spend against a project.
	// Week is a sequence number unique per project, not a calendar week.
	ExpenseEntry struct {
		ProjectID     string
		Week          int
		ReferenceDate Date
		Amount        Money
	}

	// FinancialStatus is derived from Projects and ExpenseEntries on every
	// read; it is never persisted. Remaining may go negative when a project
	// is over budget.
	FinancialStatus struct {
		ProjectID     string
		Name          string
		InitialBudget Money
		TotalSpent    Money
		Remaining     Money
		StartDate     Date
	}

	User struct {
		Username     string
		Name         string
		PasswordHash string
	}

	// Snapshot is the transient in-memory copy of both store tabs.
	Snapshot struct {
		Projects []Project
		Expenses []ExpenseEntry
	}
)

var (
	ErrEmptyName      = errors.New("empty project name")
	ErrInvalidBudget  = errors.New("invalid initial budget")
	ErrNegativeAmount = errors.New("negative amount")
	ErrInvalidWeek    = errors.New("invalid week number")
	ErrEmptyID        = errors.New("empty project id")
	ErrNotFound       = errors.New("not found")
)

const (
	storeDateLayout   = "2006-01-02"
	displayDateLayout = "02/01/2006"
)

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO "YYYY-MM-DD" cell. It fails on anything else;
// read paths should use CoerceDate instead.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(storeDateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// CoerceDate parses a date cell, leaving the date unset on failure.
func CoerceDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		return Date{}
	}
	return d
}

// IsSet reports whether the date carries a value.
func (d Date) IsSet() bool {
	return !d.IsZero()
}

// Storage renders the ISO form written to the store, or "" when unset.
func (d Date) Storage() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(storeDateLayout)
}

// Display renders dd/mm/yyyy for screens, or "N/A" when unset.
func (d Date) Display() string {
	if d.IsZero() {
		return "N/A"
	}
	return d.Format(displayDateLayout)
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.InitialBudget.Cents < 0 {
		return ErrInvalidBudget
	}
	return nil
}

func (e ExpenseEntry) Validate() error {
	if strings.TrimSpace(e.ProjectID) == "" {
		return ErrEmptyID
	}
	if e.Week < 1 {
		return ErrInvalidWeek
	}
	if e.Amount.Cents < 0 {
		return ErrNegativeAmount
	}
	return nil
}
