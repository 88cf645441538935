package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical column names. Matching against a sheet header is
// case-insensitive; the order of the columns matters only for writes.
const (
	ColProjectID     = "id"
	ColProjectName   = "name"
	ColInitialBudget = "initial_budget"
	ColStartDate     = "start_date"

	ColExpenseProject = "project_id"
	ColWeekNumber     = "week_number"
	ColReferenceDate  = "reference_date"
	ColAmount         = "amount"

	ColUsername = "username"
	ColUserName = "name"
	ColPassword = "password"
)

// HeaderKeys returns usable record keys for a raw header row. The first
// occurrence of a column name wins; later duplicates get a deterministic
// numeric suffix ("name", "name_2", "name_3") instead of shadowing it.
func HeaderKeys(header []string) []string {
	keys := make([]string, len(header))
	seen := map[string]int{}
	for i, h := range header {
		k := strings.TrimSpace(h)
		lower := strings.ToLower(k)
		seen[lower]++
		if seen[lower] > 1 {
			k = fmt.Sprintf("%s_%d", k, seen[lower])
		}
		keys[i] = k
	}
	return keys
}

// Records turns a raw values matrix (header row first) into field-named
// records. Short rows read as empty cells; extra cells are dropped.
func Records(values [][]string) []map[string]string {
	if len(values) == 0 {
		return nil
	}
	keys := HeaderKeys(values[0])
	out := make([]map[string]string, 0, len(values)-1)
	for _, row := range values[1:] {
		rec := make(map[string]string, len(keys))
		for i, k := range keys {
			if k == "" {
				continue
			}
			rec[k] = safeGet(row, i)
		}
		out = append(out, rec)
	}
	return out
}

// ProjectsFromValues normalizes the Projects tab. Rows without a usable
// identifier are dropped; malformed budgets coerce to zero and malformed
// dates stay unset, so one bad cell never loses the row.
func ProjectsFromValues(values [][]string) []Project {
	var out []Project
	for _, rec := range Records(values) {
		id := NormalizeID(field(rec, ColProjectID))
		if id == "" {
			continue
		}
		out = append(out, Project{
			ID:            id,
			Name:          strings.TrimSpace(field(rec, ColProjectName)),
			InitialBudget: CoerceMoney(field(rec, ColInitialBudget)),
			StartDate:     CoerceDate(field(rec, ColStartDate)),
		})
	}
	return out
}

// ExpensesFromValues normalizes the Expenses tab with the same coercion
// rules: unparseable weeks and amounts become zero, never an error.
func ExpensesFromValues(values [][]string) []ExpenseEntry {
	var out []ExpenseEntry
	for _, rec := range Records(values) {
		id := NormalizeID(field(rec, ColExpenseProject))
		if id == "" {
			continue
		}
		week, err := strconv.Atoi(strings.TrimSpace(field(rec, ColWeekNumber)))
		if err != nil {
			week = 0
		}
		out = append(out, ExpenseEntry{
			ProjectID:     id,
			Week:          week,
			ReferenceDate: CoerceDate(field(rec, ColReferenceDate)),
			Amount:        CoerceMoney(field(rec, ColAmount)),
		})
	}
	return out
}

// UsersFromValues normalizes the Users tab. Password cells hold pre-hashed
// values and pass through untouched.
func UsersFromValues(values [][]string) []User {
	var out []User
	for _, rec := range Records(values) {
		username := strings.TrimSpace(field(rec, ColUsername))
		if username == "" {
			continue
		}
		out = append(out, User{
			Username:     username,
			Name:         strings.TrimSpace(field(rec, ColUserName)),
			PasswordHash: strings.TrimSpace(field(rec, ColPassword)),
		})
	}
	return out
}

// field looks a column up by name, ignoring case.
func field(rec map[string]string, name string) string {
	if v, ok := rec[name]; ok {
		return v
	}
	for k, v := range rec {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

func safeGet(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
