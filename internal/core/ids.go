package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifiers are opaque strings compared in normalized form. Numeric values
// display zero-padded to three digits ("001") and grow past that width
// naturally once they exceed 999.
const idWidth = 3

// NormalizeID canonicalizes an identifier cell: entirely numeric values are
// re-rendered zero-padded, anything else is kept verbatim after trimming.
// The empty string means the cell carried no usable identifier.
func NormalizeID(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%0*d", idWidth, n)
}

// NextProjectID allocates the next unused project identifier: the numeric
// maximum of the existing ids plus one. Non-numeric ids are ignored rather
// than treated as errors. An empty project set yields "001".
//
// The value is advisory: two concurrent registrations can compute the same
// id since nothing reserves it (single-writer assumption).
func NextProjectID(projects []Project) string {
	var max int64
	for _, p := range projects {
		n, err := strconv.ParseInt(strings.TrimSpace(p.ID), 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%0*d", idWidth, max+1)
}

// NextWeek returns the week sequence number for a project's next expense
// entry: one past the highest recorded week, or 1 when none exist.
func NextWeek(expenses []ExpenseEntry, projectID string) int {
	id := NormalizeID(projectID)
	max := 0
	for _, e := range expenses {
		if NormalizeID(e.ProjectID) != id {
			continue
		}
		if e.Week > max {
			max = e.Week
		}
	}
	return max + 1
}
