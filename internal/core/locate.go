package core

import (
	"strconv"
	"strings"
)

// Row location works on the raw values matrix, not the typed snapshot:
// mutation operations re-read the tab and scan for the physical row to
// overwrite. Row numbers are 1-based with the header at row 1, matching
// the store's range addressing. There is no index and no isolation; the
// caller owns the locate-then-write sequence.

// LocateProjectRow scans the Projects tab for the row whose identifier
// column matches id in normalized form. The boolean is false when no row
// matches, in which case the caller must not write.
func LocateProjectRow(values [][]string, id string) (int, bool) {
	want := NormalizeID(id)
	if want == "" {
		return 0, false
	}
	for i, row := range values[min(1, len(values)):] {
		if NormalizeID(safeGet(row, 0)) == want {
			return i + 2, true
		}
	}
	return 0, false
}

// LocateExpenseRow scans the Expenses tab for the row matching the
// (project id, week number) natural key. Week cells that fail to parse
// never match.
func LocateExpenseRow(values [][]string, projectID string, week int) (int, bool) {
	want := NormalizeID(projectID)
	if want == "" {
		return 0, false
	}
	for i, row := range values[min(1, len(values)):] {
		if NormalizeID(safeGet(row, 0)) != want {
			continue
		}
		w, err := strconv.Atoi(strings.TrimSpace(safeGet(row, 1)))
		if err != nil || w != week {
			continue
		}
		return i + 2, true
	}
	return 0, false
}
