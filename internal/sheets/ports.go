// Package sheets defines the contract the tracker consumes from its
// tabular store. The operations map one to one onto what a spreadsheet
// service offers: read every cell of a tab, append one row, overwrite one
// contiguous row range. None of them are atomic with respect to each
// other; concurrent writers can race and the design accepts that
// (single-writer assumption).
package sheets

import (
	"context"
	"errors"
)

var (
	// ErrWorksheetNotFound distinguishes a misconfigured tab name from an
	// unreachable store. Read paths degrade to empty data on it.
	ErrWorksheetNotFound = errors.New("worksheet not found")

	// ErrUnavailable wraps authentication or connection failures; the
	// current operation aborts with no partial write.
	ErrUnavailable = errors.New("store unavailable")
)

// Ports for outbound adapters.
type (
	TableReader interface {
		// ReadValues returns the full cell matrix of a tab, header row
		// first. An empty tab yields an empty (or header-only) matrix,
		// not an error.
		ReadValues(ctx context.Context, tab string) ([][]string, error)
	}

	RowAppender interface {
		AppendRow(ctx context.Context, tab string, values []string) error
	}

	RowWriter interface {
		// OverwriteRow replaces one row's cells starting at column A.
		// Row numbers are 1-based with the header at row 1.
		OverwriteRow(ctx context.Context, tab string, row int, values []string) error
	}

	// Store is the full contract the mutation operations need.
	Store interface {
		TableReader
		RowAppender
		RowWriter
	}
)
