// Package google adapts the Google Sheets API to the sheets.Store ports.
// One spreadsheet holds the three tabs (projects, expenses, users); the
// adapter stays untyped and leaves normalization to the core package.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"obras/internal/sheets"

	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ sheets.Store = (*Client)(nil)

// New creates a Sheets client for the given spreadsheet using Service
// Account credentials from the environment (GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS).
func New(ctx context.Context, spreadsheetID string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service", "credentials_size", len(credentialsJSON))
	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) ReadValues(ctx context.Context, tab string) ([][]string, error) {
	if c.svc == nil {
		return nil, sheets.ErrUnavailable
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		return nil, classify(err, tab)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	return out, nil
}

func (c *Client) AppendRow(ctx context.Context, tab string, values []string) error {
	if c.svc == nil {
		return sheets.ErrUnavailable
	}
	rng := fmt.Sprintf("%s!A:%s", tab, colLetter(len(values)))
	vr := &gsheet.ValueRange{Values: [][]any{toAnys(values)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return classify(err, tab)
	}
	return nil
}

func (c *Client) OverwriteRow(ctx context.Context, tab string, row int, values []string) error {
	if c.svc == nil {
		return sheets.ErrUnavailable
	}
	if row < 1 {
		return fmt.Errorf("row %d out of range for tab %s", row, tab)
	}
	rng := fmt.Sprintf("%s!A%d:%s%d", tab, row, colLetter(len(values)), row)
	vr := &gsheet.ValueRange{Values: [][]any{toAnys(values)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return classify(err, tab)
	}
	return nil
}

// classify maps API failures onto the port's error taxonomy. The Sheets
// API reports a missing tab as a 400 "Unable to parse range"; auth and
// permission failures count as the store being unavailable.
func classify(err error, tab string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 400 && strings.Contains(apiErr.Message, "Unable to parse range"):
			return fmt.Errorf("%w: %s", sheets.ErrWorksheetNotFound, tab)
		case apiErr.Code == 404:
			return fmt.Errorf("%w: spreadsheet: %v", sheets.ErrWorksheetNotFound, err)
		case apiErr.Code == 401 || apiErr.Code == 403:
			return fmt.Errorf("%w: %v", sheets.ErrUnavailable, err)
		}
	}
	return fmt.Errorf("%w: %v", sheets.ErrUnavailable, err)
}
