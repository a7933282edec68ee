// internal/store/sheets/sheets.go
//
// Google Sheets driver for the submission store.
//
// Context
// -------
// The default deployment persists submissions to a Google Sheets document
// owned by the operator.  Authentication uses a service-account JWT built
// from environment-sourced credentials; the private key commonly arrives
// with literal `\n` escapes, which the config loader unescapes before it
// reaches this package.
//
// The document is resolved on every operation (Spreadsheets.Get), matching
// the function-per-request deployment where no state survives between
// invocations.  The first sheet of the document is the table; if the
// document has no sheets one is created with a fixed title.
//
// Notes
// -----
//   - All failures are wrapped in the store package's sentinel errors so
//     callers can classify without knowing this driver exists.
//   - The empty-table check and the header write are two API calls with no
//     transactional link between them.  Two racing first-writes can produce
//     two header rows.  Accepted limitation.
package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/yanizio/formgate/internal/store"
)

// DefaultSheetTitle names the sheet created when the document has none.
const DefaultSheetTitle = "Form Submissions"

// Config carries the three credentials the driver needs.  All are required;
// New fails with store.ErrUnavailable when any is empty, so a misconfigured
// deployment surfaces on first use rather than at process start.
type Config struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string // PEM, real newlines
}

// Client implements store.Store against the Sheets v4 API.  Safe for
// concurrent use; it holds no mutable state beyond the API service handle.
type Client struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

var _ store.Store = (*Client)(nil)

// New builds the API service from a service-account JWT.  It performs no
// network I/O itself; credential problems surface on the first operation.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" || cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("%w: spreadsheet credentials not configured", store.ErrUnavailable)
	}

	conf := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheetsapi.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// EnsureTable resolves the first sheet (creating one if the document is
// empty) and writes the header row when the sheet has no rows at all.
func (c *Client) EnsureTable(ctx context.Context) error {
	title, err := c.firstSheet(ctx)
	if err != nil {
		return err
	}

	if title == "" {
		if title, err = c.addSheet(ctx); err != nil {
			return err
		}
	}

	rows, err := c.values(ctx, title)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		return nil
	}

	header := make([]interface{}, len(store.Header))
	for i, h := range store.Header {
		header[i] = h
	}
	_, err = c.svc.Spreadsheets.Values.Update(
		c.spreadsheetID,
		title+"!A1",
		&sheetsapi.ValueRange{Values: [][]interface{}{header}},
	).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: write header: %v", store.ErrWriteFailed, err)
	}
	return nil
}

// AppendRow appends one data row after the last non-empty row.
func (c *Client) AppendRow(ctx context.Context, row store.Row) error {
	title, err := c.firstSheet(ctx)
	if err != nil {
		return err
	}
	if title == "" {
		return fmt.Errorf("%w: append to missing sheet", store.ErrWriteFailed)
	}

	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	_, err = c.svc.Spreadsheets.Values.Append(
		c.spreadsheetID,
		title,
		&sheetsapi.ValueRange{Values: [][]interface{}{cells}},
	).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWriteFailed, err)
	}
	return nil
}

// ListRows fetches every row and drops the header.  A document with no
// sheets, or a sheet with only a header, yields an empty slice.
func (c *Client) ListRows(ctx context.Context) ([]store.Row, error) {
	title, err := c.firstSheet(ctx)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return []store.Row{}, nil
	}

	raw, err := c.values(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(raw) <= 1 {
		return []store.Row{}, nil
	}

	rows := make([]store.Row, 0, len(raw)-1)
	for _, cells := range raw[1:] {
		row := make(store.Row, len(store.Header))
		for i := range row {
			if i < len(cells) {
				row[i] = fmt.Sprint(cells[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// firstSheet returns the title of the document's first sheet, or "" when the
// document has none.
func (c *Client) firstSheet(ctx context.Context) (string, error) {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: load spreadsheet: %v", store.ErrUnavailable, err)
	}
	if len(doc.Sheets) == 0 || doc.Sheets[0].Properties == nil {
		return "", nil
	}
	return doc.Sheets[0].Properties.Title, nil
}

// addSheet creates the fixed-title sheet and returns its title.
func (c *Client) addSheet(ctx context.Context) (string, error) {
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: DefaultSheetTitle},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: create sheet: %v", store.ErrWriteFailed, err)
	}
	return DefaultSheetTitle, nil
}

// values fetches the sheet's full used range.
func (c *Client) values(ctx context.Context, title string) ([][]interface{}, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, title).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", store.ErrReadFailed, err)
	}
	return resp.Values, nil
}
