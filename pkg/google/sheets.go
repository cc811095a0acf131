package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/harrisonrobin/tasksheet/pkg/store"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"
)

const (
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

// SheetsClient is a store.Store over one spreadsheet.
type SheetsClient struct {
	srv           *sheets.Service
	spreadsheetID string
}

// NewSheetsClient wraps an existing Sheets service.
func NewSheetsClient(srv *sheets.Service, spreadsheetID string) *SheetsClient {
	return &SheetsClient{srv: srv, spreadsheetID: spreadsheetID}
}

// Get reads a range as strings.
func (c *SheetsClient) Get(ctx context.Context, rng string) ([][]string, error) {
	if c.spreadsheetID == "" {
		return nil, store.ErrConfigurationMissing
	}
	resp, err := c.srv.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return ToStrings(resp.Values), nil
}

// Update overwrites the cells of a range.
func (c *SheetsClient) Update(ctx context.Context, rng string, values [][]string) error {
	if c.spreadsheetID == "" {
		return store.ErrConfigurationMissing
	}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, rng, &sheets.ValueRange{Values: ToValues(values)}).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return err
}

// Append inserts rows after the table found in rng.
func (c *SheetsClient) Append(ctx context.Context, rng string, values [][]string) error {
	if c.spreadsheetID == "" {
		return store.ErrConfigurationMissing
	}
	_, err := c.srv.Spreadsheets.Values.Append(c.spreadsheetID, rng, &sheets.ValueRange{Values: ToValues(values)}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	return err
}

// Metadata returns the spreadsheet title and its tab names.
func (c *SheetsClient) Metadata(ctx context.Context) (string, []string, error) {
	if c.spreadsheetID == "" {
		return "", nil, store.ErrConfigurationMissing
	}
	ss, err := c.srv.Spreadsheets.Get(c.spreadsheetID).
		Fields("properties.title", "sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", nil, err
	}
	var titles []string
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	title := ""
	if ss.Properties != nil {
		title = ss.Properties.Title
	}
	return title, titles, nil
}

func (c *SheetsClient) SheetTitles(ctx context.Context) ([]string, error) {
	_, titles, err := c.Metadata(ctx)
	return titles, err
}

// SpreadsheetURL links to the spreadsheet in the browser.
func (c *SheetsClient) SpreadsheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + c.spreadsheetID
}

// ToStrings converts API cell values to strings. Rows keep the API's trimming
// of trailing empty cells.
func ToStrings(values [][]interface{}) [][]string {
	if values == nil {
		return nil
	}
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch v := v.(type) {
			case nil:
			case string:
				cells[j] = v
			default:
				cells[j] = fmt.Sprint(v)
			}
		}
		out[i] = cells
	}
	return out
}

// ToValues converts string rows to API cell values.
func ToValues(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}

// Hint suggests a fix for common Google API failures, or returns "".
func Hint(err error) string {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return ""
	}
	switch apiErr.Code {
	case http.StatusBadRequest, http.StatusForbidden:
		return "Check Google API permissions and sheet sharing settings."
	case http.StatusNotFound:
		return "The spreadsheet was not found. Check SHEET_ID and that the spreadsheet exists and is accessible."
	}
	return ""
}
