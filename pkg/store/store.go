// Package store defines the capability the rest of tasksheet needs from a
// spreadsheet: read a range, overwrite a range, append rows after a range.
package store

import (
	"context"

	"github.com/pkg/errors"
)

// ErrConfigurationMissing is returned when a store has no spreadsheet to talk to.
var ErrConfigurationMissing = errors.New("SHEET_ID is missing in .env file.")

// Store reads and writes cell values addressed by A1 ranges. Rows come back in
// sheet order with trailing empty cells trimmed, the way the Sheets API does.
type Store interface {
	Get(ctx context.Context, rng string) ([][]string, error)
	Update(ctx context.Context, rng string, values [][]string) error
	Append(ctx context.Context, rng string, values [][]string) error
}

// Describer is implemented by stores that can list their sheets.
type Describer interface {
	SheetTitles(ctx context.Context) ([]string, error)
}
