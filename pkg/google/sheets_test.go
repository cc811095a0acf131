package google

import (
	"context"
	"net/http"
	"testing"

	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestToStrings(t *testing.T) {
	got := ToStrings([][]interface{}{
		{"0", "2025-10-10", float64(7), nil, true},
		{},
	})
	assert.Equal(t, [][]string{{"0", "2025-10-10", "7", "", "true"}, {}}, got)
	assert.Nil(t, ToStrings(nil))
}

func TestToValues(t *testing.T) {
	got := ToValues([][]string{{"4", "Baru"}})
	require.Len(t, got, 1)
	assert.Equal(t, []interface{}{"4", "Baru"}, got[0])
}

func TestMissingSpreadsheetID(t *testing.T) {
	c := NewSheetsClient(nil, "")
	ctx := context.Background()

	_, err := c.Get(ctx, "Tasks!A1:I")
	assert.ErrorIs(t, err, store.ErrConfigurationMissing)
	assert.ErrorIs(t, c.Update(ctx, "Tasks!I2", [][]string{{"Baru"}}), store.ErrConfigurationMissing)
	assert.ErrorIs(t, c.Append(ctx, "Tasks!A1:I", [][]string{{"0"}}), store.ErrConfigurationMissing)
	_, err = c.SheetTitles(ctx)
	assert.ErrorIs(t, err, store.ErrConfigurationMissing)
}

func TestHint(t *testing.T) {
	assert.Contains(t, Hint(&googleapi.Error{Code: http.StatusForbidden}), "sharing")
	assert.Contains(t, Hint(errors.Wrap(&googleapi.Error{Code: http.StatusBadRequest}, "read tasks")), "permissions")
	assert.Contains(t, Hint(&googleapi.Error{Code: http.StatusNotFound}), "SHEET_ID")
	assert.Empty(t, Hint(&googleapi.Error{Code: http.StatusInternalServerError}))
	assert.Empty(t, Hint(errors.New("boom")))
}

func TestSpreadsheetURL(t *testing.T) {
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc", NewSheetsClient(nil, "abc").SpreadsheetURL())
}
