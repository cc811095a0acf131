package google

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/tasksheet/pkg/auth"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewClient creates a Sheets client for spreadsheetID using creds.
func NewClient(ctx context.Context, spreadsheetID string, creds auth.Credentials) (*SheetsClient, error) {
	client, err := auth.GetClient(ctx, creds, Scopes())
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %v", err)
	}
	return NewSheetsClient(srv, spreadsheetID), nil
}

// Scopes are the OAuth scopes tasksheet asks for.
func Scopes() []string {
	return []string{sheets.SpreadsheetsScope}
}
