package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/harrisonrobin/tasksheet/pkg/a1"
	"github.com/harrisonrobin/tasksheet/pkg/auth"
	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/harrisonrobin/tasksheet/pkg/google"
	"github.com/harrisonrobin/tasksheet/pkg/mapping"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Diagnose the spreadsheet tasksheet talks to",
}

var checkSheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Verify the connection and that the Tasks and Users tabs exist",
	RunE: withStore(func(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
		if client, ok := st.(*google.SheetsClient); ok {
			fmt.Fprintf(w, "Sheet ID: %s\n", cfg.SheetID)
			if email := auth.ServiceAccountEmail(credentials(cfg)); email != "" {
				fmt.Fprintf(w, "Service account: %s\n", email)
			}
			title, _, err := client.Metadata(ctx)
			if err != nil {
				printHint(w, err, client)
				return err
			}
			fmt.Fprintf(w, "Connected to spreadsheet %q\n\n", title)
		}
		return checkSheets(ctx, cfg, st, w)
	}),
}

var checkColumnsCmd = &cobra.Command{
	Use:   "columns",
	Short: "Compare the Tasks header row with the expected layout",
	RunE: withStore(func(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
		return checkColumns(ctx, cfg, st, w)
	}),
}

func init() {
	checkCmd.AddCommand(checkSheetsCmd, checkColumnsCmd)
	RootCmd.AddCommand(checkCmd)
}

// withStore loads the configuration and store for a diagnostic command.
func withStore(run func(context.Context, *config.Config, backend, io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()
		return run(cmd.Context(), cfg, st, cmd.OutOrStdout())
	}
}

func printHint(w io.Writer, err error, client *google.SheetsClient) {
	fmt.Fprintf(w, "Error connecting to Google Sheets: %v\n", err)
	if hint := google.Hint(err); hint != "" {
		fmt.Fprintln(w, hint)
		fmt.Fprintf(w, "Spreadsheet: %s\n", client.SpreadsheetURL())
	}
}

func checkSheets(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
	titles, err := st.SheetTitles(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(titles))
	rows := make([][]string, 0, len(titles))
	for _, t := range titles {
		have[t] = true
		rows = append(rows, []string{t})
	}
	fmt.Fprintln(w, renderTable([]string{"Available tabs"}, rows))

	required := [][]string{
		{cfg.Sheets.Tasks, fmt.Sprint(mapping.ExpectedTaskHeader), mark(have[cfg.Sheets.Tasks])},
		{cfg.Sheets.Users, fmt.Sprint(mapping.ExpectedUserHeader), mark(have[cfg.Sheets.Users])},
	}
	fmt.Fprintln(w, renderTable([]string{"Required tab", "Columns", ""}, required))
	if !have[cfg.Sheets.Tasks] || !have[cfg.Sheets.Users] {
		return fmt.Errorf("missing required sheets, create them in the spreadsheet")
	}
	return nil
}

func checkColumns(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
	width := len(mapping.ExpectedTaskHeader)
	rng := a1.Range{Sheet: cfg.Sheets.Tasks, StartCol: 1, StartRow: 1, EndCol: width, EndRow: 1}
	rows, err := st.Get(ctx, rng.String())
	if err != nil {
		return err
	}
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	headers := cfg.Mapper().Headers
	matched := true
	out := make([][]string, 0, width)
	for i, expected := range mapping.ExpectedTaskHeader {
		actual := "(missing)"
		ok := false
		if i < len(header) {
			actual = header[i]
			ok = headers.Normalize(actual) == headers.Normalize(expected)
		}
		matched = matched && ok
		status := okStyle.Render("ok")
		if !ok {
			status = badStyle.Render("mismatch")
		}
		out = append(out, []string{a1.ColumnLetter(i + 1), expected, actual, status})
	}
	fmt.Fprintln(w, renderTable([]string{"Column", "Expected", "Got", ""}, out))
	if !matched {
		return fmt.Errorf("column headers of %s need to be updated", cfg.Sheets.Tasks)
	}
	fmt.Fprintln(w, "All columns match the expected structure.")
	return nil
}
