package cli

import (
	"fmt"

	"github.com/harrisonrobin/tasksheet/pkg/auth"
	"github.com/harrisonrobin/tasksheet/pkg/google"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize tasksheet with Google, replacing any cached token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		creds := credentials(cfg)
		path, err := auth.Reauthorize(cmd.Context(), creds, google.Scopes())
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
		out := cmd.OutOrStdout()
		if path == "" {
			fmt.Fprintf(out, "Using service account %s, no authorization needed.\n", auth.ServiceAccountEmail(creds))
			fmt.Fprintln(out, "Share the spreadsheet with that address as an Editor.")
			return nil
		}
		fmt.Fprintf(out, "Authentication successful! Token saved to %s\n", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(authCmd)
}
