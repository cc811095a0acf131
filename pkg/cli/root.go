// Package cli implements the tasksheet command line.
package cli

import (
	"fmt"
	"os"

	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/harrisonrobin/tasksheet/pkg/logging"
	"github.com/spf13/cobra"
)

var flags struct {
	Config string
	Store  string
}

// RootCmd is the base command.
var RootCmd = &cobra.Command{
	Use:   "tasksheet",
	Short: "A task board backed by a Google spreadsheet",
	Long: `tasksheet serves a small task tracking API whose data lives in the
Tasks and Users tabs of a Google spreadsheet. Status changes and new tasks
are authorized by a PIN listed in the Users tab.`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flags.Config, "config", "", "config file (default ./config.yaml or ~/.config/tasksheet/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&flags.Store, "store", "", "store driver override: sheets, sqlite or memory")
}

// loadConfig reads the configuration, applies flag overrides and sets up
// logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return nil, err
	}
	if flags.Store != "" {
		cfg.Store.Driver = flags.Store
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if err := logging.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("invalid log settings: %w", err)
	}
	return cfg, nil
}
