package cli

import (
	"os/signal"
	"syscall"

	"github.com/harrisonrobin/tasksheet/pkg/server"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and serve the web client",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		log.WithFields(log.Fields{
			"store":  cfg.Store.Driver,
			"tasks":  cfg.Sheets.Tasks,
			"users":  cfg.Sheets.Users,
			"static": cfg.StaticDir,
		}).Info("starting tasksheet")
		router := server.NewRouter(newService(cfg, st), server.Options{
			StaticDir:   cfg.StaticDir,
			CORSOrigins: cfg.CORSOrigins,
		})
		return server.Run(ctx, cfg.Addr(), router)
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
