package cli

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/tasksheet/pkg/auth"
	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/harrisonrobin/tasksheet/pkg/google"
	"github.com/harrisonrobin/tasksheet/pkg/mapping"
	"github.com/harrisonrobin/tasksheet/pkg/sqlitestore"
	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/harrisonrobin/tasksheet/pkg/tasks"
	log "github.com/sirupsen/logrus"
)

// backend is what the commands need from a store.
type backend interface {
	store.Store
	store.Describer
}

func credentials(cfg *config.Config) auth.Credentials {
	return auth.Credentials{File: cfg.Credentials, TokenDir: cfg.TokenDir}
}

// openStore returns the configured store and a function releasing it. Local
// stores get empty Tasks and Users tabs on first use.
func openStore(ctx context.Context, cfg *config.Config) (backend, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverSheets:
		if cfg.SheetID == "" {
			log.Warn(store.ErrConfigurationMissing.Error())
			return google.NewSheetsClient(nil, ""), func() {}, nil
		}
		client, err := google.NewClient(ctx, cfg.SheetID, credentials(cfg))
		if err != nil {
			return nil, nil, err
		}
		return client, func() {}, nil
	case config.DriverSQLite:
		s, err := sqlitestore.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := ensureSheets(ctx, cfg, s, func(sheet string, header []string) error {
			return s.Seed(ctx, sheet, [][]string{header})
		}); err != nil {
			s.Close()
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case config.DriverMemory:
		m := store.NewMemory()
		if err := ensureSheets(ctx, cfg, m, func(sheet string, header []string) error {
			m.Seed(sheet, [][]string{header})
			return nil
		}); err != nil {
			return nil, nil, err
		}
		return m, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func ensureSheets(ctx context.Context, cfg *config.Config, d store.Describer, seed func(string, []string) error) error {
	titles, err := d.SheetTitles(ctx)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(titles))
	for _, t := range titles {
		have[t] = true
	}
	headers := map[string][]string{
		cfg.Sheets.Tasks: mapping.ExpectedTaskHeader,
		cfg.Sheets.Users: mapping.ExpectedUserHeader,
	}
	for sheet, header := range headers {
		if have[sheet] {
			continue
		}
		log.Infof("creating %s sheet in %s store", sheet, cfg.Store.Driver)
		if err := seed(sheet, header); err != nil {
			return err
		}
	}
	return nil
}

func newService(cfg *config.Config, st store.Store) *tasks.Service {
	return tasks.NewService(st,
		tasks.WithSheets(cfg.Sheets.Tasks, cfg.Sheets.Users),
		tasks.WithMapper(cfg.Mapper()),
	)
}
