package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/harrisonrobin/tasksheet/pkg/model"
	"github.com/spf13/cobra"
)

var showLimit int

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print sheet content the way the API sees it",
}

var showTasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print tasks with translated statuses",
	RunE: withStore(func(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
		return showTasks(ctx, cfg, st, w, showLimit)
	}),
}

var showUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Print the PIN holders",
	RunE: withStore(func(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
		return showUsers(ctx, cfg, st, w)
	}),
}

func init() {
	showTasksCmd.Flags().IntVarP(&showLimit, "limit", "n", 0, "show at most n tasks (0 for all)")
	showCmd.AddCommand(showTasksCmd, showUsersCmd)
	RootCmd.AddCommand(showCmd)
}

func showTasks(ctx context.Context, cfg *config.Config, st backend, w io.Writer, limit int) error {
	listing, err := newService(cfg, st).List(ctx)
	if err != nil {
		return err
	}
	list := listing.Tasks
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	headers := append([]string{"ID"}, model.TaskColumns[1:]...)
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		row := []string{t.ID.String()}
		for _, field := range model.TaskColumns[1:] {
			row = append(row, t.Get(field))
		}
		rows = append(rows, row)
	}
	fmt.Fprintln(w, renderTable(headers, rows))
	fmt.Fprintf(w, "%d of %d tasks\n", len(list), len(listing.Tasks))
	return nil
}

func showUsers(ctx context.Context, cfg *config.Config, st backend, w io.Writer) error {
	svc := newService(cfg, st)
	users, err := st.Get(ctx, svc.UsersRange())
	if err != nil {
		return err
	}
	var holders []model.Holder
	if len(users) > 0 {
		holders = cfg.Mapper().RowsToHolders(users[1:], users[0])
	}
	rows := make([][]string, 0, len(holders))
	for _, h := range holders {
		rows = append(rows, []string{h.PIN, h.Name})
	}
	fmt.Fprintln(w, renderTable([]string{"PIN", "Name"}, rows))
	fmt.Fprintf(w, "%d users\n", len(holders))
	return nil
}
