package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrisonrobin/tasksheet/pkg/config"
	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskHeader = []string{"Row Index", "Date Start", "Time Start", "Date Finish", "Time Finish", "Task Name", "Description", "Person Assigned", "Status"}

func memoryBackend() *store.Memory {
	m := store.NewMemory()
	m.Seed("Tasks", [][]string{
		taskHeader,
		{"0", "2025-10-10", "07:00", "2025-10-10", "10:00", "Irrigate Field 3", "Check pump flow", "Alice Johnson", "Baru"},
		{"1", "2025-10-10", "10:00", "2025-10-10", "14:00", "Harvest Apples", "Pick 50 bushels", "Bob Smith", "Ditunda"},
	})
	m.Seed("Users", [][]string{{"PIN", "Name"}, {"123456", "Alice Johnson"}})
	return m
}

func TestCheckSheets(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	require.NoError(t, checkSheets(context.Background(), cfg, memoryBackend(), &buf))
	assert.Contains(t, buf.String(), "Tasks")
	assert.Contains(t, buf.String(), "Users")

	m := store.NewMemory()
	m.Seed("Tasks", nil)
	buf.Reset()
	assert.Error(t, checkSheets(context.Background(), cfg, m, &buf))
	assert.Contains(t, buf.String(), "missing")
}

func TestCheckColumns(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	require.NoError(t, checkColumns(context.Background(), cfg, memoryBackend(), &buf))
	assert.Contains(t, buf.String(), "All columns match")

	m := memoryBackend()
	m.Seed("Tasks", [][]string{{"Row Index", "Start"}})
	buf.Reset()
	assert.Error(t, checkColumns(context.Background(), cfg, m, &buf))
	assert.Contains(t, buf.String(), "(missing)")
}

func TestShowTasks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showTasks(context.Background(), config.Default(), memoryBackend(), &buf, 1))
	out := buf.String()
	assert.Contains(t, out, "Irrigate Field 3")
	assert.NotContains(t, out, "Harvest Apples")
	assert.Contains(t, out, "1 of 2 tasks")

	buf.Reset()
	require.NoError(t, showTasks(context.Background(), config.Default(), memoryBackend(), &buf, 0))
	assert.Contains(t, buf.String(), "Pending")
}

func TestShowUsers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, showUsers(context.Background(), config.Default(), memoryBackend(), &buf))
	assert.Contains(t, buf.String(), "123456")
	assert.Contains(t, buf.String(), "Alice Johnson")
	assert.Contains(t, buf.String(), "1 users")
}

func TestOpenLocalStores(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	cfg.Store.Driver = config.DriverMemory
	st, closeStore, err := openStore(ctx, cfg)
	require.NoError(t, err)
	titles, err := st.SheetTitles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tasks", "Users"}, titles)
	closeStore()

	cfg.Store.Driver = config.DriverSQLite
	cfg.Store.Path = filepath.Join(t.TempDir(), "tasks.db")
	st, closeStore, err = openStore(ctx, cfg)
	require.NoError(t, err)
	defer closeStore()
	rows, err := st.Get(ctx, "Tasks!A1:I1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Row Index", "Date Start", "Time Start", "Date Finish", "Time Finish", "Task Name", "Task Description", "Person Assigned", "Status"}}, rows)
}

func TestOpenSheetsWithoutID(t *testing.T) {
	ctx := context.Background()
	st, closeStore, err := openStore(ctx, config.Default())
	require.NoError(t, err)
	defer closeStore()
	_, err = st.Get(ctx, "Tasks!A1:I")
	assert.ErrorIs(t, err, store.ErrConfigurationMissing)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "out.yaml")

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, buf.String(), path)

	_, err := os.Stat(path)
	require.NoError(t, err)

	RootCmd.SetArgs([]string{"config", "init", path})
	assert.Error(t, RootCmd.Execute())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
