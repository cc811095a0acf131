package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *Memory {
	m := NewMemory()
	m.Seed("Tasks", [][]string{
		{"Row Index", "Date Start", "Status"},
		{"0", "2025-10-10", "Baru"},
		{"1", "2025-10-11", "Selesai"},
	})
	m.Seed("Users", [][]string{{"PIN", "Name"}, {"123456", "Alice Johnson"}})
	return m
}

func TestMemoryGet(t *testing.T) {
	ctx := context.Background()
	m := seeded()

	rows, err := m.Get(ctx, "Tasks!A1:I")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "2025-10-11", "Selesai"}, rows[2])

	rows, err = m.Get(ctx, "Users!A2:B")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"123456", "Alice Johnson"}}, rows)

	rows, err = m.Get(ctx, "Tasks!B2:B2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"2025-10-10"}}, rows)

	rows, err = m.Get(ctx, "Users!A5:B")
	require.NoError(t, err)
	assert.Nil(t, rows)

	_, err = m.Get(ctx, "Nope!A1:B")
	assert.Error(t, err)
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	m := seeded()

	require.NoError(t, m.Update(ctx, "Tasks!C3", [][]string{{"Dikerjakan"}}))
	assert.Equal(t, "Dikerjakan", m.Rows("Tasks")[2][2])

	require.NoError(t, m.Update(ctx, "Tasks!E6", [][]string{{"x"}}))
	rows := m.Rows("Tasks")
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"", "", "", "", "x"}, rows[5])

	rows, err := m.Get(ctx, "Tasks!A4:I")
	require.NoError(t, err)
	assert.Equal(t, [][]string{nil, nil, {"", "", "", "", "x"}}, rows)
}

func TestMemoryAppend(t *testing.T) {
	ctx := context.Background()
	m := seeded()

	require.NoError(t, m.Append(ctx, "Tasks!A1:I", [][]string{{"2", "2025-10-12", "Baru"}}))
	rows := m.Rows("Tasks")
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"2", "2025-10-12", "Baru"}, rows[3])

	m.Seed("Empty", nil)
	require.NoError(t, m.Append(ctx, "Empty!A1:B", [][]string{{"a", "b"}}))
	assert.Equal(t, [][]string{{"a", "b"}}, m.Rows("Empty"))
}

func TestMemorySheetTitles(t *testing.T) {
	titles, err := seeded().SheetTitles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tasks", "Users"}, titles)
}
