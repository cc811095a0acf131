package store

import (
	"context"
	"sort"
	"sync"

	"github.com/harrisonrobin/tasksheet/pkg/a1"
	"github.com/pkg/errors"
)

// Memory is an in-process Store. Sheets must be created with Seed before they
// can be read or written, mirroring a spreadsheet with a fixed set of tabs.
type Memory struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{sheets: make(map[string][][]string)}
}

// Seed replaces the content of a sheet, creating it if needed.
func (m *Memory) Seed(sheet string, rows [][]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet] = cloneRows(rows)
}

// Rows returns a copy of every row stored on a sheet.
func (m *Memory) Rows(sheet string) [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneRows(m.sheets[sheet])
}

func (m *Memory) SheetTitles(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	titles := make([]string, 0, len(m.sheets))
	for name := range m.sheets {
		titles = append(titles, name)
	}
	sort.Strings(titles)
	return titles, nil
}

func (m *Memory) Get(ctx context.Context, rng string) ([][]string, error) {
	r, err := a1.Parse(rng)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	grid, ok := m.sheets[r.Sheet]
	if !ok {
		return nil, errors.Errorf("Unable to parse range: %s", rng)
	}

	last := len(grid)
	if r.EndRow != 0 && r.EndRow < last {
		last = r.EndRow
	}
	var out [][]string
	for line := r.StartRow; line <= last; line++ {
		out = append(out, Window(grid[line-1], r))
	}
	return TrimRows(out), nil
}

func (m *Memory) Update(ctx context.Context, rng string, values [][]string) error {
	r, err := a1.Parse(rng)
	if err != nil {
		return errors.WithStack(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	grid, ok := m.sheets[r.Sheet]
	if !ok {
		return errors.Errorf("Unable to parse range: %s", rng)
	}
	m.sheets[r.Sheet] = writeAt(grid, r.StartRow, r.StartCol, values)
	return nil
}

// Append writes values on the lines following the last non-empty row of the
// range's columns.
func (m *Memory) Append(ctx context.Context, rng string, values [][]string) error {
	r, err := a1.Parse(rng)
	if err != nil {
		return errors.WithStack(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	grid, ok := m.sheets[r.Sheet]
	if !ok {
		return errors.Errorf("Unable to parse range: %s", rng)
	}
	next := r.StartRow
	for line := len(grid); line >= r.StartRow; line-- {
		if len(Window(grid[line-1], r)) > 0 {
			next = line + 1
			break
		}
	}
	m.sheets[r.Sheet] = writeAt(grid, next, r.StartCol, values)
	return nil
}

// Window cuts a row down to the range's columns, trimming trailing empty cells.
func Window(row []string, r a1.Range) []string {
	from := r.StartCol - 1
	if from >= len(row) {
		return nil
	}
	to := len(row)
	if r.EndCol != 0 && r.EndCol < to {
		to = r.EndCol
	}
	return trimCells(append([]string(nil), row[from:to]...))
}

// TrimRows drops trailing empty rows; an all-empty result is nil.
func TrimRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	if end == 0 {
		return nil
	}
	return rows[:end]
}

func trimCells(row []string) []string {
	end := len(row)
	for end > 0 && row[end-1] == "" {
		end--
	}
	if end == 0 {
		return nil
	}
	return row[:end]
}

func writeAt(grid [][]string, line, col int, values [][]string) [][]string {
	for i, vals := range values {
		idx := line - 1 + i
		for len(grid) <= idx {
			grid = append(grid, nil)
		}
		row := grid[idx]
		for len(row) < col-1+len(vals) {
			row = append(row, "")
		}
		copy(row[col-1:], vals)
		grid[idx] = row
	}
	return grid
}

func cloneRows(rows [][]string) [][]string {
	if rows == nil {
		return nil
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
