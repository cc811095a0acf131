// Package sqlitestore keeps sheet cells in a local SQLite database so the API
// can run without a Google spreadsheet.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harrisonrobin/tasksheet/pkg/a1"
	"github.com/harrisonrobin/tasksheet/pkg/store"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Store is a store.Store backed by one cells table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error trying to open DB: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error trying to connect: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS sheets (
        title TEXT PRIMARY KEY
    );

    CREATE TABLE IF NOT EXISTS cells (
        sheet TEXT NOT NULL,
        line INTEGER NOT NULL,
        col INTEGER NOT NULL,
        value TEXT NOT NULL,
        PRIMARY KEY (sheet, line, col),
        FOREIGN KEY (sheet) REFERENCES sheets(title)
    );
    `
	_, err := db.Exec(schema)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Seed replaces the content of a sheet, creating it if needed.
func (s *Store) Seed(ctx context.Context, sheet string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO sheets (title) VALUES (?)`, sheet); err != nil {
		return errors.Wrap(err, "create sheet")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE sheet = ?`, sheet); err != nil {
		return errors.Wrap(err, "clear sheet")
	}
	if err := writeAt(ctx, tx, sheet, 1, 1, rows); err != nil {
		return err
	}
	return errors.WithStack(tx.Commit())
}

func (s *Store) SheetTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT title FROM sheets ORDER BY title`)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, errors.WithStack(err)
		}
		titles = append(titles, title)
	}
	return titles, errors.WithStack(rows.Err())
}

func (s *Store) Get(ctx context.Context, rng string) ([][]string, error) {
	r, err := a1.Parse(rng)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := s.checkSheet(ctx, s.db, r, rng); err != nil {
		return nil, err
	}

	query := `SELECT line, col, value FROM cells WHERE sheet = ? AND line >= ? AND (? = 0 OR line <= ?) ORDER BY line, col`
	rows, err := s.db.QueryContext(ctx, query, r.Sheet, r.StartRow, r.EndRow, r.EndRow)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer rows.Close()

	var (
		out  [][]string
		line = r.StartRow - 1
		cur  []string
	)
	flush := func(next int) {
		if line >= r.StartRow {
			out = append(out, store.Window(cur, r))
		}
		for line++; line < next; line++ {
			out = append(out, nil)
		}
		cur = nil
	}
	for rows.Next() {
		var (
			l, c  int
			value string
		)
		if err := rows.Scan(&l, &c, &value); err != nil {
			return nil, errors.WithStack(err)
		}
		if l != line {
			flush(l)
		}
		for len(cur) < c {
			cur = append(cur, "")
		}
		cur[c-1] = value
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WithStack(err)
	}
	if line >= r.StartRow {
		out = append(out, store.Window(cur, r))
	}
	return store.TrimRows(out), nil
}

func (s *Store) Update(ctx context.Context, rng string, values [][]string) error {
	r, err := a1.Parse(rng)
	if err != nil {
		return errors.WithStack(err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	defer tx.Rollback()

	if err := s.checkSheet(ctx, tx, r, rng); err != nil {
		return err
	}
	if err := writeAt(ctx, tx, r.Sheet, r.StartRow, r.StartCol, values); err != nil {
		return err
	}
	return errors.WithStack(tx.Commit())
}

// Append writes values on the lines following the last line holding a
// non-empty cell in the range's columns.
func (s *Store) Append(ctx context.Context, rng string, values [][]string) error {
	r, err := a1.Parse(rng)
	if err != nil {
		return errors.WithStack(err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.WithStack(err)
	}
	defer tx.Rollback()

	if err := s.checkSheet(ctx, tx, r, rng); err != nil {
		return err
	}
	var last sql.NullInt64
	query := `SELECT MAX(line) FROM cells WHERE sheet = ? AND line >= ? AND col >= ? AND (? = 0 OR col <= ?) AND value <> ''`
	if err := tx.QueryRowContext(ctx, query, r.Sheet, r.StartRow, r.StartCol, r.EndCol, r.EndCol).Scan(&last); err != nil {
		return errors.WithStack(err)
	}
	next := r.StartRow
	if last.Valid {
		next = int(last.Int64) + 1
	}
	if err := writeAt(ctx, tx, r.Sheet, next, r.StartCol, values); err != nil {
		return err
	}
	return errors.WithStack(tx.Commit())
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) checkSheet(ctx context.Context, q querier, r a1.Range, rng string) error {
	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheets WHERE title = ?`, r.Sheet).Scan(&n); err != nil {
		return errors.WithStack(err)
	}
	if n == 0 {
		return errors.Errorf("Unable to parse range: %s", rng)
	}
	return nil
}

func writeAt(ctx context.Context, tx *sql.Tx, sheet string, line, col int, values [][]string) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cells (sheet, line, col, value) VALUES (?, ?, ?, ?)
		ON CONFLICT (sheet, line, col) DO UPDATE SET value = excluded.value
	`)
	if err != nil {
		return errors.WithStack(err)
	}
	defer stmt.Close()

	for i, row := range values {
		for j, value := range row {
			if _, err := stmt.ExecContext(ctx, sheet, line+i, col+j, value); err != nil {
				return errors.Wrapf(err, "write %s", a1.Cell(sheet, col+j, line+i))
			}
		}
	}
	return nil
}
