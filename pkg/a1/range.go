// Package a1 parses and formats spreadsheet ranges in A1 notation
// ("Tasks!A1:I", "Users!A2:B", "Tasks!I4").
package a1

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is a rectangular block of cells on a named sheet. Columns and rows are
// 1-based; an End of 0 leaves that dimension open-ended.
type Range struct {
	Sheet    string
	StartCol int
	StartRow int
	EndCol   int
	EndRow   int
}

// Parse reads an A1 range such as "Tasks!A1:I" or "Tasks!I4". A bare sheet name
// addresses the whole sheet.
func Parse(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	var r Range
	sheet, cells, found := cutLast(s, "!")
	if !found {
		r.Sheet = unquote(s)
		r.StartCol, r.StartRow = 1, 1
		return r, nil
	}
	r.Sheet = unquote(sheet)
	if r.Sheet == "" {
		return Range{}, fmt.Errorf("range %q has no sheet name", s)
	}

	start, end, isSpan := strings.Cut(cells, ":")
	var err error
	r.StartCol, r.StartRow, err = parseCell(start)
	if err != nil {
		return Range{}, fmt.Errorf("range %q: %w", s, err)
	}
	if isSpan {
		r.EndCol, r.EndRow, err = parseCell(end)
		if err != nil {
			return Range{}, fmt.Errorf("range %q: %w", s, err)
		}
	} else {
		r.EndCol, r.EndRow = r.StartCol, r.StartRow
	}
	if r.StartCol == 0 {
		r.StartCol = 1
	}
	if r.StartRow == 0 {
		r.StartRow = 1
	}
	if (r.EndCol != 0 && r.EndCol < r.StartCol) || (r.EndRow != 0 && r.EndRow < r.StartRow) {
		return Range{}, fmt.Errorf("range %q ends before it starts", s)
	}
	return r, nil
}

// MustParse is Parse for ranges known at compile time.
func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Cell addresses a single cell.
func Cell(sheet string, col, row int) Range {
	return Range{Sheet: sheet, StartCol: col, StartRow: row, EndCol: col, EndRow: row}
}

// String formats the range back into A1 notation.
func (r Range) String() string {
	var b strings.Builder
	b.WriteString(quote(r.Sheet))
	b.WriteByte('!')
	b.WriteString(ColumnLetter(r.StartCol))
	b.WriteString(strconv.Itoa(r.StartRow))
	if r.EndCol == r.StartCol && r.EndRow == r.StartRow {
		return b.String()
	}
	b.WriteByte(':')
	if r.EndCol > 0 {
		b.WriteString(ColumnLetter(r.EndCol))
	}
	if r.EndRow > 0 {
		b.WriteString(strconv.Itoa(r.EndRow))
	}
	return b.String()
}

// Width returns the number of columns, or 0 when open-ended.
func (r Range) Width() int {
	if r.EndCol == 0 {
		return 0
	}
	return r.EndCol - r.StartCol + 1
}

// ColumnLetter converts a 1-based column number to its letters (1 → A, 27 → AA).
func ColumnLetter(col int) string {
	if col <= 0 {
		return ""
	}
	var letters []byte
	for col > 0 {
		col--
		letters = append([]byte{byte('A' + col%26)}, letters...)
		col /= 26
	}
	return string(letters)
}

// ColumnNumber converts column letters to a 1-based column number.
func ColumnNumber(letters string) (int, error) {
	if letters == "" {
		return 0, fmt.Errorf("empty column")
	}
	n := 0
	for _, c := range strings.ToUpper(letters) {
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("invalid column %q", letters)
		}
		n = n*26 + int(c-'A'+1)
	}
	return n, nil
}

// parseCell splits "I4", "I" or "4" into column and row; missing parts are 0.
func parseCell(s string) (col, row int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i > 0 {
		col, err = ColumnNumber(s[:i])
		if err != nil {
			return 0, 0, err
		}
	}
	if i < len(s) {
		row, err = strconv.Atoi(s[i:])
		if err != nil || row <= 0 {
			return 0, 0, fmt.Errorf("invalid row in %q", s)
		}
	}
	return col, row, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func cutLast(s, sep string) (before, after string, found bool) {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func unquote(sheet string) string {
	if len(sheet) >= 2 && sheet[0] == '\'' && sheet[len(sheet)-1] == '\'' {
		return strings.ReplaceAll(sheet[1:len(sheet)-1], "''", "'")
	}
	return sheet
}

func quote(sheet string) string {
	for _, c := range sheet {
		if !(c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')) {
			return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
		}
	}
	return sheet
}
