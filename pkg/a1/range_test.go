package a1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := map[string]Range{
		"Tasks!A1:I":     {Sheet: "Tasks", StartCol: 1, StartRow: 1, EndCol: 9},
		"Users!A2:B":     {Sheet: "Users", StartCol: 1, StartRow: 2, EndCol: 2},
		"Tasks!I4":       {Sheet: "Tasks", StartCol: 9, StartRow: 4, EndCol: 9, EndRow: 4},
		"Tasks!A1:I3":    {Sheet: "Tasks", StartCol: 1, StartRow: 1, EndCol: 9, EndRow: 3},
		"Tasks!A:A":      {Sheet: "Tasks", StartCol: 1, StartRow: 1, EndCol: 1},
		"'My Sheet'!B2":  {Sheet: "My Sheet", StartCol: 2, StartRow: 2, EndCol: 2, EndRow: 2},
		"Tasks":          {Sheet: "Tasks", StartCol: 1, StartRow: 1},
		"Tasks!AA10:AB":  {Sheet: "Tasks", StartCol: 27, StartRow: 10, EndCol: 28},
	}
	for in, want := range cases {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"", "!A1", "Tasks!", "Tasks!A0", "Tasks!B1:A1", "Tasks!A1:A-3", "Tasks!1A"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, in := range []string{"Tasks!A1:I", "Users!A2:B", "Tasks!I4", "Tasks!A1:I3", "'My Sheet'!B2"} {
		r, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, in, r.String())
	}
	assert.Equal(t, "Tasks!I6", Cell("Tasks", 9, 6).String())
}

func TestColumnLetters(t *testing.T) {
	cases := map[int]string{1: "A", 9: "I", 26: "Z", 27: "AA", 52: "AZ", 703: "AAA"}
	for n, letters := range cases {
		assert.Equal(t, letters, ColumnLetter(n))
		got, err := ColumnNumber(letters)
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}
	assert.Equal(t, "", ColumnLetter(0))
	_, err := ColumnNumber("A1")
	assert.Error(t, err)
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 9, MustParse("Tasks!A1:I").Width())
	assert.Equal(t, 0, MustParse("Tasks").Width())
}
