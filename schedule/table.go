// Package schedule reads the game schedule, selects completed games and writes
// the schedule back out with starter features attached.
package schedule

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrMissingColumn means a required schedule column is absent.
var ErrMissingColumn = errors.New("missing schedule column")

// Table is the schedule as read from disk, with every column kept.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV reads a schedule with a header row. Empty lines are skipped.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	t := &Table{Header: header}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
}

// Index returns the position of a column, or -1.
func (t *Table) Index(col string) int {
	for i, h := range t.Header {
		if h == col {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value at row/col, or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// WriteCSV writes the table unchanged.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}
