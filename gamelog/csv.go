package gamelog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Column names read from a game-log header. Matching ignores case and
// surrounding whitespace.
const (
	ColDate = "Date"
	ColIP   = "IP"
	ColER   = "ER"
	ColSO   = "SO"
	ColBB   = "BB"
	ColHR   = "HR"
	ColH    = "H"
	ColGS   = "GS"
)

var (
	statColumns = []string{ColIP, ColER, ColSO, ColBB, ColHR, ColH, ColGS}
	allColumns  = append([]string{ColDate}, statColumns...)
)

// columnIndex maps required columns to their position in a row.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := columnIndex{}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		for _, want := range allColumns {
			if _, seen := idx[want]; !seen && strings.EqualFold(h, want) {
				idx[want] = i
			}
		}
	}
	if _, ok := idx[ColDate]; !ok {
		return nil, ErrNoDateColumn
	}
	for _, c := range statColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	return idx, nil
}

// ReadCSV reads a game log with a header row. Rows with a blank date (totals,
// spacer rows) are skipped. Blank counting stats read as zero and a blank IP is
// recorded as missing.
func ReadCSV(r io.Reader) ([]Appearance, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoDateColumn
	}
	if err != nil {
		return nil, err
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var out []Appearance
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		line++

		a, ok, err := parseRow(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !ok {
			continue
		}
		out = append(out, a)
	}
}

func parseRow(row []string, idx columnIndex) (Appearance, bool, error) {
	cell := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	ds := cell(ColDate)
	if ds == "" {
		return Appearance{}, false, nil
	}
	d, err := ParseDate(ds)
	if err != nil {
		return Appearance{}, false, err
	}

	a := Appearance{Date: d}

	if ip := cell(ColIP); ip == "" {
		a.IPMissing = true
	} else {
		a.IP, err = strconv.ParseFloat(ip, 64)
		if err != nil {
			return Appearance{}, false, fmt.Errorf("bad IP %q: %w", ip, err)
		}
		if math.IsNaN(a.IP) {
			a.IPMissing = true
		}
	}

	counts := []struct {
		col string
		dst *int
	}{
		{ColER, &a.ER}, {ColSO, &a.SO}, {ColBB, &a.BB},
		{ColHR, &a.HR}, {ColH, &a.H}, {ColGS, &a.GS},
	}
	for _, c := range counts {
		n, err := parseCount(cell(c.col))
		if err != nil {
			return Appearance{}, false, fmt.Errorf("bad %s: %w", c.col, err)
		}
		*c.dst = n
	}
	return a, true, nil
}

// parseCount accepts integers and whole-valued floats ("3", "3.0").
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// WriteCSV writes a raw table (header plus rows) as CSV.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
