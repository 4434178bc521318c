package collector

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNoGamelogTable means no table on the page looks like a pitching game log.
var ErrNoGamelogTable = errors.New("no game-log table on page")

// GamelogColumns is the width of the provider's pitching game-log table once
// unnamed columns are dropped.
const GamelogColumns = 17

var (
	dateLike = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}`)
	isoDate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// Table is an extracted HTML table with header text and cell text.
type Table struct {
	Header []string
	Rows   [][]string
}

// ExtractGamelog finds the game-log table in a rendered page. Columns with a
// blank header are dropped; the table must then have GamelogColumns columns
// and a first column holding dates. Only rows dated YYYY-MM-DD are kept, which
// removes season totals and repeated header rows.
func ExtractGamelog(html string) (Table, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Table{}, err
	}

	var found Table
	ok := false
	doc.Find("table").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		t, good := gamelogTable(sel)
		if good {
			found, ok = t, true
			return false
		}
		return true
	})
	if !ok {
		return Table{}, ErrNoGamelogTable
	}
	return found, nil
}

func gamelogTable(sel *goquery.Selection) (Table, bool) {
	header, body := headerAndBody(sel)
	if len(header) == 0 {
		return Table{}, false
	}

	keep := make([]int, 0, len(header))
	for i, h := range header {
		if h != "" {
			keep = append(keep, i)
		}
	}
	if len(keep) != GamelogColumns {
		return Table{}, false
	}

	t := Table{Header: make([]string, 0, len(keep))}
	for _, i := range keep {
		t.Header = append(t.Header, header[i])
	}

	firstDated := false
	for _, cells := range body {
		if len(cells) == 0 {
			continue
		}
		row := make([]string, len(keep))
		for j, i := range keep {
			if i < len(cells) {
				row[j] = cells[i]
			}
		}
		if dateLike.MatchString(row[0]) {
			firstDated = true
		}
		if isoDate.MatchString(row[0]) {
			t.Rows = append(t.Rows, row)
		}
	}
	if !firstDated {
		return Table{}, false
	}
	return t, true
}

// headerAndBody reads the last header row and the body rows of a table. A
// table without thead uses its first row as the header.
func headerAndBody(sel *goquery.Selection) ([]string, [][]string) {
	var header []string
	var body [][]string

	if head := sel.Find("thead tr"); head.Length() > 0 {
		header = cellTexts(head.Last())
		sel.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
			body = append(body, cellTexts(tr))
		})
		return header, body
	}

	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			header = cellTexts(tr)
			return
		}
		body = append(body, cellTexts(tr))
	})
	return header, body
}

func cellTexts(tr *goquery.Selection) []string {
	var out []string
	tr.Find("th, td").Each(func(_ int, c *goquery.Selection) {
		out = append(out, strings.TrimSpace(c.Text()))
	})
	return out
}
