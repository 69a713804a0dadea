package models

import "strings"

// CSVTable is a parsed CSV file: the first record is the header.
type CSVTable struct {
	Header []string
	Rows   [][]string
}

// NewCSVTable splits records into header and data rows. It returns nil
// for an empty file.
func NewCSVTable(records [][]string) *CSVTable {
	if len(records) == 0 {
		return nil
	}
	return &CSVTable{
		Header: records[0],
		Rows:   records[1:],
	}
}

// Records returns header and rows in file order, ready to be written back.
func (t *CSVTable) Records() [][]string {
	if t == nil {
		return nil
	}
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	return append(records, t.Rows...)
}

// Columns is the widest of the header and every row.
func (t *CSVTable) Columns() int {
	if t == nil {
		return 0
	}
	n := len(t.Header)
	for _, row := range t.Rows {
		if len(row) > n {
			n = len(row)
		}
	}
	return n
}

// Search returns the indexes of rows where any cell contains query,
// ignoring case. An empty query matches every row.
func (t *CSVTable) Search(query string) []int {
	if t == nil {
		return nil
	}
	query = strings.ToLower(strings.TrimSpace(query))

	matches := make([]int, 0, len(t.Rows))
	for i, row := range t.Rows {
		if query == "" {
			matches = append(matches, i)
			continue
		}
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), query) {
				matches = append(matches, i)
				break
			}
		}
	}
	return matches
}

// TablePage is one page of search results.
type TablePage struct {
	Rows       [][]string
	Index      int
	TotalPages int
	Matches    int
}

// Page returns the zero-based page of rows matching query. index is clamped
// into range, and there is always at least one (possibly empty) page.
func (t *CSVTable) Page(query string, index, size int) TablePage {
	if size <= 0 {
		size = 1
	}
	matches := t.Search(query)

	total := (len(matches) + size - 1) / size
	if total == 0 {
		total = 1
	}
	if index < 0 {
		index = 0
	}
	if index >= total {
		index = total - 1
	}

	start := index * size
	end := start + size
	if end > len(matches) {
		end = len(matches)
	}

	rows := make([][]string, 0, end-start)
	for _, i := range matches[start:end] {
		rows = append(rows, t.Rows[i])
	}
	return TablePage{
		Rows:       rows,
		Index:      index,
		TotalPages: total,
		Matches:    len(matches),
	}
}
