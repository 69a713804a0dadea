package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleTable(rows int) *CSVTable {
	records := [][]string{{"id", "name"}}
	for i := 0; i < rows; i++ {
		records = append(records, []string{fmt.Sprint(i), fmt.Sprintf("Person %d", i)})
	}
	return NewCSVTable(records)
}

func TestNewCSVTable(t *testing.T) {
	assert.Nil(t, NewCSVTable(nil))

	table := NewCSVTable([][]string{{"a", "b"}, {"1", "2", "3"}})
	assert.Equal(t, []string{"a", "b"}, table.Header)
	assert.Equal(t, 3, table.Columns())
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2", "3"}}, table.Records())
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	table := NewCSVTable([][]string{{"name"}, {"Alice"}, {"Bob"}, {"alicia"}})
	assert.Equal(t, []int{0, 2}, table.Search("ALI"))
	assert.Equal(t, []int{0, 1, 2}, table.Search("  "))
}

func TestPagePaginates(t *testing.T) {
	table := sampleTable(45)

	first := table.Page("", 0, 20)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 45, first.Matches)
	assert.Len(t, first.Rows, 20)

	last := table.Page("", 2, 20)
	assert.Len(t, last.Rows, 5)
	assert.Equal(t, "40", last.Rows[0][0])
}

func TestPageClampsIndex(t *testing.T) {
	table := sampleTable(5)
	assert.Equal(t, 0, table.Page("", 9, 20).Index)
	assert.Equal(t, 0, table.Page("", -1, 20).Index)

	empty := table.Page("nobody", 0, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Rows)
}
