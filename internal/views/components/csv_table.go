package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"edumerge/internal/models"
)

// CSVTableView shows a CSV table one page at a time with a search box that
// filters rows on any cell.
type CSVTableView struct {
	container *fyne.Container
	search    *widget.Entry
	table     *widget.Table
	pageLabel *widget.Label
	prev      *widget.Button
	next      *widget.Button

	data     *models.CSVTable
	page     models.TablePage
	pageSize int
	query    string
}

func NewCSVTableView(pageSize int) *CSVTableView {
	if pageSize <= 0 {
		pageSize = 20
	}
	v := &CSVTableView{pageSize: pageSize}
	v.createComponents()
	v.buildLayout()
	v.render(0)
	return v
}

func (v *CSVTableView) createComponents() {
	v.search = widget.NewEntry()
	v.search.SetPlaceHolder("Search...")
	v.search.OnChanged = v.SetQuery

	v.table = widget.NewTable(
		func() (int, int) { return len(v.page.Rows), v.data.Columns() },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(v.cell(id.Row, id.Col))
		},
	)
	v.table.ShowHeaderRow = true
	v.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	v.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		label := o.(*widget.Label)
		if id.Row < 0 && v.data != nil && id.Col < len(v.data.Header) {
			label.SetText(v.data.Header[id.Col])
			return
		}
		label.SetText("")
	}

	v.pageLabel = widget.NewLabel("")
	v.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), v.PrevPage)
	v.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), v.NextPage)
}

func (v *CSVTableView) buildLayout() {
	pager := container.NewHBox(v.prev, v.pageLabel, v.next)
	v.container = container.NewBorder(v.search, container.NewCenter(pager), nil, nil, v.table)
}

func (v *CSVTableView) cell(row, col int) string {
	if row < 0 || row >= len(v.page.Rows) {
		return ""
	}
	cells := v.page.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// SetTable shows t from its first page and clears the search.
func (v *CSVTableView) SetTable(t *models.CSVTable) {
	v.data = t
	v.query = ""
	v.search.OnChanged = nil
	v.search.SetText("")
	v.search.OnChanged = v.SetQuery
	v.render(0)
}

// SetQuery filters the rows and returns to the first page.
func (v *CSVTableView) SetQuery(query string) {
	v.query = query
	v.render(0)
}

func (v *CSVTableView) NextPage() { v.render(v.page.Index + 1) }
func (v *CSVTableView) PrevPage() { v.render(v.page.Index - 1) }

// Page is the page currently shown.
func (v *CSVTableView) Page() models.TablePage {
	return v.page
}

func (v *CSVTableView) render(index int) {
	v.page = v.data.Page(v.query, index, v.pageSize)
	v.pageLabel.SetText(fmt.Sprintf("Page %d of %d (%d rows)", v.page.Index+1, v.page.TotalPages, v.page.Matches))

	if v.page.Index > 0 {
		v.prev.Enable()
	} else {
		v.prev.Disable()
	}
	if v.page.Index < v.page.TotalPages-1 {
		v.next.Enable()
	} else {
		v.next.Disable()
	}
	v.table.Refresh()
}

func (v *CSVTableView) GetContainer() *fyne.Container {
	return v.container
}
