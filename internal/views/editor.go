package views

import (
	"fmt"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"edumerge/internal/controllers"
	"edumerge/internal/dialogs"
	"edumerge/internal/models"
	"edumerge/internal/views/components"
)

var _ controllers.EditorView = (*EditorView)(nil)

// Ctrl (Cmd on macOS) shortcuts.
var shortcutActions = map[fyne.KeyName]components.Action{
	fyne.KeyN: components.ActionNew,
	fyne.KeyO: components.ActionOpen,
	fyne.KeyS: components.ActionSave,
	fyne.KeyB: components.ActionBold,
	fyne.KeyI: components.ActionItalic,
	fyne.KeyU: components.ActionUnderline,
}

// EditorView is the text editor window: sidebar, format bar, tabs for
// text, preview, CSV and PDF, and a status bar.
type EditorView struct {
	window        fyne.Window
	mainContainer *fyne.Container

	sidebar   *components.Sidebar
	formatBar *components.FormatBar
	statusBar *components.StatusBar
	entry     *shortcutEntry
	preview   *components.Preview
	csvTable  *components.CSVTableView
	pages     *components.PageDisplay

	tabs       *container.AppTabs
	fontTheme  *container.ThemeOverride
	textTab    *container.TabItem
	previewTab *container.TabItem
	csvTab     *container.TabItem
	pdfTab     *container.TabItem

	handlers           map[components.Action]func()
	textChangedHandler func(string)
}

func NewEditorView(window fyne.Window, csvPageSize int) *EditorView {
	view := &EditorView{
		window:   window,
		handlers: make(map[components.Action]func()),
	}

	view.initializeComponents(csvPageSize)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (ev *EditorView) initializeComponents(csvPageSize int) {
	ev.sidebar = components.NewSidebar()
	ev.formatBar = components.NewFormatBar()
	ev.statusBar = components.NewStatusBar()
	ev.entry = newShortcutEntry()
	ev.preview = components.NewPreview()
	ev.csvTable = components.NewCSVTableView(csvPageSize)
	ev.pages = components.NewPageDisplay()
}

func (ev *EditorView) buildLayout() {
	ev.textTab = container.NewTabItem("Text Editor", ev.entry)
	ev.previewTab = container.NewTabItem("Preview", ev.preview.GetContainer())
	ev.csvTab = container.NewTabItem("CSV Table", ev.csvTable.GetContainer())
	ev.pdfTab = container.NewTabItem("PDF Viewer", ev.pages.GetContainer())
	ev.tabs = container.NewAppTabs(ev.textTab, ev.previewTab, ev.csvTab, ev.pdfTab)
	ev.fontTheme = container.NewThemeOverride(ev.tabs, NewEditorTheme().WithFont(ev.formatBar.Font()))

	ev.mainContainer = container.NewBorder(
		ev.formatBar.GetContainer(),
		ev.statusBar.GetContainer(),
		container.NewVScroll(ev.sidebar.GetContainer()),
		nil,
		ev.fontTheme,
	)
}

func (ev *EditorView) setupEventHandlers() {
	for _, a := range components.SidebarActions {
		ev.sidebar.SetHandler(a, func() { ev.run(a) })
	}
	for _, a := range components.FormatActions {
		ev.formatBar.SetHandler(a, func() { ev.run(a) })
	}

	for key, a := range shortcutActions {
		sc := &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}
		ev.window.Canvas().AddShortcut(sc, func(fyne.Shortcut) { ev.run(a) })
		ev.entry.shortcuts[sc.ShortcutName()] = func() { ev.run(a) }
	}

	ev.formatBar.SetFontHandler(ev.applyFont)

	ev.entry.OnChanged = func(text string) {
		if ev.textChangedHandler != nil {
			ev.textChangedHandler(text)
		}
	}
}

// applyFont redraws the document tabs in f. Headings scale with it.
func (ev *EditorView) applyFont(f components.FontSettings) {
	ev.fontTheme.Theme = NewEditorTheme().WithFont(f)
	ev.fontTheme.Refresh()
	ev.tabs.Refresh()
	ev.entry.Refresh()
	ev.preview.Refresh()
}

// FontTheme is the theme the document tabs are drawn with.
func (ev *EditorView) FontTheme() fyne.Theme {
	return ev.fontTheme.Theme
}

func (ev *EditorView) run(a components.Action) {
	if fn := ev.handlers[a]; fn != nil {
		fn()
	}
}

// SetHandler registers fn for a sidebar, format bar or shortcut action.
func (ev *EditorView) SetHandler(action components.Action, fn func()) {
	ev.handlers[action] = fn
}

// SetTextChangedHandler is called with the full text after every edit.
func (ev *EditorView) SetTextChangedHandler(handler func(string)) {
	ev.textChangedHandler = handler
}

// Bind connects every editor action to c.
func (ev *EditorView) Bind(c *controllers.EditorController) {
	ev.SetHandler(components.ActionNew, c.NewDocument)
	ev.SetHandler(components.ActionOpen, c.Open)
	ev.SetHandler(components.ActionSave, c.Save)
	ev.SetHandler(components.ActionSaveAs, c.SaveAs)
	ev.SetHandler(components.ActionInsertImage, c.InsertImage)
	ev.SetHandler(components.ActionCSVTable, c.ShowCSVTable)
	ev.SetHandler(components.ActionExportDocx, c.ExportDocx)
	ev.SetHandler(components.ActionExportPDF, c.ExportPDF)
	ev.SetHandler(components.ActionBold, c.Bold)
	ev.SetHandler(components.ActionItalic, c.Italic)
	ev.SetHandler(components.ActionUnderline, c.Underline)
	ev.SetHandler(components.ActionHeading1, func() { c.ApplyHeading(models.StyleHeading1) })
	ev.SetHandler(components.ActionHeading2, func() { c.ApplyHeading(models.StyleHeading2) })
	ev.SetHandler(components.ActionHeading3, func() { c.ApplyHeading(models.StyleHeading3) })
	ev.SetHandler(components.ActionTextColor, c.ChooseTextColor)
	ev.SetHandler(components.ActionBackgroundColor, c.ChooseBackgroundColor)
	ev.SetTextChangedHandler(c.TextChanged)
	c.SetView(ev)
}

// UI update methods - called by controller

func (ev *EditorView) ShowText(text string) {
	fyne.Do(func() {
		if ev.entry.Text != text {
			ev.entry.SetText(text)
		}
		ev.formatBar.SetEnabled(true)
		ev.tabs.Select(ev.textTab)
	})
}

func (ev *EditorView) ShowTable(table *models.CSVTable) {
	fyne.Do(func() {
		ev.csvTable.SetTable(table)
		ev.formatBar.SetEnabled(false)
		ev.tabs.Select(ev.csvTab)
	})
}

func (ev *EditorView) ShowPages(pages []models.Page) {
	fyne.Do(func() {
		ev.pages.SetPages(pages)
		ev.formatBar.SetEnabled(false)
		ev.tabs.Select(ev.pdfTab)
	})
}

func (ev *EditorView) ShowPreview(text string, styles []models.StyleRange, images []models.ImageHandle) {
	fyne.Do(func() {
		ev.preview.Update(text, styles, images)
	})
}

func (ev *EditorView) SetTitle(title string) {
	fyne.Do(func() {
		ev.window.SetTitle(title)
	})
}

func (ev *EditorView) SetStatus(stats models.Stats, kind models.Kind) {
	fyne.Do(func() {
		ev.statusBar.SetStats(stats, kind)
	})
}

// Selection reads the entry's selection as rune offsets. It must run on
// the UI goroutine.
func (ev *EditorView) Selection() (int, int) {
	return selectionRange(ev.entry.Text, ev.entry.CursorRow, ev.entry.CursorColumn, ev.entry.SelectedText())
}

func (ev *EditorView) ShowBusy(message string) func() {
	var d dialog.Dialog
	fyne.Do(func() {
		bar := widget.NewProgressBarInfinite()
		d = dialog.NewCustomWithoutButtons("Please wait", container.NewVBox(widget.NewLabel(message), bar), ev.window)
		d.Show()
	})
	return func() {
		fyne.Do(func() {
			if d != nil {
				d.Hide()
			}
		})
	}
}

// ShowError displays an error dialog
func (ev *EditorView) ShowError(title string, err error) {
	fyne.Do(func() {
		dialog.ShowError(fmt.Errorf("%s: %w", title, err), ev.window)
	})
}

// ShowInfo displays an information dialog
func (ev *EditorView) ShowInfo(title, message string) {
	fyne.Do(func() {
		dialog.ShowInformation(title, message, ev.window)
	})
}

func (ev *EditorView) AskSaveChanges(onYes, onNo func()) {
	fyne.Do(func() {
		m := dialogs.NewButtonModal("Save Changes", "Do you want to save changes?", "Yes", "No", "Cancel")
		m.Show(ev.window, func(r dialogs.Result[struct{}]) {
			switch r.Button {
			case "Yes":
				onYes()
			case "No":
				onNo()
			}
		})
	})
}

func (ev *EditorView) PickOpenFile(title string, extensions []string, onPicked func(string)) {
	fyne.Do(func() {
		d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil {
				ev.ShowError(title, err)
				return
			}
			if rc == nil {
				return
			}
			path := rc.URI().Path()
			_ = rc.Close()
			onPicked(path)
		}, ev.window)
		d.SetTitleText(title)
		if len(extensions) > 0 {
			d.SetFilter(storage.NewExtensionFileFilter(extensions))
		}
		d.Resize(fyne.NewSize(800, 600))
		d.Show()
	})
}

// PickSaveFile asks for a target file. A name typed without an extension
// gets the extension of the suggested name.
func (ev *EditorView) PickSaveFile(title, name string, extensions []string, onPicked func(string)) {
	fyne.Do(func() {
		d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil {
				ev.ShowError(title, err)
				return
			}
			if wc == nil {
				return
			}
			path := wc.URI().Path()
			_ = wc.Close()
			if filepath.Ext(path) == "" {
				path += filepath.Ext(name)
			}
			onPicked(path)
		}, ev.window)
		d.SetTitleText(title)
		d.SetFileName(name)
		if len(extensions) > 0 {
			d.SetFilter(storage.NewExtensionFileFilter(extensions))
		}
		d.Resize(fyne.NewSize(800, 600))
		d.Show()
	})
}

func (ev *EditorView) PickColor(title string, onPicked func(color.Color)) {
	fyne.Do(func() {
		picker := dialog.NewColorPicker(title, "", onPicked, ev.window)
		picker.Advanced = true
		picker.Show()
	})
}

// GetContainer returns the main container
func (ev *EditorView) GetContainer() *fyne.Container {
	return ev.mainContainer
}

// shortcutEntry is a multi-line entry that runs editor shortcuts before
// its own, since a focused entry receives shortcuts instead of the canvas.
type shortcutEntry struct {
	widget.Entry
	shortcuts map[string]func()
}

func newShortcutEntry() *shortcutEntry {
	e := &shortcutEntry{shortcuts: make(map[string]func())}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapOff
	e.SetPlaceHolder("Start typing...")
	e.ExtendBaseWidget(e)
	return e
}

func (e *shortcutEntry) TypedShortcut(s fyne.Shortcut) {
	if fn, ok := e.shortcuts[s.ShortcutName()]; ok {
		fn()
		return
	}
	e.Entry.TypedShortcut(s)
}

// selectionRange converts the entry cursor (row and column) and selected
// text into a rune range of text. The selection sits either before or after
// the cursor depending on the drag direction.
func selectionRange(text string, row, col int, selected string) (int, int) {
	runes := []rune(text)
	cursor := 0
	for r := 0; r < row && cursor < len(runes); cursor++ {
		if runes[cursor] == '\n' {
			r++
		}
	}
	cursor = min(cursor+col, len(runes))

	sel := []rune(selected)
	n := len(sel)
	if n == 0 {
		return cursor, cursor
	}
	if cursor-n >= 0 && string(runes[cursor-n:cursor]) == selected {
		return cursor - n, cursor
	}
	if cursor+n <= len(runes) && string(runes[cursor:cursor+n]) == selected {
		return cursor, cursor + n
	}
	return cursor, cursor
}
