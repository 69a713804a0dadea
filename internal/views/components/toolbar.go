package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Action names a user command offered by the sidebar or the format bar.
type Action string

const (
	ActionNew             Action = "New Document"
	ActionOpen            Action = "Open File"
	ActionSave            Action = "Save"
	ActionSaveAs          Action = "Save As"
	ActionInsertImage     Action = "Insert Image"
	ActionCSVTable        Action = "CSV Table"
	ActionExportDocx      Action = "Export DOCX"
	ActionExportPDF       Action = "Export PDF"
	ActionBold            Action = "B"
	ActionItalic          Action = "I"
	ActionUnderline       Action = "U"
	ActionHeading1        Action = "H1"
	ActionHeading2        Action = "H2"
	ActionHeading3        Action = "H3"
	ActionTextColor       Action = "Text Color"
	ActionBackgroundColor Action = "Background"
)

// SidebarActions and FormatActions list the commands each bar offers.
var (
	SidebarActions = []Action{
		ActionNew, ActionOpen, ActionSave, ActionSaveAs,
		ActionInsertImage, ActionCSVTable,
		ActionExportDocx, ActionExportPDF,
	}
	FormatActions = []Action{
		ActionBold, ActionItalic, ActionUnderline,
		ActionHeading1, ActionHeading2, ActionHeading3,
		ActionTextColor, ActionBackgroundColor,
	}
)

// handlers routes button taps to whatever the owner registered.
type handlers map[Action]func()

func (h handlers) run(a Action) {
	if fn := h[a]; fn != nil {
		fn()
	}
}

// Sidebar holds the file, insert and export commands.
type Sidebar struct {
	container *fyne.Container
	buttons   map[Action]*widget.Button
	handlers  handlers
}

func NewSidebar() *Sidebar {
	s := &Sidebar{
		buttons:  make(map[Action]*widget.Button),
		handlers: make(handlers),
	}
	s.createComponents()
	s.buildLayout()
	return s
}

func (s *Sidebar) createComponents() {
	icons := map[Action]fyne.Resource{
		ActionNew:         theme.DocumentCreateIcon(),
		ActionOpen:        theme.FolderOpenIcon(),
		ActionSave:        theme.DocumentSaveIcon(),
		ActionSaveAs:      theme.DocumentSaveIcon(),
		ActionInsertImage: theme.FileImageIcon(),
		ActionCSVTable:    theme.GridIcon(),
		ActionExportDocx:  theme.UploadIcon(),
		ActionExportPDF:   theme.UploadIcon(),
	}
	for action, icon := range icons {
		btn := widget.NewButtonWithIcon(string(action), icon, nil)
		btn.Alignment = widget.ButtonAlignLeading
		btn.OnTapped = func() { s.handlers.run(action) }
		s.buttons[action] = btn
	}
	s.buttons[ActionSave].Importance = widget.HighImportance
}

func (s *Sidebar) buildLayout() {
	title := canvas.NewText("EduText", theme.Color(theme.ColorNameForeground))
	title.TextSize = 22
	title.TextStyle = fyne.TextStyle{Bold: true}
	subtitle := widget.NewLabel("A Student Software")
	subtitle.Importance = widget.LowImportance

	s.container = container.NewVBox(
		container.NewCenter(title),
		container.NewCenter(subtitle),
		widget.NewSeparator(),
		sectionHeader("FILE OPERATIONS"),
		s.buttons[ActionNew],
		s.buttons[ActionOpen],
		s.buttons[ActionSave],
		s.buttons[ActionSaveAs],
		sectionHeader("INSERT CONTENT"),
		s.buttons[ActionInsertImage],
		s.buttons[ActionCSVTable],
		sectionHeader("EXPORT OPTIONS"),
		s.buttons[ActionExportDocx],
		s.buttons[ActionExportPDF],
	)
}

func sectionHeader(text string) fyne.CanvasObject {
	label := widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	label.Importance = widget.LowImportance
	return label
}

// SetHandler registers fn for action.
func (s *Sidebar) SetHandler(action Action, fn func()) {
	s.handlers[action] = fn
}

// Button returns the button for action, or nil.
func (s *Sidebar) Button(action Action) *widget.Button {
	return s.buttons[action]
}

func (s *Sidebar) GetContainer() *fyne.Container {
	return s.container
}

// FormatBar holds the font, style, heading and colour commands.
type FormatBar struct {
	container *fyne.Container
	buttons   map[Action]*widget.Button
	handlers  handlers

	family *widget.Select
	size   *SizeSpinner
	onFont func(FontSettings)
}

func NewFormatBar() *FormatBar {
	f := &FormatBar{
		buttons:  make(map[Action]*widget.Button),
		handlers: make(handlers),
	}
	f.createComponents()
	f.buildLayout()
	return f
}

func (f *FormatBar) createComponents() {
	for _, action := range []Action{
		ActionBold, ActionItalic, ActionUnderline,
		ActionHeading1, ActionHeading2, ActionHeading3,
	} {
		btn := widget.NewButton(string(action), nil)
		btn.OnTapped = func() { f.handlers.run(action) }
		f.buttons[action] = btn
	}
	for _, action := range []Action{ActionTextColor, ActionBackgroundColor} {
		btn := widget.NewButtonWithIcon(string(action), theme.ColorPaletteIcon(), nil)
		btn.OnTapped = func() { f.handlers.run(action) }
		f.buttons[action] = btn
	}
	f.buttons[ActionHeading1].Importance = widget.DangerImportance
	f.buttons[ActionHeading2].Importance = widget.HighImportance
	f.buttons[ActionHeading3].Importance = widget.SuccessImportance

	f.family = widget.NewSelect(FontFamilies, func(string) { f.fontChanged() })
	f.family.SetSelected(FontDefault)
	f.size = NewSizeSpinner(DefaultFontSize, MinFontSize, MaxFontSize)
	f.size.OnChanged = func(int) { f.fontChanged() }
}

func (f *FormatBar) fontChanged() {
	if f.onFont != nil {
		f.onFont(f.Font())
	}
}

func (f *FormatBar) buildLayout() {
	group := func(title string, actions ...Action) fyne.CanvasObject {
		row := container.NewHBox()
		for _, a := range actions {
			row.Add(f.buttons[a])
		}
		return container.NewVBox(widget.NewLabel(title), row)
	}

	f.container = container.NewHBox(
		container.NewVBox(widget.NewLabel("Font"), container.NewHBox(f.family, f.size.GetContainer())),
		widget.NewSeparator(),
		group("Style", ActionBold, ActionItalic, ActionUnderline),
		widget.NewSeparator(),
		group("Headings", ActionHeading1, ActionHeading2, ActionHeading3),
		widget.NewSeparator(),
		group("Colors", ActionTextColor, ActionBackgroundColor),
	)
}

// SetHandler registers fn for action.
func (f *FormatBar) SetHandler(action Action, fn func()) {
	f.handlers[action] = fn
}

// SetFontHandler registers fn to run whenever the family or size changes.
func (f *FormatBar) SetFontHandler(fn func(FontSettings)) {
	f.onFont = fn
}

// Font returns the current family and size.
func (f *FormatBar) Font() FontSettings {
	return FontSettings{Family: f.family.Selected, Size: float32(f.size.Value())}
}

func (f *FormatBar) SetFamily(family string) {
	f.family.SetSelected(family)
}

func (f *FormatBar) SizeSpinner() *SizeSpinner {
	return f.size
}

// Button returns the button for action, or nil.
func (f *FormatBar) Button(action Action) *widget.Button {
	return f.buttons[action]
}

// SetEnabled turns formatting on for text documents and off otherwise.
func (f *FormatBar) SetEnabled(enabled bool) {
	for _, btn := range f.buttons {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
	if enabled {
		f.family.Enable()
		f.size.Enable()
	} else {
		f.family.Disable()
		f.size.Disable()
	}
}

func (f *FormatBar) GetContainer() *fyne.Container {
	return f.container
}
