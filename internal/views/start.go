package views

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Start screen choices.
const (
	StartMailMerge = "Mail Merge"
	StartEditor    = "Text Editor"
	StartExit      = "Exit"
)

// StartView is the first screen: the logo and one button per tool.
type StartView struct {
	container *fyne.Container
	buttons   map[string]*widget.Button
	handlers  map[string]func()
}

// NewStartView builds the screen. A missing logo file leaves the space empty.
func NewStartView(logoPath string) *StartView {
	sv := &StartView{
		buttons:  make(map[string]*widget.Button),
		handlers: make(map[string]func()),
	}
	sv.buildLayout(logoPath)
	return sv
}

func (sv *StartView) buildLayout(logoPath string) {
	top := container.NewVBox()
	if _, err := os.Stat(logoPath); err == nil {
		logo := canvas.NewImageFromFile(logoPath)
		logo.FillMode = canvas.ImageFillContain
		logo.SetMinSize(fyne.NewSize(240, 240))
		top.Add(logo)
	}
	welcome := widget.NewLabelWithStyle("Welcome to EduMerge", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	top.Add(welcome)

	row := container.New(layout.NewGridLayoutWithColumns(3))
	for _, choice := range []string{StartMailMerge, StartEditor, StartExit} {
		btn := widget.NewButton(choice, func() {
			if fn := sv.handlers[choice]; fn != nil {
				fn()
			}
		})
		if choice != StartExit {
			btn.Importance = widget.HighImportance
		}
		sv.buttons[choice] = btn
		row.Add(btn)
	}

	sv.container = container.NewCenter(container.NewVBox(top, row))
}

// SetHandler registers fn for one of the start choices.
func (sv *StartView) SetHandler(choice string, fn func()) {
	sv.handlers[choice] = fn
}

// SetEnabled enables or disables every choice, e.g. while the mail merge runs.
func (sv *StartView) SetEnabled(enabled bool) {
	for _, btn := range sv.buttons {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// Button returns the button for choice, or nil.
func (sv *StartView) Button(choice string) *widget.Button {
	return sv.buttons[choice]
}

func (sv *StartView) GetContainer() *fyne.Container {
	return sv.container
}
