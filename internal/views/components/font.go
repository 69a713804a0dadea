package components

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"edumerge/internal/models"
)

// Text size range of the size spinner, in points.
const (
	DefaultFontSize = 14
	MinFontSize     = 8
	MaxFontSize     = 72
)

// Font families the editor can draw. Fyne renders only bundled fonts, so
// the choice is between the theme's regular and monospace faces.
const (
	FontDefault   = "Default"
	FontMonospace = "Monospace"
)

var FontFamilies = []string{FontDefault, FontMonospace}

// Theme size names for heading text. The editor theme sizes them relative
// to the chosen text size.
const (
	SizeNameHeading1 fyne.ThemeSizeName = "edumerge.heading1"
	SizeNameHeading2 fyne.ThemeSizeName = "edumerge.heading2"
	SizeNameHeading3 fyne.ThemeSizeName = "edumerge.heading3"
)

var headingSteps = map[fyne.ThemeSizeName]float32{
	SizeNameHeading1: 20,
	SizeNameHeading2: 12,
	SizeNameHeading3: 6,
}

var headingSizeNames = map[string]fyne.ThemeSizeName{
	models.StyleHeading1: SizeNameHeading1,
	models.StyleHeading2: SizeNameHeading2,
	models.StyleHeading3: SizeNameHeading3,
}

// HeadingSizeName returns the size name a heading style is drawn at.
func HeadingSizeName(style string) fyne.ThemeSizeName {
	if name, ok := headingSizeNames[style]; ok {
		return name
	}
	return theme.SizeNameText
}

// HeadingSize is base plus the step for a heading size name.
func HeadingSize(base float32, name fyne.ThemeSizeName) (float32, bool) {
	step, ok := headingSteps[name]
	return base + step, ok
}

// FontSettings is the family and size chosen in the format bar.
type FontSettings struct {
	Family string
	Size   float32
}

func DefaultFont() FontSettings {
	return FontSettings{Family: FontDefault, Size: DefaultFontSize}
}

// SizeSpinner picks an integer between a minimum and a maximum with minus
// and plus buttons.
type SizeSpinner struct {
	container *fyne.Container
	label     *widget.Label
	down      *widget.Button
	up        *widget.Button

	value, min, max int

	OnChanged func(int)
}

func NewSizeSpinner(value, minValue, maxValue int) *SizeSpinner {
	s := &SizeSpinner{min: minValue, max: maxValue}
	s.label = widget.NewLabel("")
	s.down = widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() { s.SetValue(s.value - 1) })
	s.up = widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() { s.SetValue(s.value + 1) })
	s.container = container.NewHBox(s.down, s.label, s.up)
	s.set(value)
	return s
}

// SetValue clamps v to the range and calls OnChanged when it changed.
func (s *SizeSpinner) SetValue(v int) {
	if !s.set(v) {
		return
	}
	if s.OnChanged != nil {
		s.OnChanged(s.value)
	}
}

func (s *SizeSpinner) set(v int) bool {
	v = max(s.min, min(s.max, v))
	if v == s.value && s.label.Text != "" {
		return false
	}
	s.value = v
	s.label.SetText(strconv.Itoa(v))
	return true
}

func (s *SizeSpinner) Value() int {
	return s.value
}

func (s *SizeSpinner) Enable() {
	s.down.Enable()
	s.up.Enable()
}

func (s *SizeSpinner) Disable() {
	s.down.Disable()
	s.up.Disable()
}

func (s *SizeSpinner) GetContainer() *fyne.Container {
	return s.container
}
