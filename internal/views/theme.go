package views

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"edumerge/internal/models"
	"edumerge/internal/views/components"
)

// EditorTheme is the default theme that also answers "color_#rrggbb" and
// "bg_#rrggbb" colour names, decoded from the name itself, and the heading
// size names of the preview.
type EditorTheme struct {
	fyne.Theme

	textSize  float32
	monospace bool
}

func NewEditorTheme() *EditorTheme {
	return &EditorTheme{Theme: theme.DefaultTheme()}
}

// WithFont returns a copy that draws text in f.
func (t *EditorTheme) WithFont(f components.FontSettings) *EditorTheme {
	c := *t
	c.textSize = f.Size
	c.monospace = f.Family == components.FontMonospace
	return &c
}

func (t *EditorTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if c, ok := models.ParseColorStyle(string(name)); ok {
		return c
	}
	return t.Theme.Color(name, variant)
}

func (t *EditorTheme) Font(style fyne.TextStyle) fyne.Resource {
	if t.monospace {
		style.Monospace = true
	}
	return t.Theme.Font(style)
}

func (t *EditorTheme) Size(name fyne.ThemeSizeName) float32 {
	base := t.textSize
	if base <= 0 {
		base = t.Theme.Size(theme.SizeNameText)
	}
	if name == theme.SizeNameText {
		return base
	}
	if size, ok := components.HeadingSize(base, name); ok {
		return size
	}
	return t.Theme.Size(name)
}
