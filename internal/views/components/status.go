package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"edumerge/internal/models"
)

// StatusText formats document counts for the status bar.
func StatusText(stats models.Stats) string {
	return fmt.Sprintf("Lines: %d | Characters: %d | Words: %d", stats.Lines, stats.Characters, stats.Words)
}

// StatusBar shows document counts on the left and the document kind on
// the right.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	kindLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel(StatusText(models.TextStats("")))
	sb.kindLabel = widget.NewLabelWithStyle(models.KindText.String(), fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		layout.NewSpacer(),
		sb.kindLabel,
	)
}

// SetStats updates the counts and the kind label.
func (sb *StatusBar) SetStats(stats models.Stats, kind models.Kind) {
	sb.statusLabel.SetText(StatusText(stats))
	sb.kindLabel.SetText(kind.String())
}

// GetStatus returns the current counts text.
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// GetKind returns the kind label text.
func (sb *StatusBar) GetKind() string {
	return sb.kindLabel.Text
}

func (sb *StatusBar) Reset() {
	sb.SetStats(models.TextStats(""), models.KindText)
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
