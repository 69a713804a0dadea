package dialogs

import (
	"net/url"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// AppOpener opens directories through the platform URL handler.
type AppOpener struct {
	App fyne.App
}

func (o AppOpener) OpenDirectory(dir string) error {
	return o.App.OpenURL(DirectoryURL(dir))
}

// DirectoryURL builds a file:// URL for dir, made absolute first.
func DirectoryURL(dir string) *url.URL {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	path := filepath.ToSlash(dir)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &url.URL{Scheme: "file", Path: path}
}

func warningContent(message string) fyne.CanvasObject {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	icon := widget.NewIcon(theme.WarningIcon())
	return container.NewBorder(nil, nil, icon, nil, label)
}
