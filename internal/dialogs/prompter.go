package dialogs

import (
	"context"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// Title used by every mail merge prompt.
const Title = "Mail Merge"

// Prompter asks the user questions and blocks until they are answered.
// Button results are "" when a prompt is dismissed; path results are "" when
// a picker is cancelled.
type Prompter interface {
	Choose(ctx context.Context, message string, buttons ...string) (string, error)
	AskInt(ctx context.Context, message string, lo, hi int, buttons ...string) (int, string, error)
	AskString(ctx context.Context, message string, buttons ...string) (string, string, error)
	AskText(ctx context.Context, message string, buttons ...string) (string, string, error)
	Info(ctx context.Context, message string) error
	Warn(ctx context.Context, message string) error
	OpenFile(ctx context.Context, title string, extensions []string) (string, error)
	OpenFolder(ctx context.Context, title string) (string, error)
}

var _ Prompter = (*FynePrompter)(nil)

// FynePrompter shows wizard prompts as Fyne dialogs on parent and blocks
// the calling goroutine until each one closes. It must not be used from
// the UI goroutine.
type FynePrompter struct {
	parent     fyne.Window
	decoration string
	cancel     []string
}

// NewFynePrompter creates a prompter. decoration is the path of an image
// shown above each message; a missing file is ignored. Pressing one of
// cancel skips input validation.
func NewFynePrompter(parent fyne.Window, decoration string, cancel ...string) *FynePrompter {
	return &FynePrompter{parent: parent, decoration: decoration, cancel: cancel}
}

func (p *FynePrompter) image() fyne.CanvasObject {
	if p.decoration == "" {
		return nil
	}
	if _, err := os.Stat(p.decoration); err != nil {
		return nil
	}
	img := canvas.NewImageFromFile(p.decoration)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(144, 144))
	return img
}

// Choose asks the user to press one of buttons and returns its label, or
// "" when the prompt was dismissed.
func (p *FynePrompter) Choose(ctx context.Context, message string, buttons ...string) (string, error) {
	m := NewButtonModal(Title, message, buttons...)
	m.Decoration = p.image()
	r, err := m.Run(ctx, p.parent)
	return r.Button, err
}

// AskInt shows a bounded spinner starting at lo.
func (p *FynePrompter) AskInt(ctx context.Context, message string, lo, hi int, buttons ...string) (int, string, error) {
	m := &Modal[int]{
		Title:         Title,
		Message:       message,
		Buttons:       buttons,
		CancelButtons: p.cancel,
		Input:         NewIntInput(lo, hi, lo),
		Decoration:    p.image(),
	}
	r, err := m.Run(ctx, p.parent)
	return r.Value, r.Button, err
}

// AskString shows a single line entry.
func (p *FynePrompter) AskString(ctx context.Context, message string, buttons ...string) (string, string, error) {
	m := &Modal[string]{
		Title:         Title,
		Message:       message,
		Buttons:       buttons,
		CancelButtons: p.cancel,
		Input:         NewStringInput(""),
		Decoration:    p.image(),
	}
	r, err := m.Run(ctx, p.parent)
	return r.Value, r.Button, err
}

// AskText shows a multi-line entry.
func (p *FynePrompter) AskText(ctx context.Context, message string, buttons ...string) (string, string, error) {
	m := &Modal[string]{
		Title:         Title,
		Message:       message,
		Buttons:       buttons,
		CancelButtons: p.cancel,
		Input:         NewTextInput(),
	}
	r, err := m.Run(ctx, p.parent)
	return r.Value, r.Button, err
}

// Info shows a message and waits for it to be acknowledged.
func (p *FynePrompter) Info(ctx context.Context, message string) error {
	return p.wait(ctx, func(done func()) dialog.Dialog {
		d := dialog.NewInformation(Title, message, p.parent)
		d.SetOnClosed(done)
		return d
	})
}

// Warn shows a warning and waits for it to be acknowledged.
func (p *FynePrompter) Warn(ctx context.Context, message string) error {
	return p.wait(ctx, func(done func()) dialog.Dialog {
		d := dialog.NewCustom("Warning", "OK", warningContent(message), p.parent)
		d.SetOnClosed(done)
		return d
	})
}

// OpenFile asks for an existing file with one of extensions. It returns ""
// when the user cancels.
func (p *FynePrompter) OpenFile(ctx context.Context, title string, extensions []string) (string, error) {
	paths := make(chan string, 1)
	var d *dialog.FileDialog
	fyne.Do(func() {
		d = dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				paths <- ""
				return
			}
			path := reader.URI().Path()
			_ = reader.Close()
			paths <- path
		}, p.parent)
		d.SetTitleText(title)
		if len(extensions) > 0 {
			d.SetFilter(storage.NewExtensionFileFilter(extensions))
		}
		d.Show()
	})
	return awaitPath(ctx, paths, func() { d.Hide() })
}

// OpenFolder asks for a directory. It returns "" when the user cancels.
func (p *FynePrompter) OpenFolder(ctx context.Context, title string) (string, error) {
	paths := make(chan string, 1)
	var d *dialog.FileDialog
	fyne.Do(func() {
		d = dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				paths <- ""
				return
			}
			paths <- uri.Path()
		}, p.parent)
		d.SetTitleText(title)
		d.Show()
	})
	return awaitPath(ctx, paths, func() { d.Hide() })
}

func awaitPath(ctx context.Context, paths <-chan string, hide func()) (string, error) {
	select {
	case path := <-paths:
		return path, nil
	case <-ctx.Done():
		fyne.Do(hide)
		return "", ctx.Err()
	}
}

func (p *FynePrompter) wait(ctx context.Context, build func(done func()) dialog.Dialog) error {
	closed := make(chan struct{})
	var d dialog.Dialog
	fyne.Do(func() {
		d = build(func() { close(closed) })
		d.Show()
	})

	select {
	case <-closed:
		return nil
	case <-ctx.Done():
		fyne.Do(func() { d.Hide() })
		return ctx.Err()
	}
}
