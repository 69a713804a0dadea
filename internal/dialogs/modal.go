package dialogs

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Result is what a Modal hands back once closed. Button is empty when the
// modal was closed without pressing a button.
type Result[T any] struct {
	Value  T
	Button string
}

// Modal is a dialog made of an optional decoration, a message, an optional
// input and a row of buttons. Every prompt of the mail merge wizard is a Modal.
type Modal[T any] struct {
	Title      string
	Message    string
	Buttons    []string
	Input      Input[T]
	Decoration fyne.CanvasObject

	// Validate runs when a button other than a CancelButtons entry is
	// pressed. A non-nil error is shown under the input and keeps the
	// modal open.
	Validate      func(T) error
	CancelButtons []string

	dialog dialog.Dialog
}

// NewButtonModal builds a modal that only asks the user to pick a button.
func NewButtonModal(title, message string, buttons ...string) *Modal[struct{}] {
	return &Modal[struct{}]{
		Title:   title,
		Message: message,
		Buttons: buttons,
		Input:   noInput{},
	}
}

// Show displays the modal and calls onDone exactly once with the result.
// It must run on the UI goroutine.
func (m *Modal[T]) Show(parent fyne.Window, onDone func(Result[T])) {
	message := widget.NewLabel(m.Message)
	message.Alignment = fyne.TextAlignCenter
	message.Wrapping = fyne.TextWrapWord

	hint := widget.NewLabel("")
	hint.Importance = widget.DangerImportance
	hint.Alignment = fyne.TextAlignCenter
	hint.Hide()

	body := container.NewVBox()
	if m.Decoration != nil {
		body.Add(container.NewCenter(m.Decoration))
	}
	body.Add(message)
	if m.Input != nil {
		if w := m.Input.Widget(); w != nil {
			body.Add(w)
		}
	}
	body.Add(hint)

	done := false
	finish := func(result Result[T]) {
		if done {
			return
		}
		done = true
		m.dialog.Hide()
		onDone(result)
	}

	buttons := container.New(layout.NewGridLayoutWithColumns(max(1, len(m.Buttons))))
	for _, label := range m.Buttons {
		btn := widget.NewButton(label, func() {
			value, err := m.value()
			if err == nil && !m.isCancel(label) && m.Validate != nil {
				err = m.Validate(value)
			}
			if err != nil && !m.isCancel(label) {
				hint.SetText(err.Error())
				hint.Show()
				return
			}
			finish(Result[T]{Value: value, Button: label})
		})
		if !m.isCancel(label) {
			btn.Importance = widget.HighImportance
		}
		buttons.Add(btn)
	}

	content := container.NewBorder(nil, buttons, nil, nil, body)
	m.dialog = dialog.NewCustomWithoutButtons(m.Title, content, parent)
	m.dialog.SetOnClosed(func() {
		var zero T
		finish(Result[T]{Value: zero})
	})
	m.dialog.Show()
}

// Run shows the modal and blocks until it closes or ctx is cancelled.
// It must not be called from the UI goroutine.
func (m *Modal[T]) Run(ctx context.Context, parent fyne.Window) (Result[T], error) {
	results := make(chan Result[T], 1)
	fyne.Do(func() {
		m.Show(parent, func(r Result[T]) { results <- r })
	})

	select {
	case r := <-results:
		return r, nil
	case <-ctx.Done():
		fyne.Do(func() {
			if m.dialog != nil {
				m.dialog.Hide()
			}
		})
		var zero Result[T]
		return zero, ctx.Err()
	}
}

func (m *Modal[T]) value() (T, error) {
	if m.Input == nil {
		var zero T
		return zero, nil
	}
	return m.Input.Value()
}

func (m *Modal[T]) isCancel(label string) bool {
	for _, c := range m.CancelButtons {
		if c == label {
			return true
		}
	}
	return false
}
