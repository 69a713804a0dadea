package dialogs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Input is the widget a Modal collects its value from.
type Input[T any] interface {
	Widget() fyne.CanvasObject
	Value() (T, error)
}

// StringInput is a single line entry.
type StringInput struct {
	entry *widget.Entry
}

func NewStringInput(placeholder string) *StringInput {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return &StringInput{entry: entry}
}

func (in *StringInput) Widget() fyne.CanvasObject { return in.entry }

func (in *StringInput) Value() (string, error) { return in.entry.Text, nil }

// TextInput is a multi-line entry for letter bodies.
type TextInput struct {
	entry *widget.Entry
}

func NewTextInput() *TextInput {
	entry := widget.NewMultiLineEntry()
	entry.Wrapping = fyne.TextWrapWord
	entry.SetMinRowsVisible(14)
	return &TextInput{entry: entry}
}

func (in *TextInput) Widget() fyne.CanvasObject { return in.entry }

func (in *TextInput) Value() (string, error) { return in.entry.Text, nil }

var ErrNotANumber = errors.New("please enter a whole number")

// IntInput is a bounded spinner: an entry flanked by decrement and
// increment buttons.
type IntInput struct {
	entry    *widget.Entry
	lo, hi   int
	box      *fyne.Container
}

func NewIntInput(lo, hi, initial int) *IntInput {
	in := &IntInput{entry: widget.NewEntry(), lo: lo, hi: hi}
	in.entry.SetText(strconv.Itoa(initial))

	down := widget.NewButtonWithIcon("", theme.ContentRemoveIcon(), func() { in.step(-1) })
	up := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() { in.step(1) })
	in.box = container.NewBorder(nil, nil, down, up, in.entry)
	return in
}

func (in *IntInput) step(delta int) {
	n, err := strconv.Atoi(strings.TrimSpace(in.entry.Text))
	if err != nil {
		n = in.lo
	} else {
		n += delta
	}
	n = max(in.lo, min(in.hi, n))
	in.entry.SetText(strconv.Itoa(n))
}

func (in *IntInput) Widget() fyne.CanvasObject { return in.box }

func (in *IntInput) Value() (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(in.entry.Text))
	if err != nil {
		return 0, ErrNotANumber
	}
	if n < in.lo || n > in.hi {
		return n, fmt.Errorf("please choose a number from %d to %d", in.lo, in.hi)
	}
	return n, nil
}

// noInput backs button-only modals.
type noInput struct{}

func (noInput) Widget() fyne.CanvasObject { return nil }

func (noInput) Value() (struct{}, error) { return struct{}{}, nil }
