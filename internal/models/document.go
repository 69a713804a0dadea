package models

import (
	"image"
	"path/filepath"
	"strings"
)

// Kind tags which view of a document is active.
type Kind int

const (
	KindText Kind = iota
	KindCSV
	KindDocx
	KindPDF
)

func (k Kind) String() string {
	switch k {
	case KindCSV:
		return "CSV Table"
	case KindDocx:
		return "Word Document"
	case KindPDF:
		return "PDF Document"
	default:
		return "Text Document"
	}
}

// ReadOnly reports whether documents of this kind cannot be saved back.
func (k Kind) ReadOnly() bool {
	return k == KindPDF
}

// Page is one page of a PDF. Image is nil when the page was extracted as text.
type Page struct {
	Number int
	Text   string
	Image  image.Image
}

// Document is what a format adapter reads from or writes to disk. Only the
// part matching Kind is meaningful.
type Document struct {
	Kind  Kind
	Text  string
	Table *CSVTable
	Pages []Page
}

// NewTextDocument wraps plain text.
func NewTextDocument(text string) *Document {
	return &Document{Kind: KindText, Text: text}
}

// Lines splits the text on newlines.
func (d *Document) Lines() []string {
	return strings.Split(d.Text, "\n")
}

// DisplayName returns the base name of path, or "Untitled" when unset.
func DisplayName(path string) string {
	if path == "" {
		return "Untitled"
	}
	return filepath.Base(path)
}
