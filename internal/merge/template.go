package merge

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// Placeholder is replaced by each recipient's name. It is case sensitive
// and has no escape form.
const Placeholder = "[name]"

var (
	ErrMissingPlaceholder = errors.New("placeholder '[name]' is not present in the letter")
	ErrEmptyLetter        = errors.New("the letter is empty")
)

// Template is a letter body that can be personalised for one recipient.
type Template interface {
	// Validate fails when the template cannot produce letters.
	Validate() error
	// Extension is the file extension of generated letters, including the dot.
	Extension() string
	// WriteLetter writes the letter for recipient to path.
	WriteLetter(path, recipient string) error
}

// TextTemplate is a plain text letter body.
type TextTemplate struct {
	Body string
}

func NewTextTemplate(body string) *TextTemplate {
	return &TextTemplate{Body: body}
}

// LoadTextTemplate reads a plain text letter from disk.
func LoadTextTemplate(path string) (*TextTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read letter %s: %w", filepath.Base(path), err)
	}
	return NewTextTemplate(string(data)), nil
}

func (t *TextTemplate) Validate() error {
	if strings.TrimSpace(t.Body) == "" {
		return ErrEmptyLetter
	}
	if !strings.Contains(t.Body, Placeholder) {
		return ErrMissingPlaceholder
	}
	return nil
}

func (t *TextTemplate) Extension() string { return ".txt" }

// Personalize replaces every placeholder occurrence with recipient.
func (t *TextTemplate) Personalize(recipient string) string {
	return strings.ReplaceAll(t.Body, Placeholder, recipient)
}

func (t *TextTemplate) WriteLetter(path, recipient string) error {
	return os.WriteFile(path, []byte(t.Personalize(recipient)), 0o644)
}

// DocxTemplate is a Word document whose body contains the placeholder.
// The placeholder must sit in a single text run to be found.
type DocxTemplate struct {
	path string
	doc  *docx.ReplaceDocx
}

// LoadDocxTemplate opens a Word letter. Close releases it.
func LoadDocxTemplate(path string) (*DocxTemplate, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open letter %s: %w", filepath.Base(path), err)
	}
	return &DocxTemplate{path: path, doc: doc}, nil
}

func (t *DocxTemplate) Validate() error {
	content := t.doc.Editable().GetContent()
	if !hasText(content) {
		return ErrEmptyLetter
	}
	if !strings.Contains(content, Placeholder) {
		return ErrMissingPlaceholder
	}
	return nil
}

// textRun matches the text element of a run, not <w:tab/>, <w:tbl> or
// other elements sharing its prefix.
var textRun = regexp.MustCompile(`<w:t(?:\s[^>]*)?>([^<]*)</w:t>`)

// hasText reports whether document XML has a text run that is not blank.
func hasText(content string) bool {
	for _, m := range textRun.FindAllStringSubmatch(content, -1) {
		if strings.TrimSpace(m[1]) != "" {
			return true
		}
	}
	return false
}

func (t *DocxTemplate) Extension() string { return ".docx" }

func (t *DocxTemplate) WriteLetter(path, recipient string) error {
	letter := t.doc.Editable()
	if err := letter.Replace(Placeholder, recipient, -1); err != nil {
		return fmt.Errorf("failed to personalise letter: %w", err)
	}
	return letter.WriteToFile(path)
}

func (t *DocxTemplate) Close() error {
	return t.doc.Close()
}

// LoadTemplate picks the template type from the file extension.
func LoadTemplate(path string) (Template, error) {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return LoadDocxTemplate(path)
	}
	return LoadTextTemplate(path)
}
