package documents

import (
	"context"
	"fmt"
	"os"
	"strings"

	godocx "github.com/fumiama/go-docx"

	"edumerge/internal/models"
)

// DocxAdapter reads paragraph text from Word documents and writes text
// back one paragraph per non-blank line. Formatting is not carried either way.
type DocxAdapter struct{}

func NewDocxAdapter() *DocxAdapter { return &DocxAdapter{} }

func (a *DocxAdapter) Kind() models.Kind     { return models.KindDocx }
func (a *DocxAdapter) Extensions() []string { return []string{".docx"} }

func (a *DocxAdapter) Open(ctx context.Context, path string) (*models.Document, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open DOCX: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("could not open DOCX: %w", err)
	}
	doc, err := godocx.Parse(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("could not open DOCX: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		if p, ok := item.(*godocx.Paragraph); ok {
			paragraphs = append(paragraphs, paragraphText(p))
		}
	}
	return &models.Document{
		Kind: models.KindDocx,
		Text: strings.Join(paragraphs, "\n"),
	}, nil
}

func paragraphText(p *godocx.Paragraph) string {
	var sb strings.Builder
	for _, child := range p.Children {
		switch c := child.(type) {
		case *godocx.Run:
			runText(&sb, c)
		case *godocx.Hyperlink:
			runText(&sb, &c.Run)
		}
	}
	return sb.String()
}

func runText(sb *strings.Builder, r *godocx.Run) {
	for _, child := range r.Children {
		if t, ok := child.(*godocx.Text); ok {
			sb.WriteString(t.Text)
		}
	}
}

// Save writes each non-blank line of the document text as its own paragraph.
func (a *DocxAdapter) Save(ctx context.Context, path string, doc *models.Document) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	out := godocx.New().WithDefaultTheme()
	for _, line := range NonBlankLines(PlainText(doc)) {
		out.AddParagraph().AddText(line)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not export to DOCX: %w", err)
	}
	if _, err := out.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("could not export to DOCX: %w", err)
	}
	return f.Close()
}

// NonBlankLines splits text on newlines and drops lines that are only
// whitespace, keeping order.
func NonBlankLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
