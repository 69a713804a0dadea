package documents

import (
	"context"
	"fmt"
	"os"

	"edumerge/internal/models"
)

// TextAdapter reads and writes files verbatim.
type TextAdapter struct{}

func NewTextAdapter() *TextAdapter { return &TextAdapter{} }

func (a *TextAdapter) Kind() models.Kind     { return models.KindText }
func (a *TextAdapter) Extensions() []string { return []string{".txt"} }

func (a *TextAdapter) Open(ctx context.Context, path string) (*models.Document, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	return models.NewTextDocument(string(data)), nil
}

func (a *TextAdapter) Save(ctx context.Context, path string, doc *models.Document) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(PlainText(doc)), 0o644); err != nil {
		return fmt.Errorf("could not save file: %w", err)
	}
	return nil
}
