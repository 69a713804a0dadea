package documents

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"edumerge/internal/models"
)

// CSVAdapter parses comma separated files into a header and rows.
type CSVAdapter struct{}

func NewCSVAdapter() *CSVAdapter { return &CSVAdapter{} }

func (a *CSVAdapter) Kind() models.Kind     { return models.KindCSV }
func (a *CSVAdapter) Extensions() []string { return []string{".csv"} }

func (a *CSVAdapter) Open(ctx context.Context, path string) (*models.Document, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open CSV: %w", err)
	}
	defer f.Close()

	records, err := newReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not open CSV: %w", err)
	}

	table := models.NewCSVTable(records)
	if table == nil {
		table = &models.CSVTable{}
	}
	return &models.Document{Kind: models.KindCSV, Table: table}, nil
}

// Save writes the table back record by record. A non-CSV document has its
// text parsed as CSV first.
func (a *CSVAdapter) Save(ctx context.Context, path string, doc *models.Document) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	records, err := recordsOf(doc)
	if err != nil {
		return fmt.Errorf("could not save CSV: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not save CSV: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("could not save CSV: %w", err)
	}
	return f.Close()
}

func recordsOf(doc *models.Document) ([][]string, error) {
	if doc.Kind == models.KindCSV {
		if doc.Table == nil || (len(doc.Table.Header) == 0 && len(doc.Table.Rows) == 0) {
			return nil, nil
		}
		return doc.Table.Records(), nil
	}
	return newReader(strings.NewReader(PlainText(doc))).ReadAll()
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader
}
