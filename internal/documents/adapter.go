package documents

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"edumerge/internal/config"
	"edumerge/internal/logger"
	"edumerge/internal/models"
)

var (
	ErrReadOnly      = errors.New("this format cannot be saved")
	ErrEmptyDocument = errors.New("document has no content")
)

// Adapter reads and writes one file format.
type Adapter interface {
	Kind() models.Kind
	// Extensions lists the lower case extensions handled, including the dot.
	Extensions() []string
	Open(ctx context.Context, path string) (*models.Document, error)
	Save(ctx context.Context, path string, doc *models.Document) error
}

// Registry picks an adapter by file extension. Unknown extensions are
// treated as plain text.
type Registry struct {
	byExt    map[string]Adapter
	fallback Adapter
}

// NewRegistry registers adapters in order; later ones win on conflicts.
func NewRegistry(fallback Adapter, adapters ...Adapter) *Registry {
	r := &Registry{
		byExt:    make(map[string]Adapter),
		fallback: fallback,
	}
	for _, a := range append([]Adapter{fallback}, adapters...) {
		for _, ext := range a.Extensions() {
			r.byExt[ext] = a
		}
	}
	return r
}

// NewDefaultRegistry wires every supported format.
func NewDefaultRegistry(cfg config.Config, log logger.Logger) *Registry {
	return NewRegistry(
		NewTextAdapter(),
		NewCSVAdapter(),
		NewDocxAdapter(),
		NewPDFAdapter(cfg, log),
	)
}

// ForPath returns the adapter for path's extension.
func (r *Registry) ForPath(path string) Adapter {
	if a, ok := r.byExt[strings.ToLower(filepath.Ext(path))]; ok {
		return a
	}
	return r.fallback
}

func (r *Registry) Open(ctx context.Context, path string) (*models.Document, error) {
	return r.ForPath(path).Open(ctx, path)
}

func (r *Registry) Save(ctx context.Context, path string, doc *models.Document) error {
	return r.ForPath(path).Save(ctx, path, doc)
}

// Extensions lists every registered extension, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// WritableExtensions lists extensions whose adapter can save.
func (r *Registry) WritableExtensions() []string {
	var exts []string
	for _, ext := range r.Extensions() {
		if !r.byExt[ext].Kind().ReadOnly() {
			exts = append(exts, ext)
		}
	}
	return exts
}

// PlainText flattens any document kind to text: CSV tables are encoded
// as CSV and PDF pages are joined with blank lines.
func PlainText(doc *models.Document) string {
	switch doc.Kind {
	case models.KindCSV:
		if doc.Table == nil {
			return ""
		}
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.WriteAll(doc.Table.Records())
		return buf.String()
	case models.KindPDF:
		parts := make([]string, 0, len(doc.Pages))
		for _, p := range doc.Pages {
			parts = append(parts, p.Text)
		}
		return strings.Join(parts, "\n\n")
	default:
		return doc.Text
	}
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
