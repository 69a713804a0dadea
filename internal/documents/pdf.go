package documents

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"edumerge/internal/config"
	"edumerge/internal/logger"
	"edumerge/internal/models"
)

// RasterTool is the poppler command used to render PDF pages to PNG.
const RasterTool = "pdftoppm"

// PDFAdapter turns a PDF into viewable pages, either rendered images via
// pdftoppm or the plain text of each page. PDFs are never written.
type PDFAdapter struct {
	renderer config.PDFRenderer
	dpi      int
	logger   logger.Logger
	lookPath func(string) (string, error)
}

func NewPDFAdapter(cfg config.Config, log logger.Logger) *PDFAdapter {
	return &PDFAdapter{
		renderer: cfg.PDFRenderer,
		dpi:      cfg.PDFDPI,
		logger:   log,
		lookPath: exec.LookPath,
	}
}

func (a *PDFAdapter) Kind() models.Kind     { return models.KindPDF }
func (a *PDFAdapter) Extensions() []string { return []string{".pdf"} }

// RasterAvailable reports whether pages will be rendered as images.
func (a *PDFAdapter) RasterAvailable() bool {
	if a.renderer == config.PDFRendererText {
		return false
	}
	_, err := a.lookPath(RasterTool)
	return err == nil
}

func (a *PDFAdapter) Open(ctx context.Context, path string) (*models.Document, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	if a.renderer == config.PDFRendererRaster || (a.renderer == config.PDFRendererAuto && a.RasterAvailable()) {
		pages, err := a.rasterize(ctx, path)
		if err == nil {
			return &models.Document{Kind: models.KindPDF, Pages: pages}, nil
		}
		if a.renderer == config.PDFRendererRaster || ctx.Err() != nil {
			return nil, fmt.Errorf("could not open PDF: %w", err)
		}
		a.logger.Warning("PDFAdapter", "page rendering failed, falling back to text", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}

	pages, err := ExtractPDFText(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("could not open PDF: %w", err)
	}
	return &models.Document{Kind: models.KindPDF, Pages: pages}, nil
}

func (a *PDFAdapter) Save(context.Context, string, *models.Document) error {
	return ErrReadOnly
}

// ExtractPDFText returns the text layer of every page. Pages without a text
// layer come back empty.
func ExtractPDFText(ctx context.Context, path string) ([]models.Page, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages := make([]models.Page, 0, numPages)

	for i := 1; i <= numPages; i++ {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, models.Page{Number: i})
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("read pdf page %d: %w", i, err)
		}
		pages = append(pages, models.Page{Number: i, Text: strings.TrimSpace(text)})
	}
	return pages, nil
}

// rasterize renders every page at the configured DPI into a scratch
// directory and decodes the PNGs in page order.
func (a *PDFAdapter) rasterize(ctx context.Context, path string) ([]models.Page, error) {
	tool, err := a.lookPath(RasterTool)
	if err != nil {
		return nil, fmt.Errorf("%s not found: %w", RasterTool, err)
	}

	dir, err := os.MkdirTemp("", "edumerge-pdf-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, tool, "-r", strconv.Itoa(a.dpi), "-png", path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", RasterTool, err, strings.TrimSpace(string(out)))
	}

	files, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, err
	}
	numbered, err := sortPageFiles(files, prefix)
	if err != nil {
		return nil, err
	}

	pages := make([]models.Page, 0, len(numbered))
	for _, nf := range numbered {
		if err := checkContext(ctx); err != nil {
			return nil, err
		}
		img, err := decodePNG(nf.path)
		if err != nil {
			return nil, err
		}
		pages = append(pages, models.Page{Number: nf.number, Image: FitWidth(img, MaxPDFPageWidth)})
	}

	a.logger.Debug("PDFAdapter", "pages rendered", map[string]interface{}{
		"path":  path,
		"pages": len(pages),
		"dpi":   a.dpi,
	})
	return pages, nil
}

type pageFile struct {
	number int
	path   string
}

// sortPageFiles orders pdftoppm output ("page-1.png" or zero padded
// "page-01.png") by page number.
func sortPageFiles(files []string, prefix string) ([]pageFile, error) {
	numbered := make([]pageFile, 0, len(files))
	for _, file := range files {
		digits := strings.TrimSuffix(strings.TrimPrefix(file, prefix+"-"), ".png")
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil, fmt.Errorf("unexpected page file %s", filepath.Base(file))
		}
		numbered = append(numbered, pageFile{number: n, path: file})
	}
	sort.Slice(numbered, func(i, j int) bool { return numbered[i].number < numbered[j].number })
	return numbered, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
