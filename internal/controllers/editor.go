package controllers

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"
	"sync"

	"edumerge/internal/documents"
	"edumerge/internal/logger"
	"edumerge/internal/models"
)

const component = "EditorController"

// AppTitle prefixes every editor window title.
const AppTitle = "EduText"

// ExportPDFInstructions is shown instead of writing PDFs.
const ExportPDFInstructions = "To export as PDF:\n\n" +
	"1. Export to DOCX first\n" +
	"2. Open it in Word or LibreOffice\n" +
	"3. Save as PDF\n\n" +
	"Or use the 'Print to PDF' option of your system."

// EditorView is what the controller needs from the editor window. Methods
// may be called from any goroutine.
type EditorView interface {
	ShowText(text string)
	ShowTable(table *models.CSVTable)
	ShowPages(pages []models.Page)
	ShowPreview(text string, styles []models.StyleRange, images []models.ImageHandle)
	SetTitle(title string)
	SetStatus(stats models.Stats, kind models.Kind)

	// Selection returns the selected rune range; both ends equal the
	// cursor offset when nothing is selected.
	Selection() (start, end int)

	ShowBusy(message string) (hide func())
	ShowError(title string, err error)
	ShowInfo(title, message string)

	// AskSaveChanges calls onYes or onNo, or neither when cancelled.
	AskSaveChanges(onYes, onNo func())
	PickOpenFile(title string, extensions []string, onPicked func(path string))
	PickSaveFile(title, name string, extensions []string, onPicked func(path string))
	PickColor(title string, onPicked func(c color.Color))
}

// EditorController implements the text editor actions on a DocumentBuffer.
type EditorController struct {
	registry *documents.Registry
	buffer   *models.DocumentBuffer
	logger   logger.Logger
	view     EditorView

	loadImage func(ctx context.Context, path string, maxWidth int) (*documents.EmbeddedImage, error)

	// mu keeps wg.Add from racing Shutdown's wg.Wait.
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewEditorController(registry *documents.Registry, buffer *models.DocumentBuffer, log logger.Logger) *EditorController {
	ctx, cancel := context.WithCancel(context.Background())
	return &EditorController{
		registry:  registry,
		buffer:    buffer,
		logger:    log,
		loadImage: documents.LoadImage,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// SetView attaches the view and renders the current buffer into it.
func (c *EditorController) SetView(view EditorView) {
	c.view = view
	c.showDocument()
}

// Buffer exposes the document state.
func (c *EditorController) Buffer() *models.DocumentBuffer {
	return c.buffer
}

// Title is the window title: file name and an unsaved marker.
func (c *EditorController) Title() string {
	title := fmt.Sprintf("%s - %s", AppTitle, models.DisplayName(c.buffer.Path()))
	if c.buffer.Dirty() {
		title += " •"
	}
	return title
}

// NewDocument clears the editor, asking to save unsaved changes first.
func (c *EditorController) NewDocument() {
	c.confirmDiscard(func() {
		c.buffer.Reset()
		c.showDocument()
		c.logger.Debug(component, "new document", nil)
	})
}

// Open asks for a file and loads it.
func (c *EditorController) Open() {
	c.confirmDiscard(func() {
		c.view.PickOpenFile("Open File", c.registry.Extensions(), c.openAsync)
	})
}

// openAsync loads path in the background. PDFs show a wait dialog while
// their pages render.
func (c *EditorController) openAsync(path string) {
	hide := func() {}
	if c.registry.ForPath(path).Kind() == models.KindPDF {
		hide = c.view.ShowBusy("Loading PDF, please wait...")
	}

	started := c.goBackground(func() {
		err := c.OpenPath(c.ctx, path)
		hide()
		if err != nil && !errors.Is(err, context.Canceled) {
			c.handleError("Could not open file", err)
		}
	})
	if !started {
		hide()
	}
}

// goBackground runs fn on its own goroutine unless the controller has been
// shut down. It reports whether fn was started.
func (c *EditorController) goBackground(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ctx.Err() != nil {
		return false
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
	return true
}

// OpenPath reads path with the matching adapter and shows it.
func (c *EditorController) OpenPath(ctx context.Context, path string) error {
	doc, err := c.registry.Open(ctx, path)
	if err != nil {
		return err
	}
	c.buffer.Load(path, doc)
	c.showDocument()

	c.logger.Info(component, "document opened", map[string]interface{}{
		"path": path,
		"kind": doc.Kind.String(),
	})
	return nil
}

// Save writes to the current file, or asks for one.
func (c *EditorController) Save() {
	c.save(nil)
}

// SaveAs always asks for a new file name.
func (c *EditorController) SaveAs() {
	c.saveAs(nil)
}

func (c *EditorController) save(then func()) {
	path := c.buffer.Path()
	if path == "" || c.registry.ForPath(path).Kind().ReadOnly() {
		c.saveAs(then)
		return
	}
	c.saveTo(path, then)
}

func (c *EditorController) saveAs(then func()) {
	name := models.DisplayName(c.buffer.Path())
	if c.buffer.Kind().ReadOnly() || c.buffer.Path() == "" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".txt"
	}
	c.view.PickSaveFile("Save As", name, c.registry.WritableExtensions(), func(path string) {
		c.saveTo(path, then)
	})
}

func (c *EditorController) saveTo(path string, then func()) {
	if err := c.SavePath(c.ctx, path); err != nil {
		c.handleError("Could not save file", err)
		return
	}
	c.view.ShowInfo("Success", "File saved successfully!")
	if then != nil {
		then()
	}
}

// SavePath writes the buffer to path with the adapter for its extension
// and makes path the current file.
func (c *EditorController) SavePath(ctx context.Context, path string) error {
	if err := c.registry.Save(ctx, path, c.buffer.Snapshot()); err != nil {
		return err
	}
	c.buffer.MarkSaved(path)
	c.refresh()

	c.logger.Info(component, "document saved", map[string]interface{}{
		"path": path,
	})
	return nil
}

// ExportDocx writes the text as a Word document without changing the
// current file.
func (c *EditorController) ExportDocx() {
	name := models.DisplayName(c.buffer.Path())
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".docx"

	c.view.PickSaveFile("Export to DOCX", name, []string{".docx"}, func(path string) {
		if err := c.ExportDocxTo(c.ctx, path); err != nil {
			c.handleError("Could not export to DOCX", err)
			return
		}
		c.view.ShowInfo("Success", "Exported to DOCX successfully!")
	})
}

// ExportDocxTo writes the buffer as DOCX to path, adding the extension if
// it is missing.
func (c *EditorController) ExportDocxTo(ctx context.Context, path string) error {
	if !strings.EqualFold(filepath.Ext(path), ".docx") {
		path += ".docx"
	}
	if err := documents.NewDocxAdapter().Save(ctx, path, c.buffer.Snapshot()); err != nil {
		return err
	}
	c.logger.Info(component, "document exported", map[string]interface{}{
		"path":   path,
		"format": "docx",
	})
	return nil
}

// ExportPDF explains how to produce a PDF.
func (c *EditorController) ExportPDF() {
	c.view.ShowInfo("Export to PDF", ExportPDFInstructions)
}

// ShowCSVTable switches the editor to the CSV tab.
func (c *EditorController) ShowCSVTable() {
	c.buffer.SetKind(models.KindCSV)
	c.view.ShowTable(c.buffer.Table())
	c.refresh()
}

// TextChanged records an edit made in the text tab.
func (c *EditorController) TextChanged(text string) {
	if text == c.buffer.Text() {
		return
	}
	c.buffer.SetText(text)
	c.refresh()
}

func (c *EditorController) Bold()      { c.ToggleStyle(models.StyleBold) }
func (c *EditorController) Italic()    { c.ToggleStyle(models.StyleItalic) }
func (c *EditorController) Underline() { c.ToggleStyle(models.StyleUnderline) }

// ToggleStyle toggles name over the selection. Nothing happens without a
// selection.
func (c *EditorController) ToggleStyle(name string) {
	start, end := c.view.Selection()
	if start >= end {
		return
	}
	c.buffer.ToggleStyle(name, start, end)
	c.refresh()
}

// ApplyHeading makes the selection heading, replacing any other heading.
func (c *EditorController) ApplyHeading(heading string) {
	if !models.IsHeading(heading) {
		c.handleError("Formatting failed", fmt.Errorf("unknown heading %q", heading))
		return
	}
	start, end := c.view.Selection()
	if start >= end {
		return
	}
	c.buffer.ApplyHeading(heading, start, end)
	c.refresh()
}

// ChooseTextColor asks for a colour and applies it to the selection.
func (c *EditorController) ChooseTextColor() {
	c.chooseColor("Choose Text Color", false)
}

// ChooseBackgroundColor asks for a colour and applies it behind the selection.
func (c *EditorController) ChooseBackgroundColor() {
	c.chooseColor("Choose Background Color", true)
}

func (c *EditorController) chooseColor(title string, background bool) {
	start, end := c.view.Selection()
	c.view.PickColor(title, func(col color.Color) {
		c.ApplyColor(col, background, start, end)
	})
}

// ApplyColor applies a colour style to [start, end).
func (c *EditorController) ApplyColor(col color.Color, background bool, start, end int) {
	if start >= end {
		return
	}
	name := c.buffer.ApplyColor(col, background, start, end)
	c.logger.Debug(component, "colour applied", map[string]interface{}{
		"style": name,
		"start": start,
		"end":   end,
	})
	c.refresh()
}

// InsertImage asks for an image and anchors it at the cursor.
func (c *EditorController) InsertImage() {
	offset, _ := c.view.Selection()
	c.view.PickOpenFile("Select Image", documents.ImageExtensions, func(path string) {
		c.goBackground(func() {
			if err := c.InsertImageAt(c.ctx, path, offset); err != nil && !errors.Is(err, context.Canceled) {
				c.handleError("Could not insert image", err)
			}
		})
	})
}

// InsertImageAt decodes and scales the image at path and anchors it at offset.
func (c *EditorController) InsertImageAt(ctx context.Context, path string, offset int) error {
	img, err := c.loadImage(ctx, path, documents.MaxEmbeddedImageWidth)
	if err != nil {
		return err
	}
	handle := c.buffer.InsertImage(offset, img.Source, img.Image)
	c.refresh()

	b := img.Image.Bounds()
	c.logger.Info(component, "image inserted", map[string]interface{}{
		"path":   path,
		"format": img.Format,
		"id":     handle.ID,
		"width":  b.Dx(),
		"height": b.Dy(),
		"scaled": img.Scaled,
	})
	return nil
}

// RequestClose runs onClose once unsaved changes are saved or discarded.
func (c *EditorController) RequestClose(onClose func()) {
	c.confirmDiscard(onClose)
}

// Shutdown stops background loads and waits for them.
func (c *EditorController) Shutdown() {
	c.mu.Lock()
	c.cancel()
	c.mu.Unlock()
	c.wg.Wait()
	c.logger.Debug(component, "editor controller stopped", nil)
}

func (c *EditorController) confirmDiscard(then func()) {
	if !c.buffer.Dirty() {
		then()
		return
	}
	c.view.AskSaveChanges(func() { c.save(then) }, then)
}

func (c *EditorController) showDocument() {
	if c.view == nil {
		return
	}
	switch c.buffer.Kind() {
	case models.KindCSV:
		c.view.ShowTable(c.buffer.Table())
	case models.KindPDF:
		c.view.ShowPages(c.buffer.Pages())
	default:
		c.view.ShowText(c.buffer.Text())
	}
	c.refresh()
}

func (c *EditorController) refresh() {
	if c.view == nil {
		return
	}
	c.view.SetTitle(c.Title())
	c.view.SetStatus(c.buffer.Stats(), c.buffer.Kind())
	c.view.ShowPreview(c.buffer.Text(), c.buffer.Styles(), c.buffer.Images())
}

// handleError logs err and shows it to the user.
func (c *EditorController) handleError(title string, err error) {
	c.logger.Error(component, err, map[string]interface{}{
		"operation": title,
	})
	if c.view != nil {
		c.view.ShowError(title, err)
	}
}
