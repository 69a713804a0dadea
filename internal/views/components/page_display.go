package components

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"edumerge/internal/models"
)

// PageDisplay shows the pages of a PDF one below the other. Rendered pages
// are drawn as images; text-only pages as wrapped labels.
type PageDisplay struct {
	container *fyne.Container
	pages     *fyne.Container
	scroll    *container.Scroll
	empty     *widget.Label
	count     int
}

func NewPageDisplay() *PageDisplay {
	pd := &PageDisplay{}
	pd.createComponents()
	pd.setupLayout()
	return pd
}

func (pd *PageDisplay) createComponents() {
	pd.empty = widget.NewLabel("Open a PDF to view its pages")
	pd.empty.Alignment = fyne.TextAlignCenter
	pd.pages = container.NewVBox(pd.empty)
	pd.scroll = container.NewVScroll(pd.pages)
}

func (pd *PageDisplay) setupLayout() {
	bg := canvas.NewRectangle(color.RGBA{R: 250, G: 250, B: 250, A: 255})
	pd.container = container.NewStack(bg, pd.scroll)
}

// SetPages replaces the displayed pages.
func (pd *PageDisplay) SetPages(pages []models.Page) {
	pd.pages.RemoveAll()
	pd.count = len(pages)
	if len(pages) == 0 {
		pd.pages.Add(pd.empty)
		pd.pages.Refresh()
		return
	}

	for _, p := range pages {
		header := widget.NewLabelWithStyle(fmt.Sprintf("Page %d", p.Number), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
		pd.pages.Add(header)
		pd.pages.Add(pageContent(p))
		pd.pages.Add(widget.NewSeparator())
	}
	pd.pages.Refresh()
	pd.scroll.ScrollToTop()
}

func pageContent(p models.Page) fyne.CanvasObject {
	if p.Image == nil {
		text := widget.NewLabel(p.Text)
		text.Wrapping = fyne.TextWrapWord
		return text
	}
	img := canvas.NewImageFromImage(p.Image)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	b := p.Image.Bounds()
	img.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	return container.NewCenter(img)
}

// PageCount is the number of pages shown.
func (pd *PageDisplay) PageCount() int {
	return pd.count
}

func (pd *PageDisplay) GetContainer() *fyne.Container {
	return pd.container
}
