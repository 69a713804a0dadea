package components

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// ImageSegment is a rich text block that draws an in-memory image at its
// pixel size. The preview uses it for images that were already scaled on
// insert, so the file on disk is never reloaded.
type ImageSegment struct {
	Image image.Image
	Title string
}

func (s *ImageSegment) Inline() bool { return false }

func (s *ImageSegment) Textual() string { return "Image " + s.Title }

func (s *ImageSegment) Visual() fyne.CanvasObject {
	img := canvas.NewImageFromImage(s.Image)
	s.apply(img)
	return img
}

func (s *ImageSegment) Update(o fyne.CanvasObject) {
	img := o.(*canvas.Image)
	img.Image = s.Image
	s.apply(img)
	img.Refresh()
}

func (s *ImageSegment) apply(img *canvas.Image) {
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	b := s.Image.Bounds()
	img.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
}

func (s *ImageSegment) Select(_, _ fyne.Position) {}

func (s *ImageSegment) SelectedText() string { return "" }

func (s *ImageSegment) Unselect() {}
