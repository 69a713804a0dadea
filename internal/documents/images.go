package documents

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Widest sizes, in pixels, for images shown inside the editor.
const (
	MaxEmbeddedImageWidth = 700
	MaxPDFPageWidth       = 800
)

// ImageExtensions are the file types offered by the insert image dialog.
var ImageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

// EmbeddedImage is a decoded image ready to be anchored in a document.
type EmbeddedImage struct {
	Source string
	Format string
	Image  image.Image
	Scaled bool
}

// LoadImage decodes the image at path and scales it down to maxWidth,
// keeping the aspect ratio.
func LoadImage(ctx context.Context, path string, maxWidth int) (*EmbeddedImage, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not insert image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not insert image: %w", err)
	}

	scaled := FitWidth(img, maxWidth)
	return &EmbeddedImage{
		Source: path,
		Format: determineFormat(filepath.Ext(path), format),
		Image:  scaled,
		Scaled: scaled != img,
	}, nil
}

// FitWidth returns img unchanged when it is at most maxWidth wide, and a
// Lanczos-resampled copy of that width otherwise.
func FitWidth(img image.Image, maxWidth int) image.Image {
	if maxWidth <= 0 || img.Bounds().Dx() <= maxWidth {
		return img
	}
	return resize.Resize(uint(maxWidth), 0, img, resize.Lanczos3)
}

// determineFormat prefers the decoder's answer over the file extension.
func determineFormat(extension, decoded string) string {
	if decoded != "" {
		return decoded
	}
	switch strings.ToLower(extension) {
	case ".jpg", ".jpeg":
		return "jpeg"
	default:
		return strings.TrimPrefix(strings.ToLower(extension), ".")
	}
}
