package components

import (
	"image/color"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"edumerge/internal/models"
)

// Heading colours, served by the editor theme under their style names.
var headingColors = map[string]color.Color{
	models.StyleHeading1: color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff},
	models.StyleHeading2: color.NRGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff},
	models.StyleHeading3: color.NRGBA{R: 0x16, G: 0xa0, B: 0x85, A: 0xff},
}

// Preview renders the document text with its styles applied.
type Preview struct {
	rich   *widget.RichText
	scroll *container.Scroll
}

func NewPreview() *Preview {
	p := &Preview{rich: widget.NewRichText()}
	p.rich.Wrapping = fyne.TextWrapWord
	p.scroll = container.NewVScroll(p.rich)
	return p
}

// Update re-renders the preview.
func (p *Preview) Update(text string, styles []models.StyleRange, images []models.ImageHandle) {
	p.rich.Segments = PreviewSegments(text, styles, images)
	p.rich.Refresh()
}

func (p *Preview) Refresh() {
	p.rich.Refresh()
}

// Segments returns what is currently rendered.
func (p *Preview) Segments() []widget.RichTextSegment {
	return p.rich.Segments
}

func (p *Preview) GetContainer() fyne.CanvasObject {
	return p.scroll
}

// PreviewSegments splits text into rich text segments at every style
// boundary and line break. Each line ends with a block segment; images
// become image segments at their offsets. Background colours have no rich
// text equivalent and are not drawn.
func PreviewSegments(text string, styles []models.StyleRange, images []models.ImageHandle) []widget.RichTextSegment {
	runes := []rune(text)
	var segs []widget.RichTextSegment
	next := 0

	emitImages := func(upTo int) {
		for next < len(images) && images[next].Offset <= upTo {
			if seg := imageSegment(images[next]); seg != nil {
				segs = append(segs, seg)
			}
			next++
		}
	}

	lineStart := 0
	for lineStart <= len(runes) {
		lineEnd := lineStart
		for lineEnd < len(runes) && runes[lineEnd] != '\n' {
			lineEnd++
		}

		points := cutPoints(lineStart, lineEnd, styles, images)
		first := len(segs)
		for i := 0; i+1 < len(points); i++ {
			start, end := points[i], points[i+1]
			emitImages(start)
			segs = append(segs, &widget.TextSegment{
				Text:  string(runes[start:end]),
				Style: styleFor(activeStyles(styles, start)),
			})
		}

		if last, ok := lastText(segs, first); ok {
			last.Style.Inline = false
		} else {
			segs = append(segs, &widget.TextSegment{Style: widget.RichTextStyleParagraph})
		}
		emitImages(lineEnd)

		lineStart = lineEnd + 1
	}
	emitImages(len(runes))
	return segs
}

// cutPoints lists the sorted offsets within [start, end] where styling or
// image anchors change.
func cutPoints(start, end int, styles []models.StyleRange, images []models.ImageHandle) []int {
	set := map[int]bool{start: true, end: true}
	add := func(o int) {
		if o > start && o < end {
			set[o] = true
		}
	}
	for _, s := range styles {
		add(s.Start)
		add(s.End)
	}
	for _, img := range images {
		add(img.Offset)
	}

	points := make([]int, 0, len(set))
	for o := range set {
		points = append(points, o)
	}
	sort.Ints(points)
	return points
}

func activeStyles(styles []models.StyleRange, offset int) []string {
	var names []string
	for _, s := range styles {
		if offset >= s.Start && offset < s.End {
			names = append(names, s.Name)
		}
	}
	return names
}

func lastText(segs []widget.RichTextSegment, from int) (*widget.TextSegment, bool) {
	for i := len(segs) - 1; i >= from; i-- {
		if ts, ok := segs[i].(*widget.TextSegment); ok {
			return ts, true
		}
	}
	return nil, false
}

func styleFor(names []string) widget.RichTextStyle {
	style := widget.RichTextStyle{Inline: true, SizeName: theme.SizeNameText}
	var explicit fyne.ThemeColorName

	for _, name := range names {
		switch {
		case name == models.StyleBold:
			style.TextStyle.Bold = true
		case name == models.StyleItalic:
			style.TextStyle.Italic = true
		case name == models.StyleUnderline:
			style.TextStyle.Underline = true
		case models.IsHeading(name):
			style.TextStyle.Bold = true
			style.SizeName = HeadingSizeName(name)
			if style.ColorName == "" {
				style.ColorName = fyne.ThemeColorName(models.ColorStyleName(headingColors[name], false))
			}
		case strings.HasPrefix(name, "color_"):
			explicit = fyne.ThemeColorName(name)
		}
	}
	if explicit != "" {
		style.ColorName = explicit
	}
	return style
}

func imageSegment(h models.ImageHandle) widget.RichTextSegment {
	if h.Image == nil {
		return nil
	}
	return &ImageSegment{Image: h.Image, Title: filepath.Base(h.Source)}
}
