package components

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edumerge/internal/documents"
	"edumerge/internal/models"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Lines: 2 | Characters: 9 | Words: 3", StatusText(models.Stats{Lines: 2, Characters: 9, Words: 3}))
}

func TestStatusBarSetStats(t *testing.T) {
	test.NewTempApp(t)
	sb := NewStatusBar()
	assert.Equal(t, "Lines: 1 | Characters: 0 | Words: 0", sb.GetStatus())

	sb.SetStats(models.TextStats("a b"), models.KindDocx)
	assert.Equal(t, "Lines: 1 | Characters: 3 | Words: 2", sb.GetStatus())
	assert.Equal(t, "Word Document", sb.GetKind())

	sb.Reset()
	assert.Equal(t, "Text Document", sb.GetKind())
}

func TestSidebarRunsHandlers(t *testing.T) {
	test.NewTempApp(t)
	s := NewSidebar()

	var got []Action
	for _, a := range SidebarActions {
		s.SetHandler(a, func() { got = append(got, a) })
	}
	for _, a := range SidebarActions {
		require.NotNil(t, s.Button(a), a)
		test.Tap(s.Button(a))
	}
	assert.Equal(t, SidebarActions, got)
}

func TestFormatBarDisabled(t *testing.T) {
	test.NewTempApp(t)
	f := NewFormatBar()
	tapped := 0
	f.SetHandler(ActionBold, func() { tapped++ })

	test.Tap(f.Button(ActionBold))
	f.SetEnabled(false)
	test.Tap(f.Button(ActionBold))

	assert.Equal(t, 1, tapped)
	for _, a := range FormatActions {
		assert.True(t, f.Button(a).Disabled(), a)
	}
}

func TestFormatBarFontControls(t *testing.T) {
	test.NewTempApp(t)
	f := NewFormatBar()
	var got []FontSettings
	f.SetFontHandler(func(fs FontSettings) { got = append(got, fs) })

	assert.Equal(t, DefaultFont(), f.Font())
	test.Tap(f.size.up)
	test.Tap(f.size.up)
	test.Tap(f.size.down)
	f.SetFamily(FontMonospace)

	assert.Equal(t, []FontSettings{
		{Family: FontDefault, Size: 15},
		{Family: FontDefault, Size: 16},
		{Family: FontDefault, Size: 15},
		{Family: FontMonospace, Size: 15},
	}, got)

	f.SetEnabled(false)
	assert.True(t, f.family.Disabled())
	assert.True(t, f.size.up.Disabled())
}

func TestSizeSpinnerClamps(t *testing.T) {
	test.NewTempApp(t)
	s := NewSizeSpinner(9, MinFontSize, MaxFontSize)
	changes := 0
	s.OnChanged = func(int) { changes++ }

	test.Tap(s.down)
	test.Tap(s.down)
	assert.Equal(t, MinFontSize, s.Value())
	assert.Equal(t, 1, changes)

	s.SetValue(500)
	assert.Equal(t, MaxFontSize, s.Value())
	assert.Equal(t, "72", s.label.Text)
}

func TestHeadingSizes(t *testing.T) {
	for style, want := range map[string]float32{
		models.StyleHeading1: 34,
		models.StyleHeading2: 26,
		models.StyleHeading3: 20,
	} {
		size, ok := HeadingSize(14, HeadingSizeName(style))
		assert.True(t, ok, style)
		assert.Equal(t, want, size, style)
	}
	_, ok := HeadingSize(14, HeadingSizeName(models.StyleBold))
	assert.False(t, ok)
}

func numberedTable(n int) *models.CSVTable {
	records := [][]string{{"id", "label"}}
	for i := 0; i < n; i++ {
		records = append(records, []string{fmt.Sprint(i), fmt.Sprintf("row %d", i)})
	}
	return models.NewCSVTable(records)
}

func TestCSVTableViewPaginates(t *testing.T) {
	test.NewTempApp(t)
	v := NewCSVTableView(20)
	v.SetTable(numberedTable(45))

	assert.Equal(t, 3, v.Page().TotalPages)
	assert.Len(t, v.Page().Rows, 20)
	assert.True(t, v.prev.Disabled())

	v.NextPage()
	v.NextPage()
	v.NextPage()
	assert.Equal(t, 2, v.Page().Index)
	assert.Len(t, v.Page().Rows, 5)
	assert.True(t, v.next.Disabled())
	assert.Equal(t, "Page 3 of 3 (45 rows)", v.pageLabel.Text)

	v.PrevPage()
	assert.Equal(t, 1, v.Page().Index)
	assert.Equal(t, "20", v.cell(0, 0))
	assert.Equal(t, "", v.cell(0, 5))
}

func TestCSVTableViewSearch(t *testing.T) {
	test.NewTempApp(t)
	v := NewCSVTableView(20)
	v.SetTable(numberedTable(45))
	v.NextPage()

	test.Type(v.search, "ROW 4")
	assert.Equal(t, 0, v.Page().Index)
	assert.Equal(t, 6, v.Page().Matches)

	v.SetTable(numberedTable(3))
	assert.Equal(t, "", v.search.Text)
	assert.Equal(t, 3, v.Page().Matches)
}

func TestCSVTableViewEmpty(t *testing.T) {
	test.NewTempApp(t)
	v := NewCSVTableView(0)
	v.SetTable(nil)
	assert.Equal(t, 1, v.Page().TotalPages)
	assert.Empty(t, v.Page().Rows)
}

func TestPageDisplay(t *testing.T) {
	test.NewTempApp(t)
	pd := NewPageDisplay()
	pd.SetPages([]models.Page{
		{Number: 1, Image: image.NewRGBA(image.Rect(0, 0, 80, 100))},
		{Number: 2, Text: "second page"},
	})
	assert.Equal(t, 2, pd.PageCount())

	pd.SetPages(nil)
	assert.Equal(t, 0, pd.PageCount())
}

func textSegments(t *testing.T, segs []widget.RichTextSegment) []*widget.TextSegment {
	t.Helper()
	out := make([]*widget.TextSegment, 0, len(segs))
	for _, s := range segs {
		ts, ok := s.(*widget.TextSegment)
		require.True(t, ok, "%T", s)
		out = append(out, ts)
	}
	return out
}

func TestPreviewSegmentsLines(t *testing.T) {
	segs := textSegments(t, PreviewSegments("Hi\n\nthere", []models.StyleRange{
		{Name: models.StyleBold, Start: 0, End: 2},
	}, nil))

	require.Len(t, segs, 3)
	assert.Equal(t, "Hi", segs[0].Text)
	assert.True(t, segs[0].Style.TextStyle.Bold)
	assert.False(t, segs[0].Style.Inline)
	assert.Equal(t, "", segs[1].Text)
	assert.Equal(t, "there", segs[2].Text)
	assert.False(t, segs[2].Style.TextStyle.Bold)
}

func TestPreviewSegmentsColorsAndHeadings(t *testing.T) {
	segs := textSegments(t, PreviewSegments("abc", []models.StyleRange{
		{Name: models.StyleHeading1, Start: 0, End: 3},
		{Name: "color_#ff0000", Start: 1, End: 2},
		{Name: "bg_#00ff00", Start: 2, End: 3},
	}, nil))

	require.Len(t, segs, 3)
	assert.Equal(t, SizeNameHeading1, segs[0].Style.SizeName)
	assert.Equal(t, "color_#e74c3c", string(segs[0].Style.ColorName))
	assert.True(t, segs[0].Style.Inline)
	assert.Equal(t, "color_#ff0000", string(segs[1].Style.ColorName))
	assert.Equal(t, "color_#e74c3c", string(segs[2].Style.ColorName))
	assert.False(t, segs[2].Style.Inline)
}

func TestPreviewSegmentsImages(t *testing.T) {
	pic := image.NewRGBA(image.Rect(0, 0, 40, 20))
	segs := PreviewSegments("ab", nil, []models.ImageHandle{
		{ID: 1, Offset: 1, Source: "/tmp/photo.png", Image: pic},
		{ID: 2, Offset: 2, Source: "/tmp/undecoded.png"},
	})

	require.Len(t, segs, 3)
	img, ok := segs[1].(*ImageSegment)
	require.True(t, ok)
	assert.Equal(t, "photo.png", img.Title)
	assert.Equal(t, "b", segs[2].(*widget.TextSegment).Text)
}

func TestPreviewDrawsScaledImage(t *testing.T) {
	test.NewTempApp(t)
	path := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 2000, 500))))
	require.NoError(t, f.Close())

	loaded, err := documents.LoadImage(context.Background(), path, documents.MaxEmbeddedImageWidth)
	require.NoError(t, err)
	b := models.NewDocumentBuffer()
	b.SetText("ab")
	b.InsertImage(1, loaded.Source, loaded.Image)

	p := NewPreview()
	p.Update(b.Text(), b.Styles(), b.Images())

	seg, ok := p.Segments()[1].(*ImageSegment)
	require.True(t, ok)
	visual := seg.Visual().(*canvas.Image)
	assert.Same(t, loaded.Image, visual.Image)
	assert.LessOrEqual(t, visual.MinSize().Width, float32(documents.MaxEmbeddedImageWidth))
	assert.Equal(t, float32(175), visual.MinSize().Height)
}
