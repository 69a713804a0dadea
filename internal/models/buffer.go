package models

import (
	"image"
	"image/color"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// ImageHandle is an image embedded at a rune offset of the buffer text.
type ImageHandle struct {
	ID     int
	Offset int
	Source string
	Image  image.Image
}

// Stats are the counts shown in the status bar.
type Stats struct {
	Lines      int
	Characters int
	Words      int
}

// TextStats counts lines, characters and words of text.
func TextStats(text string) Stats {
	words := 0
	if strings.TrimSpace(text) != "" {
		words = len(strings.Fields(text))
	}
	return Stats{
		Lines:      strings.Count(text, "\n") + 1,
		Characters: utf8.RuneCountInString(text),
		Words:      words,
	}
}

// DocumentBuffer is the editor's in-memory state. The text, CSV table and
// PDF pages are held independently; Kind says which one is active.
type DocumentBuffer struct {
	mu sync.RWMutex

	path   string
	kind   Kind
	text   string
	styles styleSet
	colors map[string]color.Color
	images []ImageHandle
	nextID int
	table  *CSVTable
	pages  []Page
	dirty  bool
}

// NewDocumentBuffer returns an empty, saved text buffer.
func NewDocumentBuffer() *DocumentBuffer {
	return &DocumentBuffer{
		kind:   KindText,
		styles: newStyleSet(),
		colors: make(map[string]color.Color),
	}
}

// Reset clears everything, as for File > New.
func (b *DocumentBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.path = ""
	b.kind = KindText
	b.text = ""
	b.styles = newStyleSet()
	b.images = nil
	b.table = nil
	b.pages = nil
	b.dirty = false
}

// Load replaces the active content with doc read from path. Styles and
// images belong to the old text and are dropped.
func (b *DocumentBuffer) Load(path string, doc *Document) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.path = path
	b.kind = doc.Kind
	b.dirty = false
	switch doc.Kind {
	case KindCSV:
		b.table = doc.Table
	case KindPDF:
		b.pages = doc.Pages
	default:
		b.text = doc.Text
		b.styles = newStyleSet()
		b.images = nil
	}
}

// Snapshot returns the active content as a Document for saving.
func (b *DocumentBuffer) Snapshot() *Document {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Document{
		Kind:  b.kind,
		Text:  b.text,
		Table: b.table,
		Pages: b.pages,
	}
}

// MarkSaved records path as the current file and clears the dirty flag.
func (b *DocumentBuffer) MarkSaved(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.path = path
	b.dirty = false
}

// SetKind switches the active view without converting content.
func (b *DocumentBuffer) SetKind(kind Kind) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.kind = kind
}

func (b *DocumentBuffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

func (b *DocumentBuffer) Kind() Kind {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.kind
}

func (b *DocumentBuffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

func (b *DocumentBuffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

func (b *DocumentBuffer) Table() *CSVTable {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.table
}

func (b *DocumentBuffer) Pages() []Page {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.pages
}

// Stats counts the current text.
func (b *DocumentBuffer) Stats() Stats {
	return TextStats(b.Text())
}

// SetText replaces the text after a user edit. Style ranges and image
// anchors are moved so they stay attached to the text around the change.
func (b *DocumentBuffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if text == b.text {
		return
	}
	e := diffEdit([]rune(b.text), []rune(text))
	b.styles.shift(e.mapStart, e.mapOffset)
	for i := range b.images {
		b.images[i].Offset = e.mapOffset(b.images[i].Offset)
	}
	b.text = text
	b.dirty = true
}

// textEdit is the changed middle of an edit: before[prefix:oldEnd] became
// after[prefix:newEnd].
type textEdit struct {
	prefix, oldEnd, newEnd int
}

func diffEdit(before, after []rune) textEdit {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	return textEdit{prefix: prefix, oldEnd: len(before) - suffix, newEnd: len(after) - suffix}
}

// mapOffset moves an old offset to the new text. Offsets inside a replaced
// span snap to its end.
func (e textEdit) mapOffset(offset int) int {
	switch {
	case offset <= e.prefix:
		return offset
	case offset >= e.oldEnd:
		return offset + e.newEnd - e.oldEnd
	default:
		return e.newEnd
	}
}

// mapStart is mapOffset for range starts: text inserted right at a start
// stays outside the range, as it does at an end.
func (e textEdit) mapStart(offset int) int {
	if offset == e.prefix && e.oldEnd == e.prefix {
		return e.newEnd
	}
	return e.mapOffset(offset)
}

// HasStyle reports whether the rune at offset carries style name.
func (b *DocumentBuffer) HasStyle(name string, offset int) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.styles.has(name, offset)
}

// StylesAt lists the styles on the rune at offset, sorted by name.
func (b *DocumentBuffer) StylesAt(offset int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.styles.namesAt(offset)
}

// Styles returns every style range ordered by start.
func (b *DocumentBuffer) Styles() []StyleRange {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.styles.all()
}

// ToggleStyle removes name from [start, end) if the first selected rune
// already has it, and applies it to the whole range otherwise.
func (b *DocumentBuffer) ToggleStyle(name string, start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end = b.clamp(start, end)
	if start >= end {
		return
	}
	if b.styles.has(name, start) {
		b.styles.remove(name, start, end)
	} else {
		b.styles.add(name, start, end)
	}
	b.dirty = true
}

// ApplyHeading replaces any heading on [start, end) with heading.
func (b *DocumentBuffer) ApplyHeading(heading string, start, end int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	start, end = b.clamp(start, end)
	if start >= end {
		return
	}
	for _, h := range Headings {
		b.styles.remove(h, start, end)
	}
	b.styles.add(heading, start, end)
	b.dirty = true
}

// ApplyColor creates the colour style on first use and applies it to
// [start, end). It returns the style name.
func (b *DocumentBuffer) ApplyColor(c color.Color, background bool, start, end int) string {
	name := ColorStyleName(c, background)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.colors[name]; !ok {
		b.colors[name] = c
	}
	start, end = b.clamp(start, end)
	if start < end {
		b.styles.add(name, start, end)
		b.dirty = true
	}
	return name
}

// Colors returns every colour style created so far.
func (b *DocumentBuffer) Colors() map[string]color.Color {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]color.Color, len(b.colors))
	for k, v := range b.colors {
		out[k] = v
	}
	return out
}

// InsertImage anchors img at offset and returns its handle.
func (b *DocumentBuffer) InsertImage(offset int, source string, img image.Image) ImageHandle {
	b.mu.Lock()
	defer b.mu.Unlock()

	offset, _ = b.clamp(offset, offset)
	b.nextID++
	handle := ImageHandle{ID: b.nextID, Offset: offset, Source: source, Image: img}
	b.images = append(b.images, handle)
	sort.SliceStable(b.images, func(i, j int) bool { return b.images[i].Offset < b.images[j].Offset })
	b.dirty = true
	return handle
}

// Images returns the embedded images ordered by offset.
func (b *DocumentBuffer) Images() []ImageHandle {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]ImageHandle, len(b.images))
	copy(out, b.images)
	return out
}

func (b *DocumentBuffer) clamp(start, end int) (int, int) {
	n := utf8.RuneCountInString(b.text)
	start = max(0, min(start, n))
	end = max(0, min(end, n))
	return start, end
}
