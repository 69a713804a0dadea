package models

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Built-in style names.
const (
	StyleBold      = "bold"
	StyleItalic    = "italic"
	StyleUnderline = "underline"
	StyleHeading1  = "heading1"
	StyleHeading2  = "heading2"
	StyleHeading3  = "heading3"

	foregroundPrefix = "color_"
	backgroundPrefix = "bg_"
)

// Headings lists the heading styles from largest to smallest.
var Headings = []string{StyleHeading1, StyleHeading2, StyleHeading3}

// StyleRange applies a named style to runes [Start, End) of the buffer text.
type StyleRange struct {
	Name  string
	Start int
	End   int
}

func (r StyleRange) contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ColorStyleName returns the style name used for a text or background colour,
// e.g. "color_#ff8800" or "bg_#ff8800".
func ColorStyleName(c color.Color, background bool) string {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	hex := fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
	if background {
		return backgroundPrefix + hex
	}
	return foregroundPrefix + hex
}

// ParseColorStyle turns a name made by ColorStyleName back into its colour.
func ParseColorStyle(name string) (color.Color, bool) {
	var hex string
	switch {
	case strings.HasPrefix(name, foregroundPrefix+"#"):
		hex = name[len(foregroundPrefix)+1:]
	case strings.HasPrefix(name, backgroundPrefix+"#"):
		hex = name[len(backgroundPrefix)+1:]
	default:
		return nil, false
	}
	if len(hex) != 6 {
		return nil, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, false
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// IsBackgroundStyle reports whether name was made for a background colour.
func IsBackgroundStyle(name string) bool {
	return strings.HasPrefix(name, backgroundPrefix)
}

// IsHeading reports whether name is one of the heading styles.
func IsHeading(name string) bool {
	for _, h := range Headings {
		if h == name {
			return true
		}
	}
	return false
}

// styleSet keeps ranges grouped by name, each group sorted and non-overlapping.
type styleSet struct {
	ranges map[string][]StyleRange
}

func newStyleSet() styleSet {
	return styleSet{ranges: make(map[string][]StyleRange)}
}

func (s styleSet) has(name string, offset int) bool {
	for _, r := range s.ranges[name] {
		if r.contains(offset) {
			return true
		}
	}
	return false
}

func (s styleSet) namesAt(offset int) []string {
	var names []string
	for name, ranges := range s.ranges {
		for _, r := range ranges {
			if r.contains(offset) {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

func (s styleSet) add(name string, start, end int) {
	if start >= end {
		return
	}
	merged := StyleRange{Name: name, Start: start, End: end}
	kept := make([]StyleRange, 0, len(s.ranges[name])+1)
	for _, r := range s.ranges[name] {
		if r.End < merged.Start || r.Start > merged.End {
			kept = append(kept, r)
			continue
		}
		merged.Start = min(merged.Start, r.Start)
		merged.End = max(merged.End, r.End)
	}
	kept = append(kept, merged)
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	s.ranges[name] = kept
}

func (s styleSet) remove(name string, start, end int) {
	if start >= end {
		return
	}
	var kept []StyleRange
	for _, r := range s.ranges[name] {
		if r.End <= start || r.Start >= end {
			kept = append(kept, r)
			continue
		}
		if r.Start < start {
			kept = append(kept, StyleRange{Name: name, Start: r.Start, End: start})
		}
		if r.End > end {
			kept = append(kept, StyleRange{Name: name, Start: end, End: r.End})
		}
	}
	if len(kept) == 0 {
		delete(s.ranges, name)
		return
	}
	s.ranges[name] = kept
}

// shift moves every range through mapStart and mapEnd after an edit,
// dropping ranges that collapse to nothing.
func (s styleSet) shift(mapStart, mapEnd func(int) int) {
	for name, ranges := range s.ranges {
		var kept []StyleRange
		for _, r := range ranges {
			r.Start, r.End = mapStart(r.Start), mapEnd(r.End)
			if r.Start < r.End {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			delete(s.ranges, name)
			continue
		}
		s.ranges[name] = kept
	}
}

func (s styleSet) all() []StyleRange {
	var out []StyleRange
	for _, ranges := range s.ranges {
		out = append(out, ranges...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Name < out[j].Name
	})
	return out
}
