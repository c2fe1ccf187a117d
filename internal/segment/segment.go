// Package segment groups the top-level elements of a parsed document into units
// that a reader displays as one block: runs of prose, and fenced code blocks.
//
// Each segment knows where its text lies inside the document's plain text, which
// is what search highlighting needs to map document-wide hits onto units:
//
//	segs := segment.Split(doc)
//	buckets := search.GroupByBounds(hits, segment.Bounds(segs))
//
// Segments tile the plain text: the first starts at offset 0, each next one starts
// where the previous ended, and the last ends at the plain text's rune length.
package segment

import (
	"log/slog"
	"unicode/utf8"

	"github.com/chriscorrea/skim/internal/markdown"
	"github.com/chriscorrea/skim/internal/search"
)

// Kind tells prose segments from code segments.
type Kind int

const (
	// Prose holds any top-level elements other than fenced code lines
	Prose Kind = iota
	// Code holds the lines of one fenced code block
	Code
)

// String returns the string representation of the segment kind
func (k Kind) String() string {
	switch k {
	case Prose:
		return "prose"
	case Code:
		return "code"
	default:
		return "unknown"
	}
}

// Segment is a run of top-level elements displayed as one unit.
type Segment struct {
	Kind     Kind
	Elements []markdown.Element
	Offset   int         // rune offset of the first character in the document's plain text
	Bounds   search.Span // [Offset, Offset+rune length of Text())
}

// Text returns the plain text of the segment.
func (s Segment) Text() string {
	return markdown.PlainText(markdown.Document{Elements: s.Elements})
}

// Split divides doc into segments in document order. A fenced code block from
// its Start line to its End line, or a Single line, forms one Code segment;
// maximal runs of other elements form Prose segments.
func Split(doc markdown.Document) []Segment {
	var segments []Segment
	var current []markdown.Element
	currentKind := Prose
	offset := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		seg := Segment{Kind: currentKind, Elements: current, Offset: offset}
		length := utf8.RuneCountInString(seg.Text())
		seg.Bounds = search.Span{Start: offset, End: offset + length}
		segments = append(segments, seg)
		offset += length
		current = nil
	}

	for _, el := range doc.Elements {
		code, isCode := el.(markdown.BlockCode)
		if !isCode {
			if currentKind == Code {
				flush()
				currentKind = Prose
			}
			current = append(current, el)
			continue
		}

		switch code.Type {
		case markdown.BlockCodeStart, markdown.BlockCodeSingle:
			flush()
			currentKind = Code
			current = append(current, el)
			if code.Type == markdown.BlockCodeSingle {
				flush()
				currentKind = Prose
			}
		case markdown.BlockCodeMiddle:
			current = append(current, el)
		case markdown.BlockCodeEnd:
			current = append(current, el)
			flush()
			currentKind = Prose
		}
	}
	flush()

	slog.Debug("Document split into segments", "elements", len(doc.Elements), "segments", len(segments))
	return segments
}

// Bounds returns the bounding interval of every segment, in order.
func Bounds(segments []Segment) []search.Span {
	bounds := make([]search.Span, 0, len(segments))
	for _, seg := range segments {
		bounds = append(bounds, seg.Bounds)
	}
	return bounds
}
