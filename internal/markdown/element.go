// Package markdown parses a small markdown subset into a tree of typed elements.
//
// The parser recognizes a fixed catalog of block and inline markers (list items,
// headers, quotes, emphasis, strikethrough, rules, inline code, links and fenced
// code blocks). Container constructs are re-parsed recursively so that, for
// example, bold text inside a quote produces a nested element. Malformed markup is
// never rejected; it is emitted as literal text.
//
// Usage Example:
//
//	doc, err := markdown.Parse("> **bold inside quote**")
//	if err != nil {
//		// nesting depth exceeded
//	}
//	plain := markdown.PlainText(doc) // "bold inside quote"
//
// All offsets produced by this package are rune offsets.
package markdown

import (
	"unicode/utf8"
)

// Kind identifies the variant of an Element.
type Kind int

const (
	KindText Kind = iota
	KindUnorderedListItem
	KindHeader
	KindQuote
	KindItalic
	KindBold
	KindStrike
	KindRule
	KindInlineCode
	KindLink
	KindOrderedListItem
	KindBlockCode
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUnorderedListItem:
		return "unordered-list-item"
	case KindHeader:
		return "header"
	case KindQuote:
		return "quote"
	case KindItalic:
		return "italic"
	case KindBold:
		return "bold"
	case KindStrike:
		return "strike"
	case KindRule:
		return "rule"
	case KindInlineCode:
		return "inline-code"
	case KindLink:
		return "link"
	case KindOrderedListItem:
		return "ordered-list-item"
	case KindBlockCode:
		return "block-code"
	default:
		return "unknown"
	}
}

// Element is a node of the parsed tree. The set of implementations is closed;
// only the types declared in this package satisfy it.
type Element interface {
	// Kind reports which variant the element is.
	Kind() Kind
	// Text returns the literal text owned by the element, markers removed.
	Text() string
	// Children returns the nested elements, or nil for leaves.
	Children() []Element

	element()
}

// Text is a run of literal text.
type Text struct {
	Value string
}

// UnorderedListItem is a line starting with "* ", "+ " or "- ".
type UnorderedListItem struct {
	Value    string
	Elements []Element
}

// Header is a line starting with one to six '#' and a space.
type Header struct {
	Level int
	Value string
}

// Quote is a line starting with "> ".
type Quote struct {
	Value    string
	Elements []Element
}

// Italic is text between single '*' or '_' delimiters.
type Italic struct {
	Value    string
	Elements []Element
}

// Bold is text between "**" or "__" delimiters.
type Bold struct {
	Value    string
	Elements []Element
}

// Strike is text between "~~" delimiters.
type Strike struct {
	Value    string
	Elements []Element
}

// Rule is a horizontal rule line ("---", "___" or "***").
type Rule struct{}

// InlineCode is text between single backticks. Its content is never re-parsed.
type InlineCode struct {
	Value string
}

// Link is a "[display](target)" reference.
type Link struct {
	Target  string
	Display string
}

// OrderedListItem is a line starting with digits, a '.' and a space.
type OrderedListItem struct {
	Marker   string // digits and dot, e.g. "12."
	Value    string
	Elements []Element
}

// BlockCodeType tags a line of a fenced code block with its position in the block.
type BlockCodeType int

const (
	BlockCodeStart BlockCodeType = iota
	BlockCodeMiddle
	BlockCodeEnd
	BlockCodeSingle
)

// String returns the string representation of the block position
func (t BlockCodeType) String() string {
	switch t {
	case BlockCodeStart:
		return "start"
	case BlockCodeMiddle:
		return "middle"
	case BlockCodeEnd:
		return "end"
	case BlockCodeSingle:
		return "single"
	default:
		return "unknown"
	}
}

// BlockCode is one line of a fenced code block. Every line except the last keeps
// its trailing line separator.
type BlockCode struct {
	Type  BlockCodeType
	Value string
}

func (Text) Kind() Kind              { return KindText }
func (UnorderedListItem) Kind() Kind { return KindUnorderedListItem }
func (Header) Kind() Kind            { return KindHeader }
func (Quote) Kind() Kind             { return KindQuote }
func (Italic) Kind() Kind            { return KindItalic }
func (Bold) Kind() Kind              { return KindBold }
func (Strike) Kind() Kind            { return KindStrike }
func (Rule) Kind() Kind              { return KindRule }
func (InlineCode) Kind() Kind        { return KindInlineCode }
func (Link) Kind() Kind              { return KindLink }
func (OrderedListItem) Kind() Kind   { return KindOrderedListItem }
func (BlockCode) Kind() Kind         { return KindBlockCode }

func (e Text) Text() string              { return e.Value }
func (e UnorderedListItem) Text() string { return e.Value }
func (e Header) Text() string            { return e.Value }
func (e Quote) Text() string             { return e.Value }
func (e Italic) Text() string            { return e.Value }
func (e Bold) Text() string              { return e.Value }
func (e Strike) Text() string            { return e.Value }
func (Rule) Text() string                { return "" }
func (e InlineCode) Text() string        { return e.Value }
func (e Link) Text() string              { return e.Display }
func (e OrderedListItem) Text() string   { return e.Value }
func (e BlockCode) Text() string         { return e.Value }

func (Text) Children() []Element                { return nil }
func (e UnorderedListItem) Children() []Element { return e.Elements }
func (Header) Children() []Element              { return nil }
func (e Quote) Children() []Element             { return e.Elements }
func (e Italic) Children() []Element            { return e.Elements }
func (e Bold) Children() []Element              { return e.Elements }
func (e Strike) Children() []Element            { return e.Elements }
func (Rule) Children() []Element                { return nil }
func (InlineCode) Children() []Element          { return nil }
func (Link) Children() []Element                { return nil }
func (e OrderedListItem) Children() []Element   { return e.Elements }
func (BlockCode) Children() []Element           { return nil }

func (Text) element()              {}
func (UnorderedListItem) element() {}
func (Header) element()            {}
func (Quote) element()             {}
func (Italic) element()            {}
func (Bold) element()              {}
func (Strike) element()            {}
func (Rule) element()              {}
func (InlineCode) element()        {}
func (Link) element()              {}
func (OrderedListItem) element()   {}
func (BlockCode) element()         {}

// Document is the ordered list of top-level elements produced by one parse.
// It is not modified after construction.
type Document struct {
	Elements []Element
}

// Len returns the rune length of the document's plain text.
func (d Document) Len() int {
	return utf8.RuneCountInString(PlainText(d))
}

// Walk visits elements depth-first in document order, calling fn with each
// element and its nesting depth (0 for top-level elements). Returning false from
// fn skips the element's children.
func Walk(elements []Element, fn func(el Element, depth int) bool) {
	walk(elements, 0, fn)
}

func walk(elements []Element, depth int, fn func(el Element, depth int) bool) {
	for _, el := range elements {
		if fn(el, depth) {
			walk(el.Children(), depth+1, fn)
		}
	}
}
