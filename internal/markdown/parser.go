package markdown

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// DefaultMaxDepth is the container nesting limit used by Parse.
const DefaultMaxDepth = 64

// lineSeparator is re-appended to every fenced code line except the last.
const lineSeparator = "\n"

// ErrNestingDepthExceeded is matched by errors returned when markup nests deeper
// than the parser's limit.
var ErrNestingDepthExceeded = errors.New("markdown nesting depth exceeded")

// NestingDepthError reports a parse aborted by the nesting guard.
type NestingDepthError struct {
	Limit int // configured maximum depth
	Depth int // depth that was reached
}

func (e *NestingDepthError) Error() string {
	return fmt.Sprintf("markdown nesting depth %d exceeds limit %d", e.Depth, e.Limit)
}

// Is reports whether target is ErrNestingDepthExceeded.
func (e *NestingDepthError) Is(target error) bool {
	return target == ErrNestingDepthExceeded
}

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth limits how deeply container elements may nest. Values below zero
// are treated as zero. At zero only leaf constructs (text, headers, rules,
// inline code, links and fenced code) parse; any container fails because its
// children are built one level down.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth < 0 {
			depth = 0
		}
		p.maxDepth = depth
	}
}

// Parser turns text into a Document. It holds no per-call state and may be used
// from several goroutines at once.
type Parser struct {
	maxDepth int
}

// NewParser creates a parser with DefaultMaxDepth unless overridden by options.
func NewParser(opts ...Option) Parser {
	p := Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// MaxDepth returns the parser's nesting limit.
func (p Parser) MaxDepth() int {
	return p.maxDepth
}

// Parse parses text with the default parser.
func Parse(text string) (Document, error) {
	return NewParser().Parse(text)
}

// ParseOrText parses text with the default parser and falls back to a single
// Text element holding the raw input when parsing fails.
func ParseOrText(text string) Document {
	return NewParser().ParseOrText(text)
}

// ParseOrText is Parse, falling back to a single Text element holding the raw
// input when parsing fails.
func (p Parser) ParseOrText(text string) Document {
	doc, err := p.Parse(text)
	if err != nil {
		slog.Debug("Falling back to raw text", "error", err)
		if text == "" {
			return Document{}
		}
		return Document{Elements: []Element{Text{Value: text}}}
	}
	return doc
}

// Parse builds the element tree for text. Malformed markup becomes literal text;
// the only error is a *NestingDepthError (or a matcher failure wrapping one of the
// regexp engine's errors).
func (p Parser) Parse(text string) (Document, error) {
	slog.Debug("Parse called", "textLength", utf8.RuneCountInString(text), "maxDepth", p.maxDepth)
	if text == "" {
		return Document{}, nil
	}

	elements, err := p.build([]rune(text), 0)
	if err != nil {
		return Document{}, err
	}

	slog.Debug("Parse completed", "topLevelElements", len(elements))
	return Document{Elements: elements}, nil
}

// build scans runes left to right, filling gaps between matches with Text and
// recursing into the inner text of container matches.
func (p Parser) build(runes []rune, depth int) ([]Element, error) {
	if depth > p.maxDepth {
		return nil, &NestingDepthError{Limit: p.maxDepth, Depth: depth}
	}

	var elements []Element
	scanner := NewScanner(runes)
	cursor := 0

	for cursor < len(runes) {
		m, ok, err := scanner.Next(cursor)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if m.Start > cursor {
			elements = append(elements, Text{Value: string(runes[cursor:m.Start])})
		}

		produced, err := p.element(runes, m, depth)
		if err != nil {
			return nil, err
		}
		elements = append(elements, produced...)
		cursor = m.End
	}

	if cursor < len(runes) {
		elements = append(elements, Text{Value: string(runes[cursor:])})
	}
	return elements, nil
}

// element converts one match into the elements it stands for. Only fenced code
// blocks yield more than one element.
func (p Parser) element(runes []rune, m Match, depth int) ([]Element, error) {
	pattern := Catalog()[m.Pattern]
	inner := runes[m.Start+pattern.open : m.End-pattern.close]

	switch m.Pattern {
	case PatternUnorderedListItem:
		children, err := p.build(inner, depth+1)
		if err != nil {
			return nil, err
		}
		return []Element{UnorderedListItem{Value: string(inner), Elements: children}}, nil

	case PatternHeader:
		level := len(m.Group("level"))
		return []Element{Header{Level: level, Value: string(runes[m.Start+level+1 : m.End])}}, nil

	case PatternQuote:
		children, err := p.build(inner, depth+1)
		if err != nil {
			return nil, err
		}
		return []Element{Quote{Value: string(inner), Elements: children}}, nil

	case PatternItalic:
		children, err := p.build(inner, depth+1)
		if err != nil {
			return nil, err
		}
		return []Element{Italic{Value: string(inner), Elements: children}}, nil

	case PatternBold:
		children, err := p.build(inner, depth+1)
		if err != nil {
			return nil, err
		}
		return []Element{Bold{Value: string(inner), Elements: children}}, nil

	case PatternStrike:
		children, err := p.build(inner, depth+1)
		if err != nil {
			return nil, err
		}
		return []Element{Strike{Value: string(inner), Elements: children}}, nil

	case PatternRule:
		return []Element{Rule{}}, nil

	case PatternInlineCode:
		return []Element{InlineCode{Value: string(inner)}}, nil

	case PatternLink:
		return []Element{Link{Target: m.Group("target"), Display: m.Group("display")}}, nil

	case PatternOrderedListItem:
		marker := m.Group("marker")
		body := runes[m.Start+utf8.RuneCountInString(marker)+1 : m.End]
		children, err := p.build(body, depth+1)
		if err != nil {
			return nil, err
		}
		return []Element{OrderedListItem{Marker: marker, Value: string(body), Elements: children}}, nil

	case PatternBlockCode:
		return blockCodeLines(m.Group("code")), nil

	default:
		// unreachable while the catalog and this switch agree; keep the text
		return []Element{Text{Value: string(runes[m.Start:m.End])}}, nil
	}
}

// blockCodeLines splits fenced code content into one BlockCode per line.
func blockCodeLines(code string) []Element {
	if !strings.Contains(code, lineSeparator) {
		return []Element{BlockCode{Type: BlockCodeSingle, Value: code}}
	}

	lines := strings.Split(code, lineSeparator)
	elements := make([]Element, 0, len(lines))
	for i, line := range lines {
		switch i {
		case 0:
			elements = append(elements, BlockCode{Type: BlockCodeStart, Value: line + lineSeparator})
		case len(lines) - 1:
			elements = append(elements, BlockCode{Type: BlockCodeEnd, Value: line})
		default:
			elements = append(elements, BlockCode{Type: BlockCodeMiddle, Value: line + lineSeparator})
		}
	}
	return elements
}
