package markdown

import (
	"sync"

	"github.com/dlclark/regexp2"
)

// PatternID identifies an entry of the pattern catalog. Lower values have higher
// priority when two patterns match at the same offset.
type PatternID int

const (
	PatternUnorderedListItem PatternID = iota
	PatternHeader
	PatternQuote
	PatternItalic
	PatternBold
	PatternStrike
	PatternRule
	PatternInlineCode
	PatternLink
	PatternOrderedListItem
	PatternBlockCode
)

// String returns the string representation of the pattern
func (id PatternID) String() string {
	switch id {
	case PatternUnorderedListItem:
		return "unordered-list-item"
	case PatternHeader:
		return "header"
	case PatternQuote:
		return "quote"
	case PatternItalic:
		return "italic"
	case PatternBold:
		return "bold"
	case PatternStrike:
		return "strike"
	case PatternRule:
		return "rule"
	case PatternInlineCode:
		return "inline-code"
	case PatternLink:
		return "link"
	case PatternOrderedListItem:
		return "ordered-list-item"
	case PatternBlockCode:
		return "block-code"
	default:
		return "unknown"
	}
}

// Pattern is one catalog entry: a grammar, the named groups it captures and the
// number of marker runes to strip from each end of a match to get its inner text.
type Pattern struct {
	ID     PatternID
	re     *regexp2.Regexp
	groups []string
	open   int // marker runes before the inner text
	close  int // marker runes after the inner text
}

// patternDef is the uncompiled form of a catalog entry.
// Backticks are written as \x60 so the expressions stay raw strings.
type patternDef struct {
	id     PatternID
	expr   string
	groups []string
	open   int
	close  int
}

// definitions are listed in priority order; block constructs are anchored to a
// single line, inline constructs never cross a line break.
var definitions = []patternDef{
	{id: PatternUnorderedListItem, expr: `^[*+-] .+$`, open: 2},
	{id: PatternHeader, expr: `^(?<level>#{1,6}) .+?$`, groups: []string{"level"}},
	{id: PatternQuote, expr: `^> .+?$`, open: 2},
	{
		id:    PatternItalic,
		expr:  `(?<!\*)\*[^*\n].*?[^*\n]?\*(?!\*)|(?<!_)_[^_\n].*?[^_\n]?_(?!_)`,
		open:  1,
		close: 1,
	},
	{
		// a single inner delimiter is admitted at each end so "***x***" reads as bold around italic
		id:    PatternBold,
		expr:  `(?<!\*)\*{2}\*?[^*\n].*?[^*\n]?\*?\*{2}(?!\*)|(?<!_)_{2}_?[^_\n].*?[^_\n]?_?_{2}(?!_)`,
		open:  2,
		close: 2,
	},
	{id: PatternStrike, expr: `(?<!~)~{2}[^~\n].*?[^~\n]?~{2}(?!~)`, open: 2, close: 2},
	{id: PatternRule, expr: `^(?:-{3}|_{3}|\*{3})$`},
	{id: PatternInlineCode, expr: `(?<!\x60)\x60[^\x60\s].*?[^\x60\s]?\x60(?!\x60)`, open: 1, close: 1},
	{
		id:     PatternLink,
		expr:   `\[(?<display>[^\[\]\n]*?)\]\((?<target>[^\n]+?)\)`,
		groups: []string{"display", "target"},
	},
	{id: PatternOrderedListItem, expr: `^(?<marker>\d+\.) .+?$`, groups: []string{"marker"}},
	{id: PatternBlockCode, expr: `^\x60{3}\n(?<code>[\s\S]+?)\n\x60{3}$`, groups: []string{"code"}},
}

var (
	catalog     []Pattern
	catalogOnce sync.Once
)

// Catalog returns the compiled patterns in priority order. The slice is shared
// and must not be modified.
func Catalog() []Pattern {
	catalogOnce.Do(func() {
		catalog = make([]Pattern, 0, len(definitions))
		for _, def := range definitions {
			catalog = append(catalog, Pattern{
				ID:     def.id,
				re:     regexp2.MustCompile(def.expr, regexp2.Multiline),
				groups: def.groups,
				open:   def.open,
				close:  def.close,
			})
		}
	})
	return catalog
}
