// Package search finds query hits in plain text and maps them onto the bounding
// intervals of document units.
//
// Hits and bounds are half-open rune spans. The mapping helpers never validate
// their input: a hit outside every bound is dropped, and overlapping bounds each
// receive a copy of the hits they contain.
//
// Usage Example:
//
//	hits := search.Find(plain, "needle", search.Options{IgnoreCase: true})
//	buckets := search.GroupByBounds(hits, bounds)
//	// buckets[i] holds the hits fully inside bounds[i]
package search

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
)

// Span is a half-open [Start, End) range of rune offsets.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Options controls how Find matches a query.
type Options struct {
	IgnoreCase bool // fold case before comparing
	Stem       bool // match whole words by their English stem instead of literally
}

// Find returns the spans of every occurrence of query in text, in order.
// An empty or whitespace-only query finds nothing.
func Find(text, query string, opts Options) []Span {
	if strings.TrimSpace(query) == "" || text == "" {
		return []Span{}
	}

	if opts.Stem {
		return findStemmed(text, query)
	}

	queryLen := len([]rune(query))
	starts := IndexesOf(text, query, opts.IgnoreCase)
	hits := make([]Span, 0, len(starts))
	for _, start := range starts {
		hits = append(hits, Span{Start: start, End: start + queryLen})
	}
	slog.Debug("Literal search completed", "query", query, "ignoreCase", opts.IgnoreCase, "hits", len(hits))
	return hits
}

// IndexesOf returns the rune offsets of every non-overlapping occurrence of substr
// in text, scanning left to right.
func IndexesOf(text, substr string, ignoreCase bool) []int {
	if text == "" || substr == "" {
		return []int{}
	}

	haystack := []rune(text)
	needle := []rune(substr)
	if ignoreCase {
		// rune-wise folding keeps offsets aligned with the original text
		haystack = foldRunes(haystack)
		needle = foldRunes(needle)
	}

	indexes := []int{}
	for i := 0; i+len(needle) <= len(haystack); {
		if runesEqual(haystack[i:i+len(needle)], needle) {
			indexes = append(indexes, i)
			i += len(needle)
			continue
		}
		i++
	}
	return indexes
}

func foldRunes(runes []rune) []rune {
	folded := make([]rune, len(runes))
	for i, r := range runes {
		folded[i] = unicode.ToLower(r)
	}
	return folded
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// word is a run of letters or digits with its position in the text.
type word struct {
	text string
	span Span
}

// words splits text into letter/digit runs.
func words(text string) []word {
	var result []word
	runes := []rune(text)
	start := -1
	for i, r := range runes {
		inWord := unicode.IsLetter(r) || unicode.IsDigit(r)
		switch {
		case inWord && start < 0:
			start = i
		case !inWord && start >= 0:
			result = append(result, word{text: string(runes[start:i]), span: Span{Start: start, End: i}})
			start = -1
		}
	}
	if start >= 0 {
		result = append(result, word{text: string(runes[start:]), span: Span{Start: start, End: len(runes)}})
	}
	return result
}

// stem returns the English snowball stem of a lowercased word.
func stem(w string) string {
	lowered := strings.ToLower(w)
	stemmed, err := snowball.Stem(lowered, "english", true)
	if err != nil {
		// if stemming fails, use the lowercased word
		return lowered
	}
	return stemmed
}

// findStemmed returns the spans of words whose stem equals the stem of any query word.
func findStemmed(text, query string) []Span {
	targets := make(map[string]struct{})
	for _, w := range words(query) {
		targets[stem(w.text)] = struct{}{}
	}
	if len(targets) == 0 {
		return []Span{}
	}

	hits := []Span{}
	for _, w := range words(text) {
		if _, ok := targets[stem(w.text)]; ok {
			hits = append(hits, w.span)
		}
	}
	slog.Debug("Stemmed search completed", "query", query, "stems", len(targets), "hits", len(hits))
	return hits
}
