package app

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/chriscorrea/skim/internal/counter"
	"github.com/chriscorrea/skim/internal/markdown"
	"github.com/chriscorrea/skim/internal/segment"
)

// DocumentStats summarizes a parsed document.
type DocumentStats struct {
	Kinds        map[markdown.Kind]int // elements per kind at any depth
	TopLevel     int
	MaxDepth     int // deepest element, top level is 0
	ProseGroups  int
	CodeBlocks   int
	Measurement  counter.Measurement
	TokensFailed bool // token encoding could not be loaded
}

// ComputeStats walks doc and measures its plain text. The returned error only
// reports a token counting failure; the rest of the stats are still filled in.
func ComputeStats(doc markdown.Document) (DocumentStats, error) {
	st := DocumentStats{
		Kinds:    make(map[markdown.Kind]int),
		TopLevel: len(doc.Elements),
	}

	markdown.Walk(doc.Elements, func(el markdown.Element, depth int) bool {
		st.Kinds[el.Kind()]++
		if depth > st.MaxDepth {
			st.MaxDepth = depth
		}
		return true
	})

	for _, seg := range segment.Split(doc) {
		if seg.Kind == segment.Code {
			st.CodeBlocks++
		} else {
			st.ProseGroups++
		}
	}

	m, err := counter.Measure(markdown.PlainText(doc))
	st.Measurement = m
	if err != nil {
		st.TokensFailed = true
		return st, err
	}
	return st, nil
}

// String formats the stats one fact per line, kinds in declaration order.
func (st DocumentStats) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "elements: %s top-level, max depth %d\n", humanize.Comma(int64(st.TopLevel)), st.MaxDepth)
	for k := markdown.KindText; k <= markdown.KindBlockCode; k++ {
		if n := st.Kinds[k]; n > 0 {
			fmt.Fprintf(&b, "  %-20s %s\n", k, humanize.Comma(int64(n)))
		}
	}
	fmt.Fprintf(&b, "segments: %s prose, %s code\n",
		humanize.Comma(int64(st.ProseGroups)), humanize.Comma(int64(st.CodeBlocks)))

	tokens := humanize.Comma(int64(st.Measurement.Tokens))
	if st.TokensFailed {
		tokens = "n/a"
	}
	fmt.Fprintf(&b, "plain text: %s tokens, %s words, %s characters\n",
		tokens,
		humanize.Comma(int64(st.Measurement.Words)),
		humanize.Comma(int64(st.Measurement.Characters)))
	return b.String()
}
