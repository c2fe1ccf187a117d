package app

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chriscorrea/bm25md"

	"github.com/chriscorrea/skim/internal/counter"
	"github.com/chriscorrea/skim/internal/markdown"
	"github.com/chriscorrea/skim/internal/search"
	"github.com/chriscorrea/skim/internal/segment"
)

// hitStyle marks hits in terminal output.
var hitStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("212"))

// SegmentHits is one segment together with the hits that fall inside it.
type SegmentHits struct {
	Index   int             // position of the segment in document order
	Segment segment.Segment // elements and bounds in the plain text
	Hits    []search.Span   // document offsets
	Local   []search.Span   // offsets within the segment's text
	Score   float64         // BM25md score when ranked, otherwise zero
}

// FindInSegments finds every hit of query in the document's plain text and
// groups the hits by segment. Segments without hits are omitted.
func FindInSegments(doc markdown.Document, query string, opts search.Options) []SegmentHits {
	segments := segment.Split(doc)
	hits := search.Find(markdown.PlainText(doc), query, opts)
	groups := search.GroupByBounds(hits, segment.Bounds(segments))

	var results []SegmentHits
	for i, group := range groups {
		if len(group) == 0 {
			continue
		}
		results = append(results, SegmentHits{
			Index:   i,
			Segment: segments[i],
			Hits:    group,
			Local:   search.Localize(group, segments[i].Offset),
		})
	}
	slog.Debug("Hits grouped by segment", "hits", len(hits), "segments", len(segments), "matched", len(results))
	return results
}

// RankSegments scores each result against query with BM25md, using every
// segment of doc as the corpus, and sorts results by score (highest first).
// Ties keep document order.
func RankSegments(doc markdown.Document, results []SegmentHits, query string) {
	segments := segment.Split(doc)
	if len(segments) == 0 || len(results) == 0 {
		return
	}

	corpus := bm25md.NewCorpus()
	parser := bm25md.NewMarkdownFieldParser()
	for i, seg := range segments {
		chunk := markdown.Render(markdown.Document{Elements: seg.Elements})
		corpus.AddDocument(bm25md.Document{
			ID:       i,
			Fields:   parser.ParseDocument(chunk),
			Original: chunk,
		})
	}

	for i := range results {
		results[i].Score = corpus.Score(query, results[i].Index)
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}

// Highlight applies mark to every local span of text. Spans are rune offsets
// and must be sorted and non-overlapping.
func Highlight(text string, spans []search.Span, mark func(string) string) string {
	if len(spans) == 0 || mark == nil {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	cursor := 0
	for _, s := range spans {
		if s.Start < cursor || s.End > len(runes) || s.Start > s.End {
			continue
		}
		b.WriteString(string(runes[cursor:s.Start]))
		b.WriteString(mark(string(runes[s.Start:s.End])))
		cursor = s.End
	}
	b.WriteString(string(runes[cursor:]))
	return b.String()
}

// runSearch formats FindInSegments output, optionally ranked, with the
// containing segment of cfg.Position reported first.
func runSearch(doc markdown.Document, cfg Config) (string, error) {
	if strings.TrimSpace(cfg.Query) == "" && cfg.Position == nil {
		return "", fmt.Errorf("search needs a query or a position")
	}

	var b strings.Builder
	segments := segment.Split(doc)

	if cfg.Position != nil {
		if i, ok := search.LocateContainingBound(*cfg.Position, segment.Bounds(segments)); ok {
			seg := segments[i]
			fmt.Fprintf(&b, "position %d:%d is in segment %d (%s %d:%d)\n",
				cfg.Position.Start, cfg.Position.End, i+1, seg.Kind, seg.Bounds.Start, seg.Bounds.End)
		} else {
			fmt.Fprintf(&b, "position %d:%d is not inside any segment\n", cfg.Position.Start, cfg.Position.End)
		}
	}

	if strings.TrimSpace(cfg.Query) == "" {
		return b.String(), nil
	}

	results := FindInSegments(doc, cfg.Query, search.Options{IgnoreCase: cfg.IgnoreCase, Stem: cfg.Stem})
	if cfg.Rank {
		RankSegments(doc, results, cfg.Query)
	}

	total := 0
	for _, r := range results {
		total += len(r.Hits)
	}
	fmt.Fprintf(&b, "%d %s in %d of %d segments for %q\n",
		total, plural(total, "hit", "hits"), len(results), len(segments), cfg.Query)

	var textCounter counter.Counter
	if len(results) > 0 {
		c, err := counter.NewCounter(cfg.Counting)
		if err != nil {
			return "", fmt.Errorf("failed to create counter: %w", err)
		}
		textCounter = c
	}

	var mark func(string) string
	if cfg.Highlight {
		mark = func(s string) string { return hitStyle.Render(s) }
	}

	for _, r := range results {
		text := r.Segment.Text()
		fmt.Fprintf(&b, "\n[segment %d %s %d:%d, %d %s]",
			r.Index+1, r.Segment.Kind, r.Segment.Bounds.Start, r.Segment.Bounds.End,
			textCounter.Count(text), textCounter.Name())
		if cfg.Rank {
			fmt.Fprintf(&b, " score %.3f", r.Score)
		}
		b.WriteString("\n")
		for k, h := range r.Hits {
			fmt.Fprintf(&b, "  %d:%d (local %d:%d)\n", h.Start, h.End, r.Local[k].Start, r.Local[k].End)
		}
		b.WriteString(withNewline(Highlight(text, r.Local, mark)))
	}
	return b.String(), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
