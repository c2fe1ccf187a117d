package markdown

import (
	"fmt"
)

// Match is the earliest catalog match found by a Scanner.
type Match struct {
	Pattern PatternID
	Start   int // rune offset of the first matched rune
	End     int // rune offset just past the match

	groups map[string]string
}

// Group returns the named capture of the match, or "" if the pattern has no such group.
func (m Match) Group(name string) string {
	return m.groups[name]
}

// lookahead caches the next match of one pattern.
type lookahead struct {
	searched bool
	from     int    // offset the cached search started at
	match    *Match // nil when the pattern has no match at or after from
}

// Scanner finds successive catalog matches in one text. The cursor passed to Next
// is expected to grow between calls; per-pattern results are reused while they
// still lie at or after the cursor.
type Scanner struct {
	runes    []rune
	patterns []Pattern
	ahead    []lookahead
}

// NewScanner creates a scanner over runes using the package catalog.
func NewScanner(runes []rune) *Scanner {
	patterns := Catalog()
	return &Scanner{
		runes:    runes,
		patterns: patterns,
		ahead:    make([]lookahead, len(patterns)),
	}
}

// Next returns the match with the smallest start offset at or after from. When
// several patterns start at the same offset the one earliest in the catalog wins.
// The boolean is false when nothing matches in the rest of the text.
func (s *Scanner) Next(from int) (Match, bool, error) {
	var best *Match
	for i := range s.patterns {
		m, err := s.nextFor(i, from)
		if err != nil {
			return Match{}, false, err
		}
		if m == nil {
			continue
		}
		// strict comparison keeps the higher-priority pattern on ties
		if best == nil || m.Start < best.Start {
			best = m
		}
	}
	if best == nil {
		return Match{}, false, nil
	}
	return *best, true, nil
}

// nextFor returns the first match of pattern i at or after from.
// A cached result stays valid when the earlier search began at or before from and
// its match (if any) starts at or after from: no position in between matched.
func (s *Scanner) nextFor(i, from int) (*Match, error) {
	cached := &s.ahead[i]
	if cached.searched && cached.from <= from && (cached.match == nil || cached.match.Start >= from) {
		return cached.match, nil
	}

	pattern := s.patterns[i]
	found, err := pattern.re.FindRunesMatchStartingAt(s.runes, from)
	if err != nil {
		return nil, fmt.Errorf("failed to match %s pattern at offset %d: %w", pattern.ID, from, err)
	}

	cached.searched = true
	cached.from = from
	cached.match = nil
	if found == nil {
		return nil, nil
	}

	m := &Match{
		Pattern: pattern.ID,
		Start:   found.Index,
		End:     found.Index + found.Length,
	}
	if len(pattern.groups) > 0 {
		m.groups = make(map[string]string, len(pattern.groups))
		for _, name := range pattern.groups {
			if g := found.GroupByName(name); g != nil && len(g.Captures) > 0 {
				m.groups[name] = g.String()
			}
		}
	}
	cached.match = m
	return m, nil
}
