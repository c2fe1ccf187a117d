package markdown

import (
	"testing"
)

func TestScannerNext(t *testing.T) {
	scanner := NewScanner([]rune("a *b* `c` [d](e)"))

	expected := []struct {
		pattern    PatternID
		start, end int
	}{
		{PatternItalic, 2, 5},
		{PatternInlineCode, 6, 9},
		{PatternLink, 10, 16},
	}

	cursor := 0
	for i, want := range expected {
		m, ok, err := scanner.Next(cursor)
		if err != nil {
			t.Fatalf("Next(%d) unexpected error: %v", cursor, err)
		}
		if !ok {
			t.Fatalf("Next(%d) found no match, want %s", cursor, want.pattern)
		}
		if m.Pattern != want.pattern || m.Start != want.start || m.End != want.end {
			t.Errorf("match %d = %s [%d,%d), want %s [%d,%d)", i, m.Pattern, m.Start, m.End, want.pattern, want.start, want.end)
		}
		cursor = m.End
	}

	if _, ok, _ := scanner.Next(cursor); ok {
		t.Errorf("Next(%d) found a match past the last construct", cursor)
	}
}

func TestScannerPriority(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected PatternID
	}{
		{"list item over italic", "* *a*", PatternUnorderedListItem},
		{"bold when italic cannot open", "**a**", PatternBold},
		{"rule over emphasis", "***", PatternRule},
		{"inline code before inner bold", "`**x**`", PatternInlineCode},
		{"fenced block", "```\nx\n```", PatternBlockCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok, err := NewScanner([]rune(tt.text)).Next(0)
			if err != nil || !ok {
				t.Fatalf("Next(0) on %q = (%v, %v), want a match", tt.text, ok, err)
			}
			if m.Pattern != tt.expected {
				t.Errorf("Next(0) on %q matched %s, want %s", tt.text, m.Pattern, tt.expected)
			}
			if m.Start != 0 {
				t.Errorf("Next(0) on %q started at %d, want 0", tt.text, m.Start)
			}
		})
	}
}

func TestScannerGroups(t *testing.T) {
	m, ok, err := NewScanner([]rune("see [docs](https://go.dev)")).Next(0)
	if err != nil || !ok {
		t.Fatalf("Next(0) = (%v, %v), want a link match", ok, err)
	}
	if got := m.Group("display"); got != "docs" {
		t.Errorf("Group(display) = %q, want %q", got, "docs")
	}
	if got := m.Group("target"); got != "https://go.dev" {
		t.Errorf("Group(target) = %q, want %q", got, "https://go.dev")
	}
	if got := m.Group("missing"); got != "" {
		t.Errorf("Group(missing) = %q, want empty", got)
	}
}

func TestScannerCacheAfterBacktrack(t *testing.T) {
	scanner := NewScanner([]rune("_a_ b"))
	if _, ok, _ := scanner.Next(2); ok {
		t.Fatalf("Next(2) found a match, want none")
	}
	// searching from an earlier offset than the cached one must not reuse it
	m, ok, err := scanner.Next(0)
	if err != nil || !ok || m.Start != 0 {
		t.Errorf("second Next(0) = (%+v, %v, %v), want match at 0", m, ok, err)
	}
}

func TestCatalogOrder(t *testing.T) {
	patterns := Catalog()
	if len(patterns) != 11 {
		t.Fatalf("Catalog() has %d patterns, want 11", len(patterns))
	}
	for i, p := range patterns {
		if int(p.ID) != i {
			t.Errorf("Catalog()[%d].ID = %s, want priority position %d", i, p.ID, i)
		}
	}
}
