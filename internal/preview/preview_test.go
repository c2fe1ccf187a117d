package preview_test

import (
	"strings"
	"testing"

	"github.com/chriscorrea/skim/internal/preview"
)

const passage = "The tide turns at noon. Boats leave the harbor an hour before. " +
	"The channel is marked with red buoys. Fog is common in spring."

func TestSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"empty", "", nil},
		{"blank", "  \n\t ", nil},
		{"single sentence", "The tide turns at noon.", []string{"The tide turns at noon."}},
		{
			name: "several sentences",
			text: passage,
			expected: []string{
				"The tide turns at noon.",
				"Boats leave the harbor an hour before.",
				"The channel is marked with red buoys.",
				"Fog is common in spring.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := preview.Sentences(tt.text)
			if err != nil {
				t.Fatalf("Sentences(%q) unexpected error: %v", tt.text, err)
			}
			if strings.Join(got, "|") != strings.Join(tt.expected, "|") || len(got) != len(tt.expected) {
				t.Errorf("Sentences(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name     string
		opts     preview.Options
		expected string
	}{
		{
			name:     "default length",
			opts:     preview.Options{},
			expected: "The tide turns at noon. Boats leave the harbor an hour before. The channel is marked with red buoys.",
		},
		{
			name:     "one sentence",
			opts:     preview.Options{Sentences: 1},
			expected: "The tide turns at noon.",
		},
		{
			name:     "more than available",
			opts:     preview.Options{Sentences: 10},
			expected: passage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := preview.Snippet(passage, tt.opts)
			if err != nil {
				t.Fatalf("Snippet() unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Snippet(%+v) = %q, want %q", tt.opts, got, tt.expected)
			}
		})
	}
}

func TestSnippetTokenCap(t *testing.T) {
	full, err := preview.Snippet(passage, preview.Options{Sentences: 4})
	if err != nil {
		t.Fatalf("Snippet() unexpected error: %v", err)
	}
	capped, err := preview.Snippet(passage, preview.Options{Sentences: 4, MaxTokens: 4})
	if err != nil {
		t.Fatalf("Snippet() unexpected error: %v", err)
	}
	if capped == "" || len(capped) >= len(full) || !strings.HasPrefix(full, capped) {
		t.Errorf("Snippet() with token cap = %q, want a shorter prefix of %q", capped, full)
	}
}

func TestLines(t *testing.T) {
	blocks := []string{"Fog is common in spring. It lifts by noon.", "", "Red buoys mark the channel."}

	got, err := preview.Lines(blocks, preview.Options{Sentences: 1})
	if err != nil {
		t.Fatalf("Lines() unexpected error: %v", err)
	}
	expected := []string{"Fog is common in spring.", "Red buoys mark the channel."}
	if strings.Join(got, "|") != strings.Join(expected, "|") {
		t.Errorf("Lines() = %q, want %q", got, expected)
	}
}
