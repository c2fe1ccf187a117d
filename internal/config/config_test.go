package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		expected    File
		expectError bool
	}{
		{
			name:     "empty file keeps defaults",
			yaml:     "",
			expected: Default(),
		},
		{
			name: "all keys",
			yaml: "max_depth: 8\nignore_case: true\nstem: true\npreview_sentences: 5\ncounting: words\nhighlight: never\n",
			expected: File{
				MaxDepth:         8,
				IgnoreCase:       true,
				Stem:             true,
				PreviewSentences: 5,
				Counting:         "words",
				Highlight:        HighlightNever,
			},
		},
		{
			name: "partial override",
			yaml: "ignore_case: true\n",
			expected: func() File {
				f := Default()
				f.IgnoreCase = true
				return f
			}(),
		},
		{name: "unknown key", yaml: "colour: blue\n", expectError: true},
		{name: "negative depth", yaml: "max_depth: -1\n", expectError: true},
		{name: "negative preview", yaml: "preview_sentences: -2\n", expectError: true},
		{name: "bad counting", yaml: "counting: syllables\n", expectError: true},
		{name: "bad highlight", yaml: "highlight: sometimes\n", expectError: true},
		{name: "malformed yaml", yaml: "max_depth: [1\n", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.yaml))
			if tt.expectError {
				if err == nil {
					t.Errorf("Parse(%q) expected error but got none", tt.yaml)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.yaml, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.yaml, got, tt.expected)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("stem: true\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) unexpected error: %v", path, err)
	}
	if !got.Stem || got.MaxDepth != Default().MaxDepth {
		t.Errorf("Load(%q) = %+v, want stem on with default depth", path, got)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing explicit path expected error but got none")
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") unexpected error: %v", err)
	}
	if got != Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", got)
	}
}

func TestLoadDefaultPathPresent(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "skim")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("preview_sentences: 1\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") unexpected error: %v", err)
	}
	if got.PreviewSentences != 1 {
		t.Errorf("Load(\"\").PreviewSentences = %d, want 1", got.PreviewSentences)
	}
}
