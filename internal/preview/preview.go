// Package preview builds short sentence-based snippets from the plain text of a
// parsed document.
package preview

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/chriscorrea/skim/internal/counter"
)

// DefaultSentences is the snippet length used when Options.Sentences is unset.
const DefaultSentences = 3

// Options controls snippet length.
type Options struct {
	Sentences int // sentences to keep; <= 0 means DefaultSentences
	MaxTokens int // optional token cap applied after sentence selection; <= 0 disables
}

// Sentences splits text into sentences. Blank input yields no sentences.
func Sentences(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil, fmt.Errorf("failed to segment sentences: %w", err)
	}

	var sentences []string
	for _, s := range doc.Sentences() {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	slog.Debug("Sentences segmented", "textLength", len(text), "sentences", len(sentences))
	return sentences, nil
}

// Snippet returns the first sentences of text joined by single spaces.
func Snippet(text string, opts Options) (string, error) {
	n := opts.Sentences
	if n <= 0 {
		n = DefaultSentences
	}

	sentences, err := Sentences(text)
	if err != nil {
		return "", err
	}
	if len(sentences) > n {
		sentences = sentences[:n]
	}
	snippet := strings.Join(sentences, " ")

	if opts.MaxTokens > 0 {
		tc, err := counter.NewTokenCounter()
		if err != nil {
			return "", err
		}
		snippet = tc.Truncate(snippet, opts.MaxTokens)
	}
	return snippet, nil
}

// Lines applies Snippet to each block. Blocks with an empty snippet are skipped.
func Lines(blocks []string, opts Options) ([]string, error) {
	out := make([]string, 0, len(blocks))
	for i, block := range blocks {
		snippet, err := Snippet(block, opts)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if snippet != "" {
			out = append(out, snippet)
		}
	}
	return out, nil
}
