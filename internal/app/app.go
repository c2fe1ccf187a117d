// Package app contains the core application logic for the skim CLI tool.
// It handles the main business logic separated from CLI concerns.
package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/k0kubun/pp"

	"github.com/chriscorrea/skim/internal/counter"
	"github.com/chriscorrea/skim/internal/extract"
	"github.com/chriscorrea/skim/internal/fetch"
	"github.com/chriscorrea/skim/internal/markdown"
	"github.com/chriscorrea/skim/internal/preview"
	"github.com/chriscorrea/skim/internal/search"
	"github.com/chriscorrea/skim/internal/spinner"
)

// Mode selects what Run produces from the parsed document.
type Mode int

const (
	// Tree lists the element tree
	Tree Mode = iota
	// Plain prints the plain text
	Plain
	// Format prints canonical markdown
	Format
	// JSON prints the element tree as JSON
	JSON
	// Search reports query hits per segment
	Search
	// Stats summarizes element kinds, segments and sizes
	Stats
	// Preview prints the first sentences of the plain text
	Preview
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Tree:
		return "tree"
	case Plain:
		return "plain"
	case Format:
		return "fmt"
	case JSON:
		return "json"
	case Search:
		return "search"
	case Stats:
		return "stats"
	case Preview:
		return "preview"
	default:
		return "unknown"
	}
}

// Config holds all configuration options for the skim application.
type Config struct {
	Sources    []string // URLs, file paths, or "-" for stdin
	Selector   string   // CSS selector for HTML extraction
	IncludeAll bool     // convert whole HTML pages without readability
	ForceHTML  bool     // treat every source as HTML
	MaxDepth   int      // container nesting limit for the parser
	Mode       Mode

	Dump bool // tree: Go value dump instead of the indented listing

	Query      string       // search query
	IgnoreCase bool         // search: fold case
	Stem       bool         // search: match English word stems
	Rank       bool         // search: order segments by BM25md score
	Position   *search.Span // search: report the segment containing this interval
	Counting   counter.CountingMethod
	Highlight  bool // search: style hits with ANSI colors

	PreviewSentences int // preview: sentences to keep
	PreviewTokens    int // preview: optional token cap

	Quiet bool // suppress warnings and the spinner
	Debug bool
}

// Run executes the main skim application logic with the given configuration.
//
// Processing Pipeline:
// 1. Fetch every source and convert HTML to markdown (loadSources)
// 2. Parse the combined markdown (parseDocument)
// 3. Produce the output for cfg.Mode (Render)
//
// ctx allows for cancellation and timeout control of fetch operations.
func Run(ctx context.Context, cfg Config) (string, error) {
	if len(cfg.Sources) == 0 {
		return "", fmt.Errorf("no sources provided")
	}

	text, err := loadSources(ctx, cfg)
	if err != nil {
		return "", err
	}

	doc := parseDocument(text, cfg)
	return Render(doc, cfg)
}

// Render produces the output for cfg.Mode from an already parsed document.
func Render(doc markdown.Document, cfg Config) (string, error) {
	slog.Debug("Rendering document", "mode", cfg.Mode, "topLevelElements", len(doc.Elements))

	switch cfg.Mode {
	case Tree:
		if cfg.Dump {
			pp.ColoringEnabled = cfg.Highlight
			return pp.Sprint(doc.Elements) + "\n", nil
		}
		var buf bytes.Buffer
		if err := markdown.Dump(&buf, doc); err != nil {
			return "", fmt.Errorf("failed to dump tree: %w", err)
		}
		return buf.String(), nil
	case Plain:
		return withNewline(markdown.PlainText(doc)), nil
	case Format:
		return withNewline(markdown.Render(doc)), nil
	case JSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode JSON: %w", err)
		}
		return string(data) + "\n", nil
	case Search:
		return runSearch(doc, cfg)
	case Stats:
		st, err := ComputeStats(doc)
		if err != nil && !cfg.Quiet {
			fmt.Fprintf(os.Stderr, "Warning: token count unavailable: %v\n", err)
		}
		return st.String(), nil
	case Preview:
		snippet, err := preview.Snippet(markdown.PlainText(doc), preview.Options{
			Sentences: cfg.PreviewSentences,
			MaxTokens: cfg.PreviewTokens,
		})
		if err != nil {
			return "", fmt.Errorf("failed to build preview: %w", err)
		}
		return withNewline(snippet), nil
	default:
		return "", fmt.Errorf("unknown mode %v", cfg.Mode)
	}
}

// parseDocument parses text, substituting a single raw text element when the
// markup nests deeper than cfg.MaxDepth.
func parseDocument(text string, cfg Config) markdown.Document {
	parser := markdown.NewParser(markdown.WithMaxDepth(cfg.MaxDepth))
	doc, err := parser.Parse(text)
	if err == nil {
		return doc
	}

	if !cfg.Quiet {
		if errors.Is(err, markdown.ErrNestingDepthExceeded) {
			fmt.Fprintf(os.Stderr, "Warning: %v; showing raw text\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Warning: parse failed: %v; showing raw text\n", err)
		}
	}
	return markdown.Document{Elements: []markdown.Element{markdown.Text{Value: text}}}
}

// loadSources processes all sources and joins their markdown with blank lines.
// Sources that fail are skipped with a warning.
func loadSources(ctx context.Context, cfg Config) (string, error) {
	var combined strings.Builder

	for _, source := range cfg.Sources {
		text, err := processSource(ctx, source, cfg)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Warning: failed to process source %q: %v\n", source, err)
			}
			continue
		}

		if combined.Len() > 0 {
			combined.WriteString("\n\n")
		}
		combined.WriteString(text)
	}

	if combined.Len() == 0 {
		return "", fmt.Errorf("no content extracted from any source")
	}
	return combined.String(), nil
}

// processSource fetches one source and returns its markdown text.
func processSource(ctx context.Context, source string, cfg Config) (string, error) {
	var raw string
	var format fetch.Format

	load := func() error {
		content, err := fetch.Open(ctx, source)
		if err != nil {
			return fmt.Errorf("failed to fetch content: %w", err)
		}
		defer content.Close()

		data, err := io.ReadAll(content)
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
		raw, format = string(data), content.Format
		return nil
	}

	var err error
	if fetch.IsRemote(source) && !cfg.Quiet {
		err = spinner.New(ctx, os.Stderr, "Fetching "+source).While(load)
	} else {
		err = load()
	}
	if err != nil {
		return "", err
	}

	if format != fetch.HTML && !cfg.ForceHTML {
		return raw, nil
	}

	var baseURL *url.URL
	if fetch.IsRemote(source) {
		baseURL, _ = url.Parse(source) // nil on error is fine for readability
	}
	text, err := extract.ToMarkdown(strings.NewReader(raw), extract.Options{
		Selector:   cfg.Selector,
		IncludeAll: cfg.IncludeAll,
		BaseURL:    baseURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no content extracted")
	}
	return text, nil
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
