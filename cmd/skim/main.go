package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/chriscorrea/skim/internal/app"
	"github.com/chriscorrea/skim/internal/config"
	"github.com/chriscorrea/skim/internal/counter"
	"github.com/chriscorrea/skim/internal/search"
	"github.com/chriscorrea/skim/internal/spinner"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from the settings file, command flags and arguments.
// Flags that were set explicitly win over file values.
func buildConfig(cmd *cobra.Command, args []string, mode app.Mode) (app.Config, error) {
	flags := cmd.Flags()

	configPath, _ := flags.GetString("config")
	file, err := config.Load(configPath)
	if err != nil {
		return app.Config{}, err
	}

	selector, _ := flags.GetString("selector")
	includeAll, _ := flags.GetBool("include-all")
	forceHTML, _ := flags.GetBool("html")
	quiet, _ := flags.GetBool("quiet")
	debug, _ := flags.GetBool("debug")

	maxDepth := file.MaxDepth
	if flags.Changed("max-depth") {
		maxDepth, _ = flags.GetInt("max-depth")
		if maxDepth < 0 {
			return app.Config{}, fmt.Errorf("--max-depth must not be negative, got %d", maxDepth)
		}
	}

	// use positional arguments as sources; no arguments means stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{"-"}
	}

	cfg := app.Config{
		Sources:          sources,
		Selector:         selector,
		IncludeAll:       includeAll,
		ForceHTML:        forceHTML,
		MaxDepth:         maxDepth,
		Mode:             mode,
		IgnoreCase:       file.IgnoreCase,
		Stem:             file.Stem,
		PreviewSentences: file.PreviewSentences,
		Quiet:            quiet,
		Debug:            debug,
	}

	counting := file.Counting
	highlight := file.Highlight

	// subcommand flags exist only on their own command
	if flags.Lookup("dump") != nil {
		cfg.Dump, _ = flags.GetBool("dump")
	}
	if flags.Lookup("query") != nil {
		cfg.Query, _ = flags.GetString("query")
		cfg.Rank, _ = flags.GetBool("rank")
		if flags.Changed("ignore-case") {
			cfg.IgnoreCase, _ = flags.GetBool("ignore-case")
		}
		if flags.Changed("stem") {
			cfg.Stem, _ = flags.GetBool("stem")
		}
		if flags.Changed("counting") {
			counting, _ = flags.GetString("counting")
		}
		if flags.Changed("highlight") {
			highlight, _ = flags.GetString("highlight")
		}
		if position, _ := flags.GetString("position"); position != "" {
			span, err := parsePosition(position)
			if err != nil {
				return app.Config{}, err
			}
			cfg.Position = &span
		}
	}
	if flags.Lookup("sentences") != nil {
		if flags.Changed("sentences") {
			cfg.PreviewSentences, _ = flags.GetInt("sentences")
		}
		cfg.PreviewTokens, _ = flags.GetInt("max-tokens")
	}

	cfg.Counting, err = counter.ParseCountingMethod(counting)
	if err != nil {
		return app.Config{}, err
	}

	switch strings.ToLower(highlight) {
	case config.HighlightAlways:
		cfg.Highlight = true
	case config.HighlightNever:
		cfg.Highlight = false
	case config.HighlightAuto, "":
		cfg.Highlight = spinner.IsTerminal(os.Stdout)
	default:
		return app.Config{}, fmt.Errorf("--highlight must be one of auto, always, never; got %q", highlight)
	}

	return cfg, nil
}

// parsePosition reads a "start:end" rune interval; a single number means an
// empty interval at that offset.
func parsePosition(s string) (search.Span, error) {
	startText, endText, found := strings.Cut(s, ":")
	start, err := strconv.Atoi(strings.TrimSpace(startText))
	if err != nil {
		return search.Span{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	end := start
	if found {
		end, err = strconv.Atoi(strings.TrimSpace(endText))
		if err != nil {
			return search.Span{}, fmt.Errorf("invalid position %q: %w", s, err)
		}
	}
	if start < 0 || end < start {
		return search.Span{}, fmt.Errorf("invalid position %q: need 0 <= start <= end", s)
	}
	return search.Span{Start: start, End: end}, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// runMode returns a RunE that builds the config and runs the app in mode.
func runMode(mode app.Mode) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := buildConfig(cmd, args, mode)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(cfg.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, cfg)
		if err != nil {
			return fmt.Errorf("skim %s failed: %w", mode, err)
		}

		fmt.Fprint(cmd.OutOrStdout(), result)
		return nil
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skim",
		Short: "Parse lightweight markdown into an element tree",
		Long: `Skim parses a small markdown dialect (headers, lists, quotes, emphasis,
strikethrough, rules, inline code, links and fenced code) into an element tree,
and reduces it to plain text for searching and measuring. Sources may be URLs,
local files, or standard input; HTML sources are converted to markdown first.

Examples:
  skim tree notes.md
  skim plain https://example.com/post.html
  cat notes.md | skim search --query tide --ignore-case`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML settings file (default: $HOME/.config/skim/config.yaml)")
	pf.StringP("selector", "s", "", "CSS selector for HTML sources")
	pf.BoolP("include-all", "i", false, "Convert whole HTML pages without readability filtering")
	pf.Bool("html", false, "Treat every source as HTML")
	pf.Int("max-depth", 0, "Container nesting limit (default from config, 64)")
	pf.BoolP("quiet", "q", false, "Suppress warnings and progress output")
	pf.BoolP("debug", "D", false, "Enable debug logging")
	_ = pf.MarkHidden("debug")

	treeCmd := &cobra.Command{
		Use:   "tree [sources...]",
		Short: "Print the element tree",
		RunE:  runMode(app.Tree),
	}
	treeCmd.Flags().Bool("dump", false, "Print the tree as Go values")

	plainCmd := &cobra.Command{
		Use:   "plain [sources...]",
		Short: "Print the plain text",
		RunE:  runMode(app.Plain),
	}

	fmtCmd := &cobra.Command{
		Use:   "fmt [sources...]",
		Short: "Print canonical markdown",
		RunE:  runMode(app.Format),
	}

	jsonCmd := &cobra.Command{
		Use:   "json [sources...]",
		Short: "Print the element tree as JSON",
		RunE:  runMode(app.JSON),
	}

	searchCmd := &cobra.Command{
		Use:   "search [sources...]",
		Short: "Find query hits in the plain text, grouped by segment",
		RunE:  runMode(app.Search),
	}
	sf := searchCmd.Flags()
	sf.String("query", "", "Text to search for")
	sf.Bool("ignore-case", false, "Fold case when matching")
	sf.Bool("stem", false, "Match whole words by English stem")
	sf.Bool("rank", false, "Order segments by BM25md relevance")
	sf.String("position", "", "Report the segment containing a plain-text interval, as start:end")
	sf.String("counting", "tokens", "Unit for segment sizes: tokens, words, or characters")
	sf.String("highlight", config.HighlightAuto, "Highlight hits: auto, always, or never")

	statsCmd := &cobra.Command{
		Use:   "stats [sources...]",
		Short: "Summarize element kinds, segments and text size",
		RunE:  runMode(app.Stats),
	}

	previewCmd := &cobra.Command{
		Use:   "preview [sources...]",
		Short: "Print the first sentences of the plain text",
		RunE:  runMode(app.Preview),
	}
	previewCmd.Flags().IntP("sentences", "n", 3, "Number of sentences")
	previewCmd.Flags().Int("max-tokens", 0, "Cap the preview at this many tokens")

	rootCmd.AddCommand(treeCmd, plainCmd, fmtCmd, jsonCmd, searchCmd, statsCmd, previewCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
