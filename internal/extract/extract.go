// Package extract converts HTML sources into markdown that the skim parser
// understands: ATX headers, "-" bullets, '*' emphasis, "~~" strikethrough and
// bare ``` fences.
package extract

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// Options selects which part of an HTML page is converted.
type Options struct {
	Selector   string   // CSS selector; overrides IncludeAll when set
	IncludeAll bool     // skip readability and convert the whole page
	BaseURL    *url.URL // page URL for readability, may be nil
}

// fenceInfoRegex matches an opening fence carrying a language tag; the parser
// only accepts bare fences.
var fenceInfoRegex = regexp.MustCompile("(?m)^```[\\w+#.-]+[ \t]*$")

// ToMarkdown extracts content from HTML and converts it to markdown.
//
// Parameters:
//   - content: io.Reader containing HTML content
//   - opts: selection options (empty Options extracts the main article content)
//
// Returns clean markdown or an error if extraction/conversion fails.
func ToMarkdown(content io.Reader, opts Options) (string, error) {
	// selector takes priority over include-all
	if opts.Selector != "" {
		return extractWithSelector(content, opts.Selector)
	}
	if opts.IncludeAll {
		return convertAllHTML(content)
	}
	return extractMainContent(content, opts.BaseURL)
}

// extractMainContent uses go-readability to extract the main article content
func extractMainContent(content io.Reader, baseURL *url.URL) (string, error) {
	// readability only needs a base URL to resolve relative links
	if baseURL == nil {
		baseURL = &url.URL{}
	}

	// parse and extract main content
	article, err := readability.FromReader(content, baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract main content: %w", err)
	}

	slog.Debug("Readability extraction completed", "title", article.Title, "length", article.Length)

	// convert HTML to Markdown
	markdown, err := convertToMarkdown(article.Content)
	if err != nil {
		return "", err
	}

	// readability lifts the main heading out of the content; restore it as a header
	return withTitle(markdown, article.Title), nil
}

// withTitle prefixes markdown with an ATX header for title unless the text
// already carries it.
func withTitle(markdown, title string) string {
	title = strings.TrimSpace(title)
	if title == "" || strings.Contains(markdown, title) {
		return markdown
	}
	if markdown == "" {
		return "# " + title
	}
	return "# " + title + "\n\n" + markdown
}

// extractWithSelector uses a CSS selector to extract specific content
func extractWithSelector(content io.Reader, selector string) (string, error) {
	// parse HTML document
	doc, err := goquery.NewDocumentFromReader(content)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// find elements matching the selector
	selection := doc.Find(selector)
	if selection.Length() == 0 {
		return "", fmt.Errorf("no elements found matching selector: %s", selector)
	}

	var htmlParts []string
	selection.Each(func(i int, s *goquery.Selection) {
		html, err := s.Html()
		if err == nil {
			// wrap each element to preserve structure
			tagName := goquery.NodeName(s)
			htmlParts = append(htmlParts, fmt.Sprintf("<%s>%s</%s>", tagName, html, tagName))
		}
	})

	if len(htmlParts) == 0 {
		return "", fmt.Errorf("failed to extract HTML from selection")
	}

	return convertToMarkdown(strings.Join(htmlParts, "\n"))
}

// convertAllHTML converts all HTML content to markdown without filtering
func convertAllHTML(content io.Reader) (string, error) {
	htmlBytes, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read HTML content: %w", err)
	}
	return convertToMarkdown(string(htmlBytes))
}

// convertToMarkdown converts an HTML string to markdown in the parser's dialect
func convertToMarkdown(htmlString string) (string, error) {
	converter := md.NewConverter("", true, &md.Options{
		HeadingStyle:     "atx",
		HorizontalRule:   "---",
		BulletListMarker: "-",
		CodeBlockStyle:   "fenced",
		Fence:            "```",
		EmDelimiter:      "*",
		StrongDelimiter:  "**",
	})
	// emit "~~" for <del>, <s> and <strike>
	converter.Use(plugin.Strikethrough("~~"))

	// convert HTML to Markdown
	markdown, err := converter.ConvertString(htmlString)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return normalize(markdown), nil
}

// normalize trims the output, collapses runs of blank lines and strips fence
// language tags.
func normalize(markdown string) string {
	cleaned := strings.TrimSpace(markdown)

	// remove excessive blank lines
	for strings.Contains(cleaned, "\n\n\n") {
		cleaned = strings.ReplaceAll(cleaned, "\n\n\n", "\n\n")
	}

	// the parser only opens bare fences
	return fenceInfoRegex.ReplaceAllString(cleaned, "```")
}
