// Package counter measures the plain text of parsed documents.
//
// Three counting methods are available: tokens (tiktoken with the cl100k_base
// encoding, compatible with OpenAI's GPT models), whitespace-separated words, and
// Unicode characters. All counters satisfy the Counter interface so callers can
// pick one from configuration.
//
// Usage Example:
//
//	c, err := counter.NewCounter(counter.Words)
//	n := c.Count(markdown.PlainText(doc))
package counter

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters) in given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Tokens uses tiktoken with cl100k_base encoding (default)
	Tokens CountingMethod = iota
	// Words counts words using whitespace splitting
	Words
	// Characters counts individual characters including whitespace
	Characters
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// ParseCountingMethod maps a configuration value ("tokens", "words",
// "characters", or "chars") to its method. Matching ignores case.
func ParseCountingMethod(s string) (CountingMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tokens", "":
		return Tokens, nil
	case "words":
		return Words, nil
	case "characters", "chars":
		return Characters, nil
	default:
		return Tokens, fmt.Errorf("unknown counting method %q", s)
	}
}

// NewCounter creates a new Counter instance based on the specified method.
// Returns an error if the counter cannot be initialized (e.g., tiktoken encoding fails).
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return WordCounter{}, nil
	case Characters:
		return CharCounter{}, nil
	default:
		tc, err := NewTokenCounter()
		if err != nil {
			return nil, err
		}
		return tc, nil
	}
}

// WordCounter counts words using strings.Fields.
type WordCounter struct{}

// Count returns the number of whitespace-separated words in text.
func (WordCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	wordCount := len(strings.Fields(text))
	slog.Debug("Word count calculated", "textLength", len(text), "wordCount", wordCount)
	return wordCount
}

// Name returns the name of this counting method for logging and debugging.
func (WordCounter) Name() string {
	return "words"
}

// CharCounter counts UTF-8 characters (runes), not bytes.
type CharCounter struct{}

// Count returns the number of runes in text.
func (CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// Name returns the name of this counting method for logging and debugging.
func (CharCounter) Name() string {
	return "characters"
}

// Measurement holds every count of one text.
type Measurement struct {
	Tokens     int
	Words      int
	Characters int
}

// Measure counts text with all three methods. Token counting is skipped (left at
// zero) and its error returned when the encoding cannot be loaded; the other
// counts are still filled in.
func Measure(text string) (Measurement, error) {
	m := Measurement{
		Words:      WordCounter{}.Count(text),
		Characters: CharCounter{}.Count(text),
	}

	tokens, err := NewTokenCounter()
	if err != nil {
		return m, err
	}
	m.Tokens = tokens.Count(text)
	return m, nil
}
