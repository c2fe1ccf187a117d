package counter

import (
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter implements token counting using tiktoken w/ cl100k_base encoding.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // protects encoding access for thread safety
}

// NewTokenCounter creates a new TokenCounter w/ cl100k_base encoding
func NewTokenCounter() (*TokenCounter, error) {
	slog.Debug("Initializing TokenCounter with cl100k_base encoding")
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}

	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in the given text. Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// nil params mean no special tokens allowed/disallowed
	tokenCount := len(tc.encoding.Encode(text, nil, nil))
	slog.Debug("Token count calculated", "textLength", len(text), "tokenCount", tokenCount)
	return tokenCount
}

// Name returns the name of this counting method (for logging and debugging).
func (tc *TokenCounter) Name() string {
	return "tokens (cl100k_base)"
}

// Boundary returns the rune offset where a maxTokens prefix of text ends, so a
// token cap can be expressed in the same units as plain-text spans. Tokens that
// decode to part of a multi-byte character are dropped.
func (tc *TokenCounter) Boundary(text string, maxTokens int) int {
	if maxTokens <= 0 || text == "" {
		return 0
	}

	tc.mu.RLock()
	tokens := tc.encoding.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		tc.mu.RUnlock()
		return utf8.RuneCountInString(text)
	}
	decoded := tc.encoding.Decode(tokens[:maxTokens])
	tc.mu.RUnlock()

	// byte-level BPE decodes a token prefix to a byte prefix of text
	cut := min(len(decoded), len(text))
	for cut > 0 && !utf8.ValidString(text[:cut]) {
		cut--
	}
	slog.Debug("Token boundary found", "originalTokens", len(tokens), "maxTokens", maxTokens, "bytes", cut)
	return utf8.RuneCountInString(text[:cut])
}

// Truncate returns the longest prefix of text that fits in maxTokens tokens,
// cut on a character boundary.
func (tc *TokenCounter) Truncate(text string, maxTokens int) string {
	runes := tc.Boundary(text, maxTokens)
	if runes == utf8.RuneCountInString(text) {
		return text
	}
	return string([]rune(text)[:runes])
}
