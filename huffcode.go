// Package huffcode builds Huffman codes for the bytes of a stream and uses
// them to transform the stream to and from a textual code over the
// characters '0' and '1'.
//
// The code table travels separately as a line-oriented dictionary file, one
// "<token>: <code>" line per symbol, so a decoder needs nothing but the
// dictionary and the coded stream:
//
//	table, _ := huffcode.CollectFrequencies(input)
//	tree, _ := huffcode.BuildTree(table)
//	dict := tree.Dictionary()
//	dict.WriteTo(dictFile)
//	huffcode.Encode(codedFile, input, dict)
package huffcode

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultDelimiter separates a display token from its code.
	DefaultDelimiter = ": "
	// DefaultSeparator terminates each dictionary line.
	DefaultSeparator = "\n"
)

var (
	// ErrEmptyInput indicates there were no symbols to build a table or tree from.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidToken indicates a display token that matches no symbol rule.
	ErrInvalidToken = errors.New("invalid display token")
	// ErrMalformedDictionary indicates dictionary text that violates the line grammar.
	ErrMalformedDictionary = errors.New("malformed dictionary")
	// ErrUnknownSymbol indicates a byte with no dictionary entry.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrMalformedCode indicates a coded stream that does not split into codes.
	ErrMalformedCode = errors.New("malformed code")
	// ErrUntrainedModel indicates a Model was used before it was trained.
	ErrUntrainedModel = errors.New("model is not trained")
)

// Config holds the textual conventions of a dictionary.
type Config struct {
	Tokens    Tokens // Display tokens for named and control symbols
	Delimiter string // Between token and code (default ": ")
	Separator string // After each line (default "\n")
}

// Option is a functional option for configuring dictionaries.
type Option func(*Config)

// WithTokens sets the display tokens. Empty fields fall back to DefaultTokens.
func WithTokens(t Tokens) Option {
	return func(c *Config) {
		c.Tokens = t
	}
}

// WithDelimiter sets the token/code delimiter.
func WithDelimiter(d string) Option {
	return func(c *Config) {
		c.Delimiter = d
	}
}

// WithSeparator sets the line separator.
func WithSeparator(s string) Option {
	return func(c *Config) {
		c.Separator = s
	}
}

// newConfig applies opts over the defaults.
func newConfig(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.Tokens = cfg.Tokens.withDefaults()
	if cfg.Delimiter == "" {
		cfg.Delimiter = DefaultDelimiter
	}
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	return cfg
}

// validate reports conventions under which dictionary text could not be
// read back: ambiguous tokens, or a delimiter and separator that overlap
// each other or a token.
func (c Config) validate() error {
	if err := c.Tokens.Validate(); err != nil {
		return err
	}
	if c.Delimiter == "" || c.Separator == "" {
		return fmt.Errorf("%w: empty delimiter or separator", ErrMalformedDictionary)
	}
	if strings.Contains(c.Delimiter, c.Separator) || strings.Contains(c.Separator, c.Delimiter) {
		return fmt.Errorf("%w: delimiter %q and separator %q overlap",
			ErrMalformedDictionary, c.Delimiter, c.Separator)
	}
	for _, token := range append(c.Tokens.named(), c.Tokens.Control) {
		if strings.Contains(token, c.Delimiter) || strings.Contains(token, c.Separator) {
			return fmt.Errorf("%w: token %q contains the delimiter or separator", ErrInvalidToken, token)
		}
	}
	return nil
}
