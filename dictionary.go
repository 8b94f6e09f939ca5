package huffcode

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/seiflotfy/huffcode/lpm"
)

// Entry pairs a symbol with its code.
type Entry struct {
	Symbol Symbol
	Code   string
}

// Dictionary is an ordered, prefix-free code table.
//
// A Dictionary is created by BuildTree or parsed from text, and is read-only
// afterwards: it is safe to share between concurrent encoders and decoders.
//
// Text layout, one line per entry in dictionary order:
//
//	<display token><delimiter><code><separator>
//
// There is no header or trailer; the end of the text ends the dictionary.
//
// The zero Dictionary has no entries. ReadFrom fills it; encoding or
// decoding with it fails with ErrMalformedDictionary.
type Dictionary struct {
	cfg     Config
	display *Display
	entries []Entry
	index   [256]int // entry index + 1, zero when absent
	matcher *lpm.Matcher
}

// errEmptyDictionary is returned when a zero Dictionary is used for coding.
var errEmptyDictionary = fmt.Errorf("%w: empty dictionary", ErrMalformedDictionary)

// NewDictionary validates entries and builds a dictionary from them.
//
// Symbols must be distinct bytes, codes must be spelled over '0' and '1'
// and no code may be a prefix of another. A code may be empty only when it
// is the sole entry. Every line of the text form must split back into its
// token and code under the configured delimiter and separator.
func NewDictionary(entries []Entry, opts ...Option) (*Dictionary, error) {
	return newDictionary(slices.Clone(entries), newConfig(opts...))
}

func newDictionary(entries []Entry, cfg Config) (*Dictionary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	d := &Dictionary{
		cfg:     cfg,
		display: NewDisplay(cfg.Tokens),
		entries: entries,
		matcher: lpm.New(),
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrMalformedDictionary)
	}

	for i, e := range entries {
		if !e.Symbol.Valid() {
			return nil, fmt.Errorf("%w: entry %d: symbol %d out of range", ErrMalformedDictionary, i, e.Symbol)
		}
		token := d.display.Token(e.Symbol)
		if d.index[e.Symbol] != 0 {
			return nil, fmt.Errorf("%w: duplicate symbol %s", ErrMalformedDictionary, token)
		}
		if e.Code == "" && len(entries) > 1 {
			return nil, fmt.Errorf("%w: empty code for %s", ErrMalformedDictionary, token)
		}
		if !d.matcher.Insert([]byte(e.Code), byte(e.Symbol)) {
			if _, ok := d.matcher.Lookup([]byte(e.Code)); ok {
				return nil, fmt.Errorf("%w: duplicate code %q", ErrMalformedDictionary, e.Code)
			}
			return nil, fmt.Errorf("%w: code %q for %s is not binary", ErrMalformedDictionary, e.Code, token)
		}
		d.index[e.Symbol] = i + 1
	}

	for _, e := range entries {
		symbol, n, ok := d.matcher.Match([]byte(e.Code))
		if ok && n < len(e.Code) {
			return nil, fmt.Errorf("%w: code %q for %s is a prefix of %q for %s",
				ErrMalformedDictionary, e.Code[:n], d.display.Token(Symbol(symbol)),
				e.Code, d.display.Token(e.Symbol))
		}
	}

	if err := d.checkLayout(); err != nil {
		return nil, err
	}
	return d, nil
}

// checkLayout verifies that the text form of d splits back into its entries.
// A literal symbol can spell the delimiter or separator, which makes its
// line ambiguous.
func (d *Dictionary) checkLayout() error {
	lines := strings.Split(d.String(), d.cfg.Separator)
	lines = lines[:len(lines)-1]
	if len(lines) != len(d.entries) {
		return fmt.Errorf("%w: a token or code contains the separator %q", ErrMalformedDictionary, d.cfg.Separator)
	}
	for i, e := range d.entries {
		token := d.display.Token(e.Symbol)
		fields := strings.Split(lines[i], d.cfg.Delimiter)
		if len(fields) != 2 || fields[0] != token || fields[1] != e.Code {
			return fmt.Errorf("%w: line for %s does not split at the delimiter %q",
				ErrMalformedDictionary, token, d.cfg.Delimiter)
		}
	}
	return nil
}

// ready reports whether d can be used to encode or decode.
func (d *Dictionary) ready() error {
	if d == nil || d.matcher == nil {
		return errEmptyDictionary
	}
	return nil
}

// ParseDictionary parses dictionary text. Entry order is line order.
func ParseDictionary(text string, opts ...Option) (*Dictionary, error) {
	return parseDictionary(text, newConfig(opts...))
}

// ReadDictionary reads r to the end and parses it as dictionary text.
func ReadDictionary(r io.Reader, opts ...Option) (*Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseDictionary(string(data), newConfig(opts...))
}

// WriteDictionary writes the text form of d to w.
func WriteDictionary(w io.Writer, d *Dictionary) error {
	_, err := d.WriteTo(w)
	return err
}

func parseDictionary(text string, cfg Config) (*Dictionary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("%w: empty dictionary", ErrMalformedDictionary)
	}

	lines := strings.Split(text, cfg.Separator)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	display := NewDisplay(cfg.Tokens)
	entries := make([]Entry, 0, len(lines))
	for i, line := range lines {
		fields := strings.Split(line, cfg.Delimiter)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want <token>%s<code>, got %q",
				ErrMalformedDictionary, i+1, cfg.Delimiter, line)
		}
		token, code := fields[0], fields[1]
		if token == "" {
			return nil, fmt.Errorf("%w: line %d: empty token", ErrMalformedDictionary, i+1)
		}
		symbol, err := display.Symbol(token)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedDictionary, i+1, err)
		}
		if !symbol.Valid() {
			return nil, fmt.Errorf("%w: line %d: token %q names no symbol", ErrMalformedDictionary, i+1, token)
		}
		entries = append(entries, Entry{Symbol: symbol, Code: code})
	}

	return newDictionary(entries, cfg)
}

// WriteTo writes the text form of d to w.
func (d *Dictionary) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, e := range d.entries {
		written, err := io.WriteString(w, d.line(e))
		n += int64(written)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// ReadFrom replaces d with the dictionary parsed from r. A zero Dictionary
// parses with the default conventions; otherwise d keeps its own.
func (d *Dictionary) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	n := int64(len(data))
	if err != nil {
		return n, err
	}

	cfg := d.cfg
	if d.display == nil {
		cfg = newConfig()
	}
	parsed, err := parseDictionary(string(data), cfg)
	if err != nil {
		return n, err
	}
	*d = *parsed
	return n, nil
}

// String returns the text form of d.
func (d *Dictionary) String() string {
	var sb strings.Builder
	for _, e := range d.entries {
		sb.WriteString(d.line(e))
	}
	return sb.String()
}

func (d *Dictionary) line(e Entry) string {
	return d.display.Token(e.Symbol) + d.cfg.Delimiter + e.Code + d.cfg.Separator
}

// Code returns the code for b.
func (d *Dictionary) Code(b byte) (string, bool) {
	i := d.index[b]
	if i == 0 {
		return "", false
	}
	return d.entries[i-1].Code, true
}

// Lookup returns the symbol whose code is exactly code.
func (d *Dictionary) Lookup(code string) (Symbol, bool) {
	if code == "" || d.matcher == nil {
		return NoSymbol, false
	}
	symbol, ok := d.matcher.Lookup([]byte(code))
	if !ok {
		return NoSymbol, false
	}
	return Symbol(symbol), true
}

// Entries returns a copy of the entries in dictionary order.
func (d *Dictionary) Entries() []Entry {
	return slices.Clone(d.entries)
}

// Len returns the number of entries.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// MaxCodeLen returns the length of the longest code.
func (d *Dictionary) MaxCodeLen() int {
	if d.matcher == nil {
		return 0
	}
	return d.matcher.MaxLen()
}

// Display returns the display codec used for tokens.
func (d *Dictionary) Display() *Display {
	return d.display
}

// Equal reports whether d and other hold the same entries in the same order.
func (d *Dictionary) Equal(other *Dictionary) bool {
	return slices.Equal(d.entries, other.entries)
}
