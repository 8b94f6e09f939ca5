package huffcode

import (
	"fmt"
	"strconv"
)

// Symbol is one input byte value, or NoSymbol.
type Symbol int16

// NoSymbol marks internal tree nodes and tokens that name no byte.
const NoSymbol Symbol = -1

// Valid reports whether s is a byte value.
func (s Symbol) Valid() bool {
	return s >= 0 && s <= 255
}

// Tokens are the textual spellings used for symbols that cannot appear
// literally in a dictionary line.
type Tokens struct {
	Invalid string // NoSymbol or out-of-range values
	Null    string // 0
	Newline string // 10
	Tab     string // 9
	Space   string // 32
	Delete  string // 127
	Alt     string // 255
	Control string // prefix for the remaining values below 32
}

// DefaultTokens are the spellings used when no Tokens are configured.
var DefaultTokens = Tokens{
	Invalid: "NaN",
	Null:    "NULL",
	Newline: "LF/NL",
	Tab:     "TAB",
	Space:   "SPACE",
	Delete:  "DEL",
	Alt:     "ALT",
	Control: "CHR",
}

func (t Tokens) withDefaults() Tokens {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Invalid, DefaultTokens.Invalid)
	fill(&t.Null, DefaultTokens.Null)
	fill(&t.Newline, DefaultTokens.Newline)
	fill(&t.Tab, DefaultTokens.Tab)
	fill(&t.Space, DefaultTokens.Space)
	fill(&t.Delete, DefaultTokens.Delete)
	fill(&t.Alt, DefaultTokens.Alt)
	fill(&t.Control, DefaultTokens.Control)
	return t
}

// Display converts symbols to and from their display tokens.
type Display struct {
	tokens Tokens
	named  map[string]Symbol
}

// NewDisplay creates a Display for the given tokens. Empty fields fall back
// to DefaultTokens. Tokens that fail Validate give a Display whose Symbol
// does not invert Token.
func NewDisplay(t Tokens) *Display {
	t = t.withDefaults()
	return &Display{
		tokens: t,
		named: map[string]Symbol{
			t.Invalid: NoSymbol,
			t.Null:    0,
			t.Newline: 10,
			t.Tab:     9,
			t.Space:   32,
			t.Delete:  127,
			t.Alt:     255,
		},
	}
}

// Tokens returns the tokens in use.
func (d *Display) Tokens() Tokens {
	return d.tokens
}

// Token returns the display token for s.
func (d *Display) Token(s Symbol) string {
	switch {
	case s == 0:
		return d.tokens.Null
	case s == 10:
		return d.tokens.Newline
	case s == 9:
		return d.tokens.Tab
	case s == 32:
		return d.tokens.Space
	case s == 127:
		return d.tokens.Delete
	case s == 255:
		return d.tokens.Alt
	case !s.Valid():
		return d.tokens.Invalid
	case s < 32:
		return fmt.Sprintf("%s%02d", d.tokens.Control, int(s))
	default:
		return string([]byte{byte(s)})
	}
}

// Symbol parses a display token.
//
// An empty token yields NoSymbol. A single byte that is not a named token is
// taken literally. Control tokens must carry exactly two digits naming a
// value that Token would spell that way.
func (d *Display) Symbol(token string) (Symbol, error) {
	if token == "" {
		return NoSymbol, nil
	}
	if s, ok := d.named[token]; ok {
		return s, nil
	}
	if len(token) == 1 {
		return Symbol(token[0]), nil
	}

	if v, ok := controlValue(token, d.tokens.Control); ok && isControl(v) {
		return Symbol(v), nil
	}

	return NoSymbol, fmt.Errorf("%w: %q", ErrInvalidToken, token)
}

// Validate reports tokens that a Display could not parse back to the symbol
// they spell. Empty fields count as their DefaultTokens value.
//
// Named tokens must be at least two bytes long, since single bytes are
// literal symbols. They must be distinct and must not look like a control
// token.
func (t Tokens) Validate() error {
	t = t.withDefaults()
	seen := make(map[string]bool)
	for _, token := range t.named() {
		if len(token) < 2 {
			return fmt.Errorf("%w: named token %q is a literal byte", ErrInvalidToken, token)
		}
		if seen[token] {
			return fmt.Errorf("%w: named token %q is used twice", ErrInvalidToken, token)
		}
		seen[token] = true
		if _, ok := controlValue(token, t.Control); ok {
			return fmt.Errorf("%w: named token %q has the control prefix %q", ErrInvalidToken, token, t.Control)
		}
	}
	return nil
}

// named returns the whole-word tokens, the control prefix excluded.
func (t Tokens) named() []string {
	return []string{t.Invalid, t.Null, t.Newline, t.Tab, t.Space, t.Delete, t.Alt}
}

// controlValue parses token as prefix followed by exactly two digits.
func controlValue(token, prefix string) (int, bool) {
	if len(token) != len(prefix)+2 || token[:len(prefix)] != prefix {
		return 0, false
	}
	digits := token[len(prefix):]
	if digits[0] < '0' || digits[0] > '9' || digits[1] < '0' || digits[1] > '9' {
		return 0, false
	}
	v, _ := strconv.Atoi(digits)
	return v, true
}

// isControl reports whether v is spelled with the control prefix.
func isControl(v int) bool {
	return (v >= 1 && v <= 8) || (v >= 11 && v <= 31)
}
