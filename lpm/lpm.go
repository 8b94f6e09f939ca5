// Package lpm resolves Huffman code strings back to the symbols they encode.
//
// Codes are spelled over the characters '0' and '1'. Codes of at most 64
// characters are packed MSB-first into a uint64 and looked up together with
// their length, so a decoder can carry the packed value incrementally instead
// of re-reading its buffer. Longer codes, which only occur for heavily skewed
// alphabets, are bucketed by an xxhash of the code text.
package lpm

// MaxPackedLen is the longest code that fits the packed representation.
const MaxPackedLen = 64

// prefixKey is a composite key for packed code lookups.
type prefixKey struct {
	bits   uint64
	length uint8
}

// Matcher maps code strings to symbols.
//
// A Matcher is not safe for concurrent mutation, but once populated it may be
// shared by any number of readers.
type Matcher struct {
	short  map[prefixKey]uint8   // packed code → symbol
	long   map[uint64][]longCode // xxhash(code) → candidates
	maxLen int
	count  int
}

// New creates an empty matcher.
func New() *Matcher {
	return &Matcher{
		short: make(map[prefixKey]uint8),
		long:  make(map[uint64][]longCode),
	}
}

// Insert registers code for symbol.
//
// Returns false if code contains a character other than '0' or '1', or if the
// same code is already registered.
func (m *Matcher) Insert(code []byte, symbol byte) bool {
	if !isBinary(code) {
		return false
	}
	if len(code) > MaxPackedLen {
		if !m.insertLong(code, symbol) {
			return false
		}
	} else {
		bits, _ := Pack(code)
		key := prefixKey{bits: bits, length: uint8(len(code))}
		if _, ok := m.short[key]; ok {
			return false
		}
		m.short[key] = symbol
	}
	if len(code) > m.maxLen {
		m.maxLen = len(code)
	}
	m.count++
	return true
}

// Lookup returns the symbol whose code is exactly code.
func (m *Matcher) Lookup(code []byte) (byte, bool) {
	if len(code) > MaxPackedLen {
		return m.lookupLong(code)
	}
	bits, ok := Pack(code)
	if !ok {
		return 0, false
	}
	return m.LookupBits(bits, len(code))
}

// LookupBits returns the symbol whose code packs to bits with the given
// length. length must not exceed MaxPackedLen.
func (m *Matcher) LookupBits(bits uint64, length int) (byte, bool) {
	if length < 0 || length > MaxPackedLen {
		return 0, false
	}
	symbol, ok := m.short[prefixKey{bits: bits, length: uint8(length)}]
	return symbol, ok
}

// Match finds the shortest non-empty prefix of data that is a registered code.
//
// Returns the symbol and the prefix length. In a prefix-free code set the
// shortest match is the only one.
func (m *Matcher) Match(data []byte) (byte, int, bool) {
	limit := min(len(data), m.maxLen)

	var bits uint64
	for length := 1; length <= limit; length++ {
		c := data[length-1]
		if c != '0' && c != '1' {
			return 0, 0, false
		}
		if length <= MaxPackedLen {
			bits = bits<<1 | uint64(c-'0')
			if symbol, ok := m.LookupBits(bits, length); ok {
				return symbol, length, true
			}
			continue
		}
		if symbol, ok := m.lookupLong(data[:length]); ok {
			return symbol, length, true
		}
	}

	return 0, 0, false
}

// MaxLen returns the length of the longest registered code.
func (m *Matcher) MaxLen() int {
	return m.maxLen
}

// Len returns the number of registered codes.
func (m *Matcher) Len() int {
	return m.count
}

// Pack converts a code of at most MaxPackedLen characters to its MSB-first
// integer value.
func Pack(code []byte) (uint64, bool) {
	if len(code) > MaxPackedLen {
		return 0, false
	}
	var bits uint64
	for _, c := range code {
		switch c {
		case '0':
			bits <<= 1
		case '1':
			bits = bits<<1 | 1
		default:
			return 0, false
		}
	}
	return bits, true
}

func isBinary(code []byte) bool {
	for _, c := range code {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}
