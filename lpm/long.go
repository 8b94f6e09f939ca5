package lpm

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
)

// longCode is a code that does not fit the packed representation.
type longCode struct {
	code   []byte
	symbol uint8
}

func (m *Matcher) insertLong(code []byte, symbol byte) bool {
	h := xxhash.Sum64(code)
	bucket := m.long[h]
	for _, entry := range bucket {
		if bytes.Equal(entry.code, code) {
			return false
		}
	}
	m.long[h] = append(bucket, longCode{
		code:   bytes.Clone(code),
		symbol: symbol,
	})
	return true
}

func (m *Matcher) lookupLong(code []byte) (byte, bool) {
	bucket, ok := m.long[xxhash.Sum64(code)]
	if !ok {
		return 0, false
	}
	// Collisions are resolved by comparing the full code.
	for _, entry := range bucket {
		if bytes.Equal(entry.code, code) {
			return entry.symbol, true
		}
	}
	return 0, false
}
