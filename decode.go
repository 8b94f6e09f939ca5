package huffcode

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/seiflotfy/huffcode/lpm"
)

// Decoder reads a coded stream and yields the original bytes.
//
// It accumulates code characters one at a time and emits a symbol as soon as
// the accumulated characters exactly match a code. Because the dictionary is
// prefix-free, the first match is the only possible one.
type Decoder struct {
	r    io.ByteReader
	dict *Dictionary
	buf  []byte
	bits uint64 // buf packed MSB-first while it fits
	off  int64  // code characters consumed
	err  error
}

// NewDecoder returns a Decoder reading codes from r with d.
func NewDecoder(r io.Reader, d *Dictionary) *Decoder {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Decoder{
		r:    br,
		dict: d,
		buf:  make([]byte, 0, max(d.MaxCodeLen(), 1)),
	}
}

// Read decodes into p. It fails with ErrMalformedCode when the stream holds
// a character other than '0' or '1', when the pending characters can no
// longer match any code, or when the stream ends in the middle of a code.
func (d *Decoder) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if err := d.dict.ready(); err != nil {
		d.err = err
		return 0, err
	}

	n := 0
	for n < len(p) {
		c, err := d.r.ReadByte()
		if err == io.EOF {
			if len(d.buf) > 0 {
				d.err = fmt.Errorf("%w: stream ends inside code %q", ErrMalformedCode, d.buf)
			} else {
				d.err = io.EOF
			}
			break
		}
		if err != nil {
			d.err = err
			break
		}

		symbol, ok, err := d.step(c)
		if err != nil {
			d.err = err
			break
		}
		if ok {
			p[n] = symbol
			n++
		}
	}

	return n, d.err
}

// step feeds one code character to the state machine.
func (d *Decoder) step(c byte) (byte, bool, error) {
	if c != '0' && c != '1' {
		return 0, false, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedCode, c, d.off)
	}
	d.off++

	d.buf = append(d.buf, c)
	if len(d.buf) > d.dict.MaxCodeLen() {
		return 0, false, fmt.Errorf("%w: no code matches %q at offset %d", ErrMalformedCode, d.buf, d.off-int64(len(d.buf)))
	}

	var (
		symbol byte
		ok     bool
	)
	if len(d.buf) <= lpm.MaxPackedLen {
		d.bits = d.bits<<1 | uint64(c-'0')
		symbol, ok = d.dict.matcher.LookupBits(d.bits, len(d.buf))
	} else {
		symbol, ok = d.dict.matcher.Lookup(d.buf)
	}
	if ok {
		d.buf = d.buf[:0]
		d.bits = 0
	}
	return symbol, ok, nil
}

// Decode reads the coded stream r to the end and writes the decoded bytes to w.
func Decode(w io.Writer, r io.Reader, d *Dictionary) (int64, error) {
	return io.Copy(w, NewDecoder(r, d))
}

// DecodeString decodes a complete coded string.
func DecodeString(code string, d *Dictionary) ([]byte, error) {
	return io.ReadAll(NewDecoder(strings.NewReader(code), d))
}
