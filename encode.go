package huffcode

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Encoder writes the code of every byte written to it.
//
// Codes are concatenated with no delimiter; the prefix-free property of the
// dictionary keeps them separable. Call Flush when done.
type Encoder struct {
	w    *bufio.Writer
	dict *Dictionary
	off  int64 // input bytes consumed
	n    int64 // code characters produced
	err  error
}

// NewEncoder returns an Encoder writing codes from d to w.
func NewEncoder(w io.Writer, d *Dictionary) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), dict: d}
}

// Write encodes p. It fails with ErrUnknownSymbol on a byte that has no
// entry in the dictionary; the error is sticky.
func (e *Encoder) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.dict.ready(); err != nil {
		e.err = err
		return 0, err
	}
	for i, b := range p {
		code, ok := e.dict.Code(b)
		if !ok {
			e.err = fmt.Errorf("%w: %s at offset %d", ErrUnknownSymbol, e.dict.display.Token(Symbol(b)), e.off)
			return i, e.err
		}
		if _, err := e.w.WriteString(code); err != nil {
			e.err = err
			return i, err
		}
		e.off++
		e.n += int64(len(code))
	}
	return len(p), nil
}

// Flush writes any buffered codes to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// Written returns the number of code characters produced so far.
func (e *Encoder) Written() int64 {
	return e.n
}

// Encode reads r to the end and writes its coded form to w.
// It returns the number of code characters written.
func Encode(w io.Writer, r io.Reader, d *Dictionary) (int64, error) {
	enc := NewEncoder(w, d)
	if _, err := io.Copy(enc, r); err != nil {
		return enc.n, err
	}
	return enc.n, enc.Flush()
}

// EncodeBytes returns the coded form of src.
func EncodeBytes(src []byte, d *Dictionary) (string, error) {
	if err := d.ready(); err != nil {
		return "", err
	}
	var sb strings.Builder
	for i, b := range src {
		code, ok := d.Code(b)
		if !ok {
			return "", fmt.Errorf("%w: %s at offset %d", ErrUnknownSymbol, d.display.Token(Symbol(b)), i)
		}
		sb.WriteString(code)
	}
	return sb.String(), nil
}

// WriteBinary writes every byte of r as eight '0'/'1' characters, most
// significant bit first. This fixed-width rendering is the baseline a coded
// stream is measured against.
func WriteBinary(w io.Writer, r io.Reader) (int64, error) {
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	var n int64
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		if _, err := fmt.Fprintf(bw, "%08b", b); err != nil {
			return n, err
		}
		n += 8
	}
	return n, bw.Flush()
}
