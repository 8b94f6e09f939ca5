package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/seiflotfy/huffcode"
)

// report summarizes how a coded rendering compares to the plain 8-bit one.
type report struct {
	Bytes   int
	Symbols int
	Binary  int64
	Coded   int64
}

// Ratio is the coded length as a fraction of the binary length.
func (r report) Ratio() float64 {
	if r.Binary == 0 {
		return 0
	}
	return float64(r.Coded) / float64(r.Binary)
}

// BitsPerSymbol is the mean code length per input byte.
func (r report) BitsPerSymbol() float64 {
	if r.Bytes == 0 {
		return 0
	}
	return float64(r.Coded) / float64(r.Bytes)
}

func runStats(e *env, args []string) error {
	fs, verbose := newFlagSet(e, "stats")
	in := fs.String("in", "", "input file (default stdin)")
	binary := fs.String("binary", "", "also write the 8-bit binary rendering to this file")
	if err := e.parse(fs, verbose, args); err != nil {
		return err
	}

	data, err := e.readInput(*in)
	if err != nil {
		return err
	}
	r, err := e.measure(data, *binary)
	if err != nil {
		return fmt.Errorf("stats %s: %w", *in, err)
	}

	fmt.Fprintf(e.stdout, "input:   %d bytes, %d distinct\n", r.Bytes, r.Symbols)
	fmt.Fprintf(e.stdout, "binary:  %d characters\n", r.Binary)
	fmt.Fprintf(e.stdout, "coded:   %d characters (%.3f per byte)\n", r.Coded, r.BitsPerSymbol())
	fmt.Fprintf(e.stdout, "ratio:   %.2f%% of binary\n", 100*r.Ratio())
	return nil
}

func (e *env) measure(data []byte, binaryPath string) (report, error) {
	table, err := huffcode.CollectFrequencies(bytes.NewReader(data))
	if err != nil {
		return report{}, err
	}
	tree, err := huffcode.BuildTree(table)
	if err != nil {
		return report{}, err
	}

	r := report{Bytes: len(data), Symbols: table.Len()}

	var bw io.Writer = io.Discard
	closeBinary := func() error { return nil }
	if binaryPath != "" {
		bw, closeBinary, err = e.createOutput(binaryPath)
		if err != nil {
			return report{}, err
		}
	}
	r.Binary, err = huffcode.WriteBinary(bw, bytes.NewReader(data))
	if cerr := closeBinary(); err == nil {
		err = cerr
	}
	if err != nil {
		return report{}, err
	}

	r.Coded, err = huffcode.Encode(io.Discard, bytes.NewReader(data), tree.Dictionary())
	if err != nil {
		return report{}, err
	}
	e.log.Debugf("tree weight %d, longest code %d", tree.Weight(), tree.Dictionary().MaxCodeLen())
	return r, nil
}
