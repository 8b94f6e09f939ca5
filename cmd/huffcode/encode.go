package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/seiflotfy/huffcode"
)

func runEncode(e *env, args []string) error {
	fs, verbose := newFlagSet(e, "encode")
	in := fs.String("in", "", "input file (default stdin)")
	out := fs.String("out", "", "coded output file (default stdout)")
	dictPath := fs.String("dict", "", "dictionary output file (default <out>.dict)")
	if err := e.parse(fs, verbose, args); err != nil {
		return err
	}

	if *dictPath == "" {
		if *out == "" || *out == "-" {
			return fmt.Errorf("encode: -dict is required when writing to stdout")
		}
		*dictPath = *out + ".dict"
	}

	data, err := e.readInput(*in)
	if err != nil {
		return err
	}

	table, err := huffcode.CollectFrequencies(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("encode %s: %w", *in, err)
	}
	tree, err := huffcode.BuildTree(table)
	if err != nil {
		return fmt.Errorf("encode %s: %w", *in, err)
	}
	dict := tree.Dictionary()

	display := dict.Display()
	for _, entry := range dict.Entries() {
		e.log.Debugf("%s: %d (%s)", display.Token(entry.Symbol), table.Count(byte(entry.Symbol)), entry.Code)
	}

	if err := writeDictionaryFile(*dictPath, dict); err != nil {
		return err
	}

	w, closeOut, err := e.createOutput(*out)
	if err != nil {
		return err
	}
	n, err := huffcode.Encode(w, bytes.NewReader(data), dict)
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", *in, err)
	}

	e.log.Infof("encoded %d bytes (%d symbols) into %d code characters; dictionary %s",
		len(data), dict.Len(), n, *dictPath)
	return nil
}

func writeDictionaryFile(path string, dict *huffcode.Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := dict.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write dictionary %s: %w", path, err)
	}
	return f.Close()
}
