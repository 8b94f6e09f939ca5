package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/seiflotfy/huffcode"
)

// dictionaryCacheSize bounds the parsed dictionaries kept across inputs.
const dictionaryCacheSize = 16

func runDecode(e *env, args []string) error {
	fs, verbose := newFlagSet(e, "decode")
	dictPath := fs.String("dict", "", "dictionary file (default <coded>.dict per input)")
	out := fs.String("out", "", "decoded output file (default stdout)")
	if err := e.parse(fs, verbose, args); err != nil {
		return err
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		if *dictPath == "" {
			return fmt.Errorf("decode: -dict is required when reading stdin")
		}
		inputs = []string{"-"}
	}

	cache, err := huffcode.NewDictionaryCache(dictionaryCacheSize)
	if err != nil {
		return err
	}

	w, closeOut, err := e.createOutput(*out)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	for _, input := range inputs {
		path := *dictPath
		if path == "" {
			path = input + ".dict"
		}
		if err = e.decodeOne(bw, cache, input, path); err != nil {
			break
		}
	}

	if ferr := bw.Flush(); err == nil {
		err = ferr
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	return err
}

func (e *env) decodeOne(w io.Writer, cache *huffcode.DictionaryCache, input, dictPath string) error {
	dict, err := cache.LoadFile(dictPath)
	if err != nil {
		return fmt.Errorf("load dictionary %s: %w", dictPath, err)
	}
	e.log.Debugf("dictionary %s: %d symbols, longest code %d (%d cached)",
		dictPath, dict.Len(), dict.MaxCodeLen(), cache.Len())

	var r io.Reader = e.stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	n, err := huffcode.Decode(w, r, dict)
	if err != nil {
		return fmt.Errorf("decode %s: %w", input, err)
	}
	e.log.Infof("decoded %s: %d bytes", input, n)
	return nil
}
