// Command huffcode builds Huffman codes for files and converts files to and
// from their coded form.
//
// Usage:
//
//	huffcode encode -in input.txt -out output_huffman.txt [-dict dict.txt]
//	huffcode decode [-dict dict.txt] [-out output.txt] coded...
//	huffcode inspect -in input.txt [-tree] [-codes]
//	huffcode stats -in input.txt [-binary output.txt]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/seiflotfy/huffcode/internal/logger"
)

// errUsage reports a bad command line; the usage text has already been printed.
var errUsage = errors.New("usage")

type command struct {
	name  string
	usage string
	run   func(env *env, args []string) error
}

var commands = []command{
	{"encode", "build a code for a file, write its dictionary and coded form", runEncode},
	{"decode", "decode coded files with their dictionaries", runDecode},
	{"inspect", "print occurrences, tree and codes of a file", runInspect},
	{"stats", "compare the coded length with the 8-bit binary rendering", runStats},
}

// env carries the process streams so commands can run under test.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    logger.Logger
}

func main() {
	e := &env{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    logger.New(os.Stderr, false),
	}
	os.Exit(e.exit(run(e, os.Args[1:])))
}

// exit logs err and returns the process status for it. Usage errors have
// already been reported by the flag set.
func (e *env) exit(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		e.log.Errorf("%v", err)
		return 1
	}
}

func run(e *env, args []string) error {
	if len(args) == 0 {
		printUsage(e.stderr)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(e, args[1:])
		}
	}
	printUsage(e.stderr)
	return errUsage
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: huffcode <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

// newFlagSet returns a flag set for a command with the shared -v flag.
func newFlagSet(e *env, name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	verbose := fs.Bool("v", false, "verbose output")
	return fs, verbose
}

// parse parses args and sets up the logger.
func (e *env) parse(fs *flag.FlagSet, verbose *bool, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	e.log = logger.New(e.stderr, *verbose)
	return nil
}

// readInput returns the contents of path, or of stdin when path is empty or "-".
func (e *env) readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(e.stdin)
	}
	return os.ReadFile(path)
}

// createOutput opens path for writing, or returns stdout when path is empty
// or "-". The returned close function must always be called.
func (e *env) createOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return e.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
