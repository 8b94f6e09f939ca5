package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/seiflotfy/huffcode"
)

// treeIndent is the horizontal distance between tree levels.
const treeIndent = 10

func runInspect(e *env, args []string) error {
	fs, verbose := newFlagSet(e, "inspect")
	in := fs.String("in", "", "input file (default stdin)")
	showTree := fs.Bool("tree", false, "print the tree sideways, right subtree on top")
	showCodes := fs.Bool("codes", false, "print the code of every symbol")
	if err := e.parse(fs, verbose, args); err != nil {
		return err
	}

	data, err := e.readInput(*in)
	if err != nil {
		return err
	}
	table, err := huffcode.CollectFrequencies(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("inspect %s: %w", *in, err)
	}
	tree, err := huffcode.BuildTree(table)
	if err != nil {
		return fmt.Errorf("inspect %s: %w", *in, err)
	}
	e.log.Debugf("%d bytes, %d symbols, %d nodes", table.Total(), table.Len(), tree.Len())

	w := bufio.NewWriter(e.stdout)
	display := tree.Dictionary().Display()

	fmt.Fprintln(w, "occurrences:")
	for _, entry := range table.Entries() {
		fmt.Fprintf(w, "-> %s: %d\n", display.Token(entry.Symbol), entry.Count)
	}
	fmt.Fprintln(w, "-> EOF")

	if *showTree {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "tree:")
		printTree(w, tree, display)
	}

	if *showCodes {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "codes:")
		dict := tree.Dictionary()
		for _, entry := range dict.Entries() {
			fmt.Fprintf(w, "-> %s: %d (%s)\n",
				display.Token(entry.Symbol), table.Count(byte(entry.Symbol)), entry.Code)
		}
		fmt.Fprintln(w, "-> EOF")
	}
	return w.Flush()
}

// printTree prints t rotated a quarter turn: the root on the left, right
// subtrees above their parent and left subtrees below.
func printTree(w io.Writer, t *huffcode.Tree, display *huffcode.Display) {
	type frame struct {
		i, depth int
		visited  bool
	}
	stack := []frame{{i: t.Root()}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.Node(f.i)

		if f.visited {
			indent := strings.Repeat(" ", f.depth*treeIndent)
			if n.Leaf() {
				fmt.Fprintf(w, "%s(%s, %d)\n", indent, display.Token(n.Symbol), n.Weight)
			} else {
				fmt.Fprintf(w, "%s(%d)\n", indent, n.Weight)
			}
			continue
		}

		// Reverse in-order: right, node, left.
		if !n.Leaf() {
			stack = append(stack, frame{i: n.Left, depth: f.depth + 1})
		}
		stack = append(stack, frame{i: f.i, depth: f.depth, visited: true})
		if !n.Leaf() {
			stack = append(stack, frame{i: n.Right, depth: f.depth + 1})
		}
	}
}
