package huffcode

import "slices"

// noChild marks a missing child index.
const noChild = -1

// Node is one node of a Huffman tree.
//
// Leaves carry a symbol and its count as weight. Internal nodes carry
// NoSymbol, the sum of their children's weights and the arena indices of
// both children.
type Node struct {
	Symbol Symbol
	Weight int
	Left   int
	Right  int
	Code   string
}

// Leaf reports whether n has no children.
func (n Node) Leaf() bool {
	return n.Left == noChild && n.Right == noChild
}

// Tree is a Huffman tree stored as an arena of nodes.
//
// The first Dictionary().Len() nodes are the leaves, in dictionary order;
// internal nodes follow in merge order, so the root is the last node.
type Tree struct {
	nodes []Node
	root  int
	dict  *Dictionary
}

// BuildTree builds the Huffman tree for t and assigns a code to every symbol.
//
// Each step merges the two lowest-weight active entries: the lowest gets '0'
// prepended to the code of every node in its subtree and becomes the left
// child, the next lowest gets '1' and becomes the right child. The merged
// node is placed before the first active entry whose weight does not exceed
// its own. A single-symbol table yields a lone leaf with an empty code.
func BuildTree(t *FrequencyTable, opts ...Option) (*Tree, error) {
	if t == nil || t.Len() == 0 {
		return nil, ErrEmptyInput
	}

	entries := t.Entries()
	tree := &Tree{nodes: make([]Node, 0, 2*len(entries)-1)}
	active := make([]int, 0, len(entries))
	for _, e := range entries {
		tree.nodes = append(tree.nodes, Node{
			Symbol: e.Symbol,
			Weight: e.Count,
			Left:   noChild,
			Right:  noChild,
		})
		active = append(active, len(tree.nodes)-1)
	}

	var stack []int
	for len(active) > 1 {
		last := len(active) - 1
		first, second := active[last], active[last-1]

		stack = tree.propagate('0', first, stack)
		stack = tree.propagate('1', second, stack)

		weight := tree.nodes[first].Weight + tree.nodes[second].Weight
		tree.nodes = append(tree.nodes, Node{
			Symbol: NoSymbol,
			Weight: weight,
			Left:   first,
			Right:  second,
		})
		merged := len(tree.nodes) - 1

		active = active[:last-1]
		pos := len(active)
		for i, idx := range active {
			if tree.nodes[idx].Weight <= weight {
				pos = i
				break
			}
		}
		active = slices.Insert(active, pos, merged)
	}
	tree.root = active[0]

	dictEntries := make([]Entry, len(entries))
	for i := range entries {
		leaf := tree.nodes[i]
		dictEntries[i] = Entry{Symbol: leaf.Symbol, Code: leaf.Code}
	}
	dict, err := NewDictionary(dictEntries, opts...)
	if err != nil {
		return nil, err
	}
	tree.dict = dict

	return tree, nil
}

// propagate prepends bit to the code of every node in the subtree at root.
// The traversal uses an explicit stack; stack is reused across calls.
func (t *Tree) propagate(bit byte, root int, stack []int) []int {
	stack = append(stack[:0], root)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[i]
		n.Code = string(bit) + n.Code
		if n.Right != noChild {
			stack = append(stack, n.Right)
		}
		if n.Left != noChild {
			stack = append(stack, n.Left)
		}
	}
	return stack
}

// Root returns the arena index of the root node.
func (t *Tree) Root() int {
	return t.root
}

// Node returns the node at arena index i.
func (t *Tree) Node(i int) Node {
	return t.nodes[i]
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Weight returns the root weight, the number of symbols the tree was built from.
func (t *Tree) Weight() int {
	return t.nodes[t.root].Weight
}

// Dictionary returns the code table, ordered as the frequency table was at
// the start of construction.
func (t *Tree) Dictionary() *Dictionary {
	return t.dict
}

// Walk visits the nodes in pre-order (node, left, right) with their depth.
// It stops early if fn returns false.
func (t *Tree) Walk(fn func(i int, n Node, depth int) bool) {
	type frame struct{ i, depth int }
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.i]
		if !fn(f.i, n, f.depth) {
			return
		}
		if n.Right != noChild {
			stack = append(stack, frame{n.Right, f.depth + 1})
		}
		if n.Left != noChild {
			stack = append(stack, frame{n.Left, f.depth + 1})
		}
	}
}
