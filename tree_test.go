package huffcode

import (
	"container/heap"
	"errors"
	"strings"
	"testing"

	"github.com/seiflotfy/huffcode/internal/prng"
)

func mustBuild(t testing.TB, data []byte) *Tree {
	t.Helper()
	table, err := CollectFrequencies(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("CollectFrequencies: %v", err)
	}
	tree, err := BuildTree(table)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	return tree
}

func codesOf(d *Dictionary) map[Symbol]string {
	codes := make(map[Symbol]string)
	for _, e := range d.Entries() {
		codes[e.Symbol] = e.Code
	}
	return codes
}

func TestBuildTreeAbracadabra(t *testing.T) {
	tree := mustBuild(t, []byte("abracadabra"))

	want := []Entry{
		{'a', "0"},
		{'b', "111"},
		{'r', "110"},
		{'c', "101"},
		{'d', "100"},
	}
	got := tree.Dictionary().Entries()
	if len(got) != len(want) {
		t.Fatalf("got %d entries want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d: got (%q, %q) want (%q, %q)", i, got[i].Symbol, got[i].Code, want[i].Symbol, want[i].Code)
		}
	}

	if tree.Weight() != 11 {
		t.Errorf("Weight: got %d want 11", tree.Weight())
	}
	if tree.Len() != 9 {
		t.Errorf("Len: got %d want 9", tree.Len())
	}
	if root := tree.Node(tree.Root()); root.Symbol != NoSymbol || root.Code != "" {
		t.Errorf("root: got symbol %d code %q", root.Symbol, root.Code)
	}
}

func TestBuildTreeTwoSymbols(t *testing.T) {
	tree := mustBuild(t, []byte("aab"))
	codes := codesOf(tree.Dictionary())

	// The lower-count entry is merged first and takes '0'.
	if codes['a'] != "1" || codes['b'] != "0" {
		t.Errorf("got a=%q b=%q want a=\"1\" b=\"0\"", codes['a'], codes['b'])
	}

	root := tree.Node(tree.Root())
	if tree.Node(root.Left).Symbol != 'b' || tree.Node(root.Right).Symbol != 'a' {
		t.Errorf("children: left %q right %q", tree.Node(root.Left).Symbol, tree.Node(root.Right).Symbol)
	}
}

func TestBuildTreeSingleSymbol(t *testing.T) {
	tree := mustBuild(t, []byte("bbbb"))

	if tree.Len() != 1 {
		t.Fatalf("Len: got %d want 1", tree.Len())
	}
	root := tree.Node(tree.Root())
	if !root.Leaf() || root.Symbol != 'b' || root.Weight != 4 {
		t.Errorf("root: %+v", root)
	}

	entries := tree.Dictionary().Entries()
	if len(entries) != 1 || entries[0].Symbol != 'b' || entries[0].Code != "" {
		t.Errorf("dictionary: %+v", entries)
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	if _, err := BuildTree(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("BuildTree(nil): got %v want ErrEmptyInput", err)
	}
	if _, err := BuildTree(NewFrequencyTable()); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("BuildTree(empty): got %v want ErrEmptyInput", err)
	}
}

func corpora() map[string][]byte {
	all := make([]byte, 0, 256*3)
	for i := 0; i < 256; i++ {
		for j := 0; j <= i%3; j++ {
			all = append(all, byte(i))
		}
	}
	return map[string][]byte{
		"aab":         []byte("aab"),
		"abracadabra": []byte("abracadabra"),
		"sentence":    []byte("the quick brown fox jumps over the lazy dog\n"),
		"all-bytes":   all,
		"random":      prng.New(1).Bytes(10 * 1024),
		"skewed":      prng.New(2).Skewed(64*1024, 40),
		"equal":       []byte("abcdefghijklmnop"),
	}
}

func TestTreeInvariants(t *testing.T) {
	for name, data := range corpora() {
		tree := mustBuild(t, data)

		if tree.Weight() != len(data) {
			t.Errorf("%s: root weight %d, input length %d", name, tree.Weight(), len(data))
		}

		visited := 0
		tree.Walk(func(i int, n Node, depth int) bool {
			visited++
			if n.Leaf() {
				if !n.Symbol.Valid() {
					t.Errorf("%s: leaf %d has no symbol", name, i)
				}
				if len(n.Code) != depth {
					t.Errorf("%s: leaf %q code %q at depth %d", name, n.Symbol, n.Code, depth)
				}
				return true
			}
			if n.Symbol != NoSymbol {
				t.Errorf("%s: internal node %d carries symbol %d", name, i, n.Symbol)
			}
			left, right := tree.Node(n.Left), tree.Node(n.Right)
			if n.Weight != left.Weight+right.Weight {
				t.Errorf("%s: node %d weight %d != %d + %d", name, i, n.Weight, left.Weight, right.Weight)
			}
			if left.Code != n.Code+"0" || right.Code != n.Code+"1" {
				t.Errorf("%s: node %d children codes %q/%q under %q", name, i, left.Code, right.Code, n.Code)
			}
			return true
		})
		if visited != tree.Len() {
			t.Errorf("%s: walk visited %d of %d nodes", name, visited, tree.Len())
		}

		assertPrefixFree(t, name, tree.Dictionary())
	}
}

func assertPrefixFree(t *testing.T, name string, d *Dictionary) {
	t.Helper()
	entries := d.Entries()
	for i, a := range entries {
		for j, b := range entries {
			if i != j && strings.HasPrefix(b.Code, a.Code) {
				t.Errorf("%s: code %q (%q) is a prefix of %q (%q)", name, a.Code, a.Symbol, b.Code, b.Symbol)
			}
		}
	}
}

// weightHeap is a reference min-heap of weights.
type weightHeap []int

func (h weightHeap) Len() int           { return len(h) }
func (h weightHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h weightHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *weightHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *weightHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

func TestTreeIsOptimal(t *testing.T) {
	for name, data := range corpora() {
		table, err := CollectFrequencies(strings.NewReader(string(data)))
		if err != nil {
			t.Fatal(err)
		}
		tree, err := BuildTree(table)
		if err != nil {
			t.Fatal(err)
		}

		var h weightHeap
		for _, e := range table.Entries() {
			h = append(h, e.Count)
		}
		heap.Init(&h)
		want := 0
		for h.Len() > 1 {
			a, b := heap.Pop(&h).(int), heap.Pop(&h).(int)
			want += a + b
			heap.Push(&h, a+b)
		}

		got := 0
		for _, e := range tree.Dictionary().Entries() {
			got += table.Count(byte(e.Symbol)) * len(e.Code)
		}
		if got != want {
			t.Errorf("%s: coded length %d, optimal %d", name, got, want)
		}
	}
}

func TestTreeLeavesFirst(t *testing.T) {
	tree := mustBuild(t, []byte("mississippi river"))
	entries := tree.Dictionary().Entries()
	for i, e := range entries {
		n := tree.Node(i)
		if !n.Leaf() || n.Symbol != e.Symbol || n.Code != e.Code {
			t.Errorf("node %d: got %+v for entry %+v", i, n, e)
		}
	}
	if tree.Root() != tree.Len()-1 {
		t.Errorf("root index %d, want last node %d", tree.Root(), tree.Len()-1)
	}
}

func TestTreeWalkStops(t *testing.T) {
	tree := mustBuild(t, []byte("abracadabra"))
	visited := 0
	tree.Walk(func(int, Node, int) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Errorf("visited %d nodes, want 3", visited)
	}
}
