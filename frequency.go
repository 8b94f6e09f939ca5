package huffcode

import (
	"cmp"
	"io"
	"slices"
)

// FrequencyEntry is the occurrence count of one symbol.
type FrequencyEntry struct {
	Symbol Symbol
	Count  int
	seen   int // discovery order, breaks ties between equal counts
}

// FrequencyTable counts the occurrences of each distinct byte of a stream.
//
// During the scan the entries are kept unique and ordered descending by
// symbol value, so each byte is found or placed with a binary search over
// at most 256 entries. Entries returns them ordered for tree construction.
//
// FrequencyTable implements io.Writer, so it can be fed with io.Copy.
type FrequencyTable struct {
	entries []FrequencyEntry
	total   int
}

// NewFrequencyTable creates an empty table.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{entries: make([]FrequencyEntry, 0, 256)}
}

// CollectFrequencies scans r once and returns its frequency table.
// It fails with ErrEmptyInput if r yields no bytes.
func CollectFrequencies(r io.Reader) (*FrequencyTable, error) {
	t := NewFrequencyTable()
	if _, err := io.Copy(t, r); err != nil {
		return nil, err
	}
	if t.total == 0 {
		return nil, ErrEmptyInput
	}
	return t, nil
}

// Write counts every byte of p. It never fails.
func (t *FrequencyTable) Write(p []byte) (int, error) {
	for _, b := range p {
		t.add(b)
	}
	return len(p), nil
}

// WriteByte counts b. It never fails.
func (t *FrequencyTable) WriteByte(b byte) error {
	t.add(b)
	return nil
}

func (t *FrequencyTable) add(b byte) {
	s := Symbol(b)
	pos, found := t.locate(s)
	if found {
		t.entries[pos].Count++
	} else {
		t.entries = slices.Insert(t.entries, pos, FrequencyEntry{
			Symbol: s,
			Count:  1,
			seen:   len(t.entries),
		})
	}
	t.total++
}

// locate runs a descending binary search for s. It returns the index of the
// entry for s, or the index at which an entry for s must be inserted.
func (t *FrequencyTable) locate(s Symbol) (int, bool) {
	n := len(t.entries)
	if n == 0 {
		return 0, false
	}

	lower, upper := 0, n-1
	middle := (lower + upper) / 2
	for lower < upper {
		switch cur := t.entries[middle].Symbol; {
		case s > cur:
			upper = middle - 1
		case s < cur:
			lower = middle + 1
		default:
			return middle, true
		}
		middle = (lower + upper) / 2
	}

	probe := t.entries[middle].Symbol
	if probe == s {
		return middle, true
	}

	// Splice before a smaller probe, after a larger one.
	pos := middle
	if s < probe {
		pos++
	}
	// The probe is adjacent to the slot; these walks only guard the order.
	for pos > 0 && t.entries[pos-1].Symbol < s {
		pos--
	}
	for pos < n && t.entries[pos].Symbol > s {
		pos++
	}
	return pos, false
}

// Count returns the number of occurrences of b.
func (t *FrequencyTable) Count(b byte) int {
	pos, found := t.locate(Symbol(b))
	if !found {
		return 0
	}
	return t.entries[pos].Count
}

// Len returns the number of distinct symbols.
func (t *FrequencyTable) Len() int {
	return len(t.entries)
}

// Total returns the number of bytes counted.
func (t *FrequencyTable) Total() int {
	return t.total
}

// Entries returns a copy of the entries ordered descending by count. Equal
// counts keep the order in which their symbols were first seen.
func (t *FrequencyTable) Entries() []FrequencyEntry {
	entries := slices.Clone(t.entries)
	slices.SortFunc(entries, func(a, b FrequencyEntry) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.seen, b.seen)
	})
	return entries
}
