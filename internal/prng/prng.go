// Package prng is a small deterministic generator for reproducible test
// corpora across platforms and Go releases.
package prng

// SimplePRNG is a Linear Congruential Generator.
type SimplePRNG struct {
	state uint64
}

// New creates a new PRNG with the given seed.
func New(seed uint64) *SimplePRNG {
	return &SimplePRNG{state: seed}
}

// Next advances the generator and returns its new state. The multiplier and
// increment are Knuth's MMIX constants.
func (p *SimplePRNG) Next() uint64 {
	p.state = p.state*6364136223846793005 + 1442695040888963407
	return p.state
}

// Uint64N returns a random number in [0, n), or 0 when n is 0.
func (p *SimplePRNG) Uint64N(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	// The high bits of an LCG are the well-mixed ones.
	return (p.Next() >> 33) % n
}

// Shuffle permutes slice in place (Fisher-Yates).
func (p *SimplePRNG) Shuffle(slice []byte) {
	for i := len(slice) - 1; i > 0; i-- {
		j := int(p.Uint64N(uint64(i + 1)))
		slice[i], slice[j] = slice[j], slice[i]
	}
}

// Bytes returns n uniformly distributed bytes.
func (p *SimplePRNG) Bytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(p.Next() >> 56)
	}
	return out
}

// Skewed returns n bytes drawn from the first alphabet byte values with
// roughly halving probability per value, which yields deep Huffman trees.
func (p *SimplePRNG) Skewed(n, alphabet int) []byte {
	if alphabet < 1 {
		alphabet = 1
	}
	if alphabet > 256 {
		alphabet = 256
	}
	out := make([]byte, n)
	for i := range out {
		v := 0
		for v < alphabet-1 && p.Next()>>63 == 1 {
			v++
		}
		out[i] = byte(v)
	}
	return out
}
