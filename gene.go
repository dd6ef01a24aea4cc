package genetic_partition

import (
	"fmt"
	"strings"

	cp "github.com/jinzhu/copier"
)

const (
	genePow  = 6
	geneMask = 63
)

// Gene is a fixed-length bit sequence encoding a two-way partition. Bits
// are packed into uint64 words and the one-bit count is maintained on
// every write, so balance checks never rescan the gene.
type Gene struct {
	Length int
	Words  []uint64
	Ones   int
}

func NewGene(length int) *Gene {
	return &Gene{
		Length: length,
		Words:  make([]uint64, (length+geneMask)>>genePow),
	}
}

// GeneFromString parses a "0101..." encoding, index 0 first.
func GeneFromString(s string) (*Gene, error) {
	g := NewGene(len(s))
	for i, c := range s {
		switch c {
		case '1':
			g.Set(i)
		case '0':
		default:
			return nil, fmt.Errorf("%w: invalid character %q in gene encoding",
				ErrInvalidConfiguration, c)
		}
	}
	return g, nil
}

// Bit reports whether the bit at pos is one.
func (g *Gene) Bit(pos int) bool {
	return g.Words[pos>>genePow]&(1<<(uint(pos)&geneMask)) != 0
}

func (g *Gene) Set(pos int) {
	if !g.Bit(pos) {
		g.Words[pos>>genePow] |= 1 << (uint(pos) & geneMask)
		g.Ones++
	}
}

func (g *Gene) Clear(pos int) {
	if g.Bit(pos) {
		g.Words[pos>>genePow] &^= 1 << (uint(pos) & geneMask)
		g.Ones--
	}
}

func (g *Gene) Flip(pos int) {
	if g.Bit(pos) {
		g.Clear(pos)
	} else {
		g.Set(pos)
	}
}

func (g *Gene) Zeros() int {
	return g.Length - g.Ones
}

// Balanced is the corrected validation predicate: exactly half the bits
// are ones.
func (g *Gene) Balanced() bool {
	return g.Length%2 == 0 && g.Ones == g.Length/2
}

// LegacyValid reproduces the original acceptance predicate: a gene is
// rejected only when it contains at least one zero-bit AND its one-bit
// count differs from Length/2. An all-one gene therefore always passes,
// balanced or not. Kept behind CrossoverConfig.LegacyValidation for
// fidelity with the observed behavior.
func (g *Gene) LegacyValid() bool {
	return !(g.Zeros() >= 1 && g.Ones != g.Length/2)
}

// Clone returns an independent copy. Words must be deep-copied: a
// shared backing array would let flips on the copy reach the original.
func (g *Gene) Clone() *Gene {
	clone := &Gene{}
	cp.CopyWithOption(clone, g, cp.Option{DeepCopy: true})
	return clone
}

// String renders the gene as "0101...", index 0 first.
func (g *Gene) String() string {
	var sb strings.Builder
	sb.Grow(g.Length)
	for i := 0; i < g.Length; i++ {
		if g.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
