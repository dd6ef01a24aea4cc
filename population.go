package genetic_partition

import (
	"fmt"
	"math/rand"
)

// Population is the ordered sequence of genotypes for one run.
type Population struct {
	Genes []*Gene
}

type PopulationConfig struct {
	Size       int `toml:"size"`
	GeneLength int `toml:"gene_length"`
}

// GeneratePopulation builds size balanced genotypes of the given even
// length. Each individual starts as half zero-bits and half one-bits and
// gets an independent random permutation of positions.
func GeneratePopulation(r *rand.Rand, size, length int) (*Population, error) {
	if length%2 != 0 {
		return nil, fmt.Errorf("%w: gene length %d must be even",
			ErrInvalidConfiguration, length)
	}
	genes := make([]*Gene, size)
	for i := 0; i < size; i++ {
		genes[i] = newBalancedGene(r, length)
	}
	return &Population{Genes: genes}, nil
}

func newBalancedGene(r *rand.Rand, length int) *Gene {
	bits := make([]bool, length)
	for i := length / 2; i < length; i++ {
		bits[i] = true
	}
	r.Shuffle(length, func(i, j int) {
		bits[i], bits[j] = bits[j], bits[i]
	})

	g := NewGene(length)
	for i, b := range bits {
		if b {
			g.Set(i)
		}
	}
	return g
}

func (p *Population) Size() int {
	return len(p.Genes)
}

// CheckBalance verifies every genotype still holds the zero/one balance
// invariant. A failure is an internal defect, never recoverable.
func (p *Population) CheckBalance() error {
	for i, g := range p.Genes {
		if !g.Balanced() {
			return fmt.Errorf("%w: gene %d has %d ones over length %d",
				ErrInvariantViolation, i, g.Ones, g.Length)
		}
	}
	return nil
}
