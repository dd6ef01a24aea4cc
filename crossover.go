package genetic_partition

import (
	"fmt"
	"math/rand"
)

// CrossoverEngine assembles each replacement generation by single-point
// recombination over the selected parent pool.
type CrossoverEngine struct {
	Config *CrossoverConfig
}

type CrossoverConfig struct {
	PopulationSize   int  `toml:"population_size"`
	MaxAttempts      int  `toml:"max_attempts"`
	LegacyValidation bool `toml:"legacy_validation"`
}

func NewCrossoverEngine(config *CrossoverConfig) *CrossoverEngine {
	return &CrossoverEngine{Config: config}
}

// Splice builds a child from the prefix of one parent through point and
// the suffix of the other from point+1 on.
func Splice(prefix, suffix *Gene, point int) *Gene {
	child := NewGene(prefix.Length)
	for i := 0; i <= point; i++ {
		if prefix.Bit(i) {
			child.Set(i)
		}
	}
	for i := point + 1; i < suffix.Length; i++ {
		if suffix.Bit(i) {
			child.Set(i)
		}
	}
	return child
}

// Crossover produces PopulationSize accepted children. Parents are drawn
// uniformly with replacement (self-pairing allowed) from the pool, the
// crossover point uniformly in [0, length-2], and each child of the pair
// is kept independently if it passes validation. Rejected children are
// discarded and retried; the attempt budget bounds the retry loop and
// exhausting it surfaces ErrCrossoverStalled.
func (ce *CrossoverEngine) Crossover(r *rand.Rand, selected *Population) (*Population, error) {
	pool := selected.Genes
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: empty selection pool", ErrInvalidConfiguration)
	}
	length := pool[0].Length
	if length < 2 {
		return nil, fmt.Errorf("%w: gene length %d too short for crossover",
			ErrInvalidConfiguration, length)
	}

	maxAttempts := ce.Config.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = DefaultMaxCrossoverAttempts
	}

	next := make([]*Gene, 0, ce.Config.PopulationSize)
	for attempts := 0; len(next) < ce.Config.PopulationSize; attempts++ {
		if attempts >= maxAttempts {
			return nil, fmt.Errorf("%w: %d of %d children after %d attempts",
				ErrCrossoverStalled, len(next), ce.Config.PopulationSize, attempts)
		}

		parentOne := pool[r.Intn(len(pool))]
		parentTwo := pool[r.Intn(len(pool))]
		point := r.Intn(length - 1)

		childOne := Splice(parentOne, parentTwo, point)
		childTwo := Splice(parentTwo, parentOne, point)

		if ce.validate(childOne) {
			next = append(next, childOne)
		}
		if len(next) < ce.Config.PopulationSize && ce.validate(childTwo) {
			next = append(next, childTwo)
		}
	}
	return &Population{Genes: next}, nil
}

func (ce *CrossoverEngine) validate(g *Gene) bool {
	if ce.Config.LegacyValidation {
		return g.LegacyValid()
	}
	return g.Balanced()
}
