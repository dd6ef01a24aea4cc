package genetic_partition

import (
	"fmt"
	"math"
	"math/rand"
)

// Selector forms the parent pool by roulette-wheel sampling. Raw weights
// come from the frequency table's rank indices, so higher-ranked buckets
// cover a wider slice of the wheel.
type Selector struct {
	Config *SelectorConfig
}

type SelectorConfig struct {
	Count int `toml:"count"`
}

func NewSelector(config *SelectorConfig) *Selector {
	return &Selector{Config: config}
}

// Thresholds builds the cumulative percentage thresholds over the rank
// buckets, rounded to two decimals. Rounding can leave the last bucket
// short of 100, which would let a high draw select nothing, so the final
// threshold is clamped to 100.
func Thresholds(table *FrequencyTable) []float64 {
	n := table.Size()
	total := 0
	for rank := 0; rank < n; rank++ {
		total += rank
	}

	thresholds := make([]float64, n)
	cumulative := 0.0
	for rank := 0; rank < n; rank++ {
		cumulative += float64(rank) / float64(total)
		thresholds[rank] = math.Round(cumulative*100*100) / 100
	}
	thresholds[n-1] = 100
	return thresholds
}

func pickIndex(thresholds []float64, u float64) int {
	for i, t := range thresholds {
		if t >= u {
			return i
		}
	}
	return -1
}

// Select draws Count members with replacement: each uniform draw in
// [0, 100) takes the first population member whose cumulative threshold
// covers it. The result replaces any previous selection.
func (s *Selector) Select(r *rand.Rand, population *Population, table *FrequencyTable) (*Population, error) {
	if s.Config.Count > population.Size() {
		return nil, fmt.Errorf("%w: selection count %d exceeds population size %d",
			ErrInvalidConfiguration, s.Config.Count, population.Size())
	}
	if table.Size() != population.Size() {
		return nil, fmt.Errorf("%w: frequency table has %d buckets for population of %d",
			ErrInvalidConfiguration, table.Size(), population.Size())
	}
	// A single bucket carries zero total weight and the wheel degenerates.
	if table.Size() < 2 {
		return nil, fmt.Errorf("%w: roulette wheel needs at least 2 buckets, got %d",
			ErrInvalidConfiguration, table.Size())
	}

	thresholds := Thresholds(table)
	selected := make([]*Gene, s.Config.Count)
	for i := range selected {
		u := r.Float64() * 100
		selected[i] = population.Genes[pickIndex(thresholds, u)]
	}
	return &Population{Genes: selected}, nil
}
