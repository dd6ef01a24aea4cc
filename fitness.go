package genetic_partition

import (
	"fmt"
	"sort"
)

// FrequencyTable maps each fitness rank bucket to every difference that
// has ever been assigned that rank. Buckets accumulate across
// generations unless Reset is called; the table is passed explicitly
// into Assess so callers control its scope.
type FrequencyTable struct {
	Buckets [][]int
}

func NewFrequencyTable(size int) *FrequencyTable {
	return &FrequencyTable{Buckets: make([][]int, size)}
}

func (ft *FrequencyTable) Size() int {
	return len(ft.Buckets)
}

func (ft *FrequencyTable) Append(rank, difference int) {
	ft.Buckets[rank] = append(ft.Buckets[rank], difference)
}

// Reset clears every bucket, scoping the table to a single generation.
func (ft *FrequencyTable) Reset() {
	for i := range ft.Buckets {
		ft.Buckets[i] = nil
	}
}

// Assess ranks phenotypes by partition-sum difference and records every
// (rank, difference) pair in the table. Differences are sorted ascending
// and the individual at sorted position s gets fitness n-1-s, so the
// smallest difference takes the highest rank. Ties are broken by sorted
// position, not value: two equal differences still get distinct ranks.
// The returned ranks are aligned to the input order and always form a
// permutation of 0..n-1.
func Assess(phenotypes []*Phenotype, table *FrequencyTable) ([]int, error) {
	n := len(phenotypes)
	if table.Size() != n {
		return nil, fmt.Errorf("%w: frequency table has %d buckets for %d phenotypes",
			ErrInvalidConfiguration, table.Size(), n)
	}

	type entry struct {
		index      int
		difference int
	}
	order := make([]entry, n)
	for i, ph := range phenotypes {
		order[i] = entry{index: i, difference: ph.Difference()}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].difference < order[j].difference
	})

	fitness := make([]int, n)
	for pos, e := range order {
		rank := n - 1 - pos
		fitness[e.index] = rank
		table.Append(rank, e.difference)
	}
	return fitness, nil
}
