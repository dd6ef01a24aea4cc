package genetic_partition

import (
	"fmt"
	"math/rand"
)

// ProblemInstance is the fixed set of values to partition. Index i is
// permanently associated with bit position i of every genotype, and the
// values never change after creation.
type ProblemInstance struct {
	Values []int
}

type InstanceConfig struct {
	Size int `toml:"size"`
	Low  int `toml:"low"`
	High int `toml:"high"`
}

func NewInstanceFromConfig(r *rand.Rand, config *InstanceConfig) (*ProblemInstance, error) {
	values, err := Draw(r, config.Size, config.Low, config.High)
	if err != nil {
		return nil, err
	}
	return &ProblemInstance{Values: values}, nil
}

// Draw samples k distinct integers uniformly from [low, high) without
// replacement.
func Draw(r *rand.Rand, k, low, high int) ([]int, error) {
	if high <= low {
		return nil, fmt.Errorf("%w: empty range [%d, %d)", ErrSamplingExhausted, low, high)
	}
	span := high - low
	if k > span {
		return nil, fmt.Errorf("%w: want %d distinct values from a range of %d",
			ErrSamplingExhausted, k, span)
	}
	perm := r.Perm(span)
	values := make([]int, k)
	for i := 0; i < k; i++ {
		values[i] = low + perm[i]
	}
	return values, nil
}

func (pi *ProblemInstance) Len() int {
	return len(pi.Values)
}

func (pi *ProblemInstance) Sum() int {
	total := 0
	for _, v := range pi.Values {
		total += v
	}
	return total
}
