package genetic_partition

import (
	"fmt"

	sm "github.com/xrash/smetrics"
)

// GenerationMetrics aggregates one generation's partition-sum differences
// and genotype diversity.
type GenerationMetrics struct {
	BestDifference  int
	WorstDifference int
	AvgDifference   float64
	Diversity       float64
}

// MeasureGeneration computes difference aggregates over the phenotypes
// and the mean pairwise Hamming distance across the population's
// genotypes. Diversity near zero means the population has collapsed onto
// one partition.
func MeasureGeneration(population *Population, phenotypes []*Phenotype) (*GenerationMetrics, error) {
	if len(phenotypes) == 0 {
		return nil, fmt.Errorf("%w: no phenotypes to measure", ErrInvalidConfiguration)
	}
	if population.Size() != len(phenotypes) {
		return nil, fmt.Errorf("%w: %d phenotypes for population of %d",
			ErrInvalidConfiguration, len(phenotypes), population.Size())
	}

	m := &GenerationMetrics{BestDifference: phenotypes[0].Difference()}
	total := 0
	for _, ph := range phenotypes {
		d := ph.Difference()
		if d < m.BestDifference {
			m.BestDifference = d
		}
		if d > m.WorstDifference {
			m.WorstDifference = d
		}
		total += d
	}
	m.AvgDifference = float64(total) / float64(len(phenotypes))

	diversity, err := meanHamming(population)
	if err != nil {
		return nil, err
	}
	m.Diversity = diversity
	return m, nil
}

func meanHamming(p *Population) (float64, error) {
	encoded := make([]string, p.Size())
	for i, g := range p.Genes {
		encoded[i] = g.String()
	}

	pairs, total := 0, 0
	for i := 0; i < len(encoded); i++ {
		for j := i + 1; j < len(encoded); j++ {
			d, err := sm.Hamming(encoded[i], encoded[j])
			if err != nil {
				return 0, fmt.Errorf("hamming distance failed: %w", err)
			}
			total += d
			pairs++
		}
	}
	if pairs == 0 {
		return 0, nil
	}
	return float64(total) / float64(pairs), nil
}
