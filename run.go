package genetic_partition

import (
	"fmt"
	"log"
	"math/rand"
)

type RunConfig struct {
	InstanceSize         int     `toml:"instance_size"`
	GeneLength           int     `toml:"gene_length"`
	PopulationSize       int     `toml:"population_size"`
	SelectionCount       int     `toml:"selection_count"`
	MutationRate         float64 `toml:"mutation_rate"`
	ValueLow             int     `toml:"value_low"`
	ValueHigh            int     `toml:"value_high"`
	MaxCrossoverAttempts int     `toml:"max_crossover_attempts"`
	LegacyValidation     bool    `toml:"legacy_validation"`
	Seed                 int64   `toml:"seed"`
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		InstanceSize:         DefaultInstanceSize,
		GeneLength:           DefaultGeneLength,
		PopulationSize:       DefaultPopulationSize,
		SelectionCount:       DefaultSelectionCount,
		MutationRate:         DefaultMutationRate,
		ValueLow:             DefaultValueLow,
		ValueHigh:            DefaultValueHigh,
		MaxCrossoverAttempts: DefaultMaxCrossoverAttempts,
	}
}

// Solution is the best phenotype recorded across every generation seen
// so far.
type Solution struct {
	SubsetZero []int
	SubsetOne  []int
	Difference int
	Generation uint
	Gene       *Gene
}

// Run owns one logical run: the immutable problem instance, the current
// population, the cross-generation frequency accumulator, the generation
// counter, and the best solution seen. All state mutates synchronously
// inside Step; nothing here is safe for concurrent use.
type Run struct {
	Config     *RunConfig
	Instance   *ProblemInstance
	Population *Population
	Table      *FrequencyTable
	Generation uint
	Best       *Solution

	rng       *rand.Rand
	selector  *Selector
	crossover *CrossoverEngine
}

// NewRunFromConfig validates the parameters, draws the problem instance,
// and encodes the initial population. Zero-valued fields take their
// defaults before validation.
func NewRunFromConfig(config *RunConfig) (*Run, error) {
	if config == nil {
		config = DefaultRunConfig()
	}
	applyRunDefaults(config)

	if config.GeneLength%2 != 0 {
		return nil, fmt.Errorf("%w: gene length %d is odd",
			ErrInvalidConfiguration, config.GeneLength)
	}
	if config.GeneLength != config.InstanceSize {
		return nil, fmt.Errorf("%w: gene length %d does not match instance size %d",
			ErrInvalidConfiguration, config.GeneLength, config.InstanceSize)
	}
	if config.SelectionCount > config.PopulationSize {
		return nil, fmt.Errorf("%w: selection count %d exceeds population size %d",
			ErrInvalidConfiguration, config.SelectionCount, config.PopulationSize)
	}

	r := NewRNG(config.Seed)

	values, err := Draw(r, config.InstanceSize, config.ValueLow, config.ValueHigh)
	if err != nil {
		return nil, err
	}

	population, err := GeneratePopulation(r, config.PopulationSize, config.GeneLength)
	if err != nil {
		return nil, err
	}

	return &Run{
		Config:     config,
		Instance:   &ProblemInstance{Values: values},
		Population: population,
		Table:      NewFrequencyTable(config.PopulationSize),
		Generation: 1,
		rng:        r,
		selector:   NewSelector(&SelectorConfig{Count: config.SelectionCount}),
		crossover: NewCrossoverEngine(&CrossoverConfig{
			PopulationSize:   config.PopulationSize,
			MaxAttempts:      config.MaxCrossoverAttempts,
			LegacyValidation: config.LegacyValidation,
		}),
	}, nil
}

func applyRunDefaults(config *RunConfig) {
	if config.InstanceSize == 0 {
		config.InstanceSize = DefaultInstanceSize
	}
	if config.GeneLength == 0 {
		config.GeneLength = DefaultGeneLength
	}
	if config.PopulationSize == 0 {
		config.PopulationSize = DefaultPopulationSize
	}
	if config.SelectionCount == 0 {
		config.SelectionCount = DefaultSelectionCount
	}
	if config.MutationRate == 0 {
		config.MutationRate = DefaultMutationRate
	}
	if config.ValueLow == 0 && config.ValueHigh == 0 {
		config.ValueLow = DefaultValueLow
		config.ValueHigh = DefaultValueHigh
	}
	if config.MaxCrossoverAttempts == 0 {
		config.MaxCrossoverAttempts = DefaultMaxCrossoverAttempts
	}
}

// Step runs one generation: partition, fitness assessment, selection,
// crossover. The population is replaced by the accepted children and the
// counter incremented. Returns the updated generation counter.
func (run *Run) Step() (uint, error) {
	phenotypes, err := PartitionAll(run.Population, run.Instance)
	if err != nil {
		return run.Generation, err
	}

	if _, err := Assess(phenotypes, run.Table); err != nil {
		return run.Generation, err
	}
	run.recordBest(phenotypes)

	selected, err := run.selector.Select(run.rng, run.Population, run.Table)
	if err != nil {
		return run.Generation, err
	}

	next, err := run.crossover.Crossover(run.rng, selected)
	if err != nil {
		return run.Generation, err
	}
	if !run.Config.LegacyValidation {
		if err := next.CheckBalance(); err != nil {
			return run.Generation, err
		}
	}

	run.Population = next
	run.Generation++

	if DEBUG {
		log.Printf("Generation %d: best difference so far %d", run.Generation, run.Best.Difference)
	}
	return run.Generation, nil
}

func (run *Run) recordBest(phenotypes []*Phenotype) {
	for i, ph := range phenotypes {
		d := ph.Difference()
		if run.Best == nil || d < run.Best.Difference {
			// Snapshot the subsets along with the gene; the solution must
			// outlive whatever the caller does with the phenotypes.
			run.Best = &Solution{
				SubsetZero: append([]int{}, ph.SubsetZero...),
				SubsetOne:  append([]int{}, ph.SubsetOne...),
				Difference: d,
				Generation: run.Generation,
				Gene:       run.Population.Genes[i].Clone(),
			}
		}
	}
}

// BestSolution returns the smallest recorded difference across all
// generations seen so far, or nil before the first Step.
func (run *Run) BestSolution() *Solution {
	return run.Best
}

// CheckConvergence exposes the convergence checker over the run's
// accumulated frequency table.
func (run *Run) CheckConvergence(threshold int) []Convergence {
	return EvaluateConvergence(run.Table, threshold)
}

// MutatePopulation applies the mutation operator to every genotype at
// the given percentage rate. Not part of Step; drivers call it between
// generations when they want mutation pressure.
func (run *Run) MutatePopulation(ratePercent float64) error {
	for i, gene := range run.Population.Genes {
		mutated := Mutate(run.rng, gene, ratePercent)
		if mutated.Ones != gene.Ones {
			return fmt.Errorf("%w: mutation moved one-count from %d to %d",
				ErrInvariantViolation, gene.Ones, mutated.Ones)
		}
		run.Population.Genes[i] = mutated
	}
	return nil
}
