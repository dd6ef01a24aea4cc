package genetic_partition

import (
	"errors"
	"sort"
	test "testing"
)

func makeRunConfig() *RunConfig {
	return &RunConfig{
		InstanceSize:   100,
		GeneLength:     100,
		PopulationSize: 20,
		SelectionCount: 10,
		MutationRate:   1.0,
		ValueLow:       1,
		ValueHigh:      10000,
		Seed:           42,
	}
}

func TestNewRunFromConfigValidation(t *test.T) {
	config := makeRunConfig()
	config.GeneLength = 99
	config.InstanceSize = 99
	if _, err := NewRunFromConfig(config); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for odd gene length, got: %v", err)
	}

	config = makeRunConfig()
	config.GeneLength = 50
	if _, err := NewRunFromConfig(config); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for gene/instance mismatch, got: %v", err)
	}

	config = makeRunConfig()
	config.SelectionCount = 21
	if _, err := NewRunFromConfig(config); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for oversized selection count, got: %v", err)
	}

	config = makeRunConfig()
	config.InstanceSize = 9999
	config.GeneLength = 9999 + 1
	if _, err := NewRunFromConfig(config); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got: %v", err)
	}
}

func TestNewRunFromConfigDefaults(t *test.T) {
	run, err := NewRunFromConfig(&RunConfig{Seed: 42})
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}
	if run.Config.InstanceSize != DefaultInstanceSize {
		t.Errorf("Instance size [%v] is not expected default [%v]",
			run.Config.InstanceSize, DefaultInstanceSize)
	}
	if run.Population.Size() != DefaultPopulationSize {
		t.Errorf("Population size [%v] is not expected default [%v]",
			run.Population.Size(), DefaultPopulationSize)
	}
	if run.Generation != 1 {
		t.Errorf("Generation counter [%v] is not expected starting value [1]", run.Generation)
	}
}

func TestStepAdvancesGeneration(t *test.T) {
	run, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}

	generation, err := run.Step()
	if err != nil {
		t.Fatalf("Step returned unexpected error: %v", err)
	}
	if generation != 2 {
		t.Errorf("Generation counter [%v] is not expected value [2] after one step", generation)
	}
	if run.Population.Size() != 20 {
		t.Errorf("Population size [%v] is not expected value [20] after step", run.Population.Size())
	}
	if err := run.Population.CheckBalance(); err != nil {
		t.Errorf("Population violates balance invariant after step: %v", err)
	}
}

func TestStepDeterministic(t *test.T) {
	first, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}
	second, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}

	for step := 0; step < 5; step++ {
		if _, err := first.Step(); err != nil {
			t.Fatalf("Step %d returned unexpected error: %v", step, err)
		}
		if _, err := second.Step(); err != nil {
			t.Fatalf("Step %d returned unexpected error: %v", step, err)
		}
	}

	for i := range first.Population.Genes {
		if first.Population.Genes[i].String() != second.Population.Genes[i].String() {
			t.Errorf("Same seed diverged at gene %d after 5 steps", i)
		}
	}
	if first.BestSolution().Difference != second.BestSolution().Difference {
		t.Errorf("Same seed recorded different best differences: [%v] vs [%v]",
			first.BestSolution().Difference, second.BestSolution().Difference)
	}
}

func TestBestSolutionConsistent(t *test.T) {
	run, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}

	if run.BestSolution() != nil {
		t.Errorf("BestSolution unexpectedly non-nil before the first step")
	}

	previous := -1
	for step := 0; step < 10; step++ {
		if _, err := run.Step(); err != nil {
			t.Fatalf("Step %d returned unexpected error: %v", step, err)
		}
		best := run.BestSolution()
		if best == nil {
			t.Fatalf("BestSolution nil after step %d", step)
		}
		if previous >= 0 && best.Difference > previous {
			t.Errorf("Best difference regressed from [%v] to [%v]", previous, best.Difference)
		}
		previous = best.Difference
	}

	best := run.BestSolution()
	zeroSum, oneSum := 0, 0
	for _, v := range best.SubsetZero {
		zeroSum += v
	}
	for _, v := range best.SubsetOne {
		oneSum += v
	}
	diff := zeroSum - oneSum
	if diff < 0 {
		diff = -diff
	}
	if diff != best.Difference {
		t.Errorf("Recorded difference [%v] does not match subset sums [%v]", best.Difference, diff)
	}

	combined := append(append([]int{}, best.SubsetZero...), best.SubsetOne...)
	sort.Ints(combined)
	expected := append([]int{}, run.Instance.Values...)
	sort.Ints(expected)
	for i := range expected {
		if combined[i] != expected[i] {
			t.Fatalf("Best solution subsets do not reassemble the instance multiset")
		}
	}
}

func TestRecordBestSnapshotsSubsets(t *test.T) {
	run, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}

	phenotypes, err := PartitionAll(run.Population, run.Instance)
	if err != nil {
		t.Fatalf("PartitionAll returned unexpected error: %v", err)
	}
	run.recordBest(phenotypes)

	best := run.BestSolution()
	zeroSum, oneSum := 0, 0
	for _, v := range best.SubsetZero {
		zeroSum += v
	}
	for _, v := range best.SubsetOne {
		oneSum += v
	}

	// Scribbling over the phenotypes must not reach the recorded solution.
	for _, ph := range phenotypes {
		for i := range ph.SubsetZero {
			ph.SubsetZero[i] = -1
		}
		for i := range ph.SubsetOne {
			ph.SubsetOne[i] = -1
		}
	}

	afterZero, afterOne := 0, 0
	for _, v := range best.SubsetZero {
		afterZero += v
	}
	for _, v := range best.SubsetOne {
		afterOne += v
	}
	if afterZero != zeroSum || afterOne != oneSum {
		t.Errorf("Best solution subsets aliased the phenotypes: sums [%v, %v] changed to [%v, %v]",
			zeroSum, oneSum, afterZero, afterOne)
	}
}

func TestMutatePopulationKeepsBalance(t *test.T) {
	run, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}

	if err := run.MutatePopulation(run.Config.MutationRate); err != nil {
		t.Fatalf("MutatePopulation returned unexpected error: %v", err)
	}
	if err := run.Population.CheckBalance(); err != nil {
		t.Errorf("Population violates balance invariant after mutation: %v", err)
	}
}

func TestCheckConvergenceOnRun(t *test.T) {
	run, err := NewRunFromConfig(makeRunConfig())
	if err != nil {
		t.Fatalf("NewRunFromConfig returned unexpected error: %v", err)
	}

	if converged := run.CheckConvergence(1); len(converged) != 0 {
		t.Errorf("Convergence reported before any assessment: %v", converged)
	}

	if _, err := run.Step(); err != nil {
		t.Fatalf("Step returned unexpected error: %v", err)
	}

	// Every recorded difference sits under a huge threshold.
	converged := run.CheckConvergence(1 << 30)
	if len(converged) != 20 {
		t.Errorf("Converged pair count [%v] is not expected value [20]", len(converged))
	}
}
