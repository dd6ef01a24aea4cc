package genetic_partition

import "errors"

var (
	// ErrInvalidConfiguration covers bad run parameters: odd gene length,
	// gene length not matching the instance size, selection count larger
	// than the population.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSamplingExhausted means more distinct integers were requested
	// than the sampling range holds.
	ErrSamplingExhausted = errors.New("sampling exhausted")

	// ErrCrossoverStalled means the attempt budget ran out before a full
	// replacement generation was accepted. Callers may retry the
	// generation or abort the run.
	ErrCrossoverStalled = errors.New("crossover stalled")

	// ErrInvariantViolation means a genotype lost its zero/one balance
	// after an operation that must preserve it. Always an internal defect.
	ErrInvariantViolation = errors.New("genotype balance invariant violated")
)
