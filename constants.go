package genetic_partition

import (
	"math/rand"
	"time"
)

const DEBUG = false

// Defaults matching the classic 100-value partition setup.
const (
	DefaultInstanceSize         = 100
	DefaultGeneLength           = 100
	DefaultPopulationSize       = 20
	DefaultSelectionCount       = 10
	DefaultMutationRate         = 1.0
	DefaultValueLow             = 1
	DefaultValueHigh            = 10000
	DefaultMaxCrossoverAttempts = 10000
)

// NewRNG builds the run-scoped random source. If seed is 0, the current
// time is used (non-deterministic). A non-zero seed gives reproducible
// runs.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
