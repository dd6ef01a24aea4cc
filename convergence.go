package genetic_partition

// Convergence pairs a fitness rank bucket with a recorded difference
// that fell under the caller's threshold.
type Convergence struct {
	Rank       int
	Difference int
}

// EvaluateConvergence scans every stored difference in every bucket and
// returns the pairs strictly below threshold. Not part of the default
// generation loop; drivers call it as a termination check.
func EvaluateConvergence(table *FrequencyTable, threshold int) []Convergence {
	var converged []Convergence
	for rank, differences := range table.Buckets {
		for _, d := range differences {
			if d < threshold {
				converged = append(converged, Convergence{Rank: rank, Difference: d})
			}
		}
	}
	return converged
}
