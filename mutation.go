package genetic_partition

import "math/rand"

// Mutate flips each bit with probability ratePercent out of 100, tallying
// flips by original bit value. The mutated gene is returned only when the
// zero-to-one and one-to-zero flip counts match, which keeps the balance
// invariant; otherwise every flip is discarded and the input comes back
// unchanged. Pure: the input gene is never modified.
func Mutate(r *rand.Rand, gene *Gene, ratePercent float64) *Gene {
	mutated := gene.Clone()
	flippedZeros, flippedOnes := 0, 0
	for i := 0; i < gene.Length; i++ {
		if r.Float64()*100 >= ratePercent {
			continue
		}
		if gene.Bit(i) {
			flippedOnes++
		} else {
			flippedZeros++
		}
		mutated.Flip(i)
	}
	if flippedZeros == flippedOnes {
		return mutated
	}
	return gene
}
