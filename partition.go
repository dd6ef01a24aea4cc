package genetic_partition

import "fmt"

// Phenotype is the pair of integer subsets a genotype maps to. A zero
// bit at position i routes instance value i into SubsetZero, a one bit
// into SubsetOne. Every instance value lands in exactly one subset.
type Phenotype struct {
	SubsetZero []int
	SubsetOne  []int
}

// Difference is the absolute gap between the two subset sums. Smaller is
// a better partition; zero is perfect.
func (ph *Phenotype) Difference() int {
	diff := sum(ph.SubsetZero) - sum(ph.SubsetOne)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Partition maps a genotype to its phenotype against the instance.
func Partition(g *Gene, instance *ProblemInstance) (*Phenotype, error) {
	if g.Length != instance.Len() {
		return nil, fmt.Errorf("%w: gene length %d does not match instance size %d",
			ErrInvalidConfiguration, g.Length, instance.Len())
	}
	ph := &Phenotype{
		SubsetZero: make([]int, 0, g.Zeros()),
		SubsetOne:  make([]int, 0, g.Ones),
	}
	for i, v := range instance.Values {
		if g.Bit(i) {
			ph.SubsetOne = append(ph.SubsetOne, v)
		} else {
			ph.SubsetZero = append(ph.SubsetZero, v)
		}
	}
	return ph, nil
}

// PartitionAll maps every genotype in the population, order-preserving.
func PartitionAll(p *Population, instance *ProblemInstance) ([]*Phenotype, error) {
	phenotypes := make([]*Phenotype, p.Size())
	for i, g := range p.Genes {
		ph, err := Partition(g, instance)
		if err != nil {
			return nil, err
		}
		phenotypes[i] = ph
	}
	return phenotypes, nil
}
