package genetic_partition

import (
	"errors"
	test "testing"
)

func TestGeneratePopulationBalance(t *test.T) {
	r := NewRNG(42)

	pop, err := GeneratePopulation(r, 20, 100)
	if err != nil {
		t.Fatalf("GeneratePopulation returned unexpected error: %v", err)
	}
	if pop.Size() != 20 {
		t.Errorf("Population size [%v] is not expected value [20]", pop.Size())
	}

	for i, g := range pop.Genes {
		if g.Length != 100 {
			t.Errorf("Gene %d length [%v] is not expected value [100]", i, g.Length)
		}
		if g.Ones != 50 || g.Zeros() != 50 {
			t.Errorf("Gene %d counts [%v ones, %v zeros] are not expected value [50, 50]",
				i, g.Ones, g.Zeros())
		}
	}
	if err := pop.CheckBalance(); err != nil {
		t.Errorf("CheckBalance failed on a freshly generated population: %v", err)
	}
}

func TestGeneratePopulationOddLength(t *test.T) {
	r := NewRNG(42)

	if _, err := GeneratePopulation(r, 20, 99); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for odd gene length, got: %v", err)
	}
}

func TestGeneratePopulationDeterministic(t *test.T) {
	first, err := GeneratePopulation(NewRNG(7), 5, 20)
	if err != nil {
		t.Fatalf("GeneratePopulation returned unexpected error: %v", err)
	}
	second, err := GeneratePopulation(NewRNG(7), 5, 20)
	if err != nil {
		t.Fatalf("GeneratePopulation returned unexpected error: %v", err)
	}

	for i := range first.Genes {
		if first.Genes[i].String() != second.Genes[i].String() {
			t.Errorf("Same seed produced different genes at index %d:\nExpected: %v\nActual: %v",
				i, first.Genes[i].String(), second.Genes[i].String())
		}
	}
}

func TestCheckBalanceViolation(t *test.T) {
	allOnes, _ := GeneFromString("1111")
	pop := &Population{Genes: []*Gene{allOnes}}

	if err := pop.CheckBalance(); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("Expected ErrInvariantViolation for unbalanced population, got: %v", err)
	}
}
