package genetic_partition

import (
	"errors"
	mop "reflect"
	test "testing"
)

func TestDrawDistinctInRange(t *test.T) {
	r := NewRNG(42)

	values, err := Draw(r, 100, 1, 10000)
	if err != nil {
		t.Fatalf("Draw returned unexpected error: %v", err)
	}
	if len(values) != 100 {
		t.Errorf("Value count [%v] is not expected value [100]", len(values))
	}

	seen := map[int]bool{}
	for _, v := range values {
		if v < 1 || v >= 10000 {
			t.Errorf("Value [%v] outside expected range [1, 10000)", v)
		}
		if seen[v] {
			t.Errorf("Duplicate value [%v] in sample without replacement", v)
		}
		seen[v] = true
	}
}

func TestDrawExhausted(t *test.T) {
	r := NewRNG(42)

	if _, err := Draw(r, 10, 1, 5); !errors.Is(err, ErrSamplingExhausted) {
		t.Errorf("Expected ErrSamplingExhausted, got: %v", err)
	}
	if _, err := Draw(r, 1, 5, 5); !errors.Is(err, ErrSamplingExhausted) {
		t.Errorf("Expected ErrSamplingExhausted for empty range, got: %v", err)
	}
}

func TestDrawDeterministic(t *test.T) {
	first, err := Draw(NewRNG(7), 50, 1, 1000)
	if err != nil {
		t.Fatalf("Draw returned unexpected error: %v", err)
	}
	second, err := Draw(NewRNG(7), 50, 1, 1000)
	if err != nil {
		t.Fatalf("Draw returned unexpected error: %v", err)
	}

	if !mop.DeepEqual(first, second) {
		t.Errorf("Same seed produced different samples:\nExpected: %v\nActual: %v", first, second)
	}
}

func TestInstanceSum(t *test.T) {
	instance := &ProblemInstance{Values: []int{5, 3, 8, 1}}
	if instance.Sum() != 17 {
		t.Errorf("Instance sum [%v] is not expected value [17]", instance.Sum())
	}
	if instance.Len() != 4 {
		t.Errorf("Instance length [%v] is not expected value [4]", instance.Len())
	}
}
