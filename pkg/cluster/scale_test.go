package cluster

import (
	"math"
	"testing"
)

func TestStandardize_ZeroMean(t *testing.T) {
	X := [][]float64{{1, 100}, {2, 200}, {3, 300}, {4, 400}}
	scaled := Standardize(X)
	for j := 0; j < 2; j++ {
		var sum float64
		for i := range scaled {
			sum += scaled[i][j]
		}
		if mean := sum / float64(len(scaled)); math.Abs(mean) > 1e-12 {
			t.Fatalf("column %d mean = %v, want 0", j, mean)
		}
	}
}

func TestStandardize_ZeroVarianceColumn(t *testing.T) {
	X := [][]float64{{5, 1}, {5, 2}, {5, 3}}
	scaled := Standardize(X)
	for i := range scaled {
		if scaled[i][0] != 0 {
			t.Fatalf("constant column should center to 0, got %v", scaled[i][0])
		}
	}
}

func TestStandardize_DoesNotMutateInput(t *testing.T) {
	X := [][]float64{{1, 2}, {3, 4}}
	Standardize(X)
	if X[0][0] != 1 || X[1][1] != 4 {
		t.Fatalf("input matrix was mutated: %v", X)
	}
}
