package cluster

import (
	"reflect"
	"testing"
)

// twoGroups returns 12 points: 6 tight around (0,0), 6 tight around (10,10).
func twoGroups() [][]float64 {
	offsets := []float64{0, 0.1, -0.1, 0.2, -0.2, 0.15}
	X := make([][]float64, 0, 12)
	for _, o := range offsets {
		X = append(X, []float64{o, -o})
	}
	for _, o := range offsets {
		X = append(X, []float64{10 + o, 10 - o})
	}
	return X
}

func TestFit_TwoGroups(t *testing.T) {
	X := twoGroups()
	fit, err := Fit(X, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := fit.Labels[0]
	for i := 1; i < 6; i++ {
		if fit.Labels[i] != first {
			t.Fatalf("first group split: %v", fit.Labels)
		}
	}
	second := fit.Labels[6]
	if second == first {
		t.Fatalf("groups merged: %v", fit.Labels)
	}
	for i := 7; i < 12; i++ {
		if fit.Labels[i] != second {
			t.Fatalf("second group split: %v", fit.Labels)
		}
	}
}

func TestFit_Deterministic(t *testing.T) {
	X := twoGroups()
	a, err := Fit(X, 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Fit(X, 3, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a.Labels, b.Labels) || a.Inertia != b.Inertia {
		t.Fatalf("same seed produced different fits: %v vs %v", a.Labels, b.Labels)
	}
}

func TestFit_InertiaShrinksWithK(t *testing.T) {
	X := twoGroups()
	one, err := Fit(X, 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	two, err := Fit(X, 2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if two.Inertia >= one.Inertia {
		t.Fatalf("inertia should shrink: k=1 %v, k=2 %v", one.Inertia, two.Inertia)
	}
}

func TestFit_InvalidK(t *testing.T) {
	X := twoGroups()
	if _, err := Fit(X, 0, 0); err == nil {
		t.Fatal("expected error for k=0, got nil")
	}
	if _, err := Fit(X, len(X)+1, 0); err == nil {
		t.Fatal("expected error for k>n, got nil")
	}
}
