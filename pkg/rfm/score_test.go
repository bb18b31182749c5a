package rfm

import (
	"errors"
	"testing"

	"rfm-segment/pkg/models"
)

// pop builds a population where only Monetary varies, so the M dimension
// drives the test and R/F tie out uniformly.
func pop(monetary ...float64) []models.Customer {
	customers := make([]models.Customer, len(monetary))
	for i, m := range monetary {
		customers[i] = models.Customer{
			CustomerID:  string(rune('a' + i)),
			Monetary:    m,
			Frequency:   1,
			RecencyDays: 10,
		}
	}
	return customers
}

func TestScore_QuintileDistinct(t *testing.T) {
	scored, err := Score(pop(10, 20, 30, 40, 50))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 4, 5}
	for i, c := range scored {
		if c.MScore != want[i] {
			t.Fatalf("MScore[%d] = %d, want %d", i, c.MScore, want[i])
		}
	}
}

func TestScore_AllScoresInRange(t *testing.T) {
	scored, err := Score(pop(3, 14, 15, 92, 65, 35, 89, 79, 32, 38, 46))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range scored {
		for _, s := range []int{c.RScore, c.FScore, c.MScore} {
			if s < 1 || s > 5 {
				t.Fatalf("score %d out of [1,5] for %+v", s, c)
			}
		}
	}
}

func TestScore_TieConsistency(t *testing.T) {
	scored, err := Score(pop(100, 100, 50, 200, 300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].MScore != scored[1].MScore {
		t.Fatalf("equal Monetary got different scores: %d vs %d", scored[0].MScore, scored[1].MScore)
	}
}

func TestScore_Monotonicity(t *testing.T) {
	scored, err := Score(pop(10, 20, 30, 40, 500))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(scored); i++ {
		if scored[i].MScore < scored[i-1].MScore {
			t.Fatalf("higher Monetary scored lower: %+v", scored)
		}
	}
}

func TestScore_SingleCustomer(t *testing.T) {
	scored, err := Score(pop(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := scored[0]
	if c.RScore != 5 || c.FScore != 5 || c.MScore != 5 {
		t.Fatalf("single customer should score 5/5/5, got %d/%d/%d", c.RScore, c.FScore, c.MScore)
	}
}

func TestScore_UniformDimension(t *testing.T) {
	// Every customer has Frequency 1, so the F dimension is one big tie.
	// An n-way full tie has average rank (n+1)/2, percentile (n+1)/2n;
	// for n=3 that is 2/3, bucket ceil(2/3*5) = 4.
	scored, err := Score(pop(10, 20, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range scored {
		if c.FScore != 4 {
			t.Fatalf("3-way tied dimension should score 4, got %d", c.FScore)
		}
	}
}

func TestScore_Empty(t *testing.T) {
	if _, err := Score(nil); !errors.Is(err, ErrEmptyPopulation) {
		t.Fatalf("expected ErrEmptyPopulation, got %v", err)
	}
}

func TestScore_RecencyDirection(t *testing.T) {
	customers := []models.Customer{
		{CustomerID: "recent", Monetary: 100, Frequency: 1, RecencyDays: 1},
		{CustomerID: "stale", Monetary: 100, Frequency: 1, RecencyDays: 300},
	}
	scored, err := Score(customers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scored[0].RScore <= scored[1].RScore {
		t.Fatalf("more recent customer should score higher: recent=%d stale=%d",
			scored[0].RScore, scored[1].RScore)
	}
}

func TestScore_Winsorization(t *testing.T) {
	scored, err := Score(pop(10, 20, 30, 40, 100000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outlier := scored[4]
	if outlier.MonetaryClip >= outlier.Monetary {
		t.Fatalf("outlier not clipped: clip=%v raw=%v", outlier.MonetaryClip, outlier.Monetary)
	}
	// Clipping must not remove the row or change its bucket ordering.
	if outlier.MScore != 5 {
		t.Fatalf("outlier MScore = %d, want 5", outlier.MScore)
	}
}

func TestScore_DoesNotMutateInput(t *testing.T) {
	in := pop(10, 20, 30)
	if _, err := Score(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range in {
		if c.MScore != 0 || c.MonetaryClip != 0 {
			t.Fatalf("input slice was mutated: %+v", c)
		}
	}
}
