package rfm

import (
	"testing"

	"rfm-segment/pkg/models"
)

func TestSegmentLabel_Cascade(t *testing.T) {
	cases := []struct {
		r, f, m int
		want    string
	}{
		{5, 5, 5, SegmentChampions},
		{4, 4, 4, SegmentChampions},
		{4, 3, 1, SegmentLoyal},
		{3, 2, 3, SegmentPotentialLoyalist},
		{1, 1, 1, SegmentAtRiskDormant},
		{2, 2, 2, SegmentAtRiskDormant},
		{3, 1, 4, SegmentBigSpenders},
		{4, 1, 1, SegmentNewCustomers},
		{3, 1, 1, SegmentRegular},
		{2, 5, 5, SegmentRegular},
	}
	for _, c := range cases {
		if got := SegmentLabel(c.r, c.f, c.m); got != c.want {
			t.Fatalf("SegmentLabel(%d,%d,%d) = %q, want %q", c.r, c.f, c.m, got, c.want)
		}
	}
}

func TestSegmentLabel_RuleOrder(t *testing.T) {
	// (5,5,5) satisfies the Big Spenders predicate too; the earlier
	// Champions rule must win.
	if got := SegmentLabel(5, 5, 5); got != SegmentChampions {
		t.Fatalf("got %q, want %q", got, SegmentChampions)
	}
	// (4,2,5) satisfies Potential Loyalist, Big Spenders and New
	// Customers; Potential Loyalist comes first.
	if got := SegmentLabel(4, 2, 5); got != SegmentPotentialLoyalist {
		t.Fatalf("got %q, want %q", got, SegmentPotentialLoyalist)
	}
}

func TestSegment_SumAndOrder(t *testing.T) {
	customers := []models.Customer{
		{CustomerID: "low", RScore: 1, FScore: 1, MScore: 1, Monetary: 10, Frequency: 1},
		{CustomerID: "high", RScore: 5, FScore: 5, MScore: 5, Monetary: 100, Frequency: 5},
		{CustomerID: "mid", RScore: 3, FScore: 3, MScore: 3, Monetary: 50, Frequency: 2},
	}
	got := Segment(customers)
	if got[0].CustomerID != "high" || got[1].CustomerID != "mid" || got[2].CustomerID != "low" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].CustomerID, got[1].CustomerID, got[2].CustomerID)
	}
	if got[0].RFMSum != 15 || got[2].RFMSum != 3 {
		t.Fatalf("unexpected sums: %d, %d", got[0].RFMSum, got[2].RFMSum)
	}
}

func TestSegment_TieBreaks(t *testing.T) {
	customers := []models.Customer{
		{CustomerID: "b", RScore: 3, FScore: 3, MScore: 3, Monetary: 100, Frequency: 2},
		{CustomerID: "a", RScore: 3, FScore: 3, MScore: 3, Monetary: 100, Frequency: 5},
		{CustomerID: "c", RScore: 3, FScore: 3, MScore: 3, Monetary: 200, Frequency: 1},
	}
	got := Segment(customers)
	// Equal RFM sums: Monetary desc first, then Frequency desc.
	if got[0].CustomerID != "c" || got[1].CustomerID != "a" || got[2].CustomerID != "b" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].CustomerID, got[1].CustomerID, got[2].CustomerID)
	}
}
