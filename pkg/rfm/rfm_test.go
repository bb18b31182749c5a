package rfm

import (
	"testing"
	"time"

	"rfm-segment/pkg/models"
)

// Three-customer scenario: the high-value recent customer must rank first
// and the stale one-off buyer last.
func TestBuild_EndToEnd(t *testing.T) {
	snapshot := day(2025, 9, 1)
	var txs []models.Transaction
	// X: five orders totaling 1000, most recent the day before snapshot.
	amounts := []float64{100, 150, 200, 250, 300}
	for i, a := range amounts {
		txs = append(txs, tx("X", "x"+string(rune('1'+i)), day(2025, 8, 31).AddDate(0, 0, -7*i), a))
	}
	// Y: one order of 50 at the start of the year.
	txs = append(txs, tx("Y", "y1", day(2025, 1, 1), 50))
	// Z: two mid-range orders, last one in June.
	txs = append(txs, tx("Z", "z1", day(2025, 6, 1), 120))
	txs = append(txs, tx("Z", "z2", day(2025, 5, 1), 80))

	got, err := Build(txs, snapshot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d customers, want 3", len(got))
	}
	if got[0].CustomerID != "X" || got[2].CustomerID != "Y" {
		t.Fatalf("unexpected order: %s, %s, %s", got[0].CustomerID, got[1].CustomerID, got[2].CustomerID)
	}
	x := got[0]
	if x.Monetary != 1000 || x.Frequency != 5 || x.RecencyDays != 1 {
		t.Fatalf("unexpected X aggregates: %+v", x)
	}
	if x.Segment != SegmentChampions || x.RFMSum != 15 {
		t.Fatalf("X should be a champion: segment=%q sum=%d", x.Segment, x.RFMSum)
	}
	y := got[2]
	if y.Segment != SegmentAtRiskDormant {
		t.Fatalf("Y segment = %q, want %q", y.Segment, SegmentAtRiskDormant)
	}
	if y.RFMSum >= x.RFMSum {
		t.Fatalf("Y sum %d should be below X sum %d", y.RFMSum, x.RFMSum)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	if _, err := Build(nil, time.Now()); err == nil {
		t.Fatal("expected error for empty input, got nil")
	}
}
