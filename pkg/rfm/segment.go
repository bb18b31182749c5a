package rfm

import (
	"sort"

	"rfm-segment/pkg/models"
)

// Segment labels.
const (
	SegmentChampions         = "Champions"
	SegmentLoyal             = "Loyal"
	SegmentPotentialLoyalist = "Potential Loyalist"
	SegmentAtRiskDormant     = "At Risk / Dormant"
	SegmentBigSpenders       = "Big Spenders"
	SegmentNewCustomers      = "New Customers"
	SegmentRegular           = "Regular"
)

type segmentRule struct {
	match func(r, f, m int) bool
	label string
}

// The cascade is first-match-wins and its order is part of the contract:
// the rules overlap, so reordering changes which label a customer gets.
var segmentCascade = []segmentRule{
	{func(r, f, m int) bool { return r >= 4 && f >= 4 && m >= 4 }, SegmentChampions},
	{func(r, f, m int) bool { return r >= 4 && f >= 3 }, SegmentLoyal},
	{func(r, f, m int) bool { return r >= 3 && f >= 2 && m >= 3 }, SegmentPotentialLoyalist},
	{func(r, f, m int) bool { return r <= 2 && f <= 2 && m <= 2 }, SegmentAtRiskDormant},
	{func(r, f, m int) bool { return r >= 3 && m >= 4 }, SegmentBigSpenders},
	{func(r, f, m int) bool { return r >= 4 && f <= 2 }, SegmentNewCustomers},
}

// SegmentLabel maps a score triple to its segment.
func SegmentLabel(r, f, m int) string {
	for _, rule := range segmentCascade {
		if rule.match(r, f, m) {
			return rule.label
		}
	}
	return SegmentRegular
}

// Segment fills RFMSum and Segment for every record and applies the export
// ordering: RFMSum desc, Monetary desc, Frequency desc, then customer id
// asc so that repeated runs produce byte-identical output.
func Segment(customers []models.Customer) []models.Customer {
	out := append([]models.Customer(nil), customers...)
	for i := range out {
		out[i].RFMSum = out[i].RScore + out[i].FScore + out[i].MScore
		out[i].Segment = SegmentLabel(out[i].RScore, out[i].FScore, out[i].MScore)
	}
	sort.Slice(out, func(a, b int) bool {
		x, y := out[a], out[b]
		if x.RFMSum != y.RFMSum {
			return x.RFMSum > y.RFMSum
		}
		if x.Monetary != y.Monetary {
			return x.Monetary > y.Monetary
		}
		if x.Frequency != y.Frequency {
			return x.Frequency > y.Frequency
		}
		return x.CustomerID < y.CustomerID
	})
	return out
}
