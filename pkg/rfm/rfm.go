// Package rfm builds per-customer Recency/Frequency/Monetary profiles from
// a static transaction snapshot: windowed aggregation, winsorized quintile
// scoring and rule-based segment labels.
package rfm

import (
	"time"

	"rfm-segment/pkg/models"
)

// Build runs the full aggregate → score → segment pipeline and returns the
// labeled records in export order.
func Build(txs []models.Transaction, snapshot time.Time) ([]models.Customer, error) {
	scored, err := Score(Aggregate(txs, snapshot))
	if err != nil {
		return nil, err
	}
	return Segment(scored), nil
}
