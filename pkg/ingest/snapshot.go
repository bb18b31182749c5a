package ingest

import (
	"errors"
	"fmt"
	"time"

	"rfm-segment/pkg/models"
)

// ErrNoValidDates means the snapshot cannot be inferred because no
// transaction carries a usable order date.
var ErrNoValidDates = errors.New("cannot infer snapshot date (no valid order_date)")

// ResolveSnapshot returns the override parsed as YYYY-MM-DD when given,
// otherwise midnight UTC of the day after the latest order date. Recency
// is measured against this instant downstream.
func ResolveSnapshot(txs []models.Transaction, override string) (time.Time, error) {
	if override != "" {
		snap, err := time.ParseInLocation("2006-01-02", override, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid snapshot date %q: %w", override, err)
		}
		return snap, nil
	}

	var max time.Time
	for _, tx := range txs {
		if tx.OrderDate.After(max) {
			max = tx.OrderDate
		}
	}
	if max.IsZero() {
		return time.Time{}, ErrNoValidDates
	}
	day := max.UTC()
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1), nil
}
