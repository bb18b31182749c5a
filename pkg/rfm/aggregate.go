package rfm

import (
	"math"
	"sort"
	"time"

	"rfm-segment/pkg/models"
)

// RecentWindowDays is the length of the rolling activity window.
const RecentWindowDays = 90

// Aggregate groups transactions by customer and computes the base and
// 90-day-window aggregates against the given snapshot instant. Exactly one
// record is produced per distinct customer id; an empty input yields an
// empty output. The result does not depend on input row order (records come
// back sorted by customer id).
func Aggregate(txs []models.Transaction, snapshot time.Time) []models.Customer {
	type acc struct {
		monetary  float64
		orders    map[string]struct{}
		first     time.Time
		last      time.Time
		winOrders map[string]struct{}
		winAmount float64
	}

	winStart := snapshot.Add(-RecentWindowDays * 24 * time.Hour)

	byCustomer := map[string]*acc{}
	for _, tx := range txs {
		a, ok := byCustomer[tx.CustomerID]
		if !ok {
			a = &acc{
				orders:    map[string]struct{}{},
				winOrders: map[string]struct{}{},
				first:     tx.OrderDate,
				last:      tx.OrderDate,
			}
			byCustomer[tx.CustomerID] = a
		}
		a.monetary += tx.Amount
		a.orders[tx.OrderID] = struct{}{}
		if tx.OrderDate.Before(a.first) {
			a.first = tx.OrderDate
		}
		if tx.OrderDate.After(a.last) {
			a.last = tx.OrderDate
		}
		// Closed lower bound: a transaction at exactly snapshot-90d counts.
		if !tx.OrderDate.Before(winStart) {
			a.winOrders[tx.OrderID] = struct{}{}
			a.winAmount += tx.Amount
		}
	}

	out := make([]models.Customer, 0, len(byCustomer))
	for id, a := range byCustomer {
		freq := len(a.orders)
		out = append(out, models.Customer{
			CustomerID:      id,
			Monetary:        a.monetary,
			Frequency:       freq,
			FirstPurchase:   a.first,
			LastPurchase:    a.last,
			AvgOrderValue:   a.monetary / float64(freq),
			RecencyDays:     daysBetween(a.last, snapshot),
			DaysSinceFirst:  daysBetween(a.first, snapshot),
			OrdersLast90d:   len(a.winOrders),
			MonetaryLast90d: a.winAmount,
			Cluster:         -1,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

// daysBetween floors the day difference, so a snapshot earlier than the
// transaction yields negative days rather than rounding toward zero.
func daysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}
