package models

import (
	"time"
)

/*
LOAD → raw rows as handed over by the ingestion layer (CSV or MySQL).
*/

// Transaction is one cleaned order line. Ingestion guarantees non-empty
// identifiers, a valid timestamp and Amount > 0.
type Transaction struct {
	CustomerID string
	OrderID    string
	OrderDate  time.Time
	Amount     float64
}

/*
COMPUTE → one record per customer, filled in stages:
aggregation, then scoring, then segmentation, then (optionally) clustering.
*/

// Customer carries every per-customer column of the pipeline. The score
// fields are population-relative: they are recomputed from scratch for
// every input batch and are not stable across batches.
type Customer struct {
	CustomerID string

	// Aggregates over all of the customer's transactions.
	Monetary        float64   // sum of amounts
	Frequency       int       // distinct order ids
	FirstPurchase   time.Time // min order date
	LastPurchase    time.Time // max order date
	AvgOrderValue   float64   // Monetary / Frequency
	RecencyDays     int       // days between snapshot and LastPurchase
	DaysSinceFirst  int       // days between snapshot and FirstPurchase
	OrdersLast90d   int       // distinct orders with date >= snapshot-90d
	MonetaryLast90d float64   // amount sum over the same window

	// Scoring inputs and 1..5 quintile scores.
	MonetaryClip  float64 // Monetary winsorized at the population p99
	FrequencyClip float64 // Frequency winsorized at the population p99
	RecencyInv    float64 // 1/(RecencyDays+1), higher = more recent
	RScore        int
	FScore        int
	MScore        int

	// Segmentation.
	RFMSum  int
	Segment string

	// Cluster label assigned by the train step (-1 until assigned).
	Cluster int
}

/*
CONFIG → parameters passed into each stage (no module-level paths).
*/

// Config is the single configuration object layered from an optional JSON
// file and command-line flags.
type Config struct {
	InputPath string `json:"input_path"` // transactions CSV
	OutputDir string `json:"output_dir"` // where result tables land

	// MySQL source, used instead of the CSV when set.
	DSN   string `json:"dsn,omitempty"`
	Table string `json:"table,omitempty"`

	// CSV dialect overrides (auto-detected when empty).
	Separator string `json:"separator,omitempty"`
	Encoding  string `json:"encoding,omitempty"`

	Snapshot string `json:"snapshot,omitempty"` // YYYY-MM-DD, empty = max(order_date)+1d

	// Cluster-count sweep.
	KMin  int     `json:"k_min"`
	KMax  int     `json:"k_max"`
	Seeds []int64 `json:"seeds"`

	Clusters int  `json:"clusters"` // final fit (train)
	Plots    bool `json:"plots,omitempty"`
	Verbose  bool `json:"verbose,omitempty"`
}

// DefaultConfig mirrors the defaults of the reference pipeline.
func DefaultConfig() Config {
	return Config{
		InputPath: "transactions.csv",
		OutputDir: ".",
		Table:     "CustomerEventData",
		KMin:      2,
		KMax:      8,
		Seeds:     []int64{0, 1, 2, 3, 4},
		Clusters:  4,
	}
}
