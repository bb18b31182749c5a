// Package export serializes the pipeline's tabular outputs to CSV and
// reads them back for the downstream steps.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"rfm-segment/pkg/cluster"
	"rfm-segment/pkg/models"
)

const dateLayout = "2006-01-02 15:04:05"

var customerHeader = []string{
	"customer_id", "RecencyDays", "Frequency", "Monetary",
	"R_score", "F_score", "M_score", "RFM_sum", "Segment",
	"AvgOrderValue", "OrdersLast90d", "MonetaryLast90d",
	"FirstPurchase", "LastPurchase", "DaysSinceFirst",
}

// WriteCustomers writes the scored, segmented customer table in its
// documented order (the caller is expected to have sorted it).
func WriteCustomers(path string, customers []models.Customer) error {
	return writeCustomerTable(path, customers, false)
}

// WriteSegments writes the customer table with the trained Cluster column
// appended.
func WriteSegments(path string, customers []models.Customer) error {
	return writeCustomerTable(path, customers, true)
}

func writeCustomerTable(path string, customers []models.Customer, withCluster bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := customerHeader
	if withCluster {
		header = append(append([]string(nil), customerHeader...), "Cluster")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, c := range customers {
		rec := []string{
			c.CustomerID,
			strconv.Itoa(c.RecencyDays),
			strconv.Itoa(c.Frequency),
			formatFloat(c.Monetary),
			strconv.Itoa(c.RScore),
			strconv.Itoa(c.FScore),
			strconv.Itoa(c.MScore),
			strconv.Itoa(c.RFMSum),
			c.Segment,
			formatFloat(c.AvgOrderValue),
			strconv.Itoa(c.OrdersLast90d),
			formatFloat(c.MonetaryLast90d),
			c.FirstPurchase.UTC().Format(dateLayout),
			c.LastPurchase.UTC().Format(dateLayout),
			strconv.Itoa(c.DaysSinceFirst),
		}
		if withCluster {
			rec = append(rec, strconv.Itoa(c.Cluster))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadCustomers loads a table previously written by WriteCustomers or
// WriteSegments; a missing Cluster column leaves Cluster at -1.
func ReadCustomers(path string) ([]models.Customer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: empty table", path)
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[h] = i
	}
	for _, req := range customerHeader {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, req)
		}
	}
	_, hasCluster := cols["Cluster"]

	customers := make([]models.Customer, 0, len(rows)-1)
	for _, rec := range rows[1:] {
		get := func(name string) string { return rec[cols[name]] }
		c := models.Customer{
			CustomerID: get("customer_id"),
			Segment:    get("Segment"),
			Cluster:    -1,
		}
		if c.RecencyDays, err = strconv.Atoi(get("RecencyDays")); err != nil {
			return nil, fmt.Errorf("%s: RecencyDays: %w", path, err)
		}
		if c.Frequency, err = strconv.Atoi(get("Frequency")); err != nil {
			return nil, fmt.Errorf("%s: Frequency: %w", path, err)
		}
		if c.Monetary, err = strconv.ParseFloat(get("Monetary"), 64); err != nil {
			return nil, fmt.Errorf("%s: Monetary: %w", path, err)
		}
		if c.RScore, err = strconv.Atoi(get("R_score")); err != nil {
			return nil, err
		}
		if c.FScore, err = strconv.Atoi(get("F_score")); err != nil {
			return nil, err
		}
		if c.MScore, err = strconv.Atoi(get("M_score")); err != nil {
			return nil, err
		}
		if c.RFMSum, err = strconv.Atoi(get("RFM_sum")); err != nil {
			return nil, err
		}
		if c.AvgOrderValue, err = strconv.ParseFloat(get("AvgOrderValue"), 64); err != nil {
			return nil, err
		}
		if c.OrdersLast90d, err = strconv.Atoi(get("OrdersLast90d")); err != nil {
			return nil, err
		}
		if c.MonetaryLast90d, err = strconv.ParseFloat(get("MonetaryLast90d"), 64); err != nil {
			return nil, err
		}
		if c.FirstPurchase, err = time.ParseInLocation(dateLayout, get("FirstPurchase"), time.UTC); err != nil {
			return nil, err
		}
		if c.LastPurchase, err = time.ParseInLocation(dateLayout, get("LastPurchase"), time.UTC); err != nil {
			return nil, err
		}
		if c.DaysSinceFirst, err = strconv.Atoi(get("DaysSinceFirst")); err != nil {
			return nil, err
		}
		if hasCluster {
			if c.Cluster, err = strconv.Atoi(get("Cluster")); err != nil {
				return nil, err
			}
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// WriteClusterMetrics writes one row per evaluated cluster count.
func WriteClusterMetrics(path string, results []cluster.CandidateResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"k", "silhouette_mean", "davies_bouldin_mean", "calinski_harabasz_mean",
		"seeds_succeeded", "degraded",
	}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{
			strconv.Itoa(r.K),
			formatFloat(r.SilhouetteMean),
			formatFloat(r.DaviesBouldinMean),
			formatFloat(r.CalinskiHarabaszMean),
			strconv.Itoa(r.SeedsSucceeded),
			strconv.FormatBool(r.Degraded),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
