// Package report renders the presentation artifacts: quick-look PNG plots
// and the PDF segmentation summary.
package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"rfm-segment/pkg/models"
)

// SegmentScatter plots Frequency vs Monetary with one series per segment.
func SegmentScatter(customers []models.Customer, path string) error {
	groups := map[string]plotter.XYs{}
	for _, c := range customers {
		groups[c.Segment] = append(groups[c.Segment], plotter.XY{X: float64(c.Frequency), Y: c.Monetary})
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	p := plot.New()
	p.Title.Text = "RFM Scatter — Frequency vs Monetary"
	p.X.Label.Text = "Frequency"
	p.Y.Label.Text = "Monetary (EUR)"

	args := make([]interface{}, 0, 2*len(names))
	for _, name := range names {
		args = append(args, name, groups[name])
	}
	if err := plotutil.AddScatters(p, args...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}

// RecencyHistogram plots the distribution of RecencyDays over 10 bins.
func RecencyHistogram(customers []models.Customer, path string) error {
	vals := make(plotter.Values, len(customers))
	for i, c := range customers {
		vals[i] = float64(c.RecencyDays)
	}
	hist, err := plotter.NewHist(vals, 10)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = "Distribution of Recency"
	p.X.Label.Text = "Recency (days)"
	p.Y.Label.Text = "Customers"
	p.Add(hist)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// ElbowPlot plots inertia against cluster count.
func ElbowPlot(ks []int, inertias []float64, path string) error {
	xys := make(plotter.XYs, len(ks))
	for i, k := range ks {
		xys[i] = plotter.XY{X: float64(k), Y: inertias[i]}
	}

	p := plot.New()
	p.Title.Text = "Elbow Method"
	p.X.Label.Text = "k"
	p.Y.Label.Text = "Inertia"
	if err := plotutil.AddLinePoints(p, "inertia", xys); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// ClusterScatter plots Frequency vs Monetary with one series per trained
// cluster.
func ClusterScatter(customers []models.Customer, path string) error {
	groups := map[int]plotter.XYs{}
	for _, c := range customers {
		groups[c.Cluster] = append(groups[c.Cluster], plotter.XY{X: float64(c.Frequency), Y: c.Monetary})
	}
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	p := plot.New()
	p.Title.Text = "Clusters — Frequency vs Monetary"
	p.X.Label.Text = "Frequency"
	p.Y.Label.Text = "Monetary (EUR)"

	args := make([]interface{}, 0, 2*len(ids))
	for _, id := range ids {
		args = append(args, fmt.Sprintf("Cluster %d", id), groups[id])
	}
	if err := plotutil.AddScatters(p, args...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 5*vg.Inch, path)
}
