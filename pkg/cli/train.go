package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"rfm-segment/pkg/cluster"
	"rfm-segment/pkg/export"
	"rfm-segment/pkg/logging"
	"rfm-segment/pkg/report"
)

// trainSeed fixes the final fit so repeated trainings agree.
const trainSeed = 42

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the final clustering and label every customer",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlagOverrides(cmd)
		log := logging.Sugar

		customers, err := export.ReadCustomers(filepath.Join(cfg.OutputDir, "customers_rfm.csv"))
		if err != nil {
			return err
		}

		X := cluster.Standardize(cluster.FeatureMatrix(customers))
		fit, err := cluster.Fit(X, cfg.Clusters, trainSeed)
		if err != nil {
			return err
		}
		for i := range customers {
			customers[i].Cluster = fit.Labels[i]
		}

		out := filepath.Join(cfg.OutputDir, "customers_segments.csv")
		if err := export.WriteSegments(out, customers); err != nil {
			return err
		}
		log.Infof("wrote %s with %d clusters", out, cfg.Clusters)

		if cfg.Plots {
			if err := trainPlots(X); err != nil {
				log.Warnf("plots: %v", err)
			} else if err := report.ClusterScatter(customers, filepath.Join(cfg.OutputDir, "cluster_scatter.png")); err != nil {
				log.Warnf("plots: %v", err)
			} else {
				log.Infof("saved inertia_plot.png, cluster_scatter.png")
			}
		}
		return nil
	},
}

// trainPlots renders the elbow curve over k=1..7.
func trainPlots(X [][]float64) error {
	var ks []int
	var inertias []float64
	for k := 1; k <= 7 && k <= len(X); k++ {
		fit, err := cluster.Fit(X, k, trainSeed)
		if err != nil {
			return err
		}
		ks = append(ks, k)
		inertias = append(inertias, fit.Inertia)
	}
	return report.ElbowPlot(ks, inertias, filepath.Join(cfg.OutputDir, "inertia_plot.png"))
}

func init() {
	f := trainCmd.Flags()
	f.Int("clusters", cfg.Clusters, "number of clusters for the final fit")
	f.String("out", cfg.OutputDir, "output directory")
	f.Bool("plots", false, "save inertia and scatter plots")
}
