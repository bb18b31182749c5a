package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"rfm-segment/pkg/cluster"
	"rfm-segment/pkg/export"
	"rfm-segment/pkg/logging"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Sweep candidate cluster counts and export validity metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlagOverrides(cmd)
		log := logging.Sugar

		customers, err := export.ReadCustomers(filepath.Join(cfg.OutputDir, "customers_rfm.csv"))
		if err != nil {
			return err
		}

		sel := cluster.NewSelector(cfg.KMin, cfg.KMax, cfg.Seeds, log, true)
		results, sweepErr := sel.Evaluate(cmd.Context(), cluster.FeatureMatrix(customers))

		if len(results) > 0 {
			out := filepath.Join(cfg.OutputDir, "cluster_metrics.csv")
			if err := export.WriteClusterMetrics(out, results); err != nil {
				return err
			}
			log.Infof("saved %s (%d candidate counts)", out, len(results))
			if k := cluster.SuggestK(results); k > 0 {
				log.Infof("rank-sum suggestion: k=%d (advisory; inspect the metrics table)", k)
			}
		}
		return sweepErr
	},
}

func init() {
	f := evalCmd.Flags()
	f.Int("kmin", cfg.KMin, "smallest cluster count to evaluate")
	f.Int("kmax", cfg.KMax, "largest cluster count to evaluate (inclusive)")
	f.Int64Slice("seeds", cfg.Seeds, "random seeds, one clustering run each")
	f.String("out", cfg.OutputDir, "output directory")
}
