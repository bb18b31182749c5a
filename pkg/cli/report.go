package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"rfm-segment/pkg/export"
	"rfm-segment/pkg/logging"
	"rfm-segment/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the PDF segmentation report",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlagOverrides(cmd)
		log := logging.Sugar

		customers, err := export.ReadCustomers(filepath.Join(cfg.OutputDir, "customers_segments.csv"))
		if err != nil {
			return err
		}

		scatter := filepath.Join(cfg.OutputDir, "cluster_scatter.png")
		if _, err := os.Stat(scatter); err != nil {
			scatter = ""
		}

		out := filepath.Join(cfg.OutputDir, "segmentation_report.pdf")
		if err := report.WritePDF(out, customers, scatter); err != nil {
			return err
		}
		log.Infof("wrote %s", out)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", cfg.OutputDir, "output directory")
}
