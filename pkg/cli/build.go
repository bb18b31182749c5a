package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"rfm-segment/pkg/export"
	"rfm-segment/pkg/ingest"
	"rfm-segment/pkg/logging"
	"rfm-segment/pkg/models"
	"rfm-segment/pkg/report"
	"rfm-segment/pkg/rfm"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the per-customer RFM table from transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyFlagOverrides(cmd)
		log := logging.Sugar

		var (
			txs []models.Transaction
			err error
		)
		if cfg.DSN != "" {
			db, dsnUsed, err := ingest.Open(cfg.DSN)
			if err != nil {
				return err
			}
			defer db.Close()
			log.Debugf("connected dsn=%s", dsnUsed)
			txs, err = ingest.LoadTransactions(cmd.Context(), db, cfg.Table, log)
			if err != nil {
				return err
			}
		} else {
			txs, err = ingest.ReadCSV(cfg.InputPath, cfg.Separator, cfg.Encoding, log)
			if err != nil {
				return err
			}
		}

		snapshot, err := ingest.ResolveSnapshot(txs, cfg.Snapshot)
		if err != nil {
			return err
		}
		log.Infof("snapshot date = %s (default = max(order_date)+1)", snapshot.Format("2006-01-02"))

		customers, err := rfm.Build(txs, snapshot)
		if err != nil {
			return err
		}

		out := filepath.Join(cfg.OutputDir, "customers_rfm.csv")
		if err := export.WriteCustomers(out, customers); err != nil {
			return err
		}
		log.Infof("wrote %s with %d customers", out, len(customers))

		if cfg.Plots {
			scatter := filepath.Join(cfg.OutputDir, "rfm_scatter.png")
			hist := filepath.Join(cfg.OutputDir, "rfm_hist.png")
			if err := report.SegmentScatter(customers, scatter); err != nil {
				log.Warnf("plots: %v", err)
			} else if err := report.RecencyHistogram(customers, hist); err != nil {
				log.Warnf("plots: %v", err)
			} else {
				log.Infof("saved %s, %s", scatter, hist)
			}
		}
		return nil
	},
}

func init() {
	f := buildCmd.Flags()
	f.String("file", cfg.InputPath, "input transactions CSV")
	f.String("sep", "", "CSV separator (auto if not given)")
	f.String("encoding", "", "file encoding (auto if not given)")
	f.String("dsn", "", "MySQL/MariaDB DSN; used instead of the CSV when set")
	f.String("table", cfg.Table, "transaction table name (with --dsn)")
	f.String("snapshot", "", "YYYY-MM-DD snapshot date (default: max(order_date)+1)")
	f.String("out", cfg.OutputDir, "output directory")
	f.Bool("plots", false, "export quick plots (rfm_scatter.png, rfm_hist.png)")
}
