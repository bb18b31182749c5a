// Package cli provides the pipeline commands: build, eval, train, report.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rfm-segment/pkg/logging"
	"rfm-segment/pkg/models"
)

var (
	cfgFile string
	verbose bool

	cfg = models.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "rfm-segment",
	Short: "Build RFM profiles and evaluate customer segmentations",
	Long: `rfm-segment turns a static transaction log into per-customer
RFM (Recency/Frequency/Monetary) profiles with rule-based segment labels,
and evaluates candidate cluster counts for behavioral clustering.

Examples:
  rfm-segment build --file transactions.csv --snapshot 2025-09-01 --plots
  rfm-segment eval --kmin 2 --kmax 8
  rfm-segment train --clusters 4 --plots
  rfm-segment report`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(reportCmd)
}

// applyFlagOverrides layers explicitly-set flags over the config file
// values. Flags a command does not define are ignored.
func applyFlagOverrides(cmd *cobra.Command) {
	f := cmd.Flags()
	setString := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	setString("file", &cfg.InputPath)
	setString("sep", &cfg.Separator)
	setString("encoding", &cfg.Encoding)
	setString("dsn", &cfg.DSN)
	setString("table", &cfg.Table)
	setString("snapshot", &cfg.Snapshot)
	setString("out", &cfg.OutputDir)
	if f.Changed("plots") {
		cfg.Plots, _ = f.GetBool("plots")
	}
	if f.Changed("kmin") {
		cfg.KMin, _ = f.GetInt("kmin")
	}
	if f.Changed("kmax") {
		cfg.KMax, _ = f.GetInt("kmax")
	}
	if f.Changed("seeds") {
		cfg.Seeds, _ = f.GetInt64Slice("seeds")
	}
	if f.Changed("clusters") {
		cfg.Clusters, _ = f.GetInt("clusters")
	}
}

func initConfig() {
	if cfgFile != "" {
		raw, err := os.ReadFile(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := json.Unmarshal(raw, &cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
			os.Exit(1)
		}
	}

	level := "info"
	if verbose || cfg.Verbose {
		level = "debug"
	}
	if err := logging.Init(level, "console"); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}
