// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paperscope/internal/harvest"
	"github.com/pdiddy/paperscope/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paperscope/0.1"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Fetch new papers from arXiv and export the dataset artifacts",
	Long: `Harvest runs the category queries from the queries file against the
arXiv API, merges the results into the local SQLite archive, and exports
papers.json and category_counts.json for the browse server.

Each run resumes from the newest publication date already in the archive.
Use --start-date to override, either as an absolute date (2024-06-01) or
relative to today (-7d).`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("queries", "queries.yaml", "YAML file mapping categories to arXiv query term sets")
	harvestCmd.Flags().String("archive", "data/archive.db", "SQLite archive path")
	harvestCmd.Flags().String("output-dir", "output", "directory for the exported JSON artifacts")
	harvestCmd.Flags().String("start-date", "", "harvest start date: YYYY-MM-DD or -Nd (default: resume from archive)")
	harvestCmd.Flags().Int("max-results", 100, "maximum results per query")
	harvestCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	viper.BindPFlag("harvest.queries_path", harvestCmd.Flags().Lookup("queries"))
	viper.BindPFlag("harvest.archive_path", harvestCmd.Flags().Lookup("archive"))
	viper.BindPFlag("harvest.output_dir", harvestCmd.Flags().Lookup("output-dir"))
	viper.BindPFlag("harvest.max_results", harvestCmd.Flags().Lookup("max-results"))

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	timeout, _ := cmd.Flags().GetDuration("timeout")
	startDate, _ := cmd.Flags().GetString("start-date")

	cfg := types.HarvestConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		QueriesPath: viper.GetString("harvest.queries_path"),
		ArchivePath: viper.GetString("harvest.archive_path"),
		OutputDir:   viper.GetString("harvest.output_dir"),
		MaxResults:  viper.GetInt("harvest.max_results"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = harvest.Run(ctx, cfg, startDate, logger, os.Stdout)
	return err
}
