package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/henrybloomingdale/trialharvest/internal/harvest"
	"github.com/henrybloomingdale/trialharvest/internal/store"
)

var (
	flagRIS    string
	flagDryRun bool
)

func init() {
	runCmd.Flags().StringVar(&flagRIS, "ris", "", "Also export the written table as an RIS citation file")
	runCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the per-journal queries without contacting NCBI")
}

// runCmd implements the batch harvest: per journal search, fetch,
// normalize; one merged spreadsheet at the end.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Harvest all configured journals and write the spreadsheet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		rep := newReporter()
		runner := &harvest.Runner{
			Client:   newClient(cfg),
			Config:   cfg,
			Reporter: rep,
		}

		if flagDryRun {
			for _, journal := range cfg.Journals {
				rep.Section(journal)
				rep.Info(runner.Criteria(journal).Build())
			}
			return nil
		}

		table, summary := runner.Run(cmd.Context())

		// Validate() already vetted both values.
		format, _ := store.ParseFormat(cfg.OutputFormat)
		strategy, _ := store.ParseMergeStrategy(cfg.MergeStrategy)

		writer := &store.Writer{
			Dir:      cfg.ResultsDir,
			Prefix:   cfg.FilePrefix,
			Format:   format,
			Strategy: strategy,
		}
		res, err := writer.Persist(table)
		if err != nil {
			return fmt.Errorf("persisting results: %w", err)
		}

		rep.Section("Summary")
		rep.Table(harvest.TableHeaders(), summary.TableRows())
		if dropped := summary.Dropped(); dropped > 0 {
			rep.Warn(fmt.Sprintf("%d records dropped for missing PMID", dropped))
		}
		if res.MergedFrom != "" {
			rep.Info("merged with prior results", "file", res.MergedFrom)
		}
		rep.Info(fmt.Sprintf("wrote %d rows (%d new, %d updated, %d carried over)",
			res.Total, res.Added, res.Updated, res.Carried), "file", res.Path)

		if flagRIS != "" {
			merged, err := store.Load(res.Path, store.ColPMID)
			if err != nil {
				return fmt.Errorf("reloading artifact for RIS export: %w", err)
			}
			if err := store.WriteRIS(flagRIS, merged); err != nil {
				return fmt.Errorf("exporting RIS: %w", err)
			}
			rep.Info("exported RIS citations", "file", flagRIS)
		}

		return nil
	},
}
