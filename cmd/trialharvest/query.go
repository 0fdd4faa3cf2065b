package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/henrybloomingdale/trialharvest/internal/query"
)

// queryCmd prints the exact search expression a run would send for each
// journal, for pasting into the PubMed web interface or debugging clauses.
var queryCmd = &cobra.Command{
	Use:   "query [journal ...]",
	Short: "Print the PubMed query built for each journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		journals := args
		if len(journals) == 0 {
			journals = cfg.Journals
		}
		if len(journals) == 0 {
			return fmt.Errorf("no journals configured and none given")
		}

		rep := newReporter()
		for _, journal := range journals {
			crit := query.Criteria{
				TrialType:  cfg.Query.TrialType,
				Domain:     cfg.Query.Domain,
				DateRange:  cfg.Query.DateRange,
				Species:    cfg.Query.Species,
				Exclusions: cfg.Query.Exclusions,
				Journal:    journal,
			}
			rep.Section(journal)
			rep.Info(crit.Build())
		}
		return nil
	},
}
