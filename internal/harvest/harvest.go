// Package harvest drives the per-journal search/fetch/normalize loop and
// accumulates the run's rows into a single table.
package harvest

import (
	"context"
	"errors"
	"fmt"

	"github.com/henrybloomingdale/trialharvest/internal/config"
	"github.com/henrybloomingdale/trialharvest/internal/console"
	"github.com/henrybloomingdale/trialharvest/internal/eutils"
	"github.com/henrybloomingdale/trialharvest/internal/normalize"
	"github.com/henrybloomingdale/trialharvest/internal/query"
	"github.com/henrybloomingdale/trialharvest/internal/store"
)

// Client is the E-utilities surface the runner needs. *eutils.Client
// satisfies it; tests substitute a stub.
type Client interface {
	Search(ctx context.Context, term string, retmax int) (*eutils.SearchResult, error)
	Fetch(ctx context.Context, pmids []string) ([]eutils.Article, error)
}

// Runner executes one harvest over the configured journal list. Journals
// are processed strictly in order; a failure on one journal is recorded
// and the run moves on to the next.
type Runner struct {
	Client   Client
	Config   *config.Config
	Reporter console.Reporter
}

// Run harvests every configured journal and returns the accumulated rows
// keyed by PMID, together with per-journal outcomes. Only context
// cancellation stops the loop early; every other failure is contained at
// journal granularity.
func (r *Runner) Run(ctx context.Context) (*store.Table, *Summary) {
	table := store.NewTable(r.Config.OutputHeaders, store.ColPMID)
	summary := &Summary{}

	for _, journal := range r.Config.Journals {
		if ctx.Err() != nil {
			break
		}
		res := r.harvestJournal(ctx, journal, table)
		summary.Journals = append(summary.Journals, res)

		switch res.Status {
		case StatusEmpty:
			r.Reporter.Info("no records found", "journal", journal)
		case StatusFailed:
			r.Reporter.Error(res.Err.Error(), "journal", journal)
		case StatusOK:
			r.Reporter.Info(fmt.Sprintf("fetched %d records", res.Fetched), "journal", journal)
		}
	}

	return table, summary
}

func (r *Runner) harvestJournal(ctx context.Context, journal string, table *store.Table) JournalResult {
	out := JournalResult{Journal: journal}
	r.Reporter.Section(journal)

	crit := r.criteria(journal)
	res, err := r.Client.Search(ctx, crit.Build(), r.Config.MaxResultsPerJournal)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("search failed: %w", err)
		return out
	}
	out.Found = res.Count

	if len(res.IDs) == 0 {
		out.Status = StatusEmpty
		return out
	}

	articles, err := r.Client.Fetch(ctx, res.IDs)
	if err != nil {
		out.Status = StatusFailed
		out.Err = fmt.Errorf("fetch failed: %w", err)
		return out
	}

	opts := normalize.Options{LinkTemplate: r.Config.LinkTemplate}
	for _, a := range articles {
		row, err := normalize.Article(a, opts)
		if err != nil {
			if errors.Is(err, normalize.ErrMissingPMID) {
				out.Dropped++
				r.Reporter.Warn("dropped record without PMID", "journal", journal, "title", a.Title)
				continue
			}
			// normalize has no other failure mode today; treat an unknown
			// one like a drop rather than losing the whole journal.
			out.Dropped++
			r.Reporter.Warn(err.Error(), "journal", journal)
			continue
		}
		table.Append(row)
		out.Fetched++
	}

	out.Status = StatusOK
	return out
}

// Criteria returns the search criteria the runner builds for a journal,
// exposed so the query subcommand and dry runs print exactly what a real
// run would send.
func (r *Runner) Criteria(journal string) query.Criteria {
	return r.criteria(journal)
}

func (r *Runner) criteria(journal string) query.Criteria {
	q := r.Config.Query
	return query.Criteria{
		TrialType:  q.TrialType,
		Domain:     q.Domain,
		DateRange:  q.DateRange,
		Species:    q.Species,
		Exclusions: q.Exclusions,
		Journal:    journal,
	}
}
