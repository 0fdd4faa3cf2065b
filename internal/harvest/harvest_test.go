package harvest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/henrybloomingdale/trialharvest/internal/config"
	"github.com/henrybloomingdale/trialharvest/internal/console"
	"github.com/henrybloomingdale/trialharvest/internal/eutils"
	"github.com/henrybloomingdale/trialharvest/internal/store"
)

// stubClient serves canned results per journal by matching the journal
// filter inside the query string.
type stubClient struct {
	articles  map[string][]eutils.Article // journal -> records
	searchErr map[string]error
	fetchErr  map[string]error

	searchCalls []string
	fetchCalls  [][]string
	lastRetmax  int
}

func (s *stubClient) journalFor(term string) string {
	for j := range s.articles {
		if strings.Contains(term, `"`+j+`"[Journal]`) {
			return j
		}
	}
	for j := range s.searchErr {
		if strings.Contains(term, `"`+j+`"[Journal]`) {
			return j
		}
	}
	for j := range s.fetchErr {
		if strings.Contains(term, `"`+j+`"[Journal]`) {
			return j
		}
	}
	return ""
}

func (s *stubClient) Search(ctx context.Context, term string, retmax int) (*eutils.SearchResult, error) {
	s.searchCalls = append(s.searchCalls, term)
	s.lastRetmax = retmax

	j := s.journalFor(term)
	if err := s.searchErr[j]; err != nil {
		return nil, err
	}

	arts := s.articles[j]
	ids := make([]string, 0, len(arts))
	for i, a := range arts {
		if retmax >= 0 && len(ids) >= retmax {
			break
		}
		id := a.PMID
		if id == "" {
			// Search still returns an ID; the fetched payload lacks it.
			id = fmt.Sprintf("missing-%d", i)
		}
		ids = append(ids, id)
	}
	return &eutils.SearchResult{Count: len(arts), IDs: ids}, nil
}

func (s *stubClient) Fetch(ctx context.Context, pmids []string) ([]eutils.Article, error) {
	s.fetchCalls = append(s.fetchCalls, pmids)

	// Fetch errors are keyed by the journal of the preceding search.
	j := s.journalFor(s.searchCalls[len(s.searchCalls)-1])
	if err := s.fetchErr[j]; err != nil {
		return nil, err
	}

	arts := s.articles[j]
	if len(pmids) < len(arts) {
		arts = arts[:len(pmids)]
	}
	return arts, nil
}

// sink records reporter events for assertions.
type sink struct {
	infos, warns, errors []string
}

func (s *sink) Info(msg string, fields ...string)  { s.infos = append(s.infos, msg) }
func (s *sink) Warn(msg string, fields ...string)  { s.warns = append(s.warns, msg) }
func (s *sink) Error(msg string, fields ...string) { s.errors = append(s.errors, msg) }
func (s *sink) Section(title string)               {}
func (s *sink) Table(h []string, rows [][]string)  {}

var _ console.Reporter = (*sink)(nil)

func testConfig(journals ...string) *config.Config {
	cfg := config.Default()
	cfg.ContactEmail = "test@example.org"
	cfg.Journals = journals
	cfg.MaxResultsPerJournal = 5
	return cfg
}

func newRunner(cfg *config.Config, client Client, rep console.Reporter) *Runner {
	return &Runner{Client: client, Config: cfg, Reporter: rep}
}

func TestRun_EndToEnd(t *testing.T) {
	// Three records come back: two complete, one without a PMID.
	client := &stubClient{
		articles: map[string][]eutils.Article{
			"Critical Care Medicine": {
				{PMID: "101", Title: "Trial One", Journal: "Critical Care Medicine"},
				{PMID: "102", Title: "Trial Two", Journal: "Critical Care Medicine"},
				{Title: "Orphan Record"},
			},
		},
	}
	rep := &sink{}
	runner := newRunner(testConfig("Critical Care Medicine"), client, rep)

	table, summary := runner.Run(context.Background())

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if !table.Has("101") || !table.Has("102") {
		t.Errorf("expected rows keyed 101 and 102")
	}
	if got := summary.Dropped(); got != 1 {
		t.Errorf("expected 1 dropped record, got %d", got)
	}
	if got := summary.Fetched(); got != 2 {
		t.Errorf("expected 2 fetched, got %d", got)
	}
	if len(rep.warns) != 1 {
		t.Errorf("expected 1 drop warning, got %v", rep.warns)
	}
	if client.lastRetmax != 5 {
		t.Errorf("expected retmax 5 passed through, got %d", client.lastRetmax)
	}
	if len(client.fetchCalls) != 1 || len(client.fetchCalls[0]) != 3 {
		t.Errorf("expected one batched fetch of 3 IDs, got %v", client.fetchCalls)
	}
}

func TestRun_EmptyJournal(t *testing.T) {
	client := &stubClient{
		articles: map[string][]eutils.Article{"Quiet Journal": {}},
	}
	rep := &sink{}
	runner := newRunner(testConfig("Quiet Journal"), client, rep)

	table, summary := runner.Run(context.Background())

	if table.Len() != 0 {
		t.Fatalf("expected no rows, got %d", table.Len())
	}
	if len(summary.Journals) != 1 || summary.Journals[0].Status != StatusEmpty {
		t.Fatalf("expected empty outcome, got %+v", summary.Journals)
	}
	if len(client.fetchCalls) != 0 {
		t.Errorf("expected no fetch for an empty search, got %v", client.fetchCalls)
	}
	found := false
	for _, msg := range rep.infos {
		if strings.Contains(msg, "no records found") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a no-records message, got %v", rep.infos)
	}
}

func TestRun_FailedJournalDoesNotAbortRun(t *testing.T) {
	client := &stubClient{
		articles: map[string][]eutils.Article{
			"Healthy Journal": {{PMID: "201", Title: "Survivor"}},
		},
		searchErr: map[string]error{
			"Broken Journal": errors.New("connection refused"),
		},
	}
	rep := &sink{}
	runner := newRunner(testConfig("Broken Journal", "Healthy Journal"), client, rep)

	table, summary := runner.Run(context.Background())

	if table.Len() != 1 {
		t.Fatalf("expected the healthy journal's row, got %d rows", table.Len())
	}
	failed := summary.Failed()
	if len(failed) != 1 || failed[0].Journal != "Broken Journal" {
		t.Fatalf("expected Broken Journal failed, got %+v", failed)
	}
	if failed[0].Err == nil || !strings.Contains(failed[0].Err.Error(), "search failed") {
		t.Errorf("expected wrapped search error, got %v", failed[0].Err)
	}
	if len(rep.errors) != 1 {
		t.Errorf("expected 1 error event, got %v", rep.errors)
	}
}

func TestRun_FetchFailureSkipsJournal(t *testing.T) {
	client := &stubClient{
		articles: map[string][]eutils.Article{
			"Flaky Journal": {{PMID: "301"}},
		},
		fetchErr: map[string]error{
			"Flaky Journal": errors.New("bad XML"),
		},
	}
	rep := &sink{}
	runner := newRunner(testConfig("Flaky Journal"), client, rep)

	table, summary := runner.Run(context.Background())

	if table.Len() != 0 {
		t.Fatalf("expected no rows after fetch failure, got %d", table.Len())
	}
	if len(summary.Failed()) != 1 {
		t.Fatalf("expected 1 failed journal, got %+v", summary.Journals)
	}
}

func TestRun_ZeroMaxResults(t *testing.T) {
	client := &stubClient{
		articles: map[string][]eutils.Article{
			"Busy Journal": {{PMID: "401"}, {PMID: "402"}},
		},
	}
	cfg := testConfig("Busy Journal")
	cfg.MaxResultsPerJournal = 0
	rep := &sink{}
	runner := newRunner(cfg, client, rep)

	table, summary := runner.Run(context.Background())

	if table.Len() != 0 {
		t.Fatalf("expected no rows with max results 0, got %d", table.Len())
	}
	if summary.Journals[0].Status != StatusEmpty {
		t.Fatalf("expected empty outcome, got %+v", summary.Journals[0])
	}
	if client.lastRetmax != 0 {
		t.Errorf("expected retmax 0 passed verbatim, got %d", client.lastRetmax)
	}
}

func TestRun_DeduplicatesAcrossJournals(t *testing.T) {
	// The same record can match two journal queries (e.g. a retitled
	// journal); the second occurrence replaces the first.
	client := &stubClient{
		articles: map[string][]eutils.Article{
			"Journal A": {{PMID: "501", Title: "Seen in A"}},
			"Journal B": {{PMID: "501", Title: "Seen in B"}},
		},
	}
	runner := newRunner(testConfig("Journal A", "Journal B"), client, &sink{})

	table, _ := runner.Run(context.Background())

	if table.Len() != 1 {
		t.Fatalf("expected 1 deduplicated row, got %d", table.Len())
	}
	row, _ := table.Get("501")
	if row[store.ColTitle] != "Seen in B" {
		t.Errorf("expected the later journal's row to win, got %q", row[store.ColTitle])
	}
}

func TestRun_CanceledContextStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &stubClient{
		articles: map[string][]eutils.Article{"Journal A": {{PMID: "601"}}},
	}
	runner := newRunner(testConfig("Journal A", "Journal B"), client, &sink{})

	_, summary := runner.Run(ctx)

	if len(summary.Journals) != 0 {
		t.Fatalf("expected no journals processed after cancellation, got %d", len(summary.Journals))
	}
	if len(client.searchCalls) != 0 {
		t.Errorf("expected no network calls, got %d", len(client.searchCalls))
	}
}

func TestCriteria_UsesConfiguredClauses(t *testing.T) {
	cfg := testConfig("Chest")
	cfg.Query.TrialType = `"randomized"[tiab]`
	cfg.Query.Exclusions = `"Review"[Publication Type]`
	runner := newRunner(cfg, &stubClient{}, &sink{})

	q := runner.Criteria("Chest").Build()
	if !strings.Contains(q, `"Chest"[Journal]`) {
		t.Errorf("missing journal filter in %q", q)
	}
	if !strings.Contains(q, `NOT "Review"[Publication Type]`) {
		t.Errorf("missing exclusion in %q", q)
	}
}
