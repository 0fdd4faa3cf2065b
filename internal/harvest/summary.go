package harvest

import "strconv"

// Status classifies a journal's outcome.
type Status string

const (
	// StatusOK means the journal yielded records (some possibly dropped).
	StatusOK Status = "ok"
	// StatusEmpty means the search matched nothing. Not an error.
	StatusEmpty Status = "empty"
	// StatusFailed means search or fetch failed; the journal was skipped.
	StatusFailed Status = "failed"
)

// JournalResult is the outcome of one journal's harvest.
type JournalResult struct {
	Journal string
	Status  Status
	Found   int // total matches reported by the search
	Fetched int // rows produced
	Dropped int // records rejected for a missing PMID
	Err     error
}

// Summary aggregates per-journal outcomes for the final report.
type Summary struct {
	Journals []JournalResult
}

// Fetched returns the total rows produced across all journals.
func (s *Summary) Fetched() int {
	n := 0
	for _, j := range s.Journals {
		n += j.Fetched
	}
	return n
}

// Dropped returns the total records rejected across all journals.
func (s *Summary) Dropped() int {
	n := 0
	for _, j := range s.Journals {
		n += j.Dropped
	}
	return n
}

// Failed returns the journals whose harvest failed.
func (s *Summary) Failed() []JournalResult {
	var out []JournalResult
	for _, j := range s.Journals {
		if j.Status == StatusFailed {
			out = append(out, j)
		}
	}
	return out
}

// TableHeaders returns the column names for the summary table.
func TableHeaders() []string {
	return []string{"Journal", "Status", "Found", "Fetched", "Dropped"}
}

// TableRows renders the per-journal outcomes for the summary table.
func (s *Summary) TableRows() [][]string {
	rows := make([][]string, 0, len(s.Journals))
	for _, j := range s.Journals {
		rows = append(rows, []string{
			j.Journal,
			string(j.Status),
			strconv.Itoa(j.Found),
			strconv.Itoa(j.Fetched),
			strconv.Itoa(j.Dropped),
		})
	}
	return rows
}
