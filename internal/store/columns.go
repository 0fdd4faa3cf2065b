// Package store accumulates normalized rows, merges them with prior run
// artifacts, and persists spreadsheet files.
package store

// Canonical column names for harvested rows. PMID is the natural key:
// every row written by this tool carries one, and merging deduplicates on
// it. The remaining columns mirror the spreadsheet schema downstream
// reviewers work with.
const (
	ColPMID           = "PMID"
	ColJournalTitle   = "Journal_TTL"
	ColJournalAbbrev  = "Journal_ABBRV"
	ColTitle          = "Title"
	ColYear           = "Year"
	ColPages          = "Pages"
	ColIssue          = "Issue"
	ColVolume         = "Volume"
	ColFirstAuthor    = "First Author"
	ColFirstAuthorAff = "First Author Affiliation"
	ColLastAuthor     = "Last Author"
	ColLastAuthorAff  = "Last Author Affiliation"
	ColDOI            = "DOI"
	ColLink           = "Link"
	ColAuthors        = "Authors"
)

// AuthorSeparator joins the names in the Authors column.
const AuthorSeparator = "; "

// DefaultHeaders returns the canonical column order for output files.
func DefaultHeaders() []string {
	return []string{
		ColPMID,
		ColJournalTitle,
		ColJournalAbbrev,
		ColTitle,
		ColYear,
		ColPages,
		ColIssue,
		ColVolume,
		ColFirstAuthor,
		ColFirstAuthorAff,
		ColLastAuthor,
		ColLastAuthorAff,
		ColDOI,
		ColLink,
		ColAuthors,
	}
}
