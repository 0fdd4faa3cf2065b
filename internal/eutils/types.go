// Package eutils provides a client for the NCBI E-utilities API.
package eutils

// SearchResult represents the result of an ESearch query.
type SearchResult struct {
	Count            int      `json:"count"`
	IDs              []string `json:"ids"`
	QueryTranslation string   `json:"query_translation"`
}

// Article represents a PubMed article with parsed fields. PubMed records
// are loosely structured: any field here may be empty, and downstream
// normalization decides what is usable.
type Article struct {
	PMID             string            `json:"pmid"`
	Title            string            `json:"title"`
	Abstract         string            `json:"abstract"`
	AbstractSections []AbstractSection `json:"abstract_sections,omitempty"`
	Authors          []Author          `json:"authors"`
	Journal          string            `json:"journal"`
	JournalAbbrev    string            `json:"journal_abbrev"`
	Volume           string            `json:"volume,omitempty"`
	Issue            string            `json:"issue,omitempty"`
	Pages            string            `json:"pages,omitempty"`
	Year             string            `json:"year"`
	Month            string            `json:"month,omitempty"`
	MedlineDate      string            `json:"medline_date,omitempty"`
	DOI              string            `json:"doi,omitempty"`
	PMCID            string            `json:"pmcid,omitempty"`
	PublicationTypes []string          `json:"publication_types"`
	Language         string            `json:"language"`
}

// AbstractSection represents a labeled section of a structured abstract.
type AbstractSection struct {
	Label string `json:"label,omitempty"`
	Text  string `json:"text"`
}

// Author represents an article author. Group authorships carry only a
// CollectiveName; individual authors carry name parts and optionally a
// first affiliation.
type Author struct {
	LastName       string `json:"last_name"`
	ForeName       string `json:"fore_name"`
	Initials       string `json:"initials"`
	CollectiveName string `json:"collective_name,omitempty"`
	Affiliation    string `json:"affiliation,omitempty"`
}
