// Package normalize flattens loosely structured PubMed records into the
// fixed spreadsheet row schema. Every extraction degrades to an empty cell
// when the source field is absent; only a record without a PMID is
// rejected, because such a row could never be deduplicated or linked.
package normalize

import (
	"errors"
	"regexp"
	"strings"

	"github.com/henrybloomingdale/trialharvest/internal/eutils"
	"github.com/henrybloomingdale/trialharvest/internal/store"
)

// ErrMissingPMID marks a record that carries no PMID. Callers drop the
// record and report it rather than aborting the run.
var ErrMissingPMID = errors.New("record has no PMID")

// DefaultLinkTemplate builds the public PubMed URL for a record.
const DefaultLinkTemplate = "https://pubmed.ncbi.nlm.nih.gov/{pmid}/"

// Options controls normalization.
type Options struct {
	// LinkTemplate is the URL template for the Link column; "{pmid}" is
	// replaced with the record's PMID. Empty means DefaultLinkTemplate.
	LinkTemplate string
}

var (
	yearRE = regexp.MustCompile(`\d{4}`)
	doiRE  = regexp.MustCompile(`10\.\S+`)
)

// Article maps one fetched record onto the flat row schema.
func Article(a eutils.Article, opts Options) (store.Row, error) {
	pmid := strings.TrimSpace(a.PMID)
	if pmid == "" {
		return nil, ErrMissingPMID
	}

	row := store.Row{
		store.ColPMID:          pmid,
		store.ColJournalTitle:  strings.TrimSpace(a.Journal),
		store.ColJournalAbbrev: strings.TrimSpace(a.JournalAbbrev),
		store.ColTitle:         strings.TrimSpace(a.Title),
		store.ColYear:          extractYear(a),
		store.ColPages:         strings.TrimSpace(a.Pages),
		store.ColIssue:         strings.TrimSpace(a.Issue),
		store.ColVolume:        strings.TrimSpace(a.Volume),
		store.ColDOI:           extractDOI(a.DOI),
		store.ColLink:          buildLink(opts.LinkTemplate, pmid),
		store.ColAuthors:       joinAuthors(a.Authors),
	}

	if len(a.Authors) > 0 {
		first := a.Authors[0]
		last := a.Authors[len(a.Authors)-1]
		row[store.ColFirstAuthor] = authorName(first)
		row[store.ColFirstAuthorAff] = strings.TrimSpace(first.Affiliation)
		row[store.ColLastAuthor] = authorName(last)
		row[store.ColLastAuthorAff] = strings.TrimSpace(last.Affiliation)
	}

	return row, nil
}

// authorName renders "Last, Fore" for citation-style listings, falling
// back to initials when no fore name is recorded. Group authorships keep
// their collective name verbatim.
func authorName(a eutils.Author) string {
	if cn := strings.TrimSpace(a.CollectiveName); cn != "" {
		return cn
	}
	last := strings.TrimSpace(a.LastName)
	fore := strings.TrimSpace(a.ForeName)
	if fore == "" {
		fore = strings.TrimSpace(a.Initials)
	}
	switch {
	case last == "":
		return fore
	case fore == "":
		return last
	default:
		return last + ", " + fore
	}
}

func joinAuthors(authors []eutils.Author) string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		if n := authorName(a); n != "" {
			names = append(names, n)
		}
	}
	return strings.Join(names, store.AuthorSeparator)
}

// extractYear pulls the first four-digit run from the structured year,
// falling back to the free-form MedlineDate ("2022 Nov-Dec").
func extractYear(a eutils.Article) string {
	if y := yearRE.FindString(a.Year); y != "" {
		return y
	}
	return yearRE.FindString(a.MedlineDate)
}

// extractDOI keeps only values that look like a DOI. Source fields mix
// bare DOIs with annotated forms such as "10.1056/x [doi]".
func extractDOI(raw string) string {
	return doiRE.FindString(strings.TrimSpace(raw))
}

func buildLink(template, pmid string) string {
	if template == "" {
		template = DefaultLinkTemplate
	}
	return strings.ReplaceAll(template, "{pmid}", pmid)
}
