// Package query builds PubMed search expressions from configured clauses.
package query

import (
	"fmt"
	"strings"
)

// Criteria holds the sub-clauses combined into one journal-scoped PubMed
// query. Clause strings are PubMed expressions composed verbatim; the
// builder never rewrites their contents, it only joins them.
type Criteria struct {
	// TrialType restricts to the study design of interest.
	TrialType string
	// Domain restricts to the clinical domain.
	Domain string
	// DateRange restricts publication dates, e.g. a [PDAT] range.
	DateRange string
	// Species restricts to the studied population.
	Species string
	// Exclusions is combined with NOT. It must not carry its own leading
	// NOT; the builder adds the operator exactly once.
	Exclusions string
	// Journal is the journal title to filter on.
	Journal string
}

// Build composes the clauses into one query: the non-empty positive
// clauses joined with AND inside parentheses, then NOT and the exclusion
// clause when one is configured. Empty clauses are skipped without leaving
// dangling operators. With no positive clauses at all there is nothing to
// search, so Build returns "".
func (c Criteria) Build() string {
	positive := make([]string, 0, 5)
	for _, clause := range []string{
		c.TrialType,
		c.Domain,
		journalFilter(c.Journal),
		c.DateRange,
		c.Species,
	} {
		if strings.TrimSpace(clause) != "" {
			positive = append(positive, clause)
		}
	}
	if len(positive) == 0 {
		return ""
	}

	q := "(" + strings.Join(positive, " AND ") + ")"
	if strings.TrimSpace(c.Exclusions) != "" {
		q += " NOT " + c.Exclusions
	}
	return q
}

// journalFilter returns the PubMed journal restriction for name, or ""
// when no journal is set.
func journalFilter(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}
	return fmt.Sprintf(`"%s"[Journal]`, name)
}
