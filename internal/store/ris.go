package store

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// WriteRIS exports the table's rows as an RIS citation file for reference
// managers. Empty cells are skipped rather than written as blank tags.
func WriteRIS(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating RIS file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, row := range t.Rows() {
		writeRISTag(w, "TY", "JOUR")
		writeRISTag(w, "TI", row[ColTitle])

		for _, au := range splitAuthors(row[ColAuthors]) {
			writeRISTag(w, "AU", au)
		}

		writeRISTag(w, "PY", row[ColYear])
		writeRISTag(w, "JO", row[ColJournalTitle])
		writeRISTag(w, "VL", row[ColVolume])
		writeRISTag(w, "IS", row[ColIssue])

		startPage, endPage := splitPages(row[ColPages])
		writeRISTag(w, "SP", startPage)
		writeRISTag(w, "EP", endPage)

		writeRISTag(w, "DO", row[ColDOI])
		if pmid := strings.TrimSpace(row[ColPMID]); pmid != "" {
			writeRISTag(w, "ID", "PMID:"+pmid)
		}
		writeRISTag(w, "UR", row[ColLink])
		writeRISTag(w, "ER", "")

		if i < t.Len()-1 {
			if _, err := w.WriteString("\n"); err != nil {
				return fmt.Errorf("writing RIS separator: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing RIS output: %w", err)
	}

	return nil
}

func writeRISTag(w *bufio.Writer, tag, value string) {
	if tag == "" {
		return
	}
	if tag != "ER" && strings.TrimSpace(value) == "" {
		return
	}
	if tag == "ER" {
		_, _ = w.WriteString("ER  -\n")
		return
	}
	_, _ = w.WriteString(tag + "  - " + sanitizeRISValue(value) + "\n")
}

func sanitizeRISValue(v string) string {
	v = strings.ReplaceAll(v, "\r\n", " ")
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	return strings.TrimSpace(v)
}

// splitAuthors undoes the Authors column join. Names already read
// "Last, Fore", which is what RIS expects.
func splitAuthors(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, strings.TrimSpace(AuthorSeparator))
	var out []string
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func splitPages(pages string) (string, string) {
	pages = strings.TrimSpace(pages)
	if pages == "" {
		return "", ""
	}

	rangeSeparators := []string{"-", "–", "—"}
	for _, sep := range rangeSeparators {
		if strings.Contains(pages, sep) {
			parts := strings.SplitN(pages, sep, 2)
			start := strings.TrimSpace(parts[0])
			end := strings.TrimSpace(parts[1])
			return start, end
		}
	}

	return pages, ""
}
