package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteRIS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.ris")

	tab := NewTable(DefaultHeaders(), ColPMID)
	tab.Append(Row{
		ColPMID:         "38000001",
		ColTitle:        "Testing RIS Export",
		ColAuthors:      "Smith, Jane; Trial Harvest Consortium",
		ColYear:         "2026",
		ColJournalTitle: "Journal of CLI Testing",
		ColVolume:       "12",
		ColIssue:        "3",
		ColPages:        "101-110",
		ColDOI:          "10.1000/example",
		ColLink:         "https://pubmed.ncbi.nlm.nih.gov/38000001/",
	})

	if err := WriteRIS(path, tab); err != nil {
		t.Fatalf("unexpected error writing RIS: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read RIS output: %v", err)
	}
	out := string(body)

	expected := []string{
		"TY  - JOUR",
		"TI  - Testing RIS Export",
		"AU  - Smith, Jane",
		"AU  - Trial Harvest Consortium",
		"PY  - 2026",
		"JO  - Journal of CLI Testing",
		"VL  - 12",
		"IS  - 3",
		"SP  - 101",
		"EP  - 110",
		"DO  - 10.1000/example",
		"ID  - PMID:38000001",
		"UR  - https://pubmed.ncbi.nlm.nih.gov/38000001/",
		"ER  -",
	}
	for _, want := range expected {
		if !strings.Contains(out, want) {
			t.Fatalf("expected RIS output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteRIS_SkipsEmptyTags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sparse.ris")

	tab := NewTable(DefaultHeaders(), ColPMID)
	tab.Append(Row{ColPMID: "1", ColTitle: "Sparse Record"})

	if err := WriteRIS(path, tab); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	out := string(body)
	for _, tag := range []string{"DO  -", "VL  -", "AU  -"} {
		if strings.Contains(out, tag) {
			t.Errorf("expected tag %q omitted for empty value, got:\n%s", tag, out)
		}
	}
	if !strings.Contains(out, "ER  -") {
		t.Errorf("missing record terminator:\n%s", out)
	}
}

func TestSplitPages(t *testing.T) {
	tests := []struct {
		in     string
		wantSP string
		wantEP string
	}{
		{"100-110", "100", "110"},
		{"200", "200", ""},
		{" e11-e19 ", "e11", "e19"},
		{"", "", ""},
	}

	for _, tt := range tests {
		sp, ep := splitPages(tt.in)
		if sp != tt.wantSP || ep != tt.wantEP {
			t.Fatalf("splitPages(%q) => (%q, %q), expected (%q, %q)", tt.in, sp, ep, tt.wantSP, tt.wantEP)
		}
	}
}

func TestSplitAuthors(t *testing.T) {
	got := splitAuthors("Smith, Jane; Berg, Lars;  ")
	if len(got) != 2 || got[0] != "Smith, Jane" || got[1] != "Berg, Lars" {
		t.Fatalf("splitAuthors => %v", got)
	}
	if splitAuthors("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
