// Package config loads and validates the harvester configuration.
//
// Configuration comes from a YAML file (explicit path, working directory,
// or ~/.config/trialharvest/), with TRIALHARVEST_* environment variables
// overriding file values. Built-in defaults cover everything except the
// NCBI contact email, which the operator must supply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/henrybloomingdale/trialharvest/internal/store"
)

// FileName is the config file base name searched for when no explicit
// path is given.
const FileName = "trialharvest"

// EnvPrefix namespaces environment overrides, e.g. TRIALHARVEST_API_KEY.
const EnvPrefix = "TRIALHARVEST"

// Config is the full runtime configuration.
type Config struct {
	// ContactEmail identifies the caller to NCBI. Required: E-utilities
	// etiquette asks for a contact address on every request.
	ContactEmail string `mapstructure:"contact_email" yaml:"contact_email"`

	// APIKey raises the NCBI rate limit from 3 to 10 requests/second.
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	// ResultsDir receives the timestamp-named artifacts.
	ResultsDir string `mapstructure:"results_dir" yaml:"results_dir"`

	// FilePrefix starts every artifact file name.
	FilePrefix string `mapstructure:"file_prefix" yaml:"file_prefix"`

	// OutputFormat is xlsx or csv.
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`

	// MergeStrategy is latest (fold into the newest prior artifact) or
	// fresh (start empty).
	MergeStrategy string `mapstructure:"merge_strategy" yaml:"merge_strategy"`

	// MaxResultsPerJournal bounds each journal's search. Zero is allowed
	// and retrieves nothing, which probes the queries without fetching.
	MaxResultsPerJournal int `mapstructure:"max_results_per_journal" yaml:"max_results_per_journal"`

	// Timeout bounds every E-utilities HTTP call.
	Timeout time.Duration `mapstructure:"timeout" yaml:"-"`

	// LinkTemplate builds the Link column; {pmid} is the placeholder.
	LinkTemplate string `mapstructure:"link_template" yaml:"link_template"`

	// Query holds the sub-clauses combined into each journal's search.
	Query QueryConfig `mapstructure:"query" yaml:"query"`

	// Journals are harvested in the order listed.
	Journals []string `mapstructure:"journals" yaml:"journals"`

	// OutputHeaders is the artifact column order. It must include the
	// PMID column, which keys deduplication.
	OutputHeaders []string `mapstructure:"output_headers" yaml:"output_headers"`
}

// QueryConfig holds the PubMed sub-clauses combined per journal. Each
// value is a PubMed expression used verbatim; empty values drop that
// clause from the query.
type QueryConfig struct {
	TrialType string `mapstructure:"trial_type" yaml:"trial_type"`
	Domain    string `mapstructure:"domain" yaml:"domain"`
	DateRange string `mapstructure:"date_range" yaml:"date_range"`
	Species   string `mapstructure:"species" yaml:"species"`

	// Exclusions is applied with NOT. Configure it without a leading NOT.
	Exclusions string `mapstructure:"exclusions" yaml:"exclusions"`
}

// Default returns the built-in configuration: randomized controlled
// trials in the major critical-care journals, 2020 through 2025.
func Default() *Config {
	return &Config{
		ResultsDir:           "results",
		FilePrefix:           "pubmed_results_",
		OutputFormat:         string(store.FormatXLSX),
		MergeStrategy:        string(store.MergeLatest),
		MaxResultsPerJournal: 200,
		Timeout:              30 * time.Second,
		LinkTemplate:         "https://pubmed.ncbi.nlm.nih.gov/{pmid}/",
		Query: QueryConfig{
			TrialType:  `("Randomized Controlled Trial"[Publication Type] OR "Randomized Controlled Trials as Topic"[MeSH Terms] OR "Random Allocation"[MeSH Terms] OR "randomized"[Title/Abstract] OR "randomised"[Title/Abstract] OR "randomly"[Title/Abstract])`,
			Domain:     `(("critical care"[MeSH Terms] OR "intensive care units"[MeSH Terms] OR "critical illness"[MeSH Terms] OR "ICU"[Title/Abstract] OR "high dependency unit*"[Title/Abstract] OR "respiration, artificial"[MeSH Terms] OR "intensive care"[Title/Abstract] OR "intensive care unit"[Title/Abstract] OR "critical illness"[Title/Abstract] OR "Critical Care"[Title/Abstract] OR "critical ill*"[Title/Abstract] OR "Intensive therapy"[Title/Abstract] OR "mechanical ventilation"[Title/Abstract] OR "mechanical ventilat*"[Title/Abstract]) OR ("mechanical"[Title/Abstract] AND "ventilation"[Title/Abstract]))`,
			DateRange:  `("2020/01/01"[PDAT]:"2025/01/01"[PDAT])`,
			Species:    `"humans"[MeSH Terms]`,
			Exclusions: `("systematic review"[Publication Type] OR "Meta-Analysis"[Publication Type] OR "Review"[Publication Type])`,
		},
		Journals: []string{
			"The New England Journal of Medicine",
			"Lancet",
			"JAMA",
			"American Journal of Respiratory and Critical Care Medicine",
			"Intensive Care Medicine",
			"Critical Care Medicine",
			"Critical care",
			"Chest",
			"BMJ",
			"Annals of Intensive care",
			"JAMA Internal Medicine",
			"JAMA Network Open",
			"Annals of the American Thoracic Society",
		},
		OutputHeaders: store.DefaultHeaders(),
	}
}

// Load reads the configuration. cfgFile may be empty, in which case
// trialharvest.yaml is searched for in the working directory and
// ~/.config/trialharvest/. A missing file is fine when no explicit path
// was given; defaults and environment variables still apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("contact_email", d.ContactEmail)
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("results_dir", d.ResultsDir)
	v.SetDefault("file_prefix", d.FilePrefix)
	v.SetDefault("output_format", d.OutputFormat)
	v.SetDefault("merge_strategy", d.MergeStrategy)
	v.SetDefault("max_results_per_journal", d.MaxResultsPerJournal)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("link_template", d.LinkTemplate)
	v.SetDefault("query.trial_type", d.Query.TrialType)
	v.SetDefault("query.domain", d.Query.Domain)
	v.SetDefault("query.date_range", d.Query.DateRange)
	v.SetDefault("query.species", d.Query.Species)
	v.SetDefault("query.exclusions", d.Query.Exclusions)
	v.SetDefault("journals", d.Journals)
	v.SetDefault("output_headers", d.OutputHeaders)
}

// Validate checks the configuration before any network call is made.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ContactEmail) == "" {
		return fmt.Errorf("contact_email is required: NCBI asks for a contact address on every request")
	}
	if len(c.Journals) == 0 {
		return fmt.Errorf("journals list is empty: nothing to harvest")
	}
	for i, j := range c.Journals {
		if strings.TrimSpace(j) == "" {
			return fmt.Errorf("journals[%d] is blank", i)
		}
	}
	if len(c.OutputHeaders) == 0 {
		return fmt.Errorf("output_headers is empty")
	}
	if !containsHeader(c.OutputHeaders, store.ColPMID) {
		return fmt.Errorf("output_headers must include %q: rows are keyed and deduplicated by it", store.ColPMID)
	}
	if c.MaxResultsPerJournal < 0 {
		return fmt.Errorf("max_results_per_journal cannot be negative, got %d", c.MaxResultsPerJournal)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := store.ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if _, err := store.ParseMergeStrategy(c.MergeStrategy); err != nil {
		return err
	}
	if !strings.Contains(c.LinkTemplate, "{pmid}") {
		return fmt.Errorf("link_template must contain the {pmid} placeholder, got %q", c.LinkTemplate)
	}
	return nil
}

func containsHeader(headers []string, name string) bool {
	for _, h := range headers {
		if h == name {
			return true
		}
	}
	return false
}
