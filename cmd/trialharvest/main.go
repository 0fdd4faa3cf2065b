// Command trialharvest harvests randomized-trial records from PubMed for
// a configured list of journals and writes them to a spreadsheet.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/henrybloomingdale/trialharvest/internal/config"
	"github.com/henrybloomingdale/trialharvest/internal/console"
	"github.com/henrybloomingdale/trialharvest/internal/eutils"
)

// version is overridden at build time via -ldflags.
var version = "dev"

var (
	flagConfig string
	flagPlain  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trialharvest",
	Short: "Harvest randomized-trial records from PubMed",
	Long: `trialharvest searches PubMed for randomized controlled trials in a
configured list of journals, fetches the matching records, and writes them
to a deduplicated spreadsheet in the results directory.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default: trialharvest.yaml in . or ~/.config/trialharvest/)")
	rootCmd.PersistentFlags().BoolVar(&flagPlain, "plain", false, "Unstyled output, for logs and pipes")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

func newReporter() console.Reporter {
	if flagPlain {
		return console.NewPlain(os.Stdout)
	}
	return console.NewStyled(os.Stdout)
}

func newClient(cfg *config.Config) *eutils.Client {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("NCBI_API_KEY")
	}

	opts := []eutils.Option{
		eutils.WithEmail(cfg.ContactEmail),
		eutils.WithTimeout(cfg.Timeout),
	}
	if apiKey != "" {
		opts = append(opts, eutils.WithAPIKey(apiKey))
	}
	return eutils.NewClient(opts...)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trialharvest %s\n", version)
	},
}
