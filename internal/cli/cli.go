package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/university-towns/internal/classify"
	"github.com/pfrederiksen/university-towns/internal/fetcher"
	"github.com/pfrederiksen/university-towns/internal/pipeline"
	"github.com/pfrederiksen/university-towns/internal/town"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagURL       string
	flagBaseURL   string
	flagOutput    string
	flagFormat    string
	flagTimeout   time.Duration
	flagRetries   int
	flagRate      float64
	flagTrusted   []string
	flagBigCities []string
	flagVerbose   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "university-towns",
		Short: "Extract a vetted list of U.S. college towns",
		Long: `Extracts candidate college towns from the Wikipedia list of college towns
and vets each one: a trusted citation accepts it outright; otherwise the
town's own article is checked for university-towns category membership or
for repeated university mentions in its lead or Economy section.`,
		RunE: runScrape,
	}

	cmd.Flags().StringVar(&flagURL, "url", fetcher.CollegeTownsURL, "Source document URL")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", classify.DefaultBaseURL, "Base URL for resolving article links")
	cmd.Flags().StringVar(&flagOutput, "output", "", "Write the stream to a file instead of stdout")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", fetcher.DefaultTimeout, "Per-request timeout")
	cmd.Flags().IntVar(&flagRetries, "retries", fetcher.DefaultRetries, "Retry budget per fetch")
	cmd.Flags().Float64Var(&flagRate, "rate", fetcher.DefaultRequestsPerSecond, "Outbound requests per second")
	cmd.Flags().StringSliceVar(&flagTrusted, "trusted-citations", town.DefaultTrustedCitations, "Citation markers accepted without corroboration")
	cmd.Flags().StringSliceVar(&flagBigCities, "big-cities", town.DefaultBigCities, "Cities whose nested entries are neighborhoods")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	f := fetcher.New(fetcher.Options{
		Timeout:           flagTimeout,
		Retries:           flagRetries,
		RequestsPerSecond: flagRate,
	})

	log.WithField("url", flagURL).Info("fetching source document")
	doc, err := f.Document(cmd.Context(), flagURL)
	if err != nil {
		return fmt.Errorf("fetching source document: %w", err)
	}

	policy := town.NewPolicy(flagTrusted, flagBigCities)
	checker := classify.NewChecker(f, flagBaseURL)
	p := pipeline.New(policy, classify.DefaultRules(policy, checker), log)

	result, err := p.Run(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	out := os.Stdout
	if flagOutput != "" {
		file, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := WriteOutput(out, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Processed %d candidates across %d states: %d accepted, %d warnings\n",
		result.Candidates, result.States, result.Accepted, result.Warnings)

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
