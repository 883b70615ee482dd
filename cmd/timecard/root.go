package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Afrawles/timecard/internal/config"
	"github.com/Afrawles/timecard/internal/timecard"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	baseURL       string
	email         string
	apiToken      string
	labelPrefixes []string
	month         string
	xlsxDir       string
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "timecard",
	Short: "Monthly Jira worklog report with capacity utilization",
	Long: `Timecard sums your own Jira worklogs for one calendar month across
issues whose labels match the configured prefixes, and prints a ranked
report with cumulative totals and the share of month capacity used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}
}

func init() {
	_ = godotenv.Load()

	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Jira base URL (https://xxx.atlassian.net)")
	rootCmd.Flags().StringVar(&email, "email", "", "Jira account email")
	rootCmd.Flags().StringVar(&apiToken, "api-token", "", "Atlassian API token")
	rootCmd.Flags().StringArrayVar(&labelPrefixes, "label-prefix", nil, "Label prefix filter (repeatable or comma-separated)")
	rootCmd.Flags().StringVar(&month, "month", "", "Month to report, YYYY-MM (default: current month)")
	rootCmd.Flags().StringVar(&xlsxDir, "xlsx", "", "Also write an .xlsx workbook into this directory")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log fetch progress to stderr")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := config.New()
	cfg.Jira.BaseURL = baseURL
	cfg.Jira.Email = email
	cfg.Jira.APIToken = apiToken
	cfg.Report.LabelPrefixes = labelPrefixes
	cfg.Report.Month = month
	cfg.Report.XLSXDir = xlsxDir
	cfg.Report.Verbose = verbose

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	app := timecard.New(cfg)

	// The spinner owns the terminal while we talk to Jira, so the
	// report is buffered and printed once fetching is done.
	bar := newSpinner("Fetching worklogs")
	var buf bytes.Buffer
	err := app.Run(cmd.Context(), &buf)
	finishBar(bar)
	if err != nil {
		return err
	}

	fmt.Print(buf.String())
	return nil
}
