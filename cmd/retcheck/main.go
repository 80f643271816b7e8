package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"retcheck/adapters/excel"
	"retcheck/app"
	"retcheck/internal"
	"retcheck/internal/config"
	"retcheck/internal/errors"
	"retcheck/internal/report"
)

func main() {
	// .env is optional; the real environment wins over it
	_ = godotenv.Load()

	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. Nothing is written
// to stdout unless the whole analysis succeeded.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode is 2 for bad configuration or flags, 1 for any failure while
// loading or testing the returns.
func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeConfigInvalid, errors.CodeInvalidInput:
		return 2
	}
	return 1
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		column  string
		sheet   string
		format  string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "retcheck [returns-file]",
		Short: "One-tailed t-test of mean daily strategy returns against zero",
		Long: `Load daily net strategy returns from a CSV or XLSX file and test
H0: mean return = 0 against H1: mean return > 0 with a one-sample t-test.

The file needs a header row with a "return" column (see --column).
The path may also be given through RETCHECK_RETURNS_FILE (or a .env file).

Example: retcheck net_returns.csv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				cfg.Input.ReturnsFile = args[0]
			}
			flags := cmd.Flags()
			if flags.Changed("column") {
				cfg.Input.Column = column
			}
			if flags.Changed("sheet") {
				cfg.Input.Sheet = sheet
			}
			if flags.Changed("format") {
				f, err := report.ParseFormat(format)
				if err != nil {
					return err
				}
				cfg.Output.Format = f
			}
			if flags.Changed("summary") {
				cfg.Output.Summary = summary
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runAnalysis(cmd.Context(), cfg, stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.Flags().StringVar(&column, "column", "return", "Name of the returns column")
	cmd.Flags().StringVar(&sheet, "sheet", "", "XLSX sheet to read (default: first sheet)")
	cmd.Flags().StringVar(&format, "format", "text", "Report format: text|json")
	cmd.Flags().BoolVar(&summary, "summary", false, "Append descriptive statistics of the returns")

	return cmd
}

func runAnalysis(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger := internal.NewLogger(cfg.LogLevel, stderr)

	reader := excel.NewReturnsReader(excel.ReaderConfig{
		Column: cfg.Input.Column,
		Sheet:  cfg.Input.Sheet,
	}, logger)
	svc := app.NewAnalysisService(reader, logger)

	out, err := svc.Analyze(ctx, app.AnalysisRequest{
		Path:    cfg.Input.ReturnsFile,
		Summary: cfg.Output.Summary,
	})
	if err != nil {
		return err
	}

	env := report.NewEnvelope(out.Source, out.Column, out.Result, out.Summary)
	return report.NewWriter(cfg.Output.Format).Write(stdout, env)
}
