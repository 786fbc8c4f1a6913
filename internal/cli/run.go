package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liamsorsby/website-e2e/internal/config"
	"github.com/liamsorsby/website-e2e/internal/logger"
	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

func runCmd(d deps, load configLoader) *cobra.Command {
	var format string
	var only []string
	var repeat int

	c := &cobra.Command{
		Use:   "run",
		Short: "Run the navigation checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
			}

			cfg, cleanup, err := load(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			suite, err := cfg.Suite()
			if err != nil {
				return err
			}
			suite, err = selectCases(suite, only)
			if err != nil {
				return err
			}

			var failedRuns int
			for i := 0; i < repeat; i++ {
				report, err := runSuite(cmd.Context(), d, cfg, suite, cmd.OutOrStdout(), format)
				if err != nil {
					return err
				}
				if !report.OK() {
					if repeat == 1 {
						return fmt.Errorf("%d of %d case(s) failed", report.Failed(), len(report.Results))
					}
					failedRuns++
				}
			}
			if failedRuns > 0 {
				return fmt.Errorf("%d of %d run(s) failed", failedRuns, repeat)
			}
			return nil
		},
	}

	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	c.Flags().StringSliceVar(&only, "case", nil, "Run only the named case(s)")
	c.Flags().IntVar(&repeat, "repeat", 1, "Run the suite this many times, reloading the site each time")
	return c
}

// runSuite launches a browser, runs suite and prints the report to w.
func runSuite(ctx context.Context, d deps, cfg *config.Config, suite navcheck.Suite, w io.Writer, format string) (*navcheck.Report, error) {
	b, err := d.newBrowser(cfg.BrowserOptions())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.L().Warn("browser.close", "error", err)
		}
	}()

	opts := []navcheck.Option{navcheck.WithLogger(logger.L())}
	if format == "pretty" {
		printHeader(w, suite)
		opts = append(opts, navcheck.WithOnResult(func(res navcheck.Result) {
			printResult(w, res)
		}))
	}

	runner, err := navcheck.NewRunner(b, opts...)
	if err != nil {
		return nil, err
	}
	report := runner.Run(ctx, suite)

	if format == "json" {
		if err := printJSON(w, report); err != nil {
			return nil, err
		}
	} else {
		printSummary(w, report)
	}
	return report, nil
}

// selectCases keeps the named cases, in suite order.
func selectCases(s navcheck.Suite, names []string) (navcheck.Suite, error) {
	if len(names) == 0 {
		return s, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := s.Case(n); !ok {
			return navcheck.Suite{}, fmt.Errorf("unknown case %q (have %v)", n, s.Names())
		}
		want[n] = true
	}

	out := navcheck.Suite{BaseURL: s.BaseURL}
	for _, c := range s.Cases {
		if want[c.Name] {
			out.Cases = append(out.Cases, c)
		}
	}
	return out, nil
}

func validateFormat(format string) error {
	switch format {
	case "pretty", "json":
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}
