package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liamsorsby/website-e2e/pkg/navcheck"
)

func casesCmd(_ deps, load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List the configured navigation checks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, cleanup, err := load(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			suite, err := cfg.Suite()
			if err != nil {
				return err
			}
			printCases(cmd.OutOrStdout(), suite)
			return nil
		},
	}
}

func printCases(w io.Writer, s navcheck.Suite) {
	fmt.Fprintf(w, "Base URL: %s\n\n", s.BaseURL)
	for _, c := range s.Cases {
		fmt.Fprintf(w, "%s\n", c.Name)
		fmt.Fprintf(w, "  click: %s\n", c.LinkSelector())
		fmt.Fprintf(w, "  url:   includes %q\n", c.Path)
		for _, e := range c.Expect {
			fmt.Fprintf(w, "  - %s\n", e)
		}
	}
}
