package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liamsorsby/website-e2e/internal/buildinfo"
)

func versionCmd(_ deps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
