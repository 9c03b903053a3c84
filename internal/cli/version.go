package cli

import (
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the version number of orm-generator",
		Run: func(cmd *cobra.Command, args []string) {
			writeLine(cmd.OutOrStdout(), "orm-generator v%s@%s %s %s", Version, GitCommit, platform(), BuildDate)
		},
	}
}
