package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/ats-screener/internal/scoring"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the default scoring rubric",
	Run: func(cmd *cobra.Command, _ []string) {
		w := scoring.DefaultWeights
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		fmt.Fprintf(cmd.OutOrStdout(), "default weights: experience %.0f%%, skills %.0f%%, education %.0f%%, projects %.0f%%\n",
			w.Experience*100, w.Skills*100, w.Education*100, w.Projects*100)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
