package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the version of the application, set at build time
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sift %s\n", Version)
		fmt.Fprintln(cmd.OutOrStdout(), "line search")
		fmt.Fprintln(cmd.OutOrStdout(), "github.com/pders01/sift")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
