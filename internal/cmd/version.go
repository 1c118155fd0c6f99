package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/client"
)

// Version is set at build time with -ldflags "-X".
var Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Qwitter CLI v%s (%s)\n", Version, client.UserAgent)
	},
}
