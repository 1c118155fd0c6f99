package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/client"
	"github.com/qwitter/cli/pkg/config"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/output"
	"github.com/qwitter/cli/pkg/service"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
)

var rootCmd = &cobra.Command{
	Use:   "qwitter",
	Short: "Qwitter CLI - post, react and follow from the terminal",
	Long: `Qwitter CLI talks to a qwitter server the way its web pages do.
It loads server-rendered pages, binds the same buttons and forms,
and sends the same actions: like, bookmark, edit, delete, pin and follow.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			return qerrors.ValidationError("output", "must be text, json or table")
		}
		config.Set("output.format", outputFmt)

		client.Init()
		return nil
	},
}

// Execute runs the command tree until it finishes or the process is interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !service.IsReported(err) {
			fmt.Fprint(os.Stderr, qerrors.FormatError(err))
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/qwitter/cli/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text, json, table")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(versionCmd)
}
