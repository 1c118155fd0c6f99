package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/service"
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Load a page and use its controls",
	Long: `Load a server-rendered page, run its setup (theme, toasts, control
bindings) and optionally click a control or submit a form on it.`,
}

var pageShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show a page's posts and messages",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "/"
		if len(args) == 1 {
			path = args[0]
		}
		return service.NewPageService().Show(cmd.Context(), path)
	},
}

var pageClickCmd = &cobra.Command{
	Use:     "click <path> <selector>",
	Short:   "Click the first element matching a CSS selector",
	Example: `  qwitter page click /feed/ 'button.like[data-postid="12"]'`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPageService().Click(cmd.Context(), args[0], args[1])
	},
}

var pageSubmitCmd = &cobra.Command{
	Use:     "submit <path> <selector> <text...>",
	Short:   "Fill a form's textarea and submit it",
	Example: `  qwitter page submit /feed/ '.post-edit-form[data-postid="12"]' new text`,
	Args:    cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPageService().Submit(cmd.Context(), args[0], args[1], strings.Join(args[2:], " "))
	},
}

func init() {
	pageCmd.AddCommand(pageShowCmd)
	pageCmd.AddCommand(pageClickCmd)
	pageCmd.AddCommand(pageSubmitCmd)
}
