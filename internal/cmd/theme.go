package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/prompter"
	"github.com/qwitter/cli/pkg/service"
	"github.com/qwitter/cli/pkg/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the color theme",
}

var themeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the stored theme and what it resolves to",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewThemeService().Get()
	},
}

var themeSetCmd = &cobra.Command{
	Use:       "set [light|dark|auto]",
	Short:     "Store a theme preference",
	ValidArgs: []string{"light", "dark", "auto"},
	Args:      cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return service.NewThemeService().Set(args[0])
		}

		options := make([]string, 0, len(theme.Preferences))
		for _, p := range theme.Preferences {
			options = append(options, string(p))
		}
		idx, err := prompter.Stdio().Select("Theme:", options)
		if err != nil {
			return err
		}
		return service.NewThemeService().Set(options[idx])
	},
}

var themeWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the terminal background and print the resolved theme",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewThemeService().Watch(cmd.Context())
	},
}

func init() {
	themeCmd.AddCommand(themeGetCmd)
	themeCmd.AddCommand(themeSetCmd)
	themeCmd.AddCommand(themeWatchCmd)
}
