package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile commands",
}

var connectCmd = &cobra.Command{
	Use:     "connect <username>",
	Aliases: []string{"follow", "unfollow"},
	Short:   "Toggle following a user",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewActionService().Connect(cmd.Context(), args[0])
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show <username>",
	Short: "Show a user's profile page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPageService().ShowProfile(cmd.Context(), args[0])
	},
}

func init() {
	profileCmd.AddCommand(connectCmd)
	profileCmd.AddCommand(showProfileCmd)
}
