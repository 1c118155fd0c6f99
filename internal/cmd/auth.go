package cmd

import (
	"github.com/spf13/cobra"

	"github.com/qwitter/cli/pkg/prompter"
	"github.com/qwitter/cli/pkg/service"
)

var (
	loginUsername string
	loginPassword string
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Log in to a qwitter server and manage the stored session",
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to qwitter",
	Long:  "Sign in through the site's login form. Prompts for anything not given as a flag.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(prompter.Stdio()).Login(cmd.Context(), loginUsername, loginPassword)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(prompter.Stdio()).Logout(cmd.Context())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewAuthService(prompter.Stdio()).Status()
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted without echo when omitted)")

	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(statusCmd)
}
