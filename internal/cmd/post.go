package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/output"
	"github.com/qwitter/cli/pkg/prompter"
	"github.com/qwitter/cli/pkg/service"
)

var (
	editContent string
	deleteYes   bool
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Act on a post",
	Long:  "Like, bookmark, edit, delete or pin a post by id",
}

func parsePostID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, qerrors.ValidationError("post id", fmt.Sprintf("%q is not a positive integer", arg))
	}
	return id, nil
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		return service.NewActionService().Like(cmd.Context(), id)
	},
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark <post-id>",
	Short: "Toggle a bookmark on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		return service.NewActionService().Bookmark(cmd.Context(), id)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <post-id> [text...]",
	Short: "Replace the text of your post",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		content := editContent
		if len(args) > 1 {
			content = strings.Join(args[1:], " ")
		}
		if content == "" {
			if content, err = prompter.Stdio().String("New text: "); err != nil {
				return err
			}
		}
		return service.NewActionService().Edit(cmd.Context(), id, content)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete your post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		if !deleteYes {
			ok, err := prompter.Stdio().Confirm(fmt.Sprintf("Delete post %d?", id))
			if err != nil {
				return err
			}
			if !ok {
				output.PrintInfo("Cancelled")
				return nil
			}
		}
		return service.NewActionService().Delete(cmd.Context(), id)
	},
}

var pinCmd = &cobra.Command{
	Use:   "pin <post-id>",
	Short: "Pin your post to your profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parsePostID(args[0])
		if err != nil {
			return err
		}
		return service.NewActionService().Pin(cmd.Context(), id)
	},
}

func init() {
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New post text")
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")

	postCmd.AddCommand(likeCmd)
	postCmd.AddCommand(bookmarkCmd)
	postCmd.AddCommand(editCmd)
	postCmd.AddCommand(deleteCmd)
	postCmd.AddCommand(pinCmd)
}
