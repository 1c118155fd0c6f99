package service

import (
	"context"

	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/output"
)

// ActionService runs single actions without loading a page first.
type ActionService struct{}

// NewActionService creates a new action service
func NewActionService() *ActionService {
	return &ActionService{}
}

// Like toggles the like on a post.
func (s *ActionService) Like(ctx context.Context, postID int) error {
	d, _, err := newDispatcher()
	if err != nil {
		return err
	}
	res, err := d.React(ctx, postID)
	if err != nil {
		return err
	}

	if output.GetOutputFormat() == output.FormatText {
		verb := "Unliked"
		if res.Liked {
			verb = "Liked"
		}
		output.PrintSuccess("%s post %d (%d like%s)", verb, postID, res.Count, pluralize(res.Count))
		return nil
	}
	return output.Print("Reaction", res)
}

// Bookmark toggles the bookmark on a post.
func (s *ActionService) Bookmark(ctx context.Context, postID int) error {
	d, _, err := newDispatcher()
	if err != nil {
		return err
	}
	res, err := d.Bookmark(ctx, postID)
	if err != nil {
		return err
	}

	if output.GetOutputFormat() == output.FormatText {
		if res.Bookmarked {
			output.PrintSuccess("Bookmarked post %d", postID)
		} else {
			output.PrintSuccess("Removed bookmark from post %d", postID)
		}
		return nil
	}
	return output.Print("Bookmark", res)
}

// Edit replaces a post's text and prints what the server stored.
func (s *ActionService) Edit(ctx context.Context, postID int, content string) error {
	d, _, err := newDispatcher()
	if err != nil {
		return err
	}
	res, err := d.Edit(ctx, postID, content)
	if err != nil {
		return err
	}

	if output.GetOutputFormat() == output.FormatText {
		output.PrintSuccess("Updated post %d", postID)
		output.PrintInfo("%s", res.Content)
		return nil
	}
	return output.Print("Post", res)
}

// Delete removes a post.
func (s *ActionService) Delete(ctx context.Context, postID int) error {
	d, _, err := newDispatcher()
	if err != nil {
		return err
	}
	res, err := d.Delete(ctx, postID)
	if err != nil {
		return err
	}

	logger.Info("Deleted post", "post_id", postID)
	if output.GetOutputFormat() == output.FormatText {
		output.PrintSuccess("Deleted post %d", postID)
		return nil
	}
	return output.Print("Post", res)
}

// Pin toggles a post as the author's pinned post.
func (s *ActionService) Pin(ctx context.Context, postID int) error {
	d, _, err := newDispatcher()
	if err != nil {
		return err
	}
	res, err := d.Pin(ctx, postID)
	if err != nil {
		return err
	}

	if output.GetOutputFormat() == output.FormatText {
		output.PrintSuccess("Pinned post %d", postID)
		output.PrintInfo("Profile: %s", d.Routes().ProfilePath(res.Username))
		return nil
	}
	return output.Print("Pin", res)
}

// Connect toggles following a user.
func (s *ActionService) Connect(ctx context.Context, username string) error {
	d, _, err := newDispatcher()
	if err != nil {
		return err
	}
	res, err := d.Connect(ctx, username)
	if err != nil {
		return err
	}

	if output.GetOutputFormat() == output.FormatText {
		msg := res.Message
		if msg == "" {
			msg = "Updated connection with " + username
		}
		output.PrintSuccess("%s", msg)
		return nil
	}
	return output.Print("Connection", res)
}
