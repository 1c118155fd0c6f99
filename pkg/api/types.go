package api

import (
	"fmt"
)

// ActionKind is one of the mutating interactions a page offers.
type ActionKind string

const (
	ActionConnect  ActionKind = "connect"
	ActionReact    ActionKind = "react"
	ActionBookmark ActionKind = "bookmark"
	ActionEdit     ActionKind = "edit"
	ActionDelete   ActionKind = "delete"
	ActionPin      ActionKind = "pin"
)

// Kinds lists every action kind.
var Kinds = []ActionKind{ActionConnect, ActionReact, ActionBookmark, ActionEdit, ActionDelete, ActionPin}

// Toggle kinds succeed on any status except "401"/"404". The others succeed
// only on "201".
func (k ActionKind) Toggle() bool {
	return k == ActionConnect || k == ActionReact || k == ActionBookmark
}

// Request is one user action against a post or a profile.
type Request struct {
	Kind     ActionKind
	PostID   int
	Username string
	// Content is the edited text, only used by ActionEdit.
	Content string
}

// key identifies identical requests for in-flight suppression.
func (r Request) key() string {
	if r.Kind == ActionConnect {
		return fmt.Sprintf("%s:%s", r.Kind, r.Username)
	}
	return fmt.Sprintf("%s:%d:%s", r.Kind, r.PostID, r.Content)
}

// Status values the server sends in the envelope.
const (
	StatusCreated         = "201"
	StatusUnauthenticated = "401"
	StatusNotFound        = "404"
)

// Envelope is the JSON body of every action response.
type Envelope struct {
	Status             string `json:"status"`
	Response           string `json:"response,omitempty"`
	Action             string `json:"action,omitempty"`
	PostReactionsCount int    `json:"postReactionsCount,omitempty"`
	PostContent        string `json:"postContent,omitempty"`
	Username           string `json:"username,omitempty"`
	Post               string `json:"post,omitempty"`
}

// Action values that select the filled icon.
const (
	ActionLiked      = "Liked"
	ActionBookmarked = "Bookmarked"
)

// ConnectResult is the outcome of a follow toggle.
type ConnectResult struct {
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

// ReactResult is the reaction state after a like toggle.
type ReactResult struct {
	PostID int  `json:"post_id"`
	Liked  bool `json:"liked"`
	Count  int  `json:"count"`
}

// BookmarkResult is the bookmark state after a toggle.
type BookmarkResult struct {
	PostID     int  `json:"post_id"`
	Bookmarked bool `json:"bookmarked"`
}

// EditResult carries the content as stored by the server, which may differ
// from what was submitted.
type EditResult struct {
	PostID  int    `json:"post_id"`
	Content string `json:"content"`
}

// DeleteResult confirms a deletion.
type DeleteResult struct {
	PostID  int    `json:"post_id"`
	Message string `json:"message,omitempty"`
}

// PinResult names the profile the pinned post belongs to.
type PinResult struct {
	PostID   int    `json:"post_id"`
	Username string `json:"username"`
}
