package api

import (
	"fmt"
	"net/url"
	"strings"
)

// Routes describes how one deployment lays out its action endpoints.
type Routes struct {
	Name string
	// Prefix is prepended to post and connect paths, e.g. "/feed".
	Prefix        string
	TrailingSlash bool
	// ConnectPrefix is prepended to the follow toggle only.
	ConnectPrefix string
	// ConnectVerb is the last path segment of the follow toggle.
	ConnectVerb string
	// EditField is the JSON key carrying the edited text.
	EditField string
}

// NetworkRoutes is the flat layout: /posts/{id}/react, /profile/{u}/connect.
func NetworkRoutes() Routes {
	return Routes{
		Name:        "network",
		ConnectVerb: "connect",
		EditField:   "content",
	}
}

// FeedRoutes is the layout of the feed app: /feed/posts/{id}/react/.
func FeedRoutes() Routes {
	return Routes{
		Name:          "feed",
		Prefix:        "/feed",
		ConnectPrefix: "/feed",
		TrailingSlash: true,
		ConnectVerb:   "connect",
		EditField:     "body",
	}
}

// AccountsRoutes is the feed layout with follows served by the accounts
// app: /profile/{u}/follow/.
func AccountsRoutes() Routes {
	r := FeedRoutes()
	r.Name = "accounts"
	r.ConnectPrefix = ""
	r.ConnectVerb = "follow"
	return r
}

// RoutesFor returns a preset by name.
func RoutesFor(name string) (Routes, error) {
	switch name {
	case "network":
		return NetworkRoutes(), nil
	case "feed", "":
		return FeedRoutes(), nil
	case "accounts":
		return AccountsRoutes(), nil
	default:
		return Routes{}, fmt.Errorf("unknown route layout %q (want feed, accounts or network)", name)
	}
}

func (r Routes) finish(p string) string {
	if r.TrailingSlash {
		return p + "/"
	}
	return p
}

// Path returns the endpoint for req.
func (r Routes) Path(req Request) string {
	if req.Kind == ActionConnect {
		return r.finish(fmt.Sprintf("%s/profile/%s/%s", r.ConnectPrefix, url.PathEscape(req.Username), r.ConnectVerb))
	}
	return r.finish(fmt.Sprintf("%s/posts/%d/%s", r.Prefix, req.PostID, req.Kind))
}

// DetailPrefix is the path prefix of single-post pages.
func (r Routes) DetailPrefix() string {
	return r.Prefix + "/posts/"
}

// IsDetailPath reports whether path is a single-post page.
func (r Routes) IsDetailPath(path string) bool {
	return strings.HasPrefix(path, r.DetailPrefix())
}

// LoginPath is where unauthenticated users are sent.
func (r Routes) LoginPath() string {
	return "/login"
}

// ProfilePath is the profile page of username.
func (r Routes) ProfilePath(username string) string {
	return "/profile/" + url.PathEscape(username)
}

// LoginFormPath is the login form endpoint as the deployment spells it.
func (r Routes) LoginFormPath() string {
	return r.finish(r.LoginPath())
}

// LogoutPath ends the server-side session.
func (r Routes) LogoutPath() string {
	return r.finish("/logout")
}

// ProfilePagePath is the profile page as the deployment routes it.
func (r Routes) ProfilePagePath(username string) string {
	return r.finish(r.ProfilePath(username))
}
