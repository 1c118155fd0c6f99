package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutePaths(t *testing.T) {
	tests := []struct {
		name   string
		routes Routes
		req    Request
		want   string
	}{
		{"network react", NetworkRoutes(), Request{Kind: ActionReact, PostID: 12}, "/posts/12/react"},
		{"network connect", NetworkRoutes(), Request{Kind: ActionConnect, Username: "ada"}, "/profile/ada/connect"},
		{"feed bookmark", FeedRoutes(), Request{Kind: ActionBookmark, PostID: 3}, "/feed/posts/3/bookmark/"},
		{"feed pin", FeedRoutes(), Request{Kind: ActionPin, PostID: 3}, "/feed/posts/3/pin/"},
		{"feed connect", FeedRoutes(), Request{Kind: ActionConnect, Username: "a/b"}, "/feed/profile/a%2Fb/connect/"},
		{"accounts follow", AccountsRoutes(), Request{Kind: ActionConnect, Username: "ada"}, "/profile/ada/follow/"},
		{"accounts react", AccountsRoutes(), Request{Kind: ActionReact, PostID: 1}, "/feed/posts/1/react/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.routes.Path(tt.req))
		})
	}
}

func TestRoutesFor(t *testing.T) {
	r, err := RoutesFor("")
	require.NoError(t, err)
	assert.Equal(t, "feed", r.Name)

	r, err = RoutesFor("network")
	require.NoError(t, err)
	assert.Equal(t, "content", r.EditField)

	r, err = RoutesFor("accounts")
	require.NoError(t, err)
	assert.Equal(t, "follow", r.ConnectVerb)

	_, err = RoutesFor("legacy")
	assert.Error(t, err)
}

func TestDetailAndAccountPaths(t *testing.T) {
	feed := FeedRoutes()
	assert.True(t, feed.IsDetailPath("/feed/posts/12/"))
	assert.False(t, feed.IsDetailPath("/feed/"))
	assert.Equal(t, "/login/", feed.LoginFormPath())
	assert.Equal(t, "/logout/", feed.LogoutPath())
	assert.Equal(t, "/profile/ada/", feed.ProfilePagePath("ada"))

	network := NetworkRoutes()
	assert.True(t, network.IsDetailPath("/posts/12"))
	assert.Equal(t, "/login", network.LoginFormPath())
	assert.Equal(t, "/profile/ada", network.ProfilePath("ada"))
}

func TestRequestKeyDistinguishesContent(t *testing.T) {
	a := Request{Kind: ActionEdit, PostID: 1, Content: "a"}
	b := Request{Kind: ActionEdit, PostID: 1, Content: "b"}
	assert.NotEqual(t, a.key(), b.key())
	assert.Equal(t, a.key(), Request{Kind: ActionEdit, PostID: 1, Content: "a"}.key())
}
