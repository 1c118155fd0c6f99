package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwitter/cli/pkg/client"
	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/credentials"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/output"
	"github.com/qwitter/cli/pkg/platform"
	"github.com/qwitter/cli/pkg/prompter"
)

const feedPage = `<html><head><title>Qwitter</title></head><body>
<div class="toast"><div class="toast-body">Logged in successfully.</div></div>
<div class="post" data-postid="12">
  <div class="post-content"><p class="editable-post-body">hello world</p></div>
  <form class="post-edit-form" data-postid="12" style="display: none"><textarea name="body">hello world</textarea></form>
  <button class="like" data-postid="12"><i class="far fa-heart"></i> <span class="ml-1">3</span></button>
  <button class="bookmark" data-postid="12"><i class="far fa-bookmark"></i></button>
  <button class="delete" data-postid="12">Delete</button>
</div>
</body></html>`

// fakeQwitter serves a feed page and the action endpoints.
func fakeQwitter(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/feed/", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, feedPage)
	})
	mux.HandleFunc("/feed/posts/12/react/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"201","action":"Liked","postReactionsCount":4}`)
	})
	mux.HandleFunc("/feed/posts/12/bookmark/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"404","response":"Post not found."}`)
	})
	mux.HandleFunc("/feed/posts/12/edit/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"201","postContent":"edited"}`)
	})
	mux.HandleFunc("/feed/posts/12/delete/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"201","action":"Deleted"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setup(t *testing.T, baseURL string) *bytes.Buffer {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	config.Set("api.base_url", baseURL)
	config.Set("toast.show_delay_ms", 1)
	client.Init()

	color.NoColor = true
	var buf bytes.Buffer
	old := output.Out
	output.Out = &buf
	t.Cleanup(func() { output.Out = old })
	return &buf
}

func testPageService() *PageService {
	return &PageService{opts: func() PageOptions {
		return PageOptions{
			Store:   platform.NewMemoryStore(),
			Scheme:  platform.NewManualScheme(true),
			Alerter: platform.TerminalAlerter{},
		}
	}}
}

func TestActionServiceLike(t *testing.T) {
	srv := fakeQwitter(t)
	buf := setup(t, srv.URL)

	require.NoError(t, NewActionService().Like(context.Background(), 12))
	assert.Contains(t, buf.String(), "Liked post 12 (4 likes)")
}

func TestActionServiceRejected(t *testing.T) {
	srv := fakeQwitter(t)
	setup(t, srv.URL)

	err := NewActionService().Bookmark(context.Background(), 12)
	assert.True(t, qerrors.IsRejected(err))
	assert.Equal(t, "Post not found.", err.Error())
}

func TestExpiredSessionIsReported(t *testing.T) {
	srv := fakeQwitter(t)
	setup(t, srv.URL)
	require.NoError(t, credentials.Save(&credentials.Credentials{
		SessionID: "old",
		BaseURL:   srv.URL,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))

	err := NewActionService().Like(context.Background(), 12)
	assert.Equal(t, qerrors.ErrorTypeSessionExpired, qerrors.CategorizeError(err).Type)
}

func TestPageShow(t *testing.T) {
	srv := fakeQwitter(t)
	buf := setup(t, srv.URL)
	config.Set("output.format", "json")

	require.NoError(t, testPageService().Show(context.Background(), "/feed/"))
	out := buf.String()
	assert.Contains(t, out, `"title": "Qwitter"`)
	assert.Contains(t, out, `"theme": "dark"`)
	assert.Contains(t, out, "Logged in successfully.")
	assert.Contains(t, out, `"bound_controls": 4`)
}

func TestPageClickAndSubmit(t *testing.T) {
	srv := fakeQwitter(t)
	setup(t, srv.URL)

	p, err := OpenPage(context.Background(), "/feed/", testPageService().opts())
	require.NoError(t, err)
	defer p.Close()

	el, err := p.Click(context.Background(), "button.like")
	require.NoError(t, err)
	assert.Contains(t, el.InnerHTML(), "fas fa-heart")

	_, err = p.Click(context.Background(), "button.bookmark")
	assert.True(t, IsReported(err))
	assert.True(t, qerrors.IsRejected(err))

	_, err = p.Click(context.Background(), "button.pin")
	assert.Equal(t, qerrors.ErrorTypeValidation, qerrors.CategorizeError(err).Type)

	_, err = p.Submit(context.Background(), ".post-edit-form", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", p.Summarize().Posts[0].Body)
}

func TestPageDeleteReloads(t *testing.T) {
	srv := fakeQwitter(t)
	buf := setup(t, srv.URL)

	require.NoError(t, testPageService().Click(context.Background(), "/feed/", "button.delete"))
	assert.Contains(t, buf.String(), "Now at "+srv.URL+"/feed/")
}

func TestThemeServiceSetAndGet(t *testing.T) {
	buf := setup(t, "http://qwitter.test")
	s := &ThemeService{store: platform.NewMemoryStore(), scheme: platform.NewManualScheme(false)}

	require.NoError(t, s.Set("dark"))
	require.NoError(t, s.Get())
	assert.Contains(t, buf.String(), "Theme set to dark (dark)")
	assert.Contains(t, buf.String(), "preference: dark")
	assert.Error(t, s.Set("neon"))
}

func TestAuthLogoutWithoutSession(t *testing.T) {
	buf := setup(t, "http://qwitter.test")
	s := NewAuthService(prompter.New(strings.NewReader(""), io.Discard))

	require.NoError(t, s.Logout(context.Background()))
	assert.Contains(t, buf.String(), "Not logged in")
}

func TestAuthStatus(t *testing.T) {
	buf := setup(t, "http://qwitter.test")
	require.NoError(t, credentials.Save(&credentials.Credentials{SessionID: "s", Username: "ada", BaseURL: "http://qwitter.test"}))

	require.NoError(t, NewAuthService(nil).Status())
	assert.Contains(t, buf.String(), "username: ada")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a very long stri...", truncate("a very long string that exceeds", 19))
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "s", pluralize(0))
	assert.Equal(t, "", pluralize(1))
}
