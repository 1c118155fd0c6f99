package toast

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/dom"
)

const page = `<html><body>
<div class="toast-container">
  <div class="toast" role="alert">
    <div class="toast-header"><button type="button" class="btn-close" data-bs-dismiss="toast"></button></div>
    <div class="toast-body">Logged in successfully.</div>
  </div>
  <div class="toast" role="alert"><div class="toast-body">Post created.</div></div>
</div>
</body></html>`

func newDoc(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page, "http://qwitter.test/feed/")
	require.NoError(t, err)
	return doc
}

func TestToastsShowThenHide(t *testing.T) {
	n := NewNotifier(80*time.Millisecond, 10*time.Millisecond)
	defer n.Stop()

	toasts := n.Initialize(newDoc(t))
	require.Len(t, toasts, 2)
	assert.Equal(t, "Logged in successfully.", toasts[0].Text())
	assert.False(t, toasts[0].Visible())

	for _, ts := range toasts {
		ts := ts
		assert.Eventually(t, ts.Visible, time.Second, 5*time.Millisecond)
	}
	for _, ts := range toasts {
		ts := ts
		assert.Eventually(t, func() bool { return !ts.Visible() }, time.Second, 5*time.Millisecond)
	}
}

func TestDismissButtonHides(t *testing.T) {
	n := NewNotifier(time.Hour, time.Hour)
	defer n.Stop()

	doc := newDoc(t)
	toasts := n.Initialize(doc)
	toasts[0].Show()
	require.True(t, toasts[0].Visible())

	_, err := doc.Dispatch(context.Background(), doc.Query(DismissSelector), "click")
	require.NoError(t, err)
	assert.False(t, toasts[0].Visible())
	assert.True(t, toasts[0].Element().HasClass("hide"))
}

func TestStopCancelsPendingShow(t *testing.T) {
	n := NewNotifier(time.Second, 30*time.Millisecond)
	toasts := n.Initialize(newDoc(t))
	n.Stop()

	time.Sleep(80 * time.Millisecond)
	for _, ts := range toasts {
		assert.False(t, ts.Visible())
	}
}

func TestNoToasts(t *testing.T) {
	doc, err := dom.ParseString(`<html><body></body></html>`, "http://qwitter.test/")
	require.NoError(t, err)
	assert.Empty(t, NewNotifier(DefaultDelay, DefaultShowAfter).Initialize(doc))
}

func TestFromConfigDefaults(t *testing.T) {
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))
	n := FromConfig()
	assert.Equal(t, DefaultDelay, n.Delay)
	assert.Equal(t, DefaultShowAfter, n.ShowAfter)
}
