// Package binder wires page controls to actions: it finds the buttons and
// forms a rendered page carries, dispatches the matching action when they
// fire, and patches the page with the result.
package binder

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/qwitter/cli/pkg/api"
	"github.com/qwitter/cli/pkg/dom"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/platform"
)

// GenericFailure is shown for every failure the server did not explain.
const GenericFailure = "Something went wrong. Please try again."

// Actions is the part of the dispatcher the binder drives.
type Actions interface {
	Connect(ctx context.Context, username string) (*api.ConnectResult, error)
	React(ctx context.Context, postID int) (*api.ReactResult, error)
	Bookmark(ctx context.Context, postID int) (*api.BookmarkResult, error)
	Edit(ctx context.Context, postID int, content string) (*api.EditResult, error)
	Delete(ctx context.Context, postID int) (*api.DeleteResult, error)
	Pin(ctx context.Context, postID int) (*api.PinResult, error)
	Routes() api.Routes
}

var _ Actions = (*api.Dispatcher)(nil)

// Binder attaches action handlers to documents.
type Binder struct {
	actions Actions
	nav     platform.Navigator
	alerter platform.Alerter
}

// New returns a binder that reports through nav and alerter.
func New(actions Actions, nav platform.Navigator, alerter platform.Alerter) *Binder {
	return &Binder{actions: actions, nav: nav, alerter: alerter}
}

type binding struct {
	selector string
	event    string
	handler  func(b *Binder, ctx context.Context, ev *dom.Event) error
}

var bindings = []binding{
	{"button.connect", "click", (*Binder).connect},
	{"button.like", "click", (*Binder).react},
	{"button.bookmark", "click", (*Binder).bookmark},
	{"button.edit", "click", (*Binder).toggleEdit},
	{".post-edit-form", "submit", (*Binder).submitEdit},
	{"button.delete", "click", (*Binder).delete},
	{"button.pin", "click", (*Binder).pin},
}

// Attach binds every matching control present in doc and returns how many
// listeners were registered. Controls added later are not bound.
func (b *Binder) Attach(doc *dom.Document) int {
	n := 0
	doc.Update(func() {
		for _, bd := range bindings {
			for _, el := range doc.QueryAll(bd.selector) {
				h := bd.handler
				doc.On(el, bd.event, func(ctx context.Context, ev *dom.Event) error {
					return h(b, ctx, ev)
				})
				n++
			}
		}
	})
	logger.Debug("Bound page controls", "url", doc.URL().String(), "count", n)
	return n
}

// Click fires a click on el.
func (b *Binder) Click(ctx context.Context, el *dom.Element) error {
	_, err := el.Document().Dispatch(ctx, el, "click")
	return err
}

// Submit fires a submit on form.
func (b *Binder) Submit(ctx context.Context, form *dom.Element) (*dom.Event, error) {
	return form.Document().Dispatch(ctx, form, "submit")
}

func (b *Binder) origin() string {
	return platform.Origin(b.nav.Location())
}

// fail applies the failure handling every action shares. The page is never
// mutated here.
func (b *Binder) fail(kind api.ActionKind, err error) error {
	switch {
	case qerrors.IsUnauthenticated(err):
		b.nav.Navigate(b.origin() + b.actions.Routes().LoginPath())
	case qerrors.IsRejected(err):
		b.alerter.Alert(qerrors.CategorizeError(err).Message)
	default:
		logger.Warn("Action failed", "kind", kind, "error", err)
		b.alerter.Alert(GenericFailure)
	}
	return err
}

// locked runs fn under the document lock. Handlers never hold the lock
// across an action call.
func locked(el *dom.Element, fn func()) {
	el.Document().Update(fn)
}

func postID(el *dom.Element, kind api.ActionKind) (int, error) {
	var raw string
	locked(el, func() {
		raw = strings.TrimSpace(el.Data("postid"))
	})
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, qerrors.ValidationError("data-postid", fmt.Sprintf("%q is not a post id", raw)).WithAction(string(kind))
	}
	return id, nil
}

// postOf finds the post container a control belongs to. Callers hold the
// document lock.
func postOf(el *dom.Element, id string) *dom.Element {
	if id != "" {
		if post := el.Document().Query(`div.post[data-postid="` + id + `"]`); post != nil {
			return post
		}
	}
	if post := el.Closest(".post"); post != nil {
		return post
	}
	return el.Parent()
}

func (b *Binder) connect(ctx context.Context, ev *dom.Event) error {
	var username string
	locked(ev.CurrentTarget, func() {
		username = ev.CurrentTarget.Data("username")
	})
	if _, err := b.actions.Connect(ctx, username); err != nil {
		return b.fail(api.ActionConnect, err)
	}
	b.nav.Reload()
	return nil
}

func (b *Binder) react(ctx context.Context, ev *dom.Event) error {
	btn := ev.CurrentTarget
	id, err := postID(btn, api.ActionReact)
	if err != nil {
		return b.fail(api.ActionReact, err)
	}
	res, err := b.actions.React(ctx, id)
	if err != nil {
		return b.fail(api.ActionReact, err)
	}

	style := "far"
	if res.Liked {
		style = "fas"
	}
	markup := fmt.Sprintf(`<i class="%s fa-heart"></i> <span class="ml-1">%d</span>`, style, res.Count)
	var setErr error
	btn.Document().Update(func() {
		setErr = btn.SetInnerHTML(markup)
	})
	return setErr
}

func (b *Binder) bookmark(ctx context.Context, ev *dom.Event) error {
	btn := ev.CurrentTarget
	id, err := postID(btn, api.ActionBookmark)
	if err != nil {
		return b.fail(api.ActionBookmark, err)
	}
	res, err := b.actions.Bookmark(ctx, id)
	if err != nil {
		return b.fail(api.ActionBookmark, err)
	}

	style := "far"
	if res.Bookmarked {
		style = "fas"
	}
	var setErr error
	btn.Document().Update(func() {
		setErr = btn.SetInnerHTML(fmt.Sprintf(`<i class="%s fa-bookmark"></i>`, style))
	})
	return setErr
}

// toggleEdit swaps the rendered body and the edit form of a post.
func (b *Binder) toggleEdit(_ context.Context, ev *dom.Event) error {
	btn := ev.CurrentTarget
	locked(btn, func() {
		post := postOf(btn, btn.Data("postid"))
		if post == nil {
			return
		}
		content := post.Query(".post-content")
		form := post.Query(".post-edit-form")
		if content == nil || form == nil {
			logger.Debug("Post has no edit form", "postid", btn.Data("postid"))
			return
		}
		if content.Display() == "none" {
			content.SetDisplay("block")
			form.SetDisplay("none")
		} else {
			content.SetDisplay("none")
			form.SetDisplay("block")
		}
	})
	return nil
}

// submitEdit sends the textarea content. The form only closes once the
// server confirmed the edit; on failure it stays open with the user's text.
func (b *Binder) submitEdit(ctx context.Context, ev *dom.Event) error {
	ev.PreventDefault()
	form := ev.CurrentTarget
	id, err := postID(form, api.ActionEdit)
	if err != nil {
		return b.fail(api.ActionEdit, err)
	}
	text := ""
	locked(form, func() {
		if ta := form.Query("textarea"); ta != nil {
			text = ta.Value()
		}
	})

	res, err := b.actions.Edit(ctx, id, text)
	if err != nil {
		return b.fail(api.ActionEdit, err)
	}

	locked(form, func() {
		post := postOf(form, form.Data("postid"))
		if post == nil {
			return
		}
		content := post.Query(".post-content")
		body := post.Query(".editable-post-body")
		if body == nil {
			body = content
		}
		if body != nil {
			body.SetText(res.Content)
		}
		form.SetDisplay("none")
		if content != nil {
			content.SetDisplay("block")
		}
	})
	return nil
}

func (b *Binder) delete(ctx context.Context, ev *dom.Event) error {
	id, err := postID(ev.CurrentTarget, api.ActionDelete)
	if err != nil {
		return b.fail(api.ActionDelete, err)
	}
	if _, err := b.actions.Delete(ctx, id); err != nil {
		return b.fail(api.ActionDelete, err)
	}

	if b.actions.Routes().IsDetailPath(b.nav.Location().Path) {
		b.nav.Navigate(b.origin() + "/")
		return nil
	}
	b.nav.Reload()
	return nil
}

func (b *Binder) pin(ctx context.Context, ev *dom.Event) error {
	id, err := postID(ev.CurrentTarget, api.ActionPin)
	if err != nil {
		return b.fail(api.ActionPin, err)
	}
	res, err := b.actions.Pin(ctx, id)
	if err != nil {
		return b.fail(api.ActionPin, err)
	}
	b.nav.Navigate(b.origin() + b.actions.Routes().ProfilePath(res.Username))
	return nil
}
