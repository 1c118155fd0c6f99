// Package toast shows the server-rendered flash messages of a page and
// hides them again after a fixed delay.
package toast

import (
	"context"
	"sync"
	"time"

	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/dom"
	"github.com/qwitter/cli/pkg/logger"
)

// Default timings, overridable through toast.delay_ms and toast.show_delay_ms.
const (
	DefaultDelay     = 4000 * time.Millisecond
	DefaultShowAfter = 200 * time.Millisecond
)

const (
	Selector        = ".toast"
	DismissSelector = `[data-bs-dismiss="toast"]`
)

// Notifier schedules toasts and owns their timers.
type Notifier struct {
	// Delay is how long a shown toast stays visible.
	Delay time.Duration
	// ShowAfter is how long after Initialize toasts appear.
	ShowAfter time.Duration

	mu      sync.Mutex
	timers  []*time.Timer
	stopped bool
}

// NewNotifier uses the given timings.
func NewNotifier(delay, showAfter time.Duration) *Notifier {
	return &Notifier{Delay: delay, ShowAfter: showAfter}
}

// FromConfig reads timings from configuration.
func FromConfig() *Notifier {
	delay := time.Duration(config.GetInt("toast.delay_ms")) * time.Millisecond
	if delay <= 0 {
		delay = DefaultDelay
	}
	showAfter := time.Duration(config.GetInt("toast.show_delay_ms")) * time.Millisecond
	if showAfter < 0 {
		showAfter = DefaultShowAfter
	}
	return NewNotifier(delay, showAfter)
}

// Toast is one notification element.
type Toast struct {
	n  *Notifier
	el *dom.Element

	mu   sync.Mutex
	hide *time.Timer
}

// Initialize wraps every toast in doc and schedules it to show. Toasts
// added later are not picked up.
func (n *Notifier) Initialize(doc *dom.Document) []*Toast {
	var toasts []*Toast
	doc.Update(func() {
		for _, el := range doc.QueryAll(Selector) {
			t := &Toast{n: n, el: el}
			for _, btn := range el.QueryAll(DismissSelector) {
				doc.On(btn, "click", func(context.Context, *dom.Event) error {
					t.Hide()
					return nil
				})
			}
			n.after(n.ShowAfter, t.Show)
			toasts = append(toasts, t)
		}
	})
	logger.Debug("Scheduled toasts", "count", len(toasts))
	return toasts
}

// Element returns the toast's element.
func (t *Toast) Element() *dom.Element {
	return t.el
}

// Visible reports whether the toast is currently shown.
func (t *Toast) Visible() bool {
	var shown bool
	t.el.Document().Update(func() {
		shown = t.el.HasClass("show")
	})
	return shown
}

// Text returns the toast's message.
func (t *Toast) Text() string {
	var text string
	t.el.Document().Update(func() {
		if body := t.el.Query(".toast-body"); body != nil {
			text = body.Text()
		} else {
			text = t.el.Text()
		}
	})
	return text
}

// Show displays the toast and arms its auto-hide timer.
func (t *Toast) Show() {
	t.el.Document().Update(func() {
		t.el.RemoveClass("hide")
		t.el.AddClass("show")
	})

	t.mu.Lock()
	if t.hide != nil {
		t.hide.Stop()
	}
	t.hide = t.n.after(t.n.Delay, t.Hide)
	t.mu.Unlock()
}

// Hide removes the toast from view.
func (t *Toast) Hide() {
	t.mu.Lock()
	if t.hide != nil {
		t.hide.Stop()
		t.hide = nil
	}
	t.mu.Unlock()

	t.el.Document().Update(func() {
		t.el.RemoveClass("show")
		t.el.AddClass("hide")
	})
}

// after runs fn once d has passed unless the notifier is stopped first.
func (n *Notifier) after(d time.Duration, fn func()) *time.Timer {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return nil
	}
	timer := time.AfterFunc(d, func() {
		n.mu.Lock()
		stopped := n.stopped
		n.mu.Unlock()
		if !stopped {
			fn()
		}
	})
	n.timers = append(n.timers, timer)
	return timer
}

// Stop cancels every pending show and hide.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopped = true
	for _, timer := range n.timers {
		timer.Stop()
	}
	n.timers = nil
}
