package dom

import (
	"context"

	"golang.org/x/net/html"
)

// Event is a single dispatch of an event type on a target element.
type Event struct {
	Type string
	// Target is the element the event was dispatched on.
	Target *Element
	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element

	defaultPrevented bool
	stopped          bool
}

// PreventDefault suppresses the default action (form submission).
func (ev *Event) PreventDefault() {
	ev.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (ev *Event) DefaultPrevented() bool {
	return ev.defaultPrevented
}

// StopPropagation keeps the event from reaching ancestors.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// On registers h for events of type eventType on el.
func (d *Document) On(el *Element, eventType string, h Handler) {
	d.lmu.Lock()
	defer d.lmu.Unlock()
	byType, ok := d.listeners[el.node]
	if !ok {
		byType = make(map[string][]Handler)
		d.listeners[el.node] = byType
	}
	byType[eventType] = append(byType[eventType], h)
}

// Off removes every listener registered on el.
func (d *Document) Off(el *Element) {
	d.lmu.Lock()
	defer d.lmu.Unlock()
	delete(d.listeners, el.node)
}

// ListenerCount returns how many listeners of eventType el carries.
func (d *Document) ListenerCount(el *Element, eventType string) int {
	d.lmu.RLock()
	defer d.lmu.RUnlock()
	return len(d.listeners[el.node][eventType])
}

func (d *Document) handlers(n *html.Node, eventType string) []Handler {
	d.lmu.RLock()
	defer d.lmu.RUnlock()
	hs := d.listeners[n][eventType]
	return append([]Handler(nil), hs...)
}

// Dispatch fires eventType on el and bubbles it through its ancestors.
// It returns the event and the first error a listener returned; later
// listeners still run after an error.
func (d *Document) Dispatch(ctx context.Context, el *Element, eventType string) (*Event, error) {
	ev := &Event{Type: eventType, Target: el}
	var firstErr error
	for n := el.node; n != nil && !ev.stopped; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		hs := d.handlers(n, eventType)
		if len(hs) == 0 {
			continue
		}
		ev.CurrentTarget = d.wrap(n)
		for _, h := range hs {
			if err := h(ctx, ev); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}
	return ev, firstErr
}
