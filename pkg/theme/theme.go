// Package theme keeps the page's color theme in sync with the user's stored
// preference and, for "auto", with the operating system's scheme.
package theme

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/qwitter/cli/pkg/dom"
	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/platform"
)

// Preference is a stored theme choice.
type Preference string

const (
	Light Preference = "light"
	Dark  Preference = "dark"
	Auto  Preference = "auto"
)

const (
	// StoreKey is where the preference is persisted.
	StoreKey = "theme"
	// TogglerID is the id of the page's theme <select>.
	TogglerID = "theme-toggler"
	// Attribute on <body> that carries the resolved theme.
	Attribute = "data-bs-theme"
)

// Preferences lists the valid choices.
var Preferences = []Preference{Light, Dark, Auto}

// ParsePreference accepts light, dark or auto in any case.
func ParsePreference(s string) (Preference, error) {
	p := Preference(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Preferences {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid theme %q (want light, dark or auto)", s)
}

// Controller applies theme preferences to documents.
type Controller struct {
	store  platform.Store
	scheme platform.SchemeSource

	mu     sync.Mutex
	doc    *dom.Document
	cancel func()
}

// New returns a controller over the given store and scheme source.
func New(store platform.Store, scheme platform.SchemeSource) *Controller {
	return &Controller{store: store, scheme: scheme}
}

// Current returns the stored preference; missing or unreadable values
// count as Auto.
func (c *Controller) Current() (Preference, error) {
	raw, ok, err := c.store.Get(StoreKey)
	if err != nil {
		return Auto, fmt.Errorf("read theme: %w", err)
	}
	if !ok {
		return Auto, nil
	}
	p, err := ParsePreference(raw)
	if err != nil {
		return Auto, nil
	}
	return p, nil
}

// Resolve turns Auto into Light or Dark using the scheme as it is now.
func (c *Controller) Resolve(pref Preference) Preference {
	if pref != Auto {
		return pref
	}
	if c.scheme.PrefersDark() {
		return Dark
	}
	return Light
}

// Apply sets the resolved theme on the document body.
func (c *Controller) Apply(doc *dom.Document, pref Preference) {
	resolved := c.Resolve(pref)
	doc.Update(func() {
		if body := doc.Body(); body != nil {
			body.SetAttr(Attribute, string(resolved))
		}
	})
	logger.Debug("Applied theme", "preference", pref, "theme", resolved)
}

// Initialize makes sure a preference is stored, applies it to doc, binds the
// page's toggler and follows OS scheme changes while the preference is auto.
func (c *Controller) Initialize(doc *dom.Document) error {
	raw, ok, err := c.store.Get(StoreKey)
	if err != nil {
		return fmt.Errorf("read theme: %w", err)
	}
	pref, perr := ParsePreference(raw)
	if !ok || perr != nil {
		pref = Auto
		if err := c.store.Set(StoreKey, string(Auto)); err != nil {
			return fmt.Errorf("store theme: %w", err)
		}
	}

	c.Apply(doc, pref)

	var toggler *dom.Element
	doc.Update(func() {
		if toggler = doc.ByID(TogglerID); toggler != nil {
			toggler.SetValue(string(pref))
		}
	})
	if toggler != nil {
		doc.On(toggler, "change", func(_ context.Context, ev *dom.Event) error {
			var value string
			doc.Update(func() {
				value = ev.CurrentTarget.Value()
			})
			return c.Set(Preference(value))
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
	c.doc = doc
	c.cancel = c.scheme.Subscribe(c.schemeChanged)
	return nil
}

// Set stores pref and applies it to the bound document, if any.
func (c *Controller) Set(pref Preference) error {
	p, err := ParsePreference(string(pref))
	if err != nil {
		return err
	}
	if err := c.store.Set(StoreKey, string(p)); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}

	c.mu.Lock()
	doc := c.doc
	c.mu.Unlock()
	if doc != nil {
		c.Apply(doc, p)
	}
	return nil
}

func (c *Controller) schemeChanged(dark bool) {
	c.mu.Lock()
	doc := c.doc
	c.mu.Unlock()
	if doc == nil {
		return
	}
	pref, err := c.Current()
	if err != nil {
		logger.Warn("Ignoring scheme change", "error", err)
		return
	}
	if pref == Auto {
		c.Apply(doc, Auto)
	}
}

// Close stops following the OS scheme.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.doc = nil
}
