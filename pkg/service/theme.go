package service

import (
	"context"
	"time"

	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/dom"
	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/output"
	"github.com/qwitter/cli/pkg/platform"
	"github.com/qwitter/cli/pkg/theme"
)

// ThemeService reads and changes the stored theme preference.
type ThemeService struct {
	store  platform.Store
	scheme platform.SchemeSource
}

// NewThemeService uses the on-disk store and the terminal's background.
func NewThemeService() *ThemeService {
	return &ThemeService{
		store:  platform.NewDiskStore(config.GetString("theme.state_dir")),
		scheme: platform.NewTerminalScheme(),
	}
}

// Get prints the stored preference and what it resolves to.
func (s *ThemeService) Get() error {
	c := theme.New(s.store, s.scheme)
	pref, err := c.Current()
	if err != nil {
		return err
	}
	return output.PrintRecord("Theme", map[string]interface{}{
		"preference": string(pref),
		"theme":      string(c.Resolve(pref)),
	})
}

// Set stores a new preference.
func (s *ThemeService) Set(value string) error {
	pref, err := theme.ParsePreference(value)
	if err != nil {
		return err
	}
	c := theme.New(s.store, s.scheme)
	if err := c.Set(pref); err != nil {
		return err
	}
	output.PrintSuccess("Theme set to %s (%s)", pref, c.Resolve(pref))
	return nil
}

// Watch follows the terminal's background until ctx is done and prints the
// theme a page would get each time it changes.
func (s *ThemeService) Watch(ctx context.Context) error {
	scheme, ok := s.scheme.(*platform.TerminalScheme)
	if !ok {
		scheme = platform.NewTerminalScheme()
	}

	doc, err := dom.ParseString("<html><body></body></html>", config.GetString("api.base_url"))
	if err != nil {
		return err
	}
	c := theme.New(s.store, scheme)
	if err := c.Initialize(doc); err != nil {
		return err
	}
	defer c.Close()

	report := func() {
		pref, err := c.Current()
		if err != nil {
			logger.Warn("Could not read theme", "error", err)
			return
		}
		output.PrintInfo("%s -> %s", pref, c.Resolve(pref))
	}
	cancel := scheme.Subscribe(func(bool) { report() })
	defer cancel()
	report()

	interval := time.Duration(config.GetInt("theme.poll_seconds")) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	scheme.Watch(ctx, interval)
	return nil
}
