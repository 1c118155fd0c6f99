package platform

import (
	"context"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(bool)
}

func (l *listeners) add(fn func(bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(bool))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners) notify(dark bool) {
	l.mu.Lock()
	fns := make([]func(bool), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()
	for _, fn := range fns {
		fn(dark)
	}
}

// TerminalScheme reads the scheme from the terminal background color.
type TerminalScheme struct {
	// Query reports whether the background is dark; defaults to termenv.
	Query func() bool

	mu   sync.Mutex
	last *bool
	subs listeners
}

var _ SchemeSource = (*TerminalScheme)(nil)

// NewTerminalScheme uses termenv's background detection.
func NewTerminalScheme() *TerminalScheme {
	return &TerminalScheme{Query: termenv.HasDarkBackground}
}

// PrefersDark queries the terminal now.
func (s *TerminalScheme) PrefersDark() bool {
	dark := s.Query()
	s.mu.Lock()
	s.last = &dark
	s.mu.Unlock()
	return dark
}

// Subscribe registers fn for changes detected by Watch.
func (s *TerminalScheme) Subscribe(fn func(dark bool)) func() {
	return s.subs.add(fn)
}

// Poll queries once and notifies subscribers if the value changed.
func (s *TerminalScheme) Poll() {
	dark := s.Query()
	s.mu.Lock()
	changed := s.last != nil && *s.last != dark
	s.last = &dark
	s.mu.Unlock()
	if changed {
		s.subs.notify(dark)
	}
}

// Watch polls every interval until ctx is done.
func (s *TerminalScheme) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Poll()
		}
	}
}

// ManualScheme is a settable scheme source.
type ManualScheme struct {
	mu   sync.Mutex
	dark bool
	subs listeners
}

var _ SchemeSource = (*ManualScheme)(nil)

// NewManualScheme starts with the given preference.
func NewManualScheme(dark bool) *ManualScheme {
	return &ManualScheme{dark: dark}
}

// PrefersDark returns the current value.
func (s *ManualScheme) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Subscribe registers fn for changes made through Set.
func (s *ManualScheme) Subscribe(fn func(dark bool)) func() {
	return s.subs.add(fn)
}

// Set changes the scheme and notifies subscribers when it differs.
func (s *ManualScheme) Set(dark bool) {
	s.mu.Lock()
	changed := s.dark != dark
	s.dark = dark
	s.mu.Unlock()
	if changed {
		s.subs.notify(dark)
	}
}
