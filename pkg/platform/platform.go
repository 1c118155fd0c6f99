// Package platform holds the capabilities the page layer needs from its host:
// navigation, blocking notices, a persistent key-value store and the
// operating system's color scheme.
package platform

import (
	"net/url"
)

// Navigator owns the current location.
type Navigator interface {
	Location() *url.URL
	// Navigate leaves the current page for target, an absolute URL.
	Navigate(target string)
	// Reload loads the current location again.
	Reload()
}

// Alerter shows a blocking notice to the user.
type Alerter interface {
	Alert(message string)
}

// Store persists small string values across runs.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// SchemeSource reports the OS-level color scheme preference.
type SchemeSource interface {
	PrefersDark() bool
	// Subscribe registers fn for scheme changes and returns a cancel func.
	Subscribe(fn func(dark bool)) (cancel func())
}

// Origin returns scheme://host of u, the base for login and profile URLs.
func Origin(u *url.URL) string {
	return (&url.URL{Scheme: u.Scheme, Host: u.Host}).String()
}
