package platform

import (
	"net/url"
	"strings"
	"sync"

	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/output"
)

// TerminalAlerter prints notices in red on the terminal.
type TerminalAlerter struct{}

var _ Alerter = TerminalAlerter{}

func (TerminalAlerter) Alert(message string) {
	output.PrintError("%s", message)
}

// PageNavigator tracks the page the CLI is looking at. Load is called with
// the new location on every navigation and reload; the login page is never
// loaded, the user is pointed at the login command instead.
type PageNavigator struct {
	Load func(u *url.URL) error

	mu       sync.Mutex
	location *url.URL
	history  []string
}

var _ Navigator = (*PageNavigator)(nil)

// NewPageNavigator starts at u.
func NewPageNavigator(u *url.URL, load func(u *url.URL) error) *PageNavigator {
	start := *u
	return &PageNavigator{location: &start, Load: load}
}

func (n *PageNavigator) Location() *url.URL {
	n.mu.Lock()
	defer n.mu.Unlock()
	u := *n.location
	return &u
}

// History returns every location navigated to, reloads included.
func (n *PageNavigator) History() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.history...)
}

func (n *PageNavigator) Navigate(target string) {
	u, err := n.Location().Parse(target)
	if err != nil {
		logger.Warn("Ignoring navigation to invalid URL", "target", target, "error", err)
		return
	}

	n.mu.Lock()
	n.location = u
	n.history = append(n.history, u.String())
	n.mu.Unlock()

	if strings.TrimSuffix(u.Path, "/") == "/login" {
		output.PrintWarning("Not logged in. Run 'qwitter auth login' and try again.")
		return
	}
	n.load(u)
}

func (n *PageNavigator) Reload() {
	u := n.Location()
	n.mu.Lock()
	n.history = append(n.history, u.String())
	n.mu.Unlock()
	n.load(u)
}

func (n *PageNavigator) load(u *url.URL) {
	if n.Load == nil {
		return
	}
	if err := n.Load(u); err != nil {
		logger.Error("Failed to load page", "url", u.String(), "error", err)
		output.PrintError("could not load %s: %v", u.String(), err)
	}
}
