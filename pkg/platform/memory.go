package platform

import (
	"net/url"
	"sync"
)

// MemoryStore is a Store that lives for one process.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	Writes int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.Writes++
	return nil
}

// RecordingNavigator remembers every navigation instead of performing it.
type RecordingNavigator struct {
	mu          sync.Mutex
	location    *url.URL
	Navigations []string
	Reloads     int
}

var _ Navigator = (*RecordingNavigator)(nil)

// NewRecordingNavigator starts at rawURL.
func NewRecordingNavigator(rawURL string) *RecordingNavigator {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	return &RecordingNavigator{location: u}
}

func (n *RecordingNavigator) Location() *url.URL {
	n.mu.Lock()
	defer n.mu.Unlock()
	u := *n.location
	return &u
}

func (n *RecordingNavigator) Navigate(target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Navigations = append(n.Navigations, target)
	if u, err := url.Parse(target); err == nil {
		n.location = u
	}
}

func (n *RecordingNavigator) Reload() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Reloads++
}

// RecordingAlerter collects alert messages.
type RecordingAlerter struct {
	mu     sync.Mutex
	Alerts []string
}

var _ Alerter = (*RecordingAlerter)(nil)

func (a *RecordingAlerter) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Alerts = append(a.Alerts, message)
}
