package client

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/qwitter/cli/pkg/config"
)

func initConfig(t *testing.T) {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}
}

// TestGetClientSingleton validates that GetClient returns same instance
func TestGetClientSingleton(t *testing.T) {
	initConfig(t)
	httpClient = nil

	client1 := GetClient()
	client2 := GetClient()

	if client1 == nil {
		t.Fatal("GetClient should not return nil")
	}
	if client1 != client2 {
		t.Error("GetClient should return same instance")
	}
}

// TestClientInitializesWithDefaults validates base URL and User-Agent
func TestClientInitializesWithDefaults(t *testing.T) {
	initConfig(t)
	httpClient = nil

	c := GetClient()
	if c.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default base URL, got %s", c.BaseURL)
	}
	if got := c.Header.Get("User-Agent"); got != UserAgent {
		t.Errorf("Expected User-Agent %s, got %s", UserAgent, got)
	}
}

// TestClearSessionReinitializesClient validates a fresh client after logout
func TestClearSessionReinitializesClient(t *testing.T) {
	initConfig(t)
	httpClient = nil

	original := GetClient()
	SetSession(original, "abc", "tok")
	ClearSession()

	if GetClient() == original {
		t.Error("ClearSession should build a new client")
	}
	if GetClient().Header.Get(CSRFHeader) != "" {
		t.Error("CSRF header should be gone after ClearSession")
	}
}

// TestSetSessionSendsCookiesAndCSRF validates what reaches the server
func TestSetSessionSendsCookiesAndCSRF(t *testing.T) {
	var gotSession, gotCSRFCookie, gotCSRFHeader, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(SessionCookie); err == nil {
			gotSession = c.Value
		}
		if c, err := r.Cookie(CSRFCookie); err == nil {
			gotCSRFCookie = c.Value
		}
		gotCSRFHeader = r.Header.Get(CSRFHeader)
		gotAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	SetSession(c, "session-1", "csrf-1")

	if _, err := c.R().Post("/feed/posts/1/react/"); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	if gotSession != "session-1" {
		t.Errorf("session cookie: got %q", gotSession)
	}
	if gotCSRFCookie != "csrf-1" || gotCSRFHeader != "csrf-1" {
		t.Errorf("csrf: cookie %q header %q", gotCSRFCookie, gotCSRFHeader)
	}
	if gotAgent != UserAgent {
		t.Errorf("user agent: got %q", gotAgent)
	}
}

// TestSetSessionSkipsEmptyValues validates anonymous clients stay anonymous
func TestSetSessionSkipsEmptyValues(t *testing.T) {
	c := New("http://localhost", time.Second)
	SetSession(c, "", "")

	if len(c.Cookies) != 0 {
		t.Errorf("expected no cookies, got %d", len(c.Cookies))
	}
	if c.Header.Get(CSRFHeader) != "" {
		t.Error("expected no CSRF header")
	}
}
