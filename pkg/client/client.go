package client

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/logger"
)

const (
	// UserAgent identifies the CLI to the server.
	UserAgent = "Qwitter-CLI/0.1.0"

	SessionCookie = "sessionid"
	CSRFCookie    = "csrftoken"
	CSRFHeader    = "X-CSRFToken"
)

var httpClient *resty.Client

// New builds a client for baseURL with request/response debug logging.
func New(baseURL string, timeout time.Duration) *resty.Client {
	c := resty.New()
	c.SetBaseURL(baseURL)
	c.SetTimeout(timeout)
	c.SetHeader("User-Agent", UserAgent)

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "url", resp.Request.URL, "duration", resp.Time())
		return nil
	})

	return c
}

// Init initializes the HTTP client from configuration
func Init() {
	baseURL := config.GetString("api.base_url")
	timeout := time.Duration(config.GetInt("api.timeout")) * time.Second
	httpClient = New(baseURL, timeout)
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetSession attaches the Django session and CSRF cookies to every request.
func SetSession(c *resty.Client, sessionID, csrfToken string) {
	if sessionID != "" {
		c.SetCookie(&http.Cookie{Name: SessionCookie, Value: sessionID, Path: "/"})
	}
	if csrfToken != "" {
		c.SetCookie(&http.Cookie{Name: CSRFCookie, Value: csrfToken, Path: "/"})
		c.SetHeader(CSRFHeader, csrfToken)
	}
}

// ClearSession drops the session by rebuilding the shared client
func ClearSession() {
	Init()
}
