package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/qwitter/cli/pkg/client"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
)

// CSRFField is the hidden input Django renders into every form.
const CSRFField = "csrfmiddlewaretoken"

// Session is the pair of cookies that authenticate later requests.
type Session struct {
	SessionID string `json:"session_id"`
	CSRFToken string `json:"csrf_token"`
	Username  string `json:"username"`
}

// Login submits the login form the way a browser does and returns the
// session cookies the server issued.
func (d *Dispatcher) Login(ctx context.Context, username, password string) (*Session, error) {
	logger.Debug("Attempting login", "username", username)

	form, err := d.FetchPage(ctx, d.routes.LoginFormPath())
	if err != nil {
		return nil, err
	}
	token := ""
	if input := form.Query(`input[name="` + CSRFField + `"]`); input != nil {
		token = input.Value()
	}
	if token == "" {
		token = d.cookie(client.CSRFCookie)
	}
	if token == "" {
		return nil, qerrors.LoginError("login form did not provide a CSRF token")
	}

	resp, err := d.http.R().
		SetContext(ctx).
		SetHeader("Referer", d.absolute(d.routes.LoginFormPath())).
		SetHeader(client.CSRFHeader, token).
		SetFormData(map[string]string{
			CSRFField:  token,
			"username": username,
			"password": password,
		}).
		Post(d.routes.LoginFormPath())
	if err != nil {
		return nil, qerrors.Transport("login request failed", err)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return nil, qerrors.ServerError()
	}

	session := &Session{
		SessionID: d.cookie(client.SessionCookie),
		CSRFToken: d.cookie(client.CSRFCookie),
		Username:  username,
	}
	if session.SessionID == "" {
		return nil, qerrors.LoginError("Invalid username and/or password.")
	}
	if session.CSRFToken != "" {
		d.http.SetHeader(client.CSRFHeader, session.CSRFToken)
	}

	logger.Debug("Login successful", "username", username)
	return session, nil
}

// Logout ends the server-side session. The caller removes stored credentials.
func (d *Dispatcher) Logout(ctx context.Context) error {
	resp, err := d.http.R().SetContext(ctx).Get(d.routes.LogoutPath())
	if err != nil {
		return qerrors.Transport("logout request failed", err)
	}
	logger.Debug("Logged out", "status", resp.StatusCode())
	return nil
}

func (d *Dispatcher) absolute(path string) string {
	base, err := url.Parse(d.http.BaseURL)
	if err != nil {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	return base.ResolveReference(ref).String()
}

// cookie reads name from the client's jar for the base URL.
func (d *Dispatcher) cookie(name string) string {
	jar := d.http.GetClient().Jar
	if jar == nil {
		return ""
	}
	base, err := url.Parse(d.http.BaseURL)
	if err != nil {
		return ""
	}
	for _, c := range jar.Cookies(base) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
