package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/qwitter/cli/pkg/api"
	"github.com/qwitter/cli/pkg/client"
	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/credentials"
	qerrors "github.com/qwitter/cli/pkg/errors"
	"github.com/qwitter/cli/pkg/logger"
)

// SessionLifetime matches Django's default SESSION_COOKIE_AGE.
const SessionLifetime = 14 * 24 * time.Hour

// ReportedError marks a failure the user has already been shown, through an
// alert or a navigation notice, so the command should exit without printing
// it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r *ReportedError
	return errors.As(err, &r)
}

// newDispatcher builds a dispatcher over the shared client, carrying the
// stored session when there is one for the configured server.
func newDispatcher() (*api.Dispatcher, *credentials.Credentials, error) {
	creds, err := credentials.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load credentials: %w", err)
	}

	c := client.GetClient()
	if creds != nil {
		switch {
		case creds.IsExpired():
			return nil, nil, qerrors.SessionExpiredError()
		case creds.BaseURL != "" && creds.BaseURL != config.GetString("api.base_url"):
			logger.Warn("Ignoring credentials for another server", "server", creds.BaseURL)
			creds = nil
		default:
			client.SetSession(c, creds.SessionID, creds.CSRFToken)
		}
	}

	d, err := api.Default()
	if err != nil {
		return nil, nil, err
	}
	return d, creds, nil
}

func truncate(s string, length int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > length {
		return s[:length-3] + "..."
	}
	return s
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
