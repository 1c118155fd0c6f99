package service

import (
	"context"
	"fmt"
	"time"

	"github.com/qwitter/cli/pkg/api"
	"github.com/qwitter/cli/pkg/client"
	"github.com/qwitter/cli/pkg/config"
	"github.com/qwitter/cli/pkg/credentials"
	"github.com/qwitter/cli/pkg/logger"
	"github.com/qwitter/cli/pkg/output"
	"github.com/qwitter/cli/pkg/prompter"
)

// AuthService manages the stored session.
type AuthService struct {
	prompt *prompter.Prompter
}

// NewAuthService creates a new auth service
func NewAuthService(p *prompter.Prompter) *AuthService {
	return &AuthService{prompt: p}
}

// Login signs in through the site's login form and stores the session.
func (s *AuthService) Login(ctx context.Context, username, password string) error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds != nil && creds.IsValid() {
		output.PrintWarning("Already logged in as %s", creds.Username)
		confirm, err := s.prompt.Confirm("Continue with new login?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	if username == "" {
		if username, err = s.prompt.String("Username: "); err != nil {
			return err
		}
	}
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		if password, err = s.prompt.Password("Password: "); err != nil {
			return err
		}
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	// Start from a client without the previous session's cookies.
	client.ClearSession()
	d, err := api.Default()
	if err != nil {
		return err
	}

	output.PrintInfo("Authenticating...")
	session, err := d.Login(ctx, username, password)
	if err != nil {
		return err
	}

	creds = &credentials.Credentials{
		SessionID: session.SessionID,
		CSRFToken: session.CSRFToken,
		Username:  session.Username,
		BaseURL:   config.GetString("api.base_url"),
		ExpiresAt: time.Now().Add(SessionLifetime),
	}
	if err := credentials.Save(creds); err != nil {
		output.PrintError("Failed to save credentials: %v", err)
		return err
	}

	output.PrintSuccess("Logged in as %s", session.Username)
	return nil
}

// Logout ends the server session and removes the stored one.
func (s *AuthService) Logout(ctx context.Context) error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}
	if creds == nil {
		output.PrintInfo("Not logged in")
		return nil
	}

	d, _, err := newDispatcher()
	if err == nil {
		err = d.Logout(ctx)
	}
	if err != nil {
		logger.Warn("Server logout failed, removing local session anyway", "error", err)
	}

	if err := credentials.Delete(); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	client.ClearSession()

	output.PrintSuccess("Logged out %s", creds.Username)
	return nil
}

// Status shows who is logged in.
func (s *AuthService) Status() error {
	creds, err := credentials.Load()
	if err != nil {
		return err
	}
	if creds == nil {
		output.PrintInfo("Not logged in. Run 'qwitter auth login'.")
		return nil
	}

	record := map[string]interface{}{
		"username": creds.Username,
		"server":   creds.BaseURL,
		"valid":    creds.IsValid(),
	}
	if !creds.ExpiresAt.IsZero() {
		record["expires_at"] = creds.ExpiresAt.Format(time.RFC3339)
	}
	return output.PrintRecord("Session", record)
}
