package credentials

import (
	"os"
	"time"

	json "github.com/json-iterator/go"
	"github.com/qwitter/cli/pkg/config"
)

// Credentials is the persisted Django session of the logged in user.
type Credentials struct {
	SessionID string    `json:"session_id"`
	CSRFToken string    `json:"csrf_token"`
	Username  string    `json:"username"`
	BaseURL   string    `json:"base_url"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	path := config.GetCredentialsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // not logged in yet
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	path := config.GetCredentialsPath()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// owner read/write only
	return os.WriteFile(path, data, 0600)
}

// Delete deletes credentials from disk
func Delete() error {
	err := os.Remove(config.GetCredentialsPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsExpired reports whether the session cookie has expired. Sessions without
// an expiry are browser-session cookies and never expire locally.
func (c *Credentials) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are usable
func (c *Credentials) IsValid() bool {
	return c.SessionID != "" && !c.IsExpired()
}
