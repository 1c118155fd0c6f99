package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestGetConfigDir validates config directory access
func TestGetConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "test_config")); err != nil {
		t.Fatalf("Failed to initialize config: %v", err)
	}

	configDir := GetConfigDir()
	if configDir == "" {
		t.Fatal("Config directory should not be empty")
	}

	if _, err := os.Stat(configDir); err != nil {
		t.Errorf("Config directory should exist: %v", err)
	}
}

// TestInitWithCustomPath validates custom config path
func TestInitWithCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	customConfigPath := filepath.Join(tempDir, "custom", "path", "config.toml")

	if err := Init(customConfigPath); err != nil {
		t.Fatalf("Failed to initialize with custom path: %v", err)
	}

	expectedDir := filepath.Join(tempDir, "custom", "path")
	if GetConfigDir() != expectedDir {
		t.Errorf("Expected config dir %s, got %s", expectedDir, GetConfigDir())
	}
	if GetConfigFilePath() != customConfigPath {
		t.Errorf("Expected config file %s, got %s", customConfigPath, GetConfigFilePath())
	}
}

// TestInitWithoutPath validates default path initialization
func TestInitWithoutPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := Init(""); err != nil {
		t.Fatalf("Failed to initialize with default path: %v", err)
	}

	expectedDir := filepath.Join(home, ".config", "qwitter", "cli")
	if GetConfigDir() != expectedDir {
		t.Errorf("Expected default config dir %s, got %s", expectedDir, GetConfigDir())
	}
}

// TestCredentialsPathStructure validates credentials live under the config dir
func TestCredentialsPathStructure(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "test_config")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	credsPath := GetCredentialsPath()
	if !filepath.IsAbs(credsPath) {
		t.Error("Credentials path should be absolute")
	}
	if filepath.Dir(credsPath) != GetConfigDir() {
		t.Errorf("Credentials path %s should be under config dir %s", credsPath, GetConfigDir())
	}
}

// TestDefaults validates the built-in defaults
func TestDefaults(t *testing.T) {
	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	stringCases := map[string]string{
		"api.base_url":  "http://localhost:8000",
		"api.routes":    "feed",
		"output.format": "text",
		"log.level":     "info",
	}
	for key, want := range stringCases {
		if got := GetString(key); got != want {
			t.Errorf("%s: got %q, want %q", key, got, want)
		}
	}

	intCases := map[string]int{
		"api.timeout":         30,
		"toast.delay_ms":      4000,
		"toast.show_delay_ms": 200,
		"theme.poll_seconds":  5,
	}
	for key, want := range intCases {
		if got := GetInt(key); got != want {
			t.Errorf("%s: got %d, want %d", key, got, want)
		}
	}

	if !GetBool("actions.dedupe") {
		t.Error("actions.dedupe should default to true")
	}

	if got := GetString("theme.state_dir"); got != filepath.Join(tempDir, "state") {
		t.Errorf("theme.state_dir: got %q", got)
	}
}

// TestUserConfigOverridesDefaults validates values read from the TOML file
func TestUserConfigOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")
	content := "[api]\nbase_url = \"https://qwitter.example\"\nroutes = \"network\"\n\n[toast]\ndelay_ms = 1500\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "https://qwitter.example" {
		t.Errorf("api.base_url: got %q", got)
	}
	if got := GetString("api.routes"); got != "network" {
		t.Errorf("api.routes: got %q", got)
	}
	if got := GetInt("toast.delay_ms"); got != 1500 {
		t.Errorf("toast.delay_ms: got %d", got)
	}
	if got := GetInt("api.timeout"); got != 30 {
		t.Errorf("api.timeout should keep its default, got %d", got)
	}
}

// TestEnvOverridesConfig validates QWITTER_ environment overrides
func TestEnvOverridesConfig(t *testing.T) {
	t.Setenv("QWITTER_API_BASE_URL", "http://env.example:9000")

	tempDir := t.TempDir()
	if err := Init(filepath.Join(tempDir, "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if got := GetString("api.base_url"); got != "http://env.example:9000" {
		t.Errorf("api.base_url: got %q", got)
	}
}

// TestSetStringPersists validates writing a value to the user config file
func TestSetStringPersists(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "config.toml")
	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if err := SetString("api.routes", "network"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Re-init failed: %v", err)
	}
	if got := GetString("api.routes"); got != "network" {
		t.Errorf("api.routes after reload: got %q", got)
	}
}

// TestExpandPath validates tilde expansion
func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/logs/cli.log"); got != filepath.Join(home, "logs", "cli.log") {
		t.Errorf("expandPath: got %q", got)
	}
	if got := expandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("expandPath should leave absolute paths alone, got %q", got)
	}
}

// TestSetStringRejectsUnknownKey validates typos are not written to the config file
func TestSetStringRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := Init(path); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if err := SetString("api.rotues", "network"); err == nil {
		t.Fatal("Expected an error for an unknown key")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Config file should not have been written, stat: %v", err)
	}
}

// TestKeysHaveDefaults validates every listed key resolves to a value
func TestKeysHaveDefaults(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	keys := Keys()
	if len(keys) == 0 || keys[0] != "api.base_url" {
		t.Fatalf("Unexpected keys: %v", keys)
	}
	for _, key := range keys {
		if GetString(key) == "" {
			t.Errorf("%s has no default", key)
		}
	}
}
