// Package config loads qwitter CLI settings from TOML files and QWITTER_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

var configDir string
var configFilePath string
var credentialsPath string

func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = os.Getenv("APPDATA")
		}
		if base != "" {
			return filepath.Join(base, "qwitter", "cli"), nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "qwitter", "cli"), nil
	}
	return filepath.Join(home, ".config", "qwitter", "cli"), nil
}

func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "Qwitter", "cli", "config.toml")}
	}
	return []string{
		"/etc/qwitter/cli/config.toml",
		"/usr/local/etc/qwitter/cli/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	credentialsPath = filepath.Join(configDir, "credentials")

	viper.Reset()
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("QWITTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// user config overrides system config
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break
		}
	}

	viper.SetConfigFile(configFilePath)
	_ = viper.MergeInConfig()

	return nil
}

// setting is one known configuration key.
type setting struct {
	key string
	def func() interface{}
	// path values get a leading ~ expanded.
	path bool
}

func fixed(v interface{}) func() interface{} {
	return func() interface{} { return v }
}

func underConfigDir(name string) func() interface{} {
	return func() interface{} { return filepath.Join(configDir, name) }
}

var settings = []setting{
	{key: "api.base_url", def: fixed("http://localhost:8000")},
	{key: "api.timeout", def: fixed(30)},
	{key: "api.routes", def: fixed("feed")},
	{key: "actions.dedupe", def: fixed(true)},
	{key: "theme.state_dir", def: underConfigDir("state"), path: true},
	{key: "theme.poll_seconds", def: fixed(5)},
	{key: "toast.delay_ms", def: fixed(4000)},
	{key: "toast.show_delay_ms", def: fixed(200)},
	{key: "output.format", def: fixed("text")},
	{key: "log.level", def: fixed("info")},
	{key: "log.file", def: underConfigDir("qwitter-cli.log"), path: true},
}

func setDefaults() {
	for _, st := range settings {
		viper.SetDefault(st.key, st.def())
	}
}

// Keys lists every known setting in display order.
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for _, st := range settings {
		keys = append(keys, st.key)
	}
	return keys
}

func lookup(key string) (setting, bool) {
	for _, st := range settings {
		if st.key == key {
			return st, true
		}
	}
	return setting{}, false
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if st, ok := lookup(key); ok && st.path {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set overrides a value for the current process without writing the config file.
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// SetString persists a known setting to the user config file.
func SetString(key string, value string) error {
	if _, ok := lookup(key); !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	viper.Set(key, value)
	return viper.WriteConfigAs(configFilePath)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetConfigFilePath returns the user config file path
func GetConfigFilePath() string {
	return configFilePath
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() string {
	return credentialsPath
}
