// Package paths resolves where qatrack keeps its configuration and its
// SQLite database.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName is the directory created under the platform base directories.
const appName = "qatrack"

// ConfigFileName is the config file read from the config directory.
const ConfigFileName = "config.yaml"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "QATRACK_CONFIG_DIR"
	EnvDataDir   = "QATRACK_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// xdgDir returns $env/qatrack, falling back to ~/<fallback...>/qatrack.
func xdgDir(env string, fallback ...string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...), nil
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/qatrack (fallback ~/.config/qatrack)
// macOS:   ~/Library/Application Support/qatrack
// Windows: %APPDATA%/qatrack
func DefaultConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// DefaultDataDir returns the platform-specific default data directory.
// Outside Linux it is the config directory.
//
// Linux:   $XDG_DATA_HOME/qatrack (fallback ~/.local/share/qatrack)
func DefaultDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", ".local", "share")
	}
	return DefaultConfigDir()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > QATRACK_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > QATRACK_DATA_DIR > config file value > DefaultDataDir(). This is
// the same order viper applies to every other setting.
func ResolveDataDir(flag, configValue string) (string, error) {
	for _, dir := range []string{flag, os.Getenv(EnvDataDir), configValue} {
		if dir != "" {
			return filepath.Abs(dir)
		}
	}
	return DefaultDataDir()
}
