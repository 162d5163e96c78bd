// Package paths resolves the satchel configuration and data directories.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// CWD-relative directory names used when nothing else is set.
const (
	DefaultConfigDirName = ".satchel"
	DefaultDataDirName   = ".satchel-data"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "SATCHEL_CONFIG_DIR"
	EnvDataDir   = "SATCHEL_DATA_DIR"
)

const appName = "satchel"

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	getwd         func() (string, error)
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	getwd:         os.Getwd,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// PlatformConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/satchel (fallback ~/.config/satchel)
// macOS:   ~/Library/Application Support/satchel
// Windows: %APPDATA%/satchel
func PlatformConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName), nil
}

// PlatformDataDir returns the per-user data directory.
//
// Linux:   $XDG_DATA_HOME/satchel (fallback ~/.local/share/satchel)
// Others:  same as PlatformConfigDir
func PlatformDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", appName), nil
	}
	return PlatformConfigDir()
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > SATCHEL_CONFIG_DIR > $(CWD)/.satchel. If the
// working directory cannot be determined the platform directory is used.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return PlatformConfigDir()
	}
	return filepath.Join(cwd, DefaultConfigDirName), nil
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > SATCHEL_DATA_DIR > configValue > $(CWD)/.satchel-data. If the
// working directory cannot be determined the platform directory is used.
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return PlatformDataDir()
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
