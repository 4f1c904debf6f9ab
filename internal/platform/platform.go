// Package platform resolves the conventional per-OS locations
// where desktop tools keep their data. Resolution never fails:
// when an environment variable is unset the hard-coded fallback
// for the current OS is returned, whether or not the path exists.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// goos is a seam for tests; production code always sees
// runtime.GOOS.
var goos = runtime.GOOS

// Home returns the user's home directory. Falls back to the HOME
// (or USERPROFILE on Windows) environment variable, then to "."
// so callers never receive an empty path.
func Home() string {
	if h, err := os.UserHomeDir(); err == nil && h != "" {
		return h
	}
	if goos == "windows" {
		if h := os.Getenv("USERPROFILE"); h != "" {
			return h
		}
	}
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return "."
}

// AppData returns the roaming-equivalent application data
// directory: %APPDATA% on Windows, ~/Library/Application Support
// on macOS, $XDG_CONFIG_HOME or ~/.config elsewhere.
func AppData() string {
	switch goos {
	case "windows":
		if v := os.Getenv("APPDATA"); v != "" {
			return v
		}
		return filepath.Join(Home(), "AppData", "Roaming")
	case "darwin":
		return filepath.Join(Home(), "Library", "Application Support")
	default:
		if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
			return v
		}
		return filepath.Join(Home(), ".config")
	}
}

// LocalAppData returns the non-roaming application data
// directory: %LOCALAPPDATA% on Windows, ~/Library/Application
// Support on macOS (which does not distinguish the two), and
// $XDG_DATA_HOME or ~/.local/share elsewhere.
func LocalAppData() string {
	switch goos {
	case "windows":
		if v := os.Getenv("LOCALAPPDATA"); v != "" {
			return v
		}
		return filepath.Join(Home(), "AppData", "Local")
	case "darwin":
		return filepath.Join(Home(), "Library", "Application Support")
	default:
		if v := os.Getenv("XDG_DATA_HOME"); v != "" {
			return v
		}
		return filepath.Join(Home(), ".local", "share")
	}
}

// IsWindows reports whether the resolver is operating with
// Windows path conventions. Used by callers that need to seed
// drive letters when reconstructing encoded paths.
func IsWindows() bool {
	return goos == "windows"
}
