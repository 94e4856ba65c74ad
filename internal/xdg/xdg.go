// Package xdg provides XDG Base Directory paths for Questline.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "questline"

// ConfigDir returns the XDG config directory for questline.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}
