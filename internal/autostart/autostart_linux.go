//go:build linux

package autostart

import (
	"os"
	"path/filepath"
)

func newPlatform(exe string) (Manager, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config")
	}
	return xdgEntry(filepath.Join(dir, "autostart"), exe), nil
}

func xdgEntry(dir, exe string) *fileEntry {
	return &fileEntry{
		path:     filepath.Join(dir, "piemenu.desktop"),
		template: desktopEntry,
		entry:    entry{Name: Name, Exec: exe},
	}
}
