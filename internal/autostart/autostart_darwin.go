//go:build darwin

package autostart

import (
	"os"
	"path/filepath"
)

const agentLabel = "com.piemenu.agent"

func newPlatform(exe string) (Manager, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &fileEntry{
		path:     filepath.Join(home, "Library", "LaunchAgents", agentLabel+".plist"),
		template: launchAgent,
		entry:    entry{Name: Name, Label: agentLabel, Exec: exe},
	}, nil
}
