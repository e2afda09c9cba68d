//go:build windows

package autostart

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const runKey = `Software\Microsoft\Windows\CurrentVersion\Run`

// runValue - автозапуск через значение в HKCU\...\Run.
type runValue struct {
	command string
}

func newPlatform(exe string) (Manager, error) {
	return &runValue{command: `"` + exe + `"`}, nil
}

func (r *runValue) IsEnabled() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.QUERY_VALUE)
	if err != nil {
		return false
	}
	defer k.Close()
	_, _, err = k.GetStringValue(Name)
	return err == nil
}

func (r *runValue) Enable() error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("не удалось открыть ключ Run: %w", err)
	}
	defer k.Close()
	return k.SetStringValue(Name, r.command)
}

func (r *runValue) Disable() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKey, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("не удалось открыть ключ Run: %w", err)
	}
	defer k.Close()
	if err := k.DeleteValue(Name); err != nil && err != registry.ErrNotExist {
		return err
	}
	return nil
}
