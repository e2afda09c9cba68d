// Package autostart включает и выключает запуск приложения при входе в систему.
package autostart

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"text/template"
)

// Name - имя записи автозапуска.
const Name = "PieMenu"

// Manager - платформенная запись автозапуска.
type Manager interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// New возвращает Manager текущей платформы для исполняемого файла процесса.
func New() (Manager, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("не удалось определить путь к программе: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return newPlatform(exe)
}

// Apply приводит запись автозапуска к значению флага.
func Apply(m Manager, enabled bool) error {
	if m.IsEnabled() == enabled {
		return nil
	}
	if enabled {
		log.Println("Включение автозапуска")
		return m.Enable()
	}
	log.Println("Отключение автозапуска")
	return m.Disable()
}

var desktopEntry = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Name={{.Name}}
Comment=Radial command menu
Exec="{{.Exec}}"
Terminal=false
X-GNOME-Autostart-enabled=true
`))

var launchAgent = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{.Exec}}</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`))

type entry struct {
	Name  string
	Label string
	Exec  string
}

func render(t *template.Template, e entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fileEntry - автозапуск через файл в известном каталоге (XDG autostart, LaunchAgents).
type fileEntry struct {
	path     string
	template *template.Template
	entry    entry
}

func (f *fileEntry) IsEnabled() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

func (f *fileEntry) Enable() error {
	data, err := render(f.template, f.entry)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("не удалось создать каталог автозапуска: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("не удалось записать %s: %w", f.path, err)
	}
	return nil
}

func (f *fileEntry) Disable() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("не удалось удалить %s: %w", f.path, err)
	}
	return nil
}
