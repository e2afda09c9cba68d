package workspace

import (
	"path/filepath"
	"strings"
)

// parseDesktopEntry разбирает секцию [Desktop Entry] файла .desktop.
// Идентификатором служит StartupWMClass, иначе имя исполняемого файла из Exec:
// именно их показывает активное окно.
func parseDesktopEntry(path string, data []byte) (App, bool) {
	var name, exec, wmClass string
	hidden := false
	inEntry := false

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		if len(line) > 2 && line[0] == '[' && line[len(line)-1] == ']' {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Name":
			if name == "" {
				name = value
			}
		case "Exec":
			if exec == "" {
				exec = value
			}
		case "StartupWMClass":
			wmClass = value
		case "NoDisplay", "Hidden":
			if strings.EqualFold(value, "true") {
				hidden = true
			}
		case "Type":
			if value != "Application" {
				hidden = true
			}
		}
	}

	if hidden || name == "" || exec == "" {
		return App{}, false
	}

	bin := execBinary(exec)
	id := wmClass
	if id == "" {
		id = filepath.Base(bin)
	}
	if id == "" || id == "." {
		return App{}, false
	}
	return App{ID: id, Name: name, Path: path}, true
}

// execBinary возвращает первую команду строки Exec, пропуская env VAR=... и кавычки.
func execBinary(exec string) string {
	fields := strings.Fields(exec)
	for i := 0; i < len(fields); i++ {
		f := strings.Trim(fields[i], `"'`)
		if f == "env" || strings.Contains(f, "=") {
			continue
		}
		return f
	}
	return ""
}
