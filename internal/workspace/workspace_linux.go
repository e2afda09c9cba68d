//go:build linux

package workspace

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

type linuxSystem struct{}

func newSystem() Provider {
	return linuxSystem{}
}

// Frontmost определяет активное окно через xdotool, а процесс через /proc.
// Под чистым Wayland активное окно недоступно.
func (linuxSystem) Frontmost() (App, error) {
	out, err := exec.Command("xdotool", "getactivewindow").Output()
	if err != nil {
		return App{}, fmt.Errorf("%w: xdotool getactivewindow: %v", ErrUnavailable, err)
	}
	windowID := strings.TrimSpace(string(out))

	app := App{}
	if out, err := exec.Command("xdotool", "getwindowpid", windowID).Output(); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(out))); err == nil {
			if target, err := os.Readlink(fmt.Sprintf("/proc/%d/exe", pid)); err == nil {
				app.Path = target
				app.ID = filepath.Base(target)
			}
		}
	}

	if out, err := exec.Command("xprop", "-id", windowID, "WM_CLASS").Output(); err == nil {
		if instance, class, ok := parseWMClass(string(out)); ok {
			app.Name = class
			if app.ID == "" {
				app.ID = instance
			}
		}
	}
	if app.Name == "" {
		app.Name = app.ID
	}
	if app.ID == "" {
		return App{}, fmt.Errorf("%w: не удалось определить процесс окна %s", ErrUnavailable, windowID)
	}
	return app, nil
}

// parseWMClass разбирает вывод `xprop WM_CLASS`: WM_CLASS(STRING) = "gimp", "Gimp".
func parseWMClass(out string) (instance, class string, ok bool) {
	_, value, found := strings.Cut(out, "=")
	if !found {
		return "", "", false
	}
	parts := strings.Split(value, ",")
	if len(parts) < 2 {
		return "", "", false
	}
	instance = strings.Trim(strings.TrimSpace(parts[0]), `"`)
	class = strings.Trim(strings.TrimSpace(parts[1]), `"`)
	return instance, class, instance != "" || class != ""
}

// Running ищет процесс, у которого имя исполняемого файла или comm совпадает с id.
func (linuxSystem) Running(id string) (App, bool) {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return App{}, false
	}
	for _, e := range entries {
		if _, err := strconv.Atoi(e.Name()); err != nil {
			continue
		}
		dir := filepath.Join("/proc", e.Name())
		target, _ := os.Readlink(filepath.Join(dir, "exe"))
		comm, _ := os.ReadFile(filepath.Join(dir, "comm"))
		name := strings.TrimSpace(string(comm))

		if (target != "" && strings.EqualFold(filepath.Base(target), id)) || strings.EqualFold(name, id) {
			if name == "" {
				name = filepath.Base(target)
			}
			return App{ID: id, Name: name, Path: target}, true
		}
	}
	return App{}, false
}

// Pointer возвращает положение указателя через `xdotool getmouselocation --shell`.
func (linuxSystem) Pointer() (int, int, error) {
	out, err := exec.Command("xdotool", "getmouselocation", "--shell").Output()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: xdotool getmouselocation: %v", ErrUnavailable, err)
	}
	return parseMouseLocation(string(out))
}

func parseMouseLocation(out string) (int, int, error) {
	var x, y int
	var gotX, gotY bool
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			x, gotX = n, true
		case "Y":
			y, gotY = n, true
		}
	}
	if !gotX || !gotY {
		return 0, 0, fmt.Errorf("%w: неожиданный вывод getmouselocation", ErrUnavailable)
	}
	return x, y, nil
}

// Installed сканирует .desktop файлы в каталогах XDG.
func (linuxSystem) Installed() ([]App, error) {
	var apps []App
	for _, dir := range applicationDirs() {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.HasSuffix(path, ".desktop") {
				return nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil
			}
			if app, ok := parseDesktopEntry(path, data); ok {
				apps = append(apps, app)
			}
			return nil
		})
	}
	log.Printf("Найдено приложений: %d", len(apps))
	return normalizeApps(apps), nil
}

func applicationDirs() []string {
	home, _ := os.UserHomeDir()
	dirs := []string{
		filepath.Join(home, ".local", "share", "applications"),
		filepath.Join(home, ".local", "share", "flatpak", "exports", "share", "applications"),
		"/var/lib/flatpak/exports/share/applications",
		"/var/lib/snapd/desktop/applications",
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range strings.Split(dataDirs, ":") {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}
