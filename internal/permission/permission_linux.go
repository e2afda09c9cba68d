//go:build linux

package permission

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// trusted: под X11 нужен xdotool, под Wayland wtype, и процесс должен иметь
// доступ к сокету дисплея, через который они отправляют нажатия.
// Виртуальная клавиатура Wayland может быть закрыта композитором, тогда wtype всё равно упадёт.
func trusted() bool {
	if _, err := exec.LookPath(injectionTool()); err != nil {
		return false
	}
	socket, ok := displaySocket(os.Getenv)
	if !ok {
		return false
	}
	if socket == "" {
		return true
	}
	return unix.Access(socket, unix.R_OK|unix.W_OK) == nil
}

// displaySocket возвращает путь к сокету графической сессии.
// ok=false - сессии нет; пустой путь - дисплей удалённый, проверять нечего.
func displaySocket(getenv func(string) string) (path string, ok bool) {
	if wl := getenv("WAYLAND_DISPLAY"); wl != "" {
		if filepath.IsAbs(wl) {
			return wl, true
		}
		dir := getenv("XDG_RUNTIME_DIR")
		if dir == "" {
			return "", false
		}
		return filepath.Join(dir, wl), true
	}

	display := getenv("DISPLAY")
	if display == "" {
		return "", false
	}
	// host:0 - дисплей по сети
	if !strings.HasPrefix(display, ":") {
		return "", true
	}
	num, _, _ := strings.Cut(strings.TrimPrefix(display, ":"), ".")
	if num == "" {
		return "", false
	}
	return "/tmp/.X11-unix/X" + num, true
}

func injectionTool() string {
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		return "wtype"
	}
	return "xdotool"
}

func requestConsent() {
	log.Printf("Для отправки нажатий установите %s и запустите PieMenu в графической сессии", injectionTool())
}
