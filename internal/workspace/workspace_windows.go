//go:build windows

package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

type windowsSystem struct{}

func newSystem() Provider {
	return windowsSystem{}
}

// exeID: идентификатор приложения на Windows - имя исполняемого файла без .exe.
func exeID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func (windowsSystem) Frontmost() (App, error) {
	hwnd := windows.GetForegroundWindow()
	if hwnd == 0 {
		return App{}, fmt.Errorf("%w: нет активного окна", ErrUnavailable)
	}
	var pid uint32
	if _, err := windows.GetWindowThreadProcessId(hwnd, &pid); err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	path, err := processImage(pid)
	if err != nil {
		return App{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	id := exeID(path)
	return App{ID: id, Name: id, Path: path}, nil
}

func processImage(pid uint32) (string, error) {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(h)

	buf := make([]uint16, windows.MAX_LONG_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:size]), nil
}

// Running перебирает снимок процессов и сравнивает имена исполняемых файлов.
func (windowsSystem) Running(id string) (App, bool) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return App{}, false
	}
	defer windows.CloseHandle(snap)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	for err = windows.Process32First(snap, &entry); err == nil; err = windows.Process32Next(snap, &entry) {
		exe := windows.UTF16ToString(entry.ExeFile[:])
		if strings.EqualFold(exeID(exe), id) {
			path, _ := processImage(entry.ProcessID)
			return App{ID: id, Name: exeID(exe), Path: path}, true
		}
	}
	return App{}, false
}

type point struct {
	X, Y int32
}

func (windowsSystem) Pointer() (int, int, error) {
	var p point
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&p)))
	if r == 0 {
		return 0, 0, fmt.Errorf("%w: GetCursorPos: %v", ErrUnavailable, err)
	}
	return int(p.X), int(p.Y), nil
}

// Installed перечисляет ярлыки меню Пуск. Цель ярлыка не разрешается,
// поэтому идентификатором служит имя ярлыка.
func (windowsSystem) Installed() ([]App, error) {
	dirs := []string{
		filepath.Join(os.Getenv("APPDATA"), "Microsoft", "Windows", "Start Menu", "Programs"),
		filepath.Join(os.Getenv("ProgramData"), "Microsoft", "Windows", "Start Menu", "Programs"),
	}

	var apps []App
	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".lnk") {
				return nil
			}
			name := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
			lower := strings.ToLower(name)
			if strings.Contains(lower, "uninstall") {
				return nil
			}
			apps = append(apps, App{ID: name, Name: name, Path: path})
			return nil
		})
	}
	log.Printf("Найдено приложений: %d", len(apps))
	return normalizeApps(apps), nil
}
