//go:build windows

package overlay

import (
	"image"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
)

const (
	swpNoSize     = 0x0001
	swpShowWindow = 0x0040
)

// hwndTopmost = (HWND)-1
var hwndTopmost = ^uintptr(0)

// positionWindow центрирует окно на точке (x, y) и делает его topmost.
func positionWindow(title string, x, y, width, height int) {
	time.Sleep(50 * time.Millisecond)

	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(name)))
	if hwnd == 0 {
		return
	}
	origin := centerOn(image.Pt(x, y), image.Pt(width, height))
	procSetWindowPos.Call(hwnd, hwndTopmost,
		uintptr(int32(origin.X)), uintptr(int32(origin.Y)), 0, 0,
		swpNoSize|swpShowWindow)
	procSetForegroundWindow.Call(hwnd)
}
