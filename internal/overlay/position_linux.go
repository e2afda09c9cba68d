//go:build linux

package overlay

import (
	"image"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// positionWindow центрирует окно на точке (x, y) и держит его поверх остальных.
func positionWindow(title string, x, y, width, height int) {
	// Окну нужно время, чтобы появиться
	time.Sleep(50 * time.Millisecond)

	output, err := exec.Command("xdotool", "search", "--name", title).Output()
	if err != nil {
		return
	}
	windowIDs := strings.Fields(string(output))
	if len(windowIDs) == 0 {
		return
	}
	windowID := windowIDs[0]

	origin := centerOn(image.Pt(x, y), image.Pt(width, height))
	left, top := clampToScreen(origin.X, origin.Y, width, height)
	exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(left), strconv.Itoa(top)).Run()

	if err := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above").Run(); err != nil {
		// wmctrl может быть не установлен
		exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE").Run()
	}
	exec.Command("xdotool", "windowactivate", windowID).Run()
}

// clampToScreen не даёт окну выйти за край экрана.
func clampToScreen(left, top, width, height int) (int, int) {
	sw, sh := getScreenSize()
	p := keepInside(image.Pt(left, top), image.Pt(width, height), image.Rect(0, 0, sw, sh))
	return p.X, p.Y
}

func getScreenSize() (width, height int) {
	output, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0
	}
	parts := strings.Fields(string(output))
	if len(parts) != 2 {
		return 0, 0
	}
	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	return width, height
}
