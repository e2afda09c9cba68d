//go:build !linux && !windows && !darwin

package overlay

// positionWindow: на прочих системах окно открывается там, где его разместит оконный менеджер.
func positionWindow(title string, x, y, width, height int) {}
