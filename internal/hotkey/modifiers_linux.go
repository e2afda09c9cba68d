//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"
	"piemenu/internal/config"
)

// modifierMap: модификаторы X11: Alt это Mod1, Super это Mod4.
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.Mod1,
	config.ModSuper: hotkey.Mod4,
}
