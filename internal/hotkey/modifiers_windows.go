//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"
	"piemenu/internal/config"
)

// modifierMap: модификаторы Windows: Super это клавиша Win.
var modifierMap = map[config.Modifier]hotkey.Modifier{
	config.ModCtrl:  hotkey.ModCtrl,
	config.ModShift: hotkey.ModShift,
	config.ModAlt:   hotkey.ModAlt,
	config.ModSuper: hotkey.ModWin,
}
