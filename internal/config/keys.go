package config

import (
	"runtime"
	"strings"
)

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// ModifierMask - битовая маска модификаторов.
type ModifierMask uint32

const (
	MaskCtrl ModifierMask = 1 << iota
	MaskShift
	MaskAlt
	MaskSuper
)

var modifierBits = map[Modifier]ModifierMask{
	ModCtrl:  MaskCtrl,
	ModShift: MaskShift,
	ModAlt:   MaskAlt,
	ModSuper: MaskSuper,
}

// MaskOf собирает маску из списка модификаторов. Неизвестные игнорируются.
func MaskOf(mods []Modifier) ModifierMask {
	var m ModifierMask
	for _, mod := range mods {
		m |= modifierBits[mod]
	}
	return m
}

// Has проверяет наличие модификатора в маске.
func (m ModifierMask) Has(bit ModifierMask) bool {
	return m&bit != 0
}

// Modifiers раскладывает маску обратно в список в каноническом порядке.
func (m ModifierMask) Modifiers() []Modifier {
	var mods []Modifier
	for _, mod := range AvailableModifiers() {
		if m.Has(modifierBits[mod]) {
			mods = append(mods, mod)
		}
	}
	return mods
}

// Key представляет клавишу.
type Key string

const (
	KeySpace  Key = "space"
	KeyReturn Key = "return"
	KeyTab    Key = "tab"
	KeyEscape Key = "escape"
	KeyDelete Key = "delete"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	Key0      Key = "0"
	Key1      Key = "1"
	Key2      Key = "2"
	Key3      Key = "3"
	Key4      Key = "4"
	Key5      Key = "5"
	Key6      Key = "6"
	Key7      Key = "7"
	Key8      Key = "8"
	Key9      Key = "9"
	KeyA      Key = "a"
	KeyB      Key = "b"
	KeyC      Key = "c"
	KeyD      Key = "d"
	KeyE      Key = "e"
	KeyF      Key = "f"
	KeyG      Key = "g"
	KeyH      Key = "h"
	KeyI      Key = "i"
	KeyJ      Key = "j"
	KeyK      Key = "k"
	KeyL      Key = "l"
	KeyM      Key = "m"
	KeyN      Key = "n"
	KeyO      Key = "o"
	KeyP      Key = "p"
	KeyQ      Key = "q"
	KeyR      Key = "r"
	KeyS      Key = "s"
	KeyT      Key = "t"
	KeyU      Key = "u"
	KeyV      Key = "v"
	KeyW      Key = "w"
	KeyX      Key = "x"
	KeyY      Key = "y"
	KeyZ      Key = "z"
	KeyF1     Key = "f1"
	KeyF2     Key = "f2"
	KeyF3     Key = "f3"
	KeyF4     Key = "f4"
	KeyF5     Key = "f5"
	KeyF6     Key = "f6"
	KeyF7     Key = "f7"
	KeyF8     Key = "f8"
	KeyF9     Key = "f9"
	KeyF10    Key = "f10"
	KeyF11    Key = "f11"
	KeyF12    Key = "f12"
)

// Valid возвращает true для клавиш из AvailableKeys.
func (k Key) Valid() bool {
	for _, known := range AvailableKeys() {
		if k == known {
			return true
		}
	}
	return false
}

// Label возвращает подпись клавиши для отображения.
func (k Key) Label() string {
	switch k {
	case KeySpace:
		return "Space"
	case KeyReturn:
		return "Return"
	case KeyTab:
		return "Tab"
	case KeyEscape:
		return "Esc"
	case KeyDelete:
		return "Del"
	case KeyLeft:
		return "←"
	case KeyRight:
		return "→"
	case KeyUp:
		return "↑"
	case KeyDown:
		return "↓"
	}
	return strings.ToUpper(string(k))
}

// HotkeyConfig хранит настройки горячей клавиши.
type HotkeyConfig struct {
	Modifiers []Modifier `json:"modifiers"`
	Key       Key        `json:"key"`
}

// Mask возвращает модификаторы горячей клавиши в виде маски.
func (h HotkeyConfig) Mask() ModifierMask {
	return MaskOf(h.Modifiers)
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	result := ""
	for _, m := range h.Modifiers {
		if result != "" {
			result += "+"
		}
		result += string(m)
	}
	if result != "" {
		result += "+"
	}
	result += string(h.Key)
	return result
}

// PrimaryModifier возвращает основной модификатор платформы: Cmd на macOS, Ctrl иначе.
func PrimaryModifier() Modifier {
	if runtime.GOOS == "darwin" {
		return ModSuper
	}
	return ModCtrl
}

// FormatKeystroke форматирует сочетание для подписи в меню.
// На macOS используются символы ⌘⇧⌥⌃, на остальных платформах - "Ctrl+Shift+C".
func FormatKeystroke(key Key, mask ModifierMask) string {
	return formatKeystroke(runtime.GOOS, key, mask)
}

func formatKeystroke(goos string, key Key, mask ModifierMask) string {
	if goos == "darwin" {
		var b strings.Builder
		if mask.Has(MaskSuper) {
			b.WriteString("⌘")
		}
		if mask.Has(MaskShift) {
			b.WriteString("⇧")
		}
		if mask.Has(MaskAlt) {
			b.WriteString("⌥")
		}
		if mask.Has(MaskCtrl) {
			b.WriteString("⌃")
		}
		b.WriteString(key.Label())
		return b.String()
	}

	var parts []string
	if mask.Has(MaskCtrl) {
		parts = append(parts, "Ctrl")
	}
	if mask.Has(MaskShift) {
		parts = append(parts, "Shift")
	}
	if mask.Has(MaskAlt) {
		parts = append(parts, "Alt")
	}
	if mask.Has(MaskSuper) {
		if goos == "windows" {
			parts = append(parts, "Win")
		} else {
			parts = append(parts, "Super")
		}
	}
	parts = append(parts, key.Label())
	return strings.Join(parts, "+")
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeySpace, KeyReturn, KeyTab, KeyEscape, KeyDelete,
		KeyLeft, KeyRight, KeyUp, KeyDown,
		Key0, Key1, Key2, Key3, Key4, Key5, Key6, Key7, Key8, Key9,
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}
