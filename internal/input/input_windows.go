//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"piemenu/internal/config"
)

var (
	user32        = windows.NewLazySystemDLL("user32.dll")
	procSendInput = user32.NewProc("SendInput")
)

const (
	inputKeyboard  = 1
	keyEventFKeyUp = 0x0002

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkLWin    = 0x5B
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   uint64
}

type windowsKeystroker struct{}

func newKeystroker() (Keystroker, error) {
	return &windowsKeystroker{}, nil
}

func (k *windowsKeystroker) Press(key config.Key, mods config.ModifierMask) error {
	vk, ok := virtualKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	inputs := keystrokeInputs(vk, mods)

	n, _, err := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		uintptr(unsafe.Sizeof(inputs[0])),
	)
	if int(n) != len(inputs) {
		return fmt.Errorf("SendInput отправил %d из %d событий: %w", n, len(inputs), err)
	}
	return nil
}

// keystrokeInputs: модификаторы вниз, клавиша вниз и вверх, модификаторы вверх в обратном порядке.
func keystrokeInputs(vk uint16, mods config.ModifierMask) []input {
	var modKeys []uint16
	if mods.Has(config.MaskCtrl) {
		modKeys = append(modKeys, vkControl)
	}
	if mods.Has(config.MaskShift) {
		modKeys = append(modKeys, vkShift)
	}
	if mods.Has(config.MaskAlt) {
		modKeys = append(modKeys, vkMenu)
	}
	if mods.Has(config.MaskSuper) {
		modKeys = append(modKeys, vkLWin)
	}

	inputs := make([]input, 0, len(modKeys)*2+2)
	for _, m := range modKeys {
		inputs = append(inputs, keyEvent(m, 0))
	}
	inputs = append(inputs, keyEvent(vk, 0), keyEvent(vk, keyEventFKeyUp))
	for i := len(modKeys) - 1; i >= 0; i-- {
		inputs = append(inputs, keyEvent(modKeys[i], keyEventFKeyUp))
	}
	return inputs
}

func keyEvent(vk uint16, flags uint32) input {
	return input{
		inputType: inputKeyboard,
		ki:        keyboardInput{wVk: vk, dwFlags: flags},
	}
}

func virtualKey(key config.Key) (uint16, bool) {
	switch key {
	case config.KeySpace:
		return 0x20, true
	case config.KeyReturn:
		return 0x0D, true
	case config.KeyTab:
		return 0x09, true
	case config.KeyEscape:
		return 0x1B, true
	case config.KeyDelete:
		return 0x2E, true
	case config.KeyLeft:
		return 0x25, true
	case config.KeyUp:
		return 0x26, true
	case config.KeyRight:
		return 0x27, true
	case config.KeyDown:
		return 0x28, true
	}
	if !key.Valid() {
		return 0, false
	}
	s := string(key)
	switch {
	case len(s) == 1 && s[0] >= 'a' && s[0] <= 'z':
		return uint16('A' + s[0] - 'a'), true
	case len(s) == 1 && s[0] >= '0' && s[0] <= '9':
		return uint16(s[0]), true
	case s[0] == 'f':
		var n int
		if _, err := fmt.Sscanf(s[1:], "%d", &n); err == nil && n >= 1 && n <= 12 {
			return uint16(0x70 + n - 1), true
		}
	}
	return 0, false
}
