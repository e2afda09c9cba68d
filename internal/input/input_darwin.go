//go:build darwin

package input

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>

static void postKeystroke(CGKeyCode code, CGEventFlags flags) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, code, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, code, false);

    CGEventSetFlags(keyDown, flags);
    CGEventSetFlags(keyUp, flags);

    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);

    CFRelease(keyDown);
    CFRelease(keyUp);
}
*/
import "C"

import (
	"fmt"

	"piemenu/internal/config"
)

const (
	flagShift   = 0x00020000
	flagControl = 0x00040000
	flagOption  = 0x00080000
	flagCommand = 0x00100000
)

type darwinKeystroker struct{}

func newKeystroker() (Keystroker, error) {
	return &darwinKeystroker{}, nil
}

func (k *darwinKeystroker) Press(key config.Key, mods config.ModifierMask) error {
	code, ok := virtualKeys[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	C.postKeystroke(C.CGKeyCode(code), C.CGEventFlags(eventFlags(mods)))
	return nil
}

func eventFlags(mods config.ModifierMask) uint64 {
	var flags uint64
	if mods.Has(config.MaskShift) {
		flags |= flagShift
	}
	if mods.Has(config.MaskCtrl) {
		flags |= flagControl
	}
	if mods.Has(config.MaskAlt) {
		flags |= flagOption
	}
	if mods.Has(config.MaskSuper) {
		flags |= flagCommand
	}
	return flags
}

// virtualKeys - коды kVK_* раскладки ANSI.
var virtualKeys = map[config.Key]uint16{
	config.KeyA: 0x00, config.KeyS: 0x01, config.KeyD: 0x02, config.KeyF: 0x03,
	config.KeyH: 0x04, config.KeyG: 0x05, config.KeyZ: 0x06, config.KeyX: 0x07,
	config.KeyC: 0x08, config.KeyV: 0x09, config.KeyB: 0x0B, config.KeyQ: 0x0C,
	config.KeyW: 0x0D, config.KeyE: 0x0E, config.KeyR: 0x0F, config.KeyY: 0x10,
	config.KeyT: 0x11, config.Key1: 0x12, config.Key2: 0x13, config.Key3: 0x14,
	config.Key4: 0x15, config.Key6: 0x16, config.Key5: 0x17, config.Key9: 0x19,
	config.Key7: 0x1A, config.Key8: 0x1C, config.Key0: 0x1D, config.KeyO: 0x1F,
	config.KeyU: 0x20, config.KeyI: 0x22, config.KeyP: 0x23, config.KeyL: 0x25,
	config.KeyJ: 0x26, config.KeyK: 0x28, config.KeyN: 0x2D, config.KeyM: 0x2E,

	config.KeyReturn: 0x24,
	config.KeyTab:    0x30,
	config.KeySpace:  0x31,
	config.KeyDelete: 0x33,
	config.KeyEscape: 0x35,
	config.KeyLeft:   0x7B,
	config.KeyRight:  0x7C,
	config.KeyDown:   0x7D,
	config.KeyUp:     0x7E,

	config.KeyF1: 0x7A, config.KeyF2: 0x78, config.KeyF3: 0x63, config.KeyF4: 0x76,
	config.KeyF5: 0x60, config.KeyF6: 0x61, config.KeyF7: 0x62, config.KeyF8: 0x64,
	config.KeyF9: 0x65, config.KeyF10: 0x6D, config.KeyF11: 0x67, config.KeyF12: 0x6F,
}
