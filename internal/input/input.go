// Package input синтезирует нажатия клавиш в активное приложение.
package input

import (
	"errors"

	"piemenu/internal/config"
)

// ErrUnknownKey возвращается для клавиши без системного кода.
var ErrUnknownKey = errors.New("нет системного кода для клавиши")

// Keystroker отправляет сочетание клавиш приложению, владеющему фокусом ввода.
type Keystroker interface {
	// Press отправляет нажатие и отпускание клавиши с модификаторами.
	Press(key config.Key, mods config.ModifierMask) error
}

// New создаёт платформо-специфичный Keystroker.
func New() (Keystroker, error) {
	return newKeystroker()
}
