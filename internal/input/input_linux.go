//go:build linux

package input

import (
	"fmt"
	"os"
	"os/exec"

	"piemenu/internal/config"
)

type linuxKeystroker struct {
	useWayland bool
}

func newKeystroker() (Keystroker, error) {
	k := &linuxKeystroker{
		useWayland: os.Getenv("WAYLAND_DISPLAY") != "",
	}
	return k, nil
}

func (k *linuxKeystroker) Press(key config.Key, mods config.ModifierMask) error {
	name, ok := keysym(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	var cmd *exec.Cmd
	if k.useWayland {
		cmd = exec.Command("wtype", wtypeArgs(name, mods)...)
	} else {
		cmd = exec.Command("xdotool", xdotoolArgs(name, mods)...)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", cmd.Args[0], err, out)
	}
	return nil
}

// xdotoolArgs: "key" отправляет и keydown, и keyup.
func xdotoolArgs(name string, mods config.ModifierMask) []string {
	chord := ""
	for _, m := range mods.Modifiers() {
		chord += xdotoolModifiers[m] + "+"
	}
	return []string{"key", "--clearmodifiers", chord + name}
}

// wtypeArgs зажимает модификаторы (-M), нажимает клавишу (-k) и отпускает модификаторы (-m).
func wtypeArgs(name string, mods config.ModifierMask) []string {
	list := mods.Modifiers()
	args := make([]string, 0, len(list)*4+2)
	for _, m := range list {
		args = append(args, "-M", wtypeModifiers[m])
	}
	args = append(args, "-k", name)
	for i := len(list) - 1; i >= 0; i-- {
		args = append(args, "-m", wtypeModifiers[list[i]])
	}
	return args
}

var xdotoolModifiers = map[config.Modifier]string{
	config.ModCtrl:  "ctrl",
	config.ModShift: "shift",
	config.ModAlt:   "alt",
	config.ModSuper: "super",
}

var wtypeModifiers = map[config.Modifier]string{
	config.ModCtrl:  "ctrl",
	config.ModShift: "shift",
	config.ModAlt:   "alt",
	config.ModSuper: "logo",
}

// keysym возвращает имя X keysym для клавиши.
func keysym(key config.Key) (string, bool) {
	switch key {
	case config.KeySpace:
		return "space", true
	case config.KeyReturn:
		return "Return", true
	case config.KeyTab:
		return "Tab", true
	case config.KeyEscape:
		return "Escape", true
	case config.KeyDelete:
		return "Delete", true
	case config.KeyLeft:
		return "Left", true
	case config.KeyRight:
		return "Right", true
	case config.KeyUp:
		return "Up", true
	case config.KeyDown:
		return "Down", true
	}
	if !key.Valid() {
		return "", false
	}
	if len(key) > 1 && key[0] == 'f' {
		return "F" + string(key[1:]), true
	}
	return string(key), true
}
