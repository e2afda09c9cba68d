// Package hotkey предоставляет глобальную горячую клавишу с событиями нажатия и отпускания.
package hotkey

import (
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"
	"piemenu/internal/config"
)

// binding - зарегистрированная в системе комбинация.
type binding interface {
	Register() error
	Unregister() error
	Keydown() <-chan hotkey.Event
	Keyup() <-chan hotkey.Event
}

// factory создаёт комбинацию; в тестах подменяется.
type factory func(mods []hotkey.Modifier, key hotkey.Key) binding

func systemFactory(mods []hotkey.Modifier, key hotkey.Key) binding {
	return hotkey.New(mods, key)
}

// Handler держит не более одной зарегистрированной горячей клавиши.
type Handler struct {
	regMu     sync.Mutex // сериализует Register и Unregister целиком
	mu        sync.Mutex
	newHotkey factory
	hk        binding
	onPress   func()
	onRelease func()
	current   config.HotkeyConfig
	stopCh    chan struct{}
}

// New создаёт обработчик горячей клавиши.
// onPress вызывается на фронте нажатия, onRelease на отпускании.
func New(onPress, onRelease func()) *Handler {
	return newHandler(systemFactory, onPress, onRelease)
}

func newHandler(f factory, onPress, onRelease func()) *Handler {
	return &Handler{
		newHotkey: f,
		onPress:   onPress,
		onRelease: onRelease,
	}
}

// Register заменяет текущую горячую клавишу новой.
// Ошибка регистрации логируется и возвращается; старая комбинация к этому моменту уже снята.
// Повторная регистрация той же комбинации ничего не делает.
func (h *Handler) Register(cfg config.HotkeyConfig) error {
	h.regMu.Lock()
	defer h.regMu.Unlock()

	h.mu.Lock()
	if h.hk != nil && sameConfig(h.current, cfg) {
		h.mu.Unlock()
		return nil
	}
	h.mu.Unlock()

	log.Printf("Регистрация горячей клавиши: %s", cfg.String())

	h.mu.Lock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
	oldHk := h.hk
	h.hk = nil
	h.mu.Unlock()

	// Снятие регистрации может зависнуть на некоторых системах
	if oldHk != nil {
		done := make(chan struct{})
		go func() {
			oldHk.Unregister()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			log.Printf("Таймаут снятия горячей клавиши")
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	mods := make([]hotkey.Modifier, 0, len(cfg.Modifiers))
	for _, m := range cfg.Modifiers {
		if mod, ok := modifierMap[m]; ok {
			mods = append(mods, mod)
		}
	}

	key, ok := keyMap[cfg.Key]
	if !ok {
		key = hotkey.KeySpace
	}

	hk := h.newHotkey(mods, key)
	if err := hk.Register(); err != nil {
		log.Printf("Ошибка регистрации горячей клавиши %s: %v", cfg.String(), err)
		return err
	}

	h.hk = hk
	h.current = cfg
	h.stopCh = make(chan struct{})

	log.Printf("Горячая клавиша успешно зарегистрирована: %s", cfg.String())
	go h.listen(hk, h.stopCh)
	return nil
}

func (h *Handler) listen(hk binding, stopCh chan struct{}) {
	// Автоповтор присылает серию keydown без keyup: реагируем только на фронт
	down := false

	for {
		select {
		case <-stopCh:
			return
		case _, ok := <-hk.Keydown():
			if !ok {
				return
			}
			if down {
				continue
			}
			down = true
			if h.onPress != nil {
				h.onPress()
			}
		case _, ok := <-hk.Keyup():
			if !ok {
				return
			}
			if !down {
				continue
			}
			down = false
			if h.onRelease != nil {
				h.onRelease()
			}
		}
	}
}

func sameConfig(a, b config.HotkeyConfig) bool {
	return a.Key == b.Key && a.Mask() == b.Mask()
}

// Unregister снимает горячую клавишу.
func (h *Handler) Unregister() error {
	h.regMu.Lock()
	defer h.regMu.Unlock()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}

	if h.hk != nil {
		err := h.hk.Unregister()
		h.hk = nil
		return err
	}
	return nil
}

// Current возвращает текущую зарегистрированную горячую клавишу.
func (h *Handler) Current() config.HotkeyConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Registered сообщает, зарегистрирована ли комбинация.
func (h *Handler) Registered() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hk != nil
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap определён в modifiers_<os>.go.

var keyMap = map[config.Key]hotkey.Key{
	config.KeySpace:  hotkey.KeySpace,
	config.KeyReturn: hotkey.KeyReturn,
	config.KeyTab:    hotkey.KeyTab,
	config.KeyEscape: hotkey.KeyEscape,
	config.KeyDelete: hotkey.KeyDelete,
	config.KeyLeft:   hotkey.KeyLeft,
	config.KeyRight:  hotkey.KeyRight,
	config.KeyUp:     hotkey.KeyUp,
	config.KeyDown:   hotkey.KeyDown,
	config.Key0:      hotkey.Key0,
	config.Key1:      hotkey.Key1,
	config.Key2:      hotkey.Key2,
	config.Key3:      hotkey.Key3,
	config.Key4:      hotkey.Key4,
	config.Key5:      hotkey.Key5,
	config.Key6:      hotkey.Key6,
	config.Key7:      hotkey.Key7,
	config.Key8:      hotkey.Key8,
	config.Key9:      hotkey.Key9,
	config.KeyA:      hotkey.KeyA,
	config.KeyB:      hotkey.KeyB,
	config.KeyC:      hotkey.KeyC,
	config.KeyD:      hotkey.KeyD,
	config.KeyE:      hotkey.KeyE,
	config.KeyF:      hotkey.KeyF,
	config.KeyG:      hotkey.KeyG,
	config.KeyH:      hotkey.KeyH,
	config.KeyI:      hotkey.KeyI,
	config.KeyJ:      hotkey.KeyJ,
	config.KeyK:      hotkey.KeyK,
	config.KeyL:      hotkey.KeyL,
	config.KeyM:      hotkey.KeyM,
	config.KeyN:      hotkey.KeyN,
	config.KeyO:      hotkey.KeyO,
	config.KeyP:      hotkey.KeyP,
	config.KeyQ:      hotkey.KeyQ,
	config.KeyR:      hotkey.KeyR,
	config.KeyS:      hotkey.KeyS,
	config.KeyT:      hotkey.KeyT,
	config.KeyU:      hotkey.KeyU,
	config.KeyV:      hotkey.KeyV,
	config.KeyW:      hotkey.KeyW,
	config.KeyX:      hotkey.KeyX,
	config.KeyY:      hotkey.KeyY,
	config.KeyZ:      hotkey.KeyZ,
	config.KeyF1:     hotkey.KeyF1,
	config.KeyF2:     hotkey.KeyF2,
	config.KeyF3:     hotkey.KeyF3,
	config.KeyF4:     hotkey.KeyF4,
	config.KeyF5:     hotkey.KeyF5,
	config.KeyF6:     hotkey.KeyF6,
	config.KeyF7:     hotkey.KeyF7,
	config.KeyF8:     hotkey.KeyF8,
	config.KeyF9:     hotkey.KeyF9,
	config.KeyF10:    hotkey.KeyF10,
	config.KeyF11:    hotkey.KeyF11,
	config.KeyF12:    hotkey.KeyF12,
}
