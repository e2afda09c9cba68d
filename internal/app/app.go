// Package app содержит основную логику приложения.
package app

import (
	"fmt"
	"log"
	"sync"

	"piemenu/internal/action"
	"piemenu/internal/automation"
	"piemenu/internal/autostart"
	"piemenu/internal/config"
	"piemenu/internal/hotkey"
	"piemenu/internal/i18n"
	"piemenu/internal/input"
	"piemenu/internal/logging"
	"piemenu/internal/notify"
	"piemenu/internal/overlay"
	"piemenu/internal/permission"
	"piemenu/internal/session"
	"piemenu/internal/tray"
	"piemenu/internal/uiloop"
	"piemenu/internal/workspace"
)

// App представляет главное приложение.
type App struct {
	mu        sync.Mutex
	version   string
	store     *config.Store
	watcher   *config.Watcher
	loop      *uiloop.Loop
	notifier  *notify.Notifier
	gate      *permission.System
	desktop   workspace.Provider
	actions   *action.Dispatcher
	overlay   *overlay.Window
	session   *session.Coordinator
	hotkey    hotkeys
	tray      trayUI
	autostart autostart.Manager
	busy      bool // открыт диалог настройки
	closed    bool

	wantHotkey config.HotkeyConfig // последняя запрошенная комбинация; только из UI-цикла
}

// hotkeys - регистрация глобальной горячей клавиши (*hotkey.Handler).
type hotkeys interface {
	Register(cfg config.HotkeyConfig) error
	Unregister() error
	Registered() bool
}

// trayUI - иконка и меню в трее (*tray.Tray).
type trayUI interface {
	Run(onReady func())
	SetState(state tray.State)
	SetHotkeyLabel(label string)
	SetLaunchAtLogin(enabled bool)
}

// New создаёт новое приложение.
func New(version string) (*App, error) {
	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(dir); err != nil {
		log.Printf("Лог пишется только в stderr: %v", err)
	}

	i18n.SetLanguage(i18n.Detect())

	store, err := config.Open(dir, version)
	if err != nil {
		return nil, err
	}

	keys, err := input.New()
	if err != nil {
		return nil, fmt.Errorf("синтетический ввод недоступен: %w", err)
	}

	a := &App{
		version:  version,
		store:    store,
		loop:     uiloop.New(0),
		notifier: notify.New(true),
		desktop:  workspace.New(),
	}

	a.gate = permission.New(a.notifier.PermissionRequired)
	a.actions = action.New(a.gate, keys, a.desktop, automation.New())

	a.overlay = overlay.New(overlay.DefaultConfig(), a.loop.Post)
	a.session = session.New(store, a.desktop, a.actions, &menuView{win: a.overlay, app: a}, a.notifier.Beep)
	a.overlay.SetHandler(a.session)

	// Колбэки горячей клавиши приходят из потока ОС
	a.hotkey = hotkey.New(
		func() { a.loop.Post(a.session.Press) },
		func() { a.loop.Post(a.session.Release) },
	)

	if m, err := autostart.New(); err != nil {
		log.Printf("Автозапуск недоступен: %v", err)
	} else {
		a.autostart = m
	}

	a.tray = tray.New(tray.Callbacks{
		OnToggle:         func() { a.loop.Post(a.session.Toggle) },
		OnAddApplication: a.addApplication,
		OnAddCommand:     a.addCommand,
		OnAssignSlot:     a.assignSlot,
		OnHotkey:         a.changeHotkey,
		OnLaunchAtLogin:  a.toggleLaunchAtLogin,
		OnOpenConfig:     a.openConfigDir,
		OnQuit:           a.Close,
	}, store.General().LaunchAtLogin)

	return a, nil
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.loop.Start()

	a.tray.Run(func() {
		// Регистрируем горячую клавишу после инициализации трея
		a.loop.Sync(func() { a.registerHotkey(a.store.Hotkey()) })
		a.applyAutostart(a.store.General().LaunchAtLogin)

		w, err := a.store.Watch(a.loop.Post)
		if err != nil {
			log.Printf("Изменения файлов конфигурации не отслеживаются: %v", err)
		} else {
			w.OnReload(a.onConfigReload)
			a.mu.Lock()
			a.watcher = w
			a.mu.Unlock()
		}

		// Запрос разрешения заранее, а не при первой команде
		if !a.gate.EnsureAuthorized(false) {
			a.gate.EnsureAuthorized(true)
		}

		log.Printf("PieMenu %s готов, горячая клавиша %s", a.version, a.store.Hotkey().String())
		a.notifier.Info(i18n.T("notify_ready"))
	})
}

// registerHotkey вызывается только из UI-цикла, поэтому регистрации не пересекаются.
func (a *App) registerHotkey(hk config.HotkeyConfig) {
	a.wantHotkey = hk
	if err := a.hotkey.Register(hk); err != nil {
		// Меню просто не будет открываться по клавише
		a.notifier.Error(i18n.T("error_hotkey_register") + ": " + hk.String())
		return
	}
	a.tray.SetHotkeyLabel(config.FormatKeystroke(hk.Key, hk.Mask()))
}

func (a *App) applyAutostart(enabled bool) {
	if a.autostart == nil {
		return
	}
	if err := autostart.Apply(a.autostart, enabled); err != nil {
		log.Printf("Ошибка автозапуска: %v", err)
		a.notifier.Error(i18n.T("error_autostart"))
	}
}

// onConfigReload вызывается в UI-цикле после внешнего изменения файлов.
func (a *App) onConfigReload() {
	general := a.store.General()
	// Собственная запись из changeHotkey сюда тоже приходит и отсекается сравнением
	if !sameHotkey(general.Hotkey, a.wantHotkey) {
		a.registerHotkey(general.Hotkey)
	}
	a.tray.SetLaunchAtLogin(general.LaunchAtLogin)
	a.applyAutostart(general.LaunchAtLogin)
}

func sameHotkey(a, b config.HotkeyConfig) bool {
	return a.Key == b.Key && a.Mask() == b.Mask()
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	watcher := a.watcher
	a.mu.Unlock()

	if watcher != nil {
		watcher.Close()
	}
	a.loop.Sync(a.session.Cancel)
	a.loop.Stop()

	if a.hotkey != nil {
		a.hotkey.Unregister()
	}
	log.Println("PieMenu завершает работу")
	logging.Close()
}

// menuView связывает сеанс с окном меню и иконкой трея.
type menuView struct {
	win *overlay.Window
	app *App
}

func (v *menuView) Show(menu session.Menu) {
	v.win.Show(menu)
	v.app.tray.SetState(tray.StateShowing)
}

func (v *menuView) SetHover(index int) {
	v.win.SetHover(index)
}

func (v *menuView) Hide() {
	v.win.Hide()
	v.app.tray.SetState(tray.StateIdle)
}
