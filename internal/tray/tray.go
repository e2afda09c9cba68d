// Package tray предоставляет системный трей с меню.
package tray

import (
	"github.com/getlantern/systray"
	"piemenu/embedded"
	"piemenu/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateShowing
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnToggle         func()
	OnAddApplication func()
	OnAddCommand     func()
	OnAssignSlot     func()
	OnHotkey         func()
	OnLaunchAtLogin  func() bool
	OnOpenConfig     func()
	OnQuit           func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks     Callbacks
	launchAtLogin bool

	status    *systray.MenuItem
	toggleBtn *systray.MenuItem
	addAppBtn *systray.MenuItem
	addCmdBtn *systray.MenuItem
	assignBtn *systray.MenuItem
	hotkeyBtn *systray.MenuItem
	loginItem *systray.MenuItem
	configBtn *systray.MenuItem
	quitBtn   *systray.MenuItem
}

// New создаёт новый Tray. launchAtLogin - начальное состояние флажка.
func New(callbacks Callbacks, launchAtLogin bool) *Tray {
	return &Tray{
		callbacks:     callbacks,
		launchAtLogin: launchAtLogin,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle("PieMenu")
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.status = systray.AddMenuItem(i18n.T("tray_ready"), "")
	t.status.Disable()

	systray.AddSeparator()

	t.toggleBtn = systray.AddMenuItem(i18n.T("tray_toggle"), i18n.T("tray_toggle_hint"))

	systray.AddSeparator()

	// Настройка профилей
	t.addAppBtn = systray.AddMenuItem(i18n.T("tray_add_app"), i18n.T("tray_add_app_hint"))
	t.addCmdBtn = systray.AddMenuItem(i18n.T("tray_add_command"), i18n.T("tray_add_command_hint"))
	t.assignBtn = systray.AddMenuItem(i18n.T("tray_assign_slot"), i18n.T("tray_assign_slot_hint"))
	t.configBtn = systray.AddMenuItem(i18n.T("tray_open_config"), i18n.T("tray_open_config_hint"))

	systray.AddSeparator()

	// Общие настройки
	t.hotkeyBtn = systray.AddMenuItem(i18n.T("tray_hotkey"), i18n.T("tray_hotkey_hint"))
	t.loginItem = systray.AddMenuItemCheckbox(i18n.T("tray_launch_at_login"), i18n.T("tray_launch_at_login_hint"), t.launchAtLogin)

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.toggleBtn.ClickedCh:
			call(t.callbacks.OnToggle)
		case <-t.addAppBtn.ClickedCh:
			call(t.callbacks.OnAddApplication)
		case <-t.addCmdBtn.ClickedCh:
			call(t.callbacks.OnAddCommand)
		case <-t.assignBtn.ClickedCh:
			call(t.callbacks.OnAssignSlot)
		case <-t.configBtn.ClickedCh:
			call(t.callbacks.OnOpenConfig)
		case <-t.hotkeyBtn.ClickedCh:
			call(t.callbacks.OnHotkey)

		// Автозапуск
		case <-t.loginItem.ClickedCh:
			if t.callbacks.OnLaunchAtLogin != nil {
				t.SetLaunchAtLogin(t.callbacks.OnLaunchAtLogin())
			}

		// Выход
		case <-t.quitBtn.ClickedCh:
			call(t.callbacks.OnQuit)
			systray.Quit()
			return
		}
	}
}

// SetLaunchAtLogin обновляет флажок автозапуска.
func (t *Tray) SetLaunchAtLogin(enabled bool) {
	t.launchAtLogin = enabled
	if t.loginItem == nil {
		return
	}
	if enabled {
		t.loginItem.Check()
	} else {
		t.loginItem.Uncheck()
	}
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	switch state {
	case StateIdle:
		systray.SetIcon(embedded.IconIdle)
		systray.SetTooltip("PieMenu - " + i18n.T("tray_ready"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_ready"))
		}
	case StateShowing:
		systray.SetIcon(embedded.IconActive)
		systray.SetTooltip("PieMenu - " + i18n.T("tray_showing"))
		if t.status != nil {
			t.status.SetTitle(i18n.T("tray_showing"))
		}
	}
}

// SetHotkeyLabel показывает текущую комбинацию в пункте меню.
func (t *Tray) SetHotkeyLabel(label string) {
	if t.hotkeyBtn != nil {
		t.hotkeyBtn.SetTitle(i18n.T("tray_hotkey") + " (" + label + ")")
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}
