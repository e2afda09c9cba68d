package app

import (
	"errors"
	"log"
	"os/exec"
	"runtime"

	"piemenu/internal/action"
	"piemenu/internal/config"
	"piemenu/internal/dialog"
	"piemenu/internal/i18n"
	"piemenu/internal/logging"
	"piemenu/internal/workspace"
)

// Диалоги блокируют, поэтому каждый сценарий идёт в своей горутине,
// а изменения конфигурации передаются в UI-цикл через Sync.

// beginDialog не даёт открыть второй сценарий настройки поверх первого.
func (a *App) beginDialog() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy || a.closed {
		return false
	}
	a.busy = true
	return true
}

func (a *App) endDialog() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()
}

// runDialog запускает сценарий настройки в фоне.
func (a *App) runDialog(name string, fn func()) {
	if !a.beginDialog() {
		log.Printf("Сценарий %q пропущен: уже открыт другой диалог", name)
		return
	}
	logging.Go(name, func() {
		defer a.endDialog()
		fn()
	})
}

// mutate выполняет изменение конфигурации в UI-цикле и сообщает об ошибке.
func (a *App) mutate(fn func() error) bool {
	var err error
	a.loop.Sync(func() { err = fn() })
	if err != nil {
		log.Printf("Ошибка сохранения настроек: %v", err)
		a.notifier.Error(i18n.T("error_save") + ": " + err.Error())
		return false
	}
	return true
}

// dialogFailed логирует отказ диалога. Отмена пользователем - не ошибка.
func (a *App) dialogFailed(err error) {
	if errors.Is(err, dialog.ErrCanceled) {
		return
	}
	log.Printf("Ошибка диалога: %v", err)
	a.notifier.Error(err.Error())
}

func (a *App) addApplication() {
	if !a.beginDialog() {
		return
	}
	workspace.DiscoverAsync(a.desktop, a.loop.Post, func(apps []workspace.App, err error) {
		// Уже в UI-цикле: отсеиваем приложения с профилем до показа диалога
		if err == nil {
			apps = withoutProfiles(apps, a.store.Profiles())
		}
		logging.Go("добавление приложения", func() {
			defer a.endDialog()
			a.pickApplication(apps, err)
		})
	})
}

func withoutProfiles(apps []workspace.App, profiles []config.ApplicationProfile) []workspace.App {
	known := make(map[string]bool, len(profiles))
	for _, p := range profiles {
		known[p.ID] = true
	}
	out := make([]workspace.App, 0, len(apps))
	for _, app := range apps {
		if !known[app.ID] {
			out = append(out, app)
		}
	}
	return out
}

func (a *App) pickApplication(apps []workspace.App, err error) {
	if err != nil {
		log.Printf("Ошибка поиска приложений: %v", err)
	}
	if len(apps) == 0 {
		a.notifier.Error(i18n.T("error_no_apps"))
		return
	}

	app, err := dialog.PickApplication(apps)
	if err != nil {
		a.dialogFailed(err)
		return
	}
	if a.mutate(func() error {
		_, err := a.store.AddApplication(app.ID, app.Name)
		return err
	}) {
		log.Printf("Добавлен профиль %s (%s)", app.Name, app.ID)
		a.notifier.Success(i18n.T("notify_profile_added"), app.Name)
	}
}

// pickProfile предлагает выбрать профиль. ok=false, если выбирать не из чего или пользователь отменил.
func (a *App) pickProfile() (config.ApplicationProfile, bool) {
	profiles := a.store.Profiles()
	if len(profiles) == 0 {
		a.notifier.Error(i18n.T("error_no_profiles"))
		return config.ApplicationProfile{}, false
	}
	p, err := dialog.PickProfile(profiles)
	if err != nil {
		a.dialogFailed(err)
		return config.ApplicationProfile{}, false
	}
	return p, true
}

func (a *App) addCommand() {
	a.runDialog("добавление команды", func() {
		p, ok := a.pickProfile()
		if !ok {
			return
		}
		kind, err := dialog.PickCommandKind()
		if err != nil {
			a.dialogFailed(err)
			return
		}

		var def config.ActionDefinition
		var suggested string
		switch kind {
		case config.ActionMenuItem:
			path, ok := a.pickMenuPath(p.ID)
			if !ok {
				return
			}
			if def, err = config.NewMenuPath(path...); err != nil {
				a.dialogFailed(err)
				return
			}
			suggested = path[len(path)-1]
		default:
			if def, err = dialog.SelectKeystroke(); err != nil {
				a.dialogFailed(err)
				return
			}
			suggested = def.Action().(config.KeystrokeAction).Display()
		}

		label, err := dialog.EnterLabel(suggested)
		if err != nil {
			a.dialogFailed(err)
			return
		}

		cmd := config.Command{Label: label, Definition: def, Icon: a.pickIcon()}
		var added config.Command
		if !a.mutate(func() error {
			var err error
			added, err = a.store.AddCommand(p.ID, cmd)
			return err
		}) {
			return
		}
		log.Printf("Добавлена команда %q в %s", added.Label, p.ID)
		a.notifier.Success(i18n.T("notify_command_added"), added.Label)

		// Сразу предлагаем сектор для новой команды
		if p, ok = a.store.Profile(p.ID); !ok {
			return
		}
		slot, err := dialog.PickSlot(p)
		if err != nil {
			a.dialogFailed(err)
			return
		}
		a.mutate(func() error { return a.store.AssignSlot(p.ID, slot, added.ID) })
	})
}

// pickMenuPath читает меню запущенного приложения и предлагает выбрать пункт.
func (a *App) pickMenuPath(appID string) ([]string, bool) {
	type listing struct {
		paths [][]string
		err   error
	}
	ch := make(chan listing, 1)
	a.actions.ListMenuItems(appID, func(fn func()) { fn() }, func(paths [][]string, err error) {
		ch <- listing{paths, err}
	})
	res := <-ch

	switch {
	case errors.Is(res.err, action.ErrNotRunning):
		a.notifier.Error(i18n.T("error_not_running"))
		return nil, false
	case res.err != nil:
		log.Printf("Ошибка чтения меню %s: %v", appID, res.err)
		a.notifier.Error(i18n.T("error_menu_list"))
		return nil, false
	case len(res.paths) == 0:
		a.notifier.Error(i18n.T("error_menu_list"))
		return nil, false
	}

	path, err := dialog.PickMenuItem(res.paths)
	if err != nil {
		a.dialogFailed(err)
		return nil, false
	}
	return path, true
}

// pickIcon предлагает картинку и копирует её в каталог иконок. nil - без иконки.
func (a *App) pickIcon() *config.Icon {
	src, err := dialog.PickIconFile()
	if err != nil {
		a.dialogFailed(err)
		return nil
	}
	if src == "" {
		return nil
	}
	name, err := a.store.SaveCustomIcon(src)
	if err != nil {
		log.Printf("Не удалось сохранить иконку %s: %v", src, err)
		a.notifier.Error(err.Error())
		return nil
	}
	return config.CustomIcon(name)
}

func (a *App) assignSlot() {
	a.runDialog("назначение сектора", func() {
		p, ok := a.pickProfile()
		if !ok {
			return
		}
		if len(p.Commands) == 0 {
			a.notifier.Error(i18n.T("error_no_commands"))
			return
		}
		slot, err := dialog.PickSlot(p)
		if err != nil {
			a.dialogFailed(err)
			return
		}
		cmdID, err := dialog.PickCommand(p)
		if err != nil {
			a.dialogFailed(err)
			return
		}
		if cmdID == "" {
			a.mutate(func() error { return a.store.ClearSlot(p.ID, slot) })
			return
		}
		a.mutate(func() error { return a.store.AssignSlot(p.ID, slot, cmdID) })
	})
}

func (a *App) changeHotkey() {
	a.runDialog("смена горячей клавиши", func() {
		hk, err := dialog.SelectHotkey(a.store.Hotkey())
		if err != nil {
			a.dialogFailed(err)
			return
		}
		if a.setHotkey(hk) {
			a.notifier.Success(i18n.T("notify_hotkey_changed"), config.FormatKeystroke(hk.Key, hk.Mask()))
		}
	})
}

// setHotkey сохраняет комбинацию и перерегистрирует её в UI-цикле.
func (a *App) setHotkey(hk config.HotkeyConfig) bool {
	if !a.mutate(func() error { return a.store.SetHotkey(hk) }) {
		return false
	}
	a.loop.Sync(func() { a.registerHotkey(hk) })
	return a.hotkey.Registered()
}

// toggleLaunchAtLogin переключает флаг и возвращает новое значение для флажка трея.
func (a *App) toggleLaunchAtLogin() bool {
	current := a.store.General().LaunchAtLogin
	enabled := !current
	if !a.mutate(func() error { return a.store.SetLaunchAtLogin(enabled) }) {
		return current
	}
	a.applyAutostart(enabled)
	return enabled
}

func (a *App) openConfigDir() {
	dir := a.store.BaseDir()
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", dir)
	case "windows":
		cmd = exec.Command("explorer", dir)
	default:
		cmd = exec.Command("xdg-open", dir)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Не удалось открыть %s: %v", dir, err)
		return
	}
	go cmd.Wait()
}
