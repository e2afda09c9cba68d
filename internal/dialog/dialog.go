// Package dialog предоставляет GUI диалоги для настройки приложения.
package dialog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ncruces/zenity"
	"piemenu/internal/automation"
	"piemenu/internal/config"
	"piemenu/internal/i18n"
	"piemenu/internal/workspace"
)

// ErrCanceled - пользователь закрыл диалог.
var ErrCanceled = zenity.ErrCanceled

// SelectHotkey открывает диалог выбора горячей клавиши.
// Возвращает выбранную конфигурацию или ошибку если пользователь отменил.
func SelectHotkey(current config.HotkeyConfig) (config.HotkeyConfig, error) {
	mods, err := pickModifiers(i18n.T("dialog_hotkey_mods_title"), current.Modifiers)
	if err != nil {
		return current, err
	}
	if len(mods) == 0 {
		return current, errors.New(i18n.T("dialog_no_modifiers"))
	}

	key, err := pickKey(i18n.T("dialog_hotkey_key_title"), current.Key)
	if err != nil {
		return current, err
	}
	return config.HotkeyConfig{Modifiers: mods, Key: key}, nil
}

// SelectKeystroke запрашивает сочетание для команды. Модификаторы необязательны.
func SelectKeystroke() (config.ActionDefinition, error) {
	title := i18n.T("dialog_keystroke_title")
	mods, err := pickModifiers(title, []config.Modifier{config.PrimaryModifier()})
	if err != nil {
		return config.ActionDefinition{}, err
	}
	key, err := pickKey(title, "")
	if err != nil {
		return config.ActionDefinition{}, err
	}
	return config.NewKeystroke(key, mods...)
}

// modifierLabel возвращает подпись модификатора для списка.
func modifierLabel(m config.Modifier) string {
	switch m {
	case config.ModCtrl:
		return "Ctrl"
	case config.ModShift:
		return "Shift"
	case config.ModAlt:
		return "Alt"
	case config.ModSuper:
		return "Super (Win/Cmd)"
	}
	return string(m)
}

func pickModifiers(title string, current []config.Modifier) ([]config.Modifier, error) {
	all := config.AvailableModifiers()
	options := make([]string, len(all))
	for i, m := range all {
		options[i] = modifierLabel(m)
	}
	defaults := make([]string, 0, len(current))
	for _, m := range current {
		defaults = append(defaults, modifierLabel(m))
	}

	selected, err := zenity.ListMultiple(
		i18n.T("dialog_hotkey_mods"),
		options,
		zenity.Title(title),
		zenity.DefaultItems(defaults...),
	)
	if err != nil {
		return nil, err // Пользователь отменил
	}
	return matchModifiers(selected, all), nil
}

// matchModifiers переводит выбранные подписи обратно в модификаторы.
func matchModifiers(selected []string, all []config.Modifier) []config.Modifier {
	mods := make([]config.Modifier, 0, len(selected))
	for _, s := range selected {
		for _, m := range all {
			if s == modifierLabel(m) {
				mods = append(mods, m)
				break
			}
		}
	}
	return mods
}

func pickKey(title string, current config.Key) (config.Key, error) {
	keys := config.AvailableKeys()
	options := make([]string, len(keys))
	for i, k := range keys {
		options[i] = k.Label()
	}

	opts := []zenity.Option{zenity.Title(title)}
	if current != "" {
		opts = append(opts, zenity.DefaultItems(current.Label()))
	}
	selected, err := zenity.List(i18n.T("dialog_hotkey_key"), options, opts...)
	if err != nil {
		return "", err // Пользователь отменил
	}
	for i, opt := range options {
		if opt == selected {
			return keys[i], nil
		}
	}
	return "", fmt.Errorf("%w: клавиша %q", config.ErrInvalid, selected)
}

// appLabel - строка списка приложений: имя и идентификатор.
func appLabel(name, id string) string {
	return fmt.Sprintf("%s  [%s]", name, id)
}

// PickApplication предлагает выбрать приложение из найденных в системе.
func PickApplication(apps []workspace.App) (workspace.App, error) {
	options := make([]string, len(apps))
	for i, a := range apps {
		options[i] = appLabel(a.Name, a.ID)
	}
	selected, err := zenity.List(
		i18n.T("dialog_app_pick"),
		options,
		zenity.Title(i18n.T("dialog_app_pick_title")),
		zenity.Height(480),
	)
	if err != nil {
		return workspace.App{}, err
	}
	for i, opt := range options {
		if opt == selected {
			return apps[i], nil
		}
	}
	return workspace.App{}, ErrCanceled
}

// PickProfile предлагает выбрать профиль приложения.
func PickProfile(profiles []config.ApplicationProfile) (config.ApplicationProfile, error) {
	options := make([]string, len(profiles))
	for i, p := range profiles {
		options[i] = appLabel(p.Name, p.ID)
	}
	selected, err := zenity.List(
		i18n.T("dialog_profile_pick"),
		options,
		zenity.Title(i18n.T("dialog_profile_title")),
	)
	if err != nil {
		return config.ApplicationProfile{}, err
	}
	for i, opt := range options {
		if opt == selected {
			return profiles[i], nil
		}
	}
	return config.ApplicationProfile{}, ErrCanceled
}

// PickCommandKind спрашивает, что делает новая команда.
func PickCommandKind() (config.ActionType, error) {
	keystroke := i18n.T("dialog_kind_keystroke")
	menu := i18n.T("dialog_kind_menu")
	selected, err := zenity.List(
		i18n.T("dialog_command_kind"),
		[]string{keystroke, menu},
		zenity.Title(i18n.T("dialog_command_title")),
		zenity.DefaultItems(keystroke),
	)
	if err != nil {
		return "", err
	}
	if selected == menu {
		return config.ActionMenuItem, nil
	}
	return config.ActionKeystroke, nil
}

// EnterLabel запрашивает название команды.
func EnterLabel(suggested string) (string, error) {
	label, err := zenity.Entry(
		i18n.T("dialog_command_label"),
		zenity.Title(i18n.T("dialog_command_title")),
		zenity.EntryText(suggested),
	)
	if err != nil {
		return "", err
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = suggested
	}
	return label, nil
}

// PickMenuItem предлагает выбрать пункт из прочитанного меню приложения.
func PickMenuItem(paths [][]string) ([]string, error) {
	options := make([]string, len(paths))
	for i, p := range paths {
		options[i] = automation.FormatPath(p)
	}
	selected, err := zenity.List(
		i18n.T("dialog_menu_pick"),
		options,
		zenity.Title(i18n.T("dialog_menu_title")),
		zenity.Height(480),
	)
	if err != nil {
		return nil, err
	}
	for i, opt := range options {
		if opt == selected {
			return paths[i], nil
		}
	}
	return nil, ErrCanceled
}

// PickIconFile предлагает выбрать картинку для команды.
// Пустая строка без ошибки означает, что иконка не нужна.
func PickIconFile() (string, error) {
	if err := zenity.Question(i18n.T("dialog_icon_ask"), zenity.Title(i18n.T("dialog_icon_title"))); err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return zenity.SelectFile(
		zenity.Title(i18n.T("dialog_icon_title")),
		zenity.FileFilters{
			{Name: i18n.T("dialog_icon_filter"), Patterns: []string{"*.png", "*.jpg", "*.jpeg"}},
		},
	)
}

// slotOptions строит список секторов профиля вида "3: Copy".
func slotOptions(p config.ApplicationProfile) []string {
	n := p.Slices()
	options := make([]string, n)
	for i := 0; i < n; i++ {
		label := i18n.T("dialog_slot_empty")
		if cmd, ok := p.BoundCommand(i); ok {
			label = cmd.Label
		}
		options[i] = strconv.Itoa(i+1) + ": " + label
	}
	return options
}

// PickSlot предлагает выбрать сектор профиля. Возвращает индекс с нуля.
func PickSlot(p config.ApplicationProfile) (int, error) {
	options := slotOptions(p)
	selected, err := zenity.List(
		i18n.T("dialog_slot_pick"),
		options,
		zenity.Title(i18n.T("dialog_slot_title")+": "+p.Name),
	)
	if err != nil {
		return 0, err
	}
	for i, opt := range options {
		if opt == selected {
			return i, nil
		}
	}
	return 0, ErrCanceled
}

// PickCommand предлагает выбрать команду профиля для сектора.
// Пустой идентификатор без ошибки означает "очистить сектор".
func PickCommand(p config.ApplicationProfile) (string, error) {
	clearLabel := i18n.T("dialog_slot_clear")
	options := make([]string, 0, len(p.Commands)+1)
	for _, c := range p.Commands {
		options = append(options, c.Label)
	}
	options = append(options, clearLabel)

	selected, err := zenity.List(
		i18n.T("dialog_command_pick"),
		options,
		zenity.Title(i18n.T("dialog_slot_title")+": "+p.Name),
	)
	if err != nil {
		return "", err
	}
	if selected == clearLabel {
		return "", nil
	}
	for i, c := range p.Commands {
		if options[i] == selected {
			return c.ID, nil
		}
	}
	return "", ErrCanceled
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
