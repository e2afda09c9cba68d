// Package i18n provides internationalization support.
package i18n

import (
	"os"
	"strings"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "PieMenu",
		"app_tooltip": "PieMenu - круговое меню команд",

		// Tray menu
		"tray_ready":                "Готов к работе",
		"tray_showing":              "Меню открыто",
		"tray_toggle":               "Показать меню",
		"tray_toggle_hint":          "Открыть меню для активного приложения",
		"tray_add_app":              "Добавить приложение...",
		"tray_add_app_hint":         "Создать профиль для установленного приложения",
		"tray_add_command":          "Добавить команду...",
		"tray_add_command_hint":     "Сочетание клавиш или пункт меню",
		"tray_assign_slot":          "Назначить сектор...",
		"tray_assign_slot_hint":     "Привязать команду к сектору меню",
		"tray_hotkey":               "Горячая клавиша...",
		"tray_hotkey_hint":          "Комбинация для вызова меню",
		"tray_launch_at_login":      "Запускать при входе",
		"tray_launch_at_login_hint": "Запускать PieMenu при входе в систему",
		"tray_open_config":          "Открыть папку настроек",
		"tray_open_config_hint":     "Профили хранятся в JSON-файлах",
		"tray_quit":                 "Выход",
		"tray_quit_hint":            "Закрыть приложение",

		// Notifications
		"notify_error":           "Ошибка",
		"notify_ready":           "PieMenu готов к работе",
		"notify_permission":      "Нужно разрешение",
		"notify_permission_hint": "Разрешите PieMenu управлять компьютером в системных настройках",
		"notify_profile_added":   "Профиль добавлен",
		"notify_command_added":   "Команда добавлена",
		"notify_hotkey_changed":  "Горячая клавиша изменена",

		// Dialogs
		"dialog_hotkey_mods":       "Выберите модификаторы:",
		"dialog_hotkey_mods_title": "Горячая клавиша - Модификаторы",
		"dialog_hotkey_key":        "Выберите клавишу:",
		"dialog_hotkey_key_title":  "Горячая клавиша - Клавиша",
		"dialog_keystroke_title":   "Команда - Сочетание клавиш",
		"dialog_no_modifiers":      "необходимо выбрать хотя бы один модификатор",
		"dialog_app_pick":          "Выберите приложение:",
		"dialog_app_pick_title":    "Добавить приложение",
		"dialog_profile_pick":      "Выберите профиль:",
		"dialog_profile_title":     "Профиль приложения",
		"dialog_command_kind":      "Что должна делать команда?",
		"dialog_command_title":     "Новая команда",
		"dialog_kind_keystroke":    "Нажать сочетание клавиш",
		"dialog_kind_menu":         "Выбрать пункт меню",
		"dialog_command_label":     "Название команды:",
		"dialog_menu_pick":         "Выберите пункт меню:",
		"dialog_menu_title":        "Пункт меню",
		"dialog_icon_ask":          "Выбрать иконку для команды?",
		"dialog_icon_title":        "Иконка команды",
		"dialog_icon_filter":       "Изображения",
		"dialog_slot_pick":         "Выберите сектор:",
		"dialog_slot_title":        "Сектор меню",
		"dialog_command_pick":      "Выберите команду:",
		"dialog_slot_empty":        "(пусто)",
		"dialog_slot_clear":        "Очистить сектор",

		// Errors
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_save":            "Не удалось сохранить настройки",
		"error_not_running":     "Приложение не запущено",
		"error_menu_list":       "Не удалось прочитать меню приложения",
		"error_no_apps":         "Не найдено ни одного приложения",
		"error_no_profiles":     "Сначала добавьте приложение",
		"error_no_commands":     "В профиле нет команд",
		"error_autostart":       "Не удалось изменить автозапуск",
	},

	EN: {
		// App
		"app_name":    "PieMenu",
		"app_tooltip": "PieMenu - radial command menu",

		// Tray menu
		"tray_ready":                "Ready",
		"tray_showing":              "Menu open",
		"tray_toggle":               "Toggle Pie",
		"tray_toggle_hint":          "Open the menu for the active application",
		"tray_add_app":              "Add application...",
		"tray_add_app_hint":         "Create a profile for an installed application",
		"tray_add_command":          "Add command...",
		"tray_add_command_hint":     "Keyboard shortcut or menu item",
		"tray_assign_slot":          "Assign slice...",
		"tray_assign_slot_hint":     "Bind a command to a menu slice",
		"tray_hotkey":               "Hotkey...",
		"tray_hotkey_hint":          "Chord that opens the menu",
		"tray_launch_at_login":      "Launch at login",
		"tray_launch_at_login_hint": "Start PieMenu when you log in",
		"tray_open_config":          "Open settings folder",
		"tray_open_config_hint":     "Profiles are stored as JSON files",
		"tray_quit":                 "Quit",
		"tray_quit_hint":            "Close application",

		// Notifications
		"notify_error":           "Error",
		"notify_ready":           "PieMenu is ready",
		"notify_permission":      "Permission required",
		"notify_permission_hint": "Allow PieMenu to control your computer in system settings",
		"notify_profile_added":   "Profile added",
		"notify_command_added":   "Command added",
		"notify_hotkey_changed":  "Hotkey changed",

		// Dialogs
		"dialog_hotkey_mods":       "Select modifiers:",
		"dialog_hotkey_mods_title": "Hotkey - Modifiers",
		"dialog_hotkey_key":        "Select key:",
		"dialog_hotkey_key_title":  "Hotkey - Key",
		"dialog_keystroke_title":   "Command - Keyboard shortcut",
		"dialog_no_modifiers":      "at least one modifier is required",
		"dialog_app_pick":          "Select application:",
		"dialog_app_pick_title":    "Add application",
		"dialog_profile_pick":      "Select profile:",
		"dialog_profile_title":     "Application profile",
		"dialog_command_kind":      "What should the command do?",
		"dialog_command_title":     "New command",
		"dialog_kind_keystroke":    "Press a keyboard shortcut",
		"dialog_kind_menu":         "Choose a menu item",
		"dialog_command_label":     "Command name:",
		"dialog_menu_pick":         "Select menu item:",
		"dialog_menu_title":        "Menu item",
		"dialog_icon_ask":          "Choose an icon for the command?",
		"dialog_icon_title":        "Command icon",
		"dialog_icon_filter":       "Images",
		"dialog_slot_pick":         "Select slice:",
		"dialog_slot_title":        "Menu slice",
		"dialog_command_pick":      "Select command:",
		"dialog_slot_empty":        "(empty)",
		"dialog_slot_clear":        "Clear slice",

		// Errors
		"error_hotkey_register": "Could not register hotkey",
		"error_save":            "Could not save settings",
		"error_not_running":     "Application is not running",
		"error_menu_list":       "Could not read the application menu",
		"error_no_apps":         "No applications found",
		"error_no_profiles":     "Add an application first",
		"error_no_commands":     "The profile has no commands",
		"error_autostart":       "Could not change launch at login",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Detect picks the UI language from LC_ALL, LC_MESSAGES or LANG.
func Detect() Language {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return fromLocale(v)
		}
	}
	return RU
}

func fromLocale(locale string) Language {
	if strings.HasPrefix(strings.ToLower(locale), "ru") {
		return RU
	}
	return EN
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
