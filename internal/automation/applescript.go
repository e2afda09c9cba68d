package automation

import (
	"fmt"
	"strings"
)

// appleScriptString экранирует строку как литерал AppleScript.
func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// clickScript строит сценарий System Events для пути меню любой глубины:
// первый элемент - пункт строки меню, последний - нажимаемый пункт.
func clickScript(process string, path []string) (string, error) {
	if len(path) < 2 {
		return "", fmt.Errorf("путь меню должен содержать минимум 2 элемента, получено %d", len(path))
	}

	ref := fmt.Sprintf("menu bar item %s of menu bar 1", appleScriptString(path[0]))
	for _, label := range path[1 : len(path)-1] {
		ref = fmt.Sprintf("menu item %s of menu 1 of %s", appleScriptString(label), ref)
	}
	ref = fmt.Sprintf("menu item %s of menu 1 of %s", appleScriptString(path[len(path)-1]), ref)

	return fmt.Sprintf(`tell application "System Events"
	tell process %s
		click %s
	end tell
end tell`, appleScriptString(process), ref), nil
}

// listScript перечисляет пункты меню на двух уровнях, по одному "Меню::Пункт" в строке.
func listScript(process string) string {
	p := appleScriptString(process)
	return fmt.Sprintf(`tell application "System Events"
	if not (exists process %s) then return ""
	set menuItems to {}
	tell process %s
		repeat with mBarItem in menu bar items of menu bar 1
			set topName to name of mBarItem
			try
				repeat with mi in menu items of menu 1 of mBarItem
					set itemName to name of mi
					if itemName is not missing value then
						set end of menuItems to (topName & "%s" & itemName)
					end if
				end repeat
			end try
		end repeat
	end tell
end tell
set AppleScript's text item delimiters to linefeed
return menuItems as string`, p, p, listSeparator)
}
