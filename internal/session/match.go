package session

import (
	"strings"

	"piemenu/internal/config"
	"piemenu/internal/workspace"
)

// Strategy - одно правило сопоставления активного приложения с профилем.
type Strategy struct {
	Name  string
	Match func(p config.ApplicationProfile, app workspace.App) bool
}

// DefaultStrategies применяются по порядку, побеждает первое совпадение.
// Подстрока может давать ложные совпадения между похожими названиями
// (например "Code" и "Xcode"), поэтому она последняя.
var DefaultStrategies = []Strategy{
	{Name: "идентификатор", Match: matchID},
	{Name: "имя", Match: matchName},
	{Name: "подстрока", Match: matchSubstring},
}

func matchID(p config.ApplicationProfile, app workspace.App) bool {
	return app.ID != "" && p.ID == app.ID
}

func matchName(p config.ApplicationProfile, app workspace.App) bool {
	return app.Name != "" && strings.EqualFold(p.Name, app.Name)
}

func matchSubstring(p config.ApplicationProfile, app workspace.App) bool {
	name := strings.ToLower(strings.TrimSpace(app.Name))
	profile := strings.ToLower(strings.TrimSpace(p.Name))
	if name == "" || profile == "" {
		return false
	}
	return strings.Contains(name, profile) || strings.Contains(profile, name)
}

// Resolve подбирает профиль для приложения. Внутри одного правила
// профили перебираются в переданном порядке.
func Resolve(profiles []config.ApplicationProfile, app workspace.App, strategies []Strategy) (config.ApplicationProfile, string, bool) {
	for _, s := range strategies {
		for _, p := range profiles {
			if s.Match(p, app) {
				return p, s.Name, true
			}
		}
	}
	return config.ApplicationProfile{}, "", false
}
