// Package workspace отвечает на вопросы о приложениях в системе:
// какое активно, какие запущены и какие установлены.
package workspace

import (
	"errors"
	"log"
	"runtime/debug"
	"sort"
	"strings"
)

// ErrUnavailable возвращается, когда ОС не даёт нужных сведений
// (например, нет xdotool или сессия Wayland).
var ErrUnavailable = errors.New("сведения о приложениях недоступны")

// App - приложение, как его видит ОС.
type App struct {
	ID   string // bundle identifier, имя исполняемого файла или desktop-класс
	Name string // отображаемое имя
	Path string
}

// Provider - системные запросы о приложениях.
type Provider interface {
	// Frontmost возвращает приложение, владеющее фокусом.
	Frontmost() (App, error)
	// Running ищет запущенное приложение по идентификатору.
	Running(id string) (App, bool)
	// Pointer возвращает положение указателя в экранных координатах.
	Pointer() (x, y int, err error)
	// Installed перечисляет установленные приложения.
	Installed() ([]App, error)
}

// New создаёт Provider текущей платформы.
func New() Provider {
	return newSystem()
}

// DiscoverAsync сканирует установленные приложения в фоне и передаёт
// результат в done через post.
func DiscoverAsync(p Provider, post func(func()), done func([]App, error)) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Паника при поиске приложений: %v\n%s", r, debug.Stack())
			}
		}()
		apps, err := p.Installed()
		post(func() { done(apps, err) })
	}()
}

// normalizeApps убирает дубликаты по ID и сортирует по имени.
func normalizeApps(apps []App) []App {
	seen := make(map[string]bool, len(apps))
	out := apps[:0]
	for _, a := range apps {
		if a.ID == "" || a.Name == "" || seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := strings.ToLower(out[i].Name), strings.ToLower(out[j].Name)
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}
