// Package automation нажимает пункты меню других приложений через мост автоматизации ОС.
package automation

import (
	"context"
	"errors"
	"strings"

	"piemenu/internal/workspace"
)

var (
	// ErrUnsupported - на платформе нет моста автоматизации меню.
	ErrUnsupported = errors.New("автоматизация меню не поддерживается")
	// ErrItemNotFound - в меню приложения нет пункта по заданному пути.
	ErrItemNotFound = errors.New("пункт меню не найден")
	// ErrNoMenu - приложение не экспортирует меню.
	ErrNoMenu = errors.New("приложение не экспортирует меню")
)

// Bridge управляет меню другого приложения.
type Bridge interface {
	// Click выбирает пункт меню по пути вида ["Edit", "Paste"].
	Click(ctx context.Context, app workspace.App, path []string) error
	// List перечисляет пункты меню на двух уровнях: [верхнее меню, пункт].
	List(ctx context.Context, app workspace.App) ([][]string, error)
}

// New создаёт мост текущей платформы.
func New() Bridge {
	return newBridge()
}

// FormatPath возвращает путь меню для отображения: "Edit > Paste".
func FormatPath(path []string) string {
	return strings.Join(path, " > ")
}

const listSeparator = "::"

// parseListing разбирает строки "Меню::Пункт" из вывода сценария.
func parseListing(out string) [][]string {
	var paths [][]string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		top, item, ok := strings.Cut(line, listSeparator)
		if !ok || top == "" || item == "" || item == "missing value" {
			continue
		}
		paths = append(paths, []string{top, item})
	}
	return paths
}
