// Package action выполняет команды: синтетические нажатия и выбор пунктов меню.
package action

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"piemenu/internal/automation"
	"piemenu/internal/config"
	"piemenu/internal/input"
	"piemenu/internal/logging"
	"piemenu/internal/permission"
	"piemenu/internal/workspace"
)

var (
	// ErrNotAuthorized - ОС не разрешает синтетический ввод; действие не выполнялось.
	ErrNotAuthorized = errors.New("нет разрешения на синтетический ввод")
	// ErrNotRunning - целевое приложение не запущено.
	ErrNotRunning = errors.New("приложение не запущено")
	// ErrPathTooShort - путь меню короче двух элементов.
	ErrPathTooShort = errors.New("путь меню должен содержать меню и пункт")
)

// DefaultMenuTimeout ограничивает один вызов моста автоматизации.
const DefaultMenuTimeout = 5 * time.Second

// RunningLookup ищет запущенное приложение по идентификатору.
type RunningLookup interface {
	Running(id string) (workspace.App, bool)
}

// Dispatcher выполняет ActionDefinition над целевым приложением.
type Dispatcher struct {
	gate        permission.Gate
	keys        input.Keystroker
	apps        RunningLookup
	bridge      automation.Bridge
	menuTimeout time.Duration
}

// New создаёт исполнитель действий.
func New(gate permission.Gate, keys input.Keystroker, apps RunningLookup, bridge automation.Bridge) *Dispatcher {
	return &Dispatcher{
		gate:        gate,
		keys:        keys,
		apps:        apps,
		bridge:      bridge,
		menuTimeout: DefaultMenuTimeout,
	}
}

// Execute выполняет действие. Нажатие отправляется синхронно, выбор пункта меню
// идёт в фоне. Канал получает ровно один результат и буферизован: читать его не обязательно.
// Ошибки всегда логируются здесь, вызывающему не нужно их обрабатывать.
func (d *Dispatcher) Execute(def config.ActionDefinition, targetAppID string) <-chan error {
	result := make(chan error, 1)

	if !d.gate.EnsureAuthorized(true) {
		result <- ErrNotAuthorized
		return result
	}

	switch a := def.Action().(type) {
	case config.KeystrokeAction:
		err := d.pressKeystroke(a)
		if err != nil {
			log.Printf("Ошибка отправки нажатия %s: %v", a.Display(), err)
		}
		result <- err
	case config.MenuPathAction:
		logging.Go("выбор пункта меню", func() {
			err := d.selectMenuItem(a, targetAppID)
			if err != nil {
				log.Printf("Не удалось выбрать пункт меню %s в %s: %v", automation.FormatPath(a.Path), targetAppID, err)
			}
			result <- err
		})
	default:
		err := fmt.Errorf("%w: действие не задано", config.ErrInvalid)
		log.Printf("Пропуск команды: %v", err)
		result <- err
	}
	return result
}

func (d *Dispatcher) pressKeystroke(a config.KeystrokeAction) error {
	log.Printf("Отправка нажатия: %s", a.Display())
	return d.keys.Press(a.Key, a.Mask())
}

func (d *Dispatcher) selectMenuItem(a config.MenuPathAction, targetAppID string) error {
	if len(a.Path) < 2 {
		return fmt.Errorf("%w: %v", ErrPathTooShort, a.Path)
	}

	app, ok := d.apps.Running(targetAppID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRunning, targetAppID)
	}
	if app.Name == "" {
		app.Name = targetAppID
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.menuTimeout)
	defer cancel()

	log.Printf("Выбор пункта меню %s в %s", automation.FormatPath(a.Path), app.Name)
	return d.bridge.Click(ctx, app, a.Path)
}

// ListMenuItems перечисляет пункты меню запущенного приложения в фоне
// и передаёт результат в done через post.
func (d *Dispatcher) ListMenuItems(targetAppID string, post func(func()), done func([][]string, error)) {
	logging.Go("чтение меню приложения", func() {
		var paths [][]string
		app, ok := d.apps.Running(targetAppID)
		err := fmt.Errorf("%w: %s", ErrNotRunning, targetAppID)
		if ok {
			ctx, cancel := context.WithTimeout(context.Background(), d.menuTimeout)
			paths, err = d.bridge.List(ctx, app)
			cancel()
		}
		post(func() { done(paths, err) })
	})
}
