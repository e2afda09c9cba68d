package config

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// Watcher перечитывает Store при изменении файлов конфигурации на диске.
type Watcher struct {
	store   *Store
	post    func(func())
	watcher *fsnotify.Watcher

	mu       sync.Mutex
	onReload []func()
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// Watch начинает наблюдение за каталогами config/ и config/apps/.
// post переносит перезагрузку в UI-поток; nil означает вызов на месте.
func (s *Store) Watch(post func(func())) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("не удалось создать наблюдатель: %w", err)
	}
	for _, dir := range []string{s.configDir(), s.appsDir()} {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("не удалось наблюдать за %s: %w", dir, err)
		}
	}
	if post == nil {
		post = func(fn func()) { fn() }
	}

	w := &Watcher{
		store:   s,
		post:    post,
		watcher: fw,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// OnReload регистрирует обработчик, вызываемый после перечитывания.
func (w *Watcher) OnReload(fn func()) {
	w.mu.Lock()
	w.onReload = append(w.onReload, fn)
	w.mu.Unlock()
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				w.post(w.reload)
			})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Ошибка наблюдателя конфигурации: %v", err)
		}
	}
}

// relevant отсекает временные файлы атомарной записи и прочий мусор.
func relevant(event fsnotify.Event) bool {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ".json") {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0
}

func (w *Watcher) reload() {
	select {
	case <-w.stopCh:
		return
	default:
	}

	w.store.Load()
	log.Println("Конфигурация перечитана с диска")

	w.mu.Lock()
	handlers := append([]func(){}, w.onReload...)
	w.mu.Unlock()
	for _, fn := range handlers {
		fn()
	}
}

// Close останавливает наблюдение.
func (w *Watcher) Close() error {
	select {
	case <-w.stopCh:
		return nil
	default:
		close(w.stopCh)
	}
	err := w.watcher.Close()
	<-w.doneCh
	return err
}
