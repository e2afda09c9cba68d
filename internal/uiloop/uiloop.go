// Package uiloop - последовательный исполнитель: всё состояние приложения
// меняется только из его горутины.
package uiloop

import (
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Loop выполняет функции по одной в порядке поступления.
type Loop struct {
	queue  chan func()
	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once

	started atomic.Bool
}

// New создаёт цикл с очередью заданного размера.
func New(size int) *Loop {
	if size <= 0 {
		size = 64
	}
	return &Loop{
		queue:  make(chan func(), size),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Run обрабатывает очередь до вызова Stop. Блокирует вызывающую горутину.
// Повторный запуск ничего не делает.
func (l *Loop) Run() {
	if l.started.CompareAndSwap(false, true) {
		l.run()
	}
}

// Start запускает цикл в отдельной горутине.
func (l *Loop) Start() {
	if l.started.CompareAndSwap(false, true) {
		go l.run()
	}
}

func (l *Loop) run() {
	defer close(l.doneCh)
	for {
		select {
		case <-l.stopCh:
			return
		case fn := <-l.queue:
			l.call(fn)
		}
	}
}

func (l *Loop) call(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Паника в UI-цикле: %v\n%s", r, debug.Stack())
		}
	}()
	fn()
}

// Post ставит функцию в очередь. После Stop вызовы отбрасываются.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.stopCh:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.stopCh:
	}
}

// Sync выполняет функцию в цикле и ждёт её завершения.
// До запуска цикла ждёт Start; если цикл остановлен, не запустившись, возвращается сразу.
// Нельзя вызывать из самого цикла.
func (l *Loop) Sync(fn func()) {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})

	var stopped <-chan struct{}
	if !l.started.Load() {
		stopped = l.stopCh
	}
	select {
	case <-done:
	case <-l.doneCh:
	case <-stopped:
	}
}

// Stop останавливает цикл и ждёт выхода из Run, если он был запущен.
// Нельзя вызывать из самого цикла.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.stopCh) })
	if l.started.Load() {
		<-l.doneCh
	}
}

// Done закрывается после выхода из Run.
func (l *Loop) Done() <-chan struct{} {
	return l.doneCh
}
