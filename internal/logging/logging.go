// Package logging настраивает стандартный логгер и защищает горутины от паник.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
)

var (
	mu      sync.Mutex
	logFile *os.File
)

// Setup направляет log в stderr и в файл <dir>/logs/piemenu.log.
// Если файл открыть не удалось, остаётся только stderr.
func Setup(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	log.SetFlags(log.Ltime | log.Lshortfile)

	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("не удалось создать каталог логов: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "piemenu.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл лога: %w", err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}

// Close закрывает файл лога.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(os.Stderr)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// CatchPanic логирует панику вместо падения процесса. Вызывать через defer.
func CatchPanic(where string) {
	if r := recover(); r != nil {
		log.Printf("Паника в %s: %v\n%s", where, r, debug.Stack())
	}
}

// Go запускает fn в горутине с перехватом паники.
func Go(where string, fn func()) {
	go func() {
		defer CatchPanic(where)
		fn()
	}()
}
