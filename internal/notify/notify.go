// Package notify предоставляет системные уведомления и звуковой сигнал.
package notify

import (
	"log"
	"sync"

	"github.com/gen2brain/beeep"
	"piemenu/internal/i18n"
)

const appName = "PieMenu"

// Notifier отправляет системные уведомления.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
	send    func(title, message, icon string) error
	beep    func(freq float64, duration int) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		send:    beeep.Notify,
		beep:    beeep.Beep,
	}
}

// SetEnabled включает/выключает уведомления. Звуковой сигнал не отключается.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	n.enabled = enabled
	n.mu.Unlock()
}

// Beep подаёт короткий сигнал: меню показать нечего.
func (n *Notifier) Beep() {
	if err := n.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		log.Printf("Не удалось подать звуковой сигнал: %v", err)
	}
}

// PermissionRequired сообщает, что нужно выдать разрешение на управление вводом.
func (n *Notifier) PermissionRequired() {
	n.notify(i18n.T("notify_permission"), i18n.T("notify_permission_hint"))
}

// Success показывает уведомление об успешном действии.
func (n *Notifier) Success(title, text string) {
	n.notify(title, truncate(text))
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	n.notify("", truncate(msg))
}

func truncate(text string) string {
	r := []rune(text)
	if len(r) > 100 {
		return string(r[:100]) + "..."
	}
	return text
}

func (n *Notifier) notify(title, message string) {
	n.mu.Lock()
	enabled := n.enabled
	n.mu.Unlock()
	if !enabled {
		return
	}
	// Игнорируем ошибки уведомлений - они не критичны
	if title != "" {
		_ = n.send(appName+": "+title, message, "")
	} else {
		_ = n.send(appName, message, "")
	}
}
