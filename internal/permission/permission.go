// Package permission проверяет, разрешён ли процессу синтетический ввод.
package permission

import "log"

// Gate - проверка права на синтетический ввод.
type Gate interface {
	// EnsureAuthorized возвращает текущее состояние разрешения.
	// При отказе и prompt=true запускает системный запрос согласия, не дожидаясь ответа.
	EnsureAuthorized(prompt bool) bool
}

// System проверяет разрешение средствами ОС.
type System struct {
	onDenied func()
}

// New создаёт проверку. onDenied вызывается при отказе с запросом согласия,
// например чтобы показать уведомление.
func New(onDenied func()) *System {
	return &System{onDenied: onDenied}
}

// EnsureAuthorized реализует Gate.
func (s *System) EnsureAuthorized(prompt bool) bool {
	if trusted() {
		return true
	}
	log.Println("Нет разрешения на синтетический ввод")
	if prompt {
		requestConsent()
		if s.onDenied != nil {
			s.onDenied()
		}
	}
	return false
}

// Static - Gate с фиксированным ответом.
type Static bool

// EnsureAuthorized реализует Gate.
func (s Static) EnsureAuthorized(bool) bool { return bool(s) }
