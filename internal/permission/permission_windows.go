//go:build windows

package permission

// SendInput не требует отдельного разрешения. Ввод в окна с повышенными
// правами блокирует UIPI, но проверить это заранее нельзя.
func trusted() bool { return true }

func requestConsent() {}
