// PieMenu - круговое меню команд для активного приложения.
//
// Работает в системном трее. Удерживайте горячую клавишу (по умолчанию Ctrl+Shift+P),
// наведите указатель на сектор и отпустите клавишу, чтобы выполнить команду.
package main

import (
	"log"
	"os"

	"piemenu/internal/app"
	"piemenu/internal/hotkey"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	log.Printf("PieMenu %s запускается...", Version)

	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(run)
}

func run() {
	application, err := app.New(Version)
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		os.Exit(1)
	}

	application.Run()
}
