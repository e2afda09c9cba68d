//go:build ignore

// Скрипт для генерации иконок трея.
// Запуск: go run scripts/generate_icons.go
package main

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"
)

func main() {
	dir := "embedded"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Не удалось создать директорию %s: %v", dir, err)
	}

	icons := []struct {
		name  string
		color color.RGBA
	}{
		{"icon_idle.png", color.RGBA{128, 128, 128, 255}},  // Серый
		{"icon_active.png", color.RGBA{88, 166, 255, 255}}, // Синий, меню показано
	}

	for _, icon := range icons {
		path := filepath.Join(dir, icon.name)
		if err := generateIcon(path, icon.color); err != nil {
			log.Fatalf("Ошибка генерации %s: %v", icon.name, err)
		}
		log.Printf("Создан: %s", path)
	}
}

// generateIcon рисует кольцо из 8 секторов с зазорами.
func generateIcon(path string, c color.RGBA) error {
	const (
		size   = 64
		outer  = 28.0
		inner  = 10.0
		slices = 8
		gap    = 6.0 // градусы
	)
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	per := 360.0 / slices

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			d := math.Hypot(dx, dy)
			if d < inner || d > outer {
				continue
			}
			angle := math.Mod(math.Atan2(-dy, dx)*180/math.Pi+360+per/2, per)
			if angle < gap/2 || angle > per-gap/2 {
				continue
			}
			img.Set(x, y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
