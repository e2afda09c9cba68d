package overlay

import "image"

// centerOn возвращает левый верхний угол окна размером size с центром в точке p.
func centerOn(p, size image.Point) image.Point {
	return image.Pt(p.X-size.X/2, p.Y-size.Y/2)
}

// keepInside сдвигает окно так, чтобы оно не выходило за bounds.
// Пустые bounds означают, что размер экрана неизвестен.
func keepInside(origin, size image.Point, bounds image.Rectangle) image.Point {
	if bounds.Empty() {
		return origin
	}
	return image.Pt(
		clamp(origin.X, bounds.Min.X, bounds.Max.X-size.X),
		clamp(origin.Y, bounds.Min.Y, bounds.Max.Y-size.Y),
	)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// flipY переводит прямоугольник между системами координат с началом снизу
// и сверху экрана высотой height. Преобразование обратно самому себе.
func flipY(r image.Rectangle, height int) image.Rectangle {
	return image.Rect(r.Min.X, height-r.Max.Y, r.Max.X, height-r.Min.Y)
}
