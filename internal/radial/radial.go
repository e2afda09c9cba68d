// Package radial вычисляет сектор кругового меню под указателем.
//
// Координаты экранные: ось Y направлена вниз. Угол 0 смотрит вправо и растёт
// против часовой стрелки, сектор i центрирован на угле i*(360/N).
package radial

import "math"

// None - результат "нет сектора": мёртвая зона, вне меню или некорректные входные данные.
const None = -1

const (
	// DefaultDeadZone - радиус мёртвой зоны по умолчанию как доля внешнего радиуса.
	DefaultDeadZone = 0.2
	MinDeadZone     = 0.1
	MaxDeadZone     = 0.4
)

// Point - точка на экране.
type Point struct {
	X, Y float64
}

// Geometry описывает размещённое на экране меню.
type Geometry struct {
	Center Point
	Outer  float64 // внешний радиус R
	Inner  float64 // радиус мёртвой зоны r
	Slices int     // количество секторов N
}

// NewGeometry строит геометрию по внешнему радиусу и доле мёртвой зоны.
func NewGeometry(center Point, outer, deadZone float64, slices int) Geometry {
	return Geometry{
		Center: center,
		Outer:  outer,
		Inner:  outer * ClampDeadZone(deadZone),
		Slices: slices,
	}
}

// ClampDeadZone приводит долю мёртвой зоны к допустимому диапазону.
func ClampDeadZone(ratio float64) float64 {
	switch {
	case math.IsNaN(ratio) || ratio == 0:
		return DefaultDeadZone
	case ratio < MinDeadZone:
		return MinDeadZone
	case ratio > MaxDeadZone:
		return MaxDeadZone
	}
	return ratio
}

// HitTest возвращает индекс сектора под точкой p или None.
func (g Geometry) HitTest(p Point) int {
	return HitTest(p, g.Center, g.Outer, g.Inner, g.Slices)
}

// HitTest возвращает индекс сектора в [0, n) для точки p относительно центра c
// или None, если точка в мёртвой зоне (d < inner) или за пределами меню (d > outer).
func HitTest(p, c Point, outer, inner float64, n int) int {
	if n <= 0 {
		return None
	}
	dx := p.X - c.X
	dy := p.Y - c.Y
	d := math.Hypot(dx, dy)
	if math.IsNaN(d) || math.IsInf(d, 0) || d < inner || d > outer {
		return None
	}
	return SliceAt(Angle(dx, dy), n)
}

// Angle возвращает угол вектора (dx, dy) в градусах в диапазоне [0, 360).
// dy берётся в экранных координатах и инвертируется.
func Angle(dx, dy float64) float64 {
	return normalize(math.Atan2(-dy, dx) * 180 / math.Pi)
}

// SliceAt возвращает сектор для угла в градусах.
// Граница между секторами лежит посередине между их центрами.
func SliceAt(angle float64, n int) int {
	if n <= 0 || math.IsNaN(angle) || math.IsInf(angle, 0) {
		return None
	}
	per := 360 / float64(n)
	idx := int(math.Floor((normalize(angle)+per/2)/per)) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// CenterAngle возвращает угол центра сектора i.
func CenterAngle(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) * 360 / float64(n)
}

// Bounds возвращает начальный и конечный углы сектора i (конец больше начала).
func Bounds(i, n int) (start, end float64) {
	per := 360 / float64(n)
	mid := CenterAngle(i, n)
	return mid - per/2, mid + per/2
}

// PointAt возвращает экранную точку на расстоянии radius от центра под углом angle.
func PointAt(c Point, angle, radius float64) Point {
	rad := angle * math.Pi / 180
	return Point{
		X: c.X + radius*math.Cos(rad),
		Y: c.Y - radius*math.Sin(rad),
	}
}
