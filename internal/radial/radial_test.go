package radial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var center = Point{X: 200, Y: 150}

const (
	outer = 100.0
	inner = 20.0
)

func TestSliceCentersResolveToOwnIndex(t *testing.T) {
	mid := (outer + inner) / 2
	for _, n := range []int{4, 6, 8, 12} {
		for i := 0; i < n; i++ {
			p := PointAt(center, CenterAngle(i, n), mid)
			first := HitTest(p, center, outer, inner, n)
			assert.Equal(t, i, first, "n=%d i=%d", n, i)
			assert.Equal(t, first, HitTest(p, center, outer, inner, n), "n=%d i=%d", n, i)
		}
	}
}

func TestRadiusGrid(t *testing.T) {
	for _, n := range []int{1, 3, 4, 6, 8, 12, 16} {
		for deg := 0.0; deg < 360; deg += 2.5 {
			for d := 0.0; d <= outer*1.5; d += 2.5 {
				p := PointAt(center, deg, d)
				got := HitTest(p, center, outer, inner, n)
				actual := math.Hypot(p.X-center.X, p.Y-center.Y)
				if actual < inner || actual > outer {
					require.Equal(t, None, got, "n=%d deg=%v d=%v", n, deg, d)
					continue
				}
				require.GreaterOrEqual(t, got, 0, "n=%d deg=%v d=%v", n, deg, d)
				require.Less(t, got, n, "n=%d deg=%v d=%v", n, deg, d)
			}
		}
	}
}

func TestScreenOrientation(t *testing.T) {
	mid := 60.0
	// Вправо - сектор 0, вверх по экрану (меньший Y) - сектор 2 из 8
	assert.Equal(t, 0, HitTest(Point{X: center.X + mid, Y: center.Y}, center, outer, inner, 8))
	assert.Equal(t, 2, HitTest(Point{X: center.X, Y: center.Y - mid}, center, outer, inner, 8))
	assert.Equal(t, 4, HitTest(Point{X: center.X - mid, Y: center.Y}, center, outer, inner, 8))
	assert.Equal(t, 6, HitTest(Point{X: center.X, Y: center.Y + mid}, center, outer, inner, 8))
}

func TestHalfSliceTieBreak(t *testing.T) {
	// Сектор 0 из 8 занимает [-22.5, 22.5)
	assert.Equal(t, 0, SliceAt(0, 8))
	assert.Equal(t, 0, SliceAt(-22.5, 8))
	assert.Equal(t, 0, SliceAt(337.5, 8))
	assert.Equal(t, 0, SliceAt(22.4, 8))
	assert.Equal(t, 1, SliceAt(22.5, 8))
	assert.Equal(t, 7, SliceAt(337.4, 8))
	assert.Equal(t, 0, SliceAt(720, 8))
}

func TestDeadZoneAndOutside(t *testing.T) {
	g := NewGeometry(center, outer, 0.2, 8)
	assert.Equal(t, 20.0, g.Inner)

	assert.Equal(t, None, g.HitTest(center))
	assert.Equal(t, None, g.HitTest(Point{X: center.X + 0.05*outer, Y: center.Y}))
	assert.Equal(t, None, g.HitTest(Point{X: center.X + outer + 0.01, Y: center.Y}))
	assert.Equal(t, 0, g.HitTest(Point{X: center.X + outer, Y: center.Y}))
	assert.Equal(t, 0, g.HitTest(Point{X: center.X + inner, Y: center.Y}))
}

func TestInvalidInput(t *testing.T) {
	assert.Equal(t, None, HitTest(Point{X: 260, Y: 150}, center, outer, inner, 0))
	assert.Equal(t, None, HitTest(Point{X: 260, Y: 150}, center, outer, inner, -3))
	assert.Equal(t, None, HitTest(Point{X: math.NaN(), Y: 150}, center, outer, inner, 8))
	assert.Equal(t, None, HitTest(Point{X: math.Inf(1), Y: 150}, center, outer, inner, 8))
	assert.Equal(t, None, SliceAt(math.NaN(), 8))
}

func TestClampDeadZone(t *testing.T) {
	assert.Equal(t, DefaultDeadZone, ClampDeadZone(0))
	assert.Equal(t, MinDeadZone, ClampDeadZone(0.01))
	assert.Equal(t, MaxDeadZone, ClampDeadZone(0.9))
	assert.Equal(t, 0.25, ClampDeadZone(0.25))
}

func TestBounds(t *testing.T) {
	start, end := Bounds(0, 4)
	assert.Equal(t, -45.0, start)
	assert.Equal(t, 45.0, end)

	start, end = Bounds(3, 4)
	assert.Equal(t, 225.0, start)
	assert.Equal(t, 315.0, end)
}
