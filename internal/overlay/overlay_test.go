package overlay

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"gioui.org/io/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"piemenu/internal/radial"
	"piemenu/internal/session"
)

func TestDigit(t *testing.T) {
	n, ok := digit("1")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	n, ok = digit("9")
	assert.True(t, ok)
	assert.Equal(t, 9, n)

	for _, name := range []key.Name{"0", "A", key.NameEscape, "", "10"} {
		_, ok := digit(name)
		assert.False(t, ok, name)
	}
}

func TestKeyFilters(t *testing.T) {
	assert.Len(t, keyFilters(), 10)
}

// Все точки контура лежат в своём секторе и внутри кольца.
func TestWedgePointsStayInsideSlice(t *testing.T) {
	center := radial.Point{X: 150, Y: 150}
	const inner, outer = 30.0, 130.0

	for _, n := range []int{2, 4, 8, 12} {
		for i := 0; i < n; i++ {
			pts := wedgePoints(center, inner, outer, i, n)
			require.Len(t, pts, 2*(arcSteps+1))
			for _, p := range pts {
				dx := float64(p.X) - center.X
				dy := float64(p.Y) - center.Y
				d := math.Hypot(dx, dy)
				assert.InDelta(t, 0, math.Min(math.Abs(d-inner), math.Abs(d-outer)), 0.01)

				// Сдвигаем точку к середине кольца, чтобы не попасть на границу
				mid := radial.PointAt(center, radial.Angle(dx, dy), (inner+outer)/2)
				assert.Equal(t, i, radial.HitTest(mid, center, outer, inner, n), "n=%d i=%d", n, i)
			}
		}
	}
}

func TestLabelWidth(t *testing.T) {
	assert.Equal(t, 100.0, labelWidth(30, 130, 2))
	w8 := labelWidth(30, 130, 8)
	assert.InDelta(t, 2*80*math.Sin(math.Pi/8), w8, 1e-9)
	assert.Less(t, labelWidth(30, 130, 12), w8)
}

func TestLayoutCenter(t *testing.T) {
	assert.Equal(t, radial.Point{X: 138, Y: 138}, layoutCenter(image.Pt(276, 276)))
}

func TestDecodeImagesSkipsBroken(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	images := decodeImages([]session.Slice{
		{Index: 0, Label: "ok", Image: buf.Bytes()},
		{Index: 1, Label: "broken", Image: []byte("not an image")},
		{Index: 2, Label: "none"},
	})
	assert.Len(t, images, 1)
	_, ok := images[0]
	assert.True(t, ok)
}

func TestVisibleWedgesOnlyAssigned(t *testing.T) {
	menu := session.Menu{
		Count: 8,
		Slices: []session.Slice{
			{Index: 0, Label: "Copy"},
			{Index: 4, Label: "Paste"},
			{Index: 9, Label: "Вне меню"},
		},
	}
	assert.Equal(t, []int{0, 4}, visibleWedges(menu))
	assert.Empty(t, visibleWedges(session.Menu{Count: 8}))
}

func TestCenterOn(t *testing.T) {
	assert.Equal(t, image.Pt(500, 300), centerOn(image.Pt(640, 440), image.Pt(280, 280)))
}

func TestKeepInside(t *testing.T) {
	screen := image.Rect(0, 0, 1920, 1080)
	size := image.Pt(280, 280)

	assert.Equal(t, image.Pt(500, 300), keepInside(image.Pt(500, 300), size, screen))
	assert.Equal(t, image.Pt(0, 0), keepInside(image.Pt(-100, -40), size, screen))
	assert.Equal(t, image.Pt(1640, 800), keepInside(image.Pt(1800, 1000), size, screen))

	// Второй монитор справа от главного
	right := image.Rect(1920, 0, 3840, 1080)
	assert.Equal(t, image.Pt(1920, 0), keepInside(image.Pt(1800, -10), size, right))

	// Размер экрана неизвестен
	assert.Equal(t, image.Pt(-100, 5000), keepInside(image.Pt(-100, 5000), size, image.Rectangle{}))
}

func TestFlipY(t *testing.T) {
	// Видимая область Cocoa без строки меню (25pt) и Dock (70pt) на экране 1440x900
	visible := image.Rect(0, 70, 1440, 875)
	flipped := flipY(visible, 900)
	assert.Equal(t, image.Rect(0, 25, 1440, 830), flipped)
	assert.Equal(t, visible, flipY(flipped, 900))
}
