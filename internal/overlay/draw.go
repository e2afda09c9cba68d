package overlay

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/font"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"piemenu/internal/radial"
	"piemenu/internal/session"
)

const (
	arcSteps = 24  // отрезков на дугу сектора
	sliceGap = 1.5 // зазор между секторами, градусы
)

// drawMenu рисует фон, сектора, подписи и мёртвую зону.
func drawMenu(gtx layout.Context, cfg Config, menu session.Menu, images map[int]paint.ImageOp, hover int, center radial.Point, outer float32) {
	paint.FillShape(gtx.Ops, cfg.BGColor, clip.Rect{Max: gtx.Constraints.Max}.Op())
	if menu.Count <= 0 {
		return
	}

	inner := outer * float32(radial.ClampDeadZone(menu.DeadZone))

	// Пустые слоты не рисуются, но занимают своё место на круге
	for _, i := range visibleWedges(menu) {
		col := cfg.SliceColor
		if i == hover {
			col = cfg.HoverColor
		}
		drawWedge(gtx, center, float64(inner), float64(outer), i, menu.Count, col, cfg.BorderColor)
	}

	th := material.NewTheme()
	for _, s := range menu.Slices {
		pos := radial.PointAt(center, radial.CenterAngle(s.Index, menu.Count), float64(inner+outer)/2)
		img, hasImg := images[s.Index]
		fg := cfg.TextColor
		if s.Index == hover {
			fg = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
		}
		maxWidth := int(labelWidth(float64(inner), float64(outer), menu.Count))
		drawCentered(gtx, pos, maxWidth, func(gtx layout.Context) layout.Dimensions {
			return drawSliceLabel(gtx, th, s, img, hasImg, fg, cfg.DimColor)
		})
	}

	drawHub(gtx, th, cfg, menu.AppName, center, inner)
}

// visibleWedges возвращает индексы назначенных секторов в пределах меню.
func visibleWedges(menu session.Menu) []int {
	out := make([]int, 0, len(menu.Slices))
	for _, s := range menu.Slices {
		if s.Index >= 0 && s.Index < menu.Count {
			out = append(out, s.Index)
		}
	}
	return out
}

// wedgePoints возвращает контур кольцевого сектора: внешняя дуга, затем внутренняя в обратную сторону.
func wedgePoints(center radial.Point, inner, outer float64, i, n int) []f32.Point {
	start, end := radial.Bounds(i, n)
	if n > 1 {
		start += sliceGap / 2
		end -= sliceGap / 2
	}
	pts := make([]f32.Point, 0, 2*(arcSteps+1))
	for k := 0; k <= arcSteps; k++ {
		a := start + (end-start)*float64(k)/arcSteps
		p := radial.PointAt(center, a, outer)
		pts = append(pts, f32.Pt(float32(p.X), float32(p.Y)))
	}
	for k := arcSteps; k >= 0; k-- {
		a := start + (end-start)*float64(k)/arcSteps
		p := radial.PointAt(center, a, inner)
		pts = append(pts, f32.Pt(float32(p.X), float32(p.Y)))
	}
	return pts
}

func wedgePath(ops *op.Ops, pts []f32.Point) clip.PathSpec {
	var path clip.Path
	path.Begin(ops)
	for k, p := range pts {
		if k == 0 {
			path.MoveTo(p)
		} else {
			path.LineTo(p)
		}
	}
	path.Close()
	return path.End()
}

func drawWedge(gtx layout.Context, center radial.Point, inner, outer float64, i, n int, fill, border color.NRGBA) {
	pts := wedgePoints(center, inner, outer, i, n)
	paint.FillShape(gtx.Ops, fill, clip.Outline{Path: wedgePath(gtx.Ops, pts)}.Op())
	paint.FillShape(gtx.Ops, border, clip.Stroke{
		Path:  wedgePath(gtx.Ops, pts),
		Width: 1,
	}.Op())
}

// labelWidth - ширина подписи: хорда сектора по средней окружности, не шире кольца.
func labelWidth(inner, outer float64, n int) float64 {
	ring := outer - inner
	if n <= 2 {
		return ring
	}
	mid := (inner + outer) / 2
	half := math.Pi / float64(n)
	return math.Min(2*mid*math.Sin(half), ring)
}

// drawCentered размещает содержимое с центром в точке pos.
func drawCentered(gtx layout.Context, pos radial.Point, maxWidth int, w layout.Widget) {
	gtx.Constraints.Min = image.Point{}
	gtx.Constraints.Max = image.Pt(maxWidth, gtx.Constraints.Max.Y)

	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()

	off := image.Pt(int(pos.X)-dims.Size.X/2, int(pos.Y)-dims.Size.Y/2)
	defer op.Offset(off).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
}

func drawSliceLabel(gtx layout.Context, th *material.Theme, s session.Slice, img paint.ImageOp, hasImg bool, fg, dim color.NRGBA) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if !hasImg {
				return layout.Dimensions{}
			}
			size := gtx.Dp(unit.Dp(24))
			gtx.Constraints = layout.Exact(image.Pt(size, size))
			return widget.Image{Src: img, Fit: widget.Contain}.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			th.Palette.Fg = fg
			lbl := material.Label(th, unit.Sp(13), s.Label)
			lbl.Font.Weight = font.Medium
			lbl.Alignment = text.Middle
			lbl.MaxLines = 2
			return lbl.Layout(gtx)
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			if s.Keystroke == "" {
				return layout.Dimensions{}
			}
			th.Palette.Fg = dim
			lbl := material.Label(th, unit.Sp(10), s.Keystroke)
			lbl.Alignment = text.Middle
			lbl.MaxLines = 1
			return lbl.Layout(gtx)
		}),
	)
}

// drawHub рисует мёртвую зону с названием приложения.
func drawHub(gtx layout.Context, th *material.Theme, cfg Config, name string, center radial.Point, inner float32) {
	r := int(inner) - gtx.Dp(unit.Dp(4))
	if r <= 0 {
		return
	}
	cx, cy := int(center.X), int(center.Y)
	hub := clip.Ellipse{
		Min: image.Pt(cx-r, cy-r),
		Max: image.Pt(cx+r, cy+r),
	}
	paint.FillShape(gtx.Ops, cfg.BGColor, hub.Op(gtx.Ops))

	drawCentered(gtx, center, 2*r, func(gtx layout.Context) layout.Dimensions {
		th.Palette.Fg = cfg.DimColor
		lbl := material.Label(th, unit.Sp(10), name)
		lbl.Alignment = text.Middle
		lbl.MaxLines = 2
		return lbl.Layout(gtx)
	})
}
