// Package overlay показывает круговое меню в окне без рамки поверх остальных окон.
package overlay

import (
	"bytes"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"piemenu/internal/radial"
	"piemenu/internal/session"
)

// Handler получает действия пользователя в окне меню.
type Handler interface {
	PointerMoved(dx, dy, outer float64)
	Click()
	Cancel()
	SelectNumber(n int)
}

// Config - внешний вид меню.
type Config struct {
	Radius      unit.Dp // внешний радиус R
	Margin      unit.Dp // поле вокруг круга
	BGColor     color.NRGBA
	SliceColor  color.NRGBA
	HoverColor  color.NRGBA
	BorderColor color.NRGBA
	TextColor   color.NRGBA
	DimColor    color.NRGBA
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() Config {
	return Config{
		Radius:      130,
		Margin:      8,
		BGColor:     color.NRGBA{R: 30, G: 30, B: 34, A: 245},
		SliceColor:  color.NRGBA{R: 45, G: 45, B: 50, A: 255},
		HoverColor:  color.NRGBA{R: 88, G: 166, B: 255, A: 255},
		BorderColor: color.NRGBA{R: 70, G: 70, B: 78, A: 255},
		TextColor:   color.NRGBA{R: 240, G: 240, B: 245, A: 255},
		DimColor:    color.NRGBA{R: 140, G: 140, B: 150, A: 255},
	}
}

const windowTitle = "PieMenu"

// Window - окно кругового меню. Show, SetHover и Hide вызываются из UI-цикла,
// события окна передаются обработчику через post.
type Window struct {
	mu      sync.Mutex
	config  Config
	handler Handler
	post    func(func())

	menu   session.Menu
	images map[int]paint.ImageOp
	hover  int

	window  *app.Window
	running bool
	placed  bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New создаёт окно меню. post переносит вызовы обработчика в UI-цикл.
func New(cfg Config, post func(func())) *Window {
	if post == nil {
		post = func(fn func()) { fn() }
	}
	return &Window{
		config: cfg,
		post:   post,
		hover:  radial.None,
	}
}

// SetHandler задаёт получателя действий пользователя.
func (w *Window) SetHandler(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = h
}

// Show показывает меню с центром в точке нажатия.
func (w *Window) Show(menu session.Menu) {
	images := decodeImages(menu.Slices)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.menu = menu
	w.images = images
	w.hover = radial.None
	w.placed = false

	if w.running {
		if w.window != nil {
			w.window.Invalidate()
		}
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	go w.runEventLoop(w.stopCh, w.doneCh)
}

// SetHover подсвечивает сектор; radial.None снимает подсветку.
func (w *Window) SetHover(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.hover = index
	if w.window != nil {
		w.window.Invalidate()
	}
}

// Hide закрывает окно.
func (w *Window) Hide() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.hover = radial.None
	stopCh := w.stopCh
	doneCh := w.doneCh
	w.stopCh = nil
	w.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}

	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
			log.Printf("Окно меню не закрылось вовремя")
		}
	}
}

// IsVisible сообщает, показано ли окно.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func decodeImages(slices []session.Slice) map[int]paint.ImageOp {
	images := make(map[int]paint.ImageOp)
	for _, s := range slices {
		if len(s.Image) == 0 {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(s.Image))
		if err != nil {
			log.Printf("Не удалось декодировать иконку %q: %v", s.Label, err)
			continue
		}
		images[s.Index] = paint.NewImageOp(img)
	}
	return images
}

func (w *Window) runEventLoop(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	side := 2 * (w.config.Radius + w.config.Margin)
	win := new(app.Window)
	win.Option(
		app.Title(windowTitle),
		app.Size(side, side),
		app.MinSize(side, side),
		app.MaxSize(side, side),
		app.Decorated(false),
	)

	w.mu.Lock()
	w.window = win
	w.mu.Unlock()

	go func() {
		<-stopCh
		win.Perform(system.ActionClose)
	}()

	var ops op.Ops
	for {
		switch e := win.Event().(type) {
		case app.DestroyEvent:
			w.mu.Lock()
			w.window = nil
			running := w.running
			h := w.handler
			w.mu.Unlock()
			// Окно закрыли снаружи (менеджер окон): сеанс отменяется
			if running && h != nil {
				w.post(h.Cancel)
			}
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			w.mu.Lock()
			menu := w.menu
			images := w.images
			hover := w.hover
			h := w.handler
			placeNow := !w.placed
			w.placed = true
			w.mu.Unlock()

			if placeNow {
				go positionWindow(windowTitle, menu.X, menu.Y, e.Size.X, e.Size.Y)
			}

			center := layoutCenter(e.Size)
			outer := float32(gtx.Dp(w.config.Radius))
			if h != nil {
				handleEvents(gtx, w, h, w.post, center, outer)
			}

			drawMenu(gtx, w.config, menu, images, hover, center, outer)
			e.Frame(gtx.Ops)
		}
	}
}

func layoutCenter(size image.Point) radial.Point {
	return radial.Point{X: float64(size.X) / 2, Y: float64(size.Y) / 2}
}

// handleEvents переводит события окна в вызовы обработчика.
func handleEvents(gtx layout.Context, tag event.Tag, h Handler, post func(func()), center radial.Point, outer float32) {
	area := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	event.Op(gtx.Ops, tag)
	area.Pop()

	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target: tag,
			Kinds:  pointer.Move | pointer.Drag | pointer.Press | pointer.Leave,
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		switch e.Kind {
		case pointer.Move, pointer.Drag:
			dx := float64(e.Position.X) - center.X
			dy := float64(e.Position.Y) - center.Y
			o := float64(outer)
			post(func() { h.PointerMoved(dx, dy, o) })
		case pointer.Leave:
			o := float64(outer)
			post(func() { h.PointerMoved(math.Inf(1), 0, o) })
		case pointer.Press:
			if e.Buttons.Contain(pointer.ButtonPrimary) {
				post(h.Click)
			}
		}
	}

	for {
		ev, ok := gtx.Event(keyFilters()...)
		if !ok {
			break
		}
		e, ok := ev.(key.Event)
		if !ok || e.State != key.Press {
			continue
		}
		if e.Name == key.NameEscape {
			post(h.Cancel)
			continue
		}
		if n, ok := digit(e.Name); ok {
			post(func() { h.SelectNumber(n) })
		}
	}
}

func keyFilters() []event.Filter {
	filters := []event.Filter{key.Filter{Name: key.NameEscape}}
	for r := '1'; r <= '9'; r++ {
		filters = append(filters, key.Filter{Name: key.Name(string(r))})
	}
	return filters
}

// digit возвращает номер сектора для клавиш 1-9.
func digit(name key.Name) (int, bool) {
	if len(name) != 1 || name[0] < '1' || name[0] > '9' {
		return 0, false
	}
	return int(name[0] - '0'), true
}
