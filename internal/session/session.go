// Package session управляет сеансом кругового меню: от нажатия горячей клавиши
// до выполнения выбранной команды.
//
// Все методы Coordinator должны вызываться из одной горутины (UI-цикла).
package session

import (
	"log"

	"piemenu/internal/config"
	"piemenu/internal/radial"
	"piemenu/internal/workspace"
)

// State - состояние сеанса.
type State int

const (
	Idle State = iota
	Showing
	Dispatching
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	case Dispatching:
		return "dispatching"
	}
	return "unknown"
}

// Slice - сектор меню, построенный из профиля для одного показа.
type Slice struct {
	Index     int
	CommandID string
	Label     string
	Icon      *config.Icon
	Image     []byte // содержимое пользовательской иконки, если есть
	Keystroke string // подпись сочетания; пусто для команд меню
}

// Menu - всё, что нужно оверлею для показа.
type Menu struct {
	AppID    string
	AppName  string
	Slices   []Slice // только занятые сектора, по возрастанию Index
	Count    int     // полное количество секторов N для геометрии
	DeadZone float64 // доля внешнего радиуса
	X, Y     int     // положение указателя в момент нажатия, центр меню
}

// Overlay показывает меню. Вызывается только из UI-цикла.
type Overlay interface {
	Show(menu Menu)
	SetHover(index int)
	Hide()
}

// ConfigSource - чтение конфигурации.
type ConfigSource interface {
	Profiles() []config.ApplicationProfile
	General() config.GeneralSettings
	Image(icon *config.Icon) ([]byte, bool)
}

// Desktop - запросы к ОС, нужные при нажатии.
type Desktop interface {
	Frontmost() (workspace.App, error)
	Pointer() (x, y int, err error)
}

// Executor выполняет команду.
type Executor interface {
	Execute(def config.ActionDefinition, targetAppID string) <-chan error
}

// Coordinator - машина состояний Idle -> Showing -> (Dispatching) -> Idle.
type Coordinator struct {
	cfg        ConfigSource
	desktop    Desktop
	exec       Executor
	overlay    Overlay
	beep       func()
	strategies []Strategy

	state   State
	profile config.ApplicationProfile
	menu    Menu
	hover   int
}

// New создаёт координатор. beep вызывается, когда меню показать нечего.
func New(cfg ConfigSource, desktop Desktop, exec Executor, overlay Overlay, beep func()) *Coordinator {
	if beep == nil {
		beep = func() {}
	}
	return &Coordinator{
		cfg:        cfg,
		desktop:    desktop,
		exec:       exec,
		overlay:    overlay,
		beep:       beep,
		strategies: DefaultStrategies,
		hover:      radial.None,
	}
}

// SetStrategies заменяет правила сопоставления профилей.
func (c *Coordinator) SetStrategies(s []Strategy) {
	c.strategies = s
}

// State возвращает текущее состояние.
func (c *Coordinator) State() State { return c.state }

// Hover возвращает сектор под указателем или radial.None.
func (c *Coordinator) Hover() int { return c.hover }

// Menu возвращает показанное меню.
func (c *Coordinator) Menu() (Menu, bool) {
	return c.menu, c.state == Showing
}

// Press обрабатывает нажатие горячей клавиши: показывает меню для активного приложения.
// Повторное нажатие во время показа игнорируется.
func (c *Coordinator) Press() {
	if c.state != Idle {
		return
	}

	app, err := c.desktop.Frontmost()
	if err != nil {
		log.Printf("Не удалось определить активное приложение: %v", err)
	}

	profile, how, ok := Resolve(c.cfg.Profiles(), app, c.strategies)
	if !ok {
		log.Printf("Нет профиля для %q (%s)", app.Name, app.ID)
		c.beep()
		return
	}
	log.Printf("Профиль %s выбран по правилу %q для %q (%s)", profile.Name, how, app.Name, app.ID)

	slices := c.buildSlices(profile)
	if len(slices) == 0 {
		log.Printf("В профиле %s нет назначенных команд", profile.Name)
		c.beep()
		return
	}

	x, y, err := c.desktop.Pointer()
	if err != nil {
		log.Printf("Не удалось получить положение указателя: %v", err)
	}

	c.profile = profile
	c.menu = Menu{
		AppID:    profile.ID,
		AppName:  profile.Name,
		Slices:   slices,
		Count:    profile.Slices(),
		DeadZone: c.cfg.General().DeadZoneRatio(),
		X:        x,
		Y:        y,
	}
	c.hover = radial.None
	c.state = Showing
	c.overlay.Show(c.menu)
}

// buildSlices строит сектора только для занятых слотов.
func (c *Coordinator) buildSlices(p config.ApplicationProfile) []Slice {
	var slices []Slice
	for _, idx := range p.AssignedSlots() {
		cmd, ok := p.BoundCommand(idx)
		if !ok {
			continue
		}
		s := Slice{
			Index:     idx,
			CommandID: cmd.ID,
			Label:     cmd.Label,
			Icon:      cmd.Icon,
			Keystroke: cmd.KeystrokeDisplay(),
		}
		if data, ok := c.cfg.Image(cmd.Icon); ok {
			s.Image = data
		}
		slices = append(slices, s)
	}
	return slices
}

// PointerMoved обновляет сектор под указателем. dx, dy - смещение от центра меню
// в экранных координатах, outer - внешний радиус меню.
func (c *Coordinator) PointerMoved(dx, dy, outer float64) {
	if c.state != Showing {
		return
	}
	g := radial.NewGeometry(radial.Point{}, outer, c.menu.DeadZone, c.menu.Count)
	idx := g.HitTest(radial.Point{X: dx, Y: dy})
	if idx == c.hover {
		return
	}
	c.hover = idx
	c.overlay.SetHover(idx)
}

// Release обрабатывает отпускание горячей клавиши: выполняет команду под указателем, если она есть.
func (c *Coordinator) Release() {
	if c.state != Showing {
		return
	}
	c.selectSlot(c.hover)
}

// Click выбирает сектор щелчком мыши, как при отпускании клавиши.
func (c *Coordinator) Click() {
	c.Release()
}

// Toggle показывает меню или, если оно уже показано, завершает сеанс как Release.
func (c *Coordinator) Toggle() {
	if c.state == Showing {
		c.Release()
		return
	}
	c.Press()
}

// Cancel скрывает меню без выполнения команды.
func (c *Coordinator) Cancel() {
	if c.state != Showing {
		return
	}
	c.hide()
}

// SelectNumber выбирает сектор n-1 по клавише n, как отпускание над ним.
// Номера за пределами меню игнорируются.
func (c *Coordinator) SelectNumber(n int) {
	if c.state != Showing || n < 1 || n > c.menu.Count {
		return
	}
	c.selectSlot(n - 1)
}

func (c *Coordinator) hide() {
	c.overlay.Hide()
	c.hover = radial.None
	c.menu = Menu{}
	c.state = Idle
}

// selectSlot скрывает меню и выполняет команду, привязанную к слоту.
func (c *Coordinator) selectSlot(slot int) {
	profile := c.profile
	c.hide()
	c.profile = config.ApplicationProfile{}

	if slot == radial.None {
		return
	}
	cmd, ok := profile.BoundCommand(slot)
	if !ok {
		log.Printf("Сектор %d пуст", slot)
		return
	}

	c.state = Dispatching
	log.Printf("Выполнение команды %q (%s) для %s", cmd.Label, cmd.ID, profile.ID)
	c.exec.Execute(cmd.Definition, profile.ID)
	c.state = Idle
}
