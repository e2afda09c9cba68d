package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"piemenu/internal/radial"
)

// Ошибки модели конфигурации.
var (
	ErrInvalid   = errors.New("некорректная конфигурация")
	ErrNotFound  = errors.New("не найдено")
	ErrDuplicate = errors.New("уже существует")
)

const (
	// DefaultSliceCount - количество секторов меню по умолчанию.
	DefaultSliceCount = 8
	// MinSliceCount и MaxSliceCount ограничивают slice_count профиля.
	MinSliceCount = 2
	MaxSliceCount = 16
)

// IconKind - вид иконки команды.
type IconKind string

const (
	// IconSymbol - именованная символьная иконка, разрешается при отрисовке.
	IconSymbol IconKind = "symbol"
	// IconCustom - пользовательский файл в каталоге icons/.
	IconCustom IconKind = "custom"
)

// Icon ссылка на иконку команды.
type Icon struct {
	Kind     IconKind `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Filename string   `json:"filename,omitempty"`
}

// SymbolIcon создаёт ссылку на символьную иконку.
func SymbolIcon(name string) *Icon {
	return &Icon{Kind: IconSymbol, Name: name}
}

// CustomIcon создаёт ссылку на сохранённый файл иконки.
func CustomIcon(filename string) *Icon {
	return &Icon{Kind: IconCustom, Filename: filename}
}

// ActionType - дискриминатор варианта действия.
type ActionType string

const (
	ActionKeystroke ActionType = "keystroke"
	ActionMenuItem  ActionType = "menu_item"
)

// Action - вариант ActionDefinition: KeystrokeAction или MenuPathAction.
// Интерфейс закрыт: реализовать его можно только внутри пакета.
type Action interface {
	Type() ActionType
	validate() error
}

// KeystrokeAction - синтетическое нажатие клавиши с модификаторами.
type KeystrokeAction struct {
	Key       Key        `json:"key"`
	Modifiers []Modifier `json:"modifiers"`
}

// Type реализует Action.
func (KeystrokeAction) Type() ActionType { return ActionKeystroke }

// Mask возвращает модификаторы в виде маски.
func (a KeystrokeAction) Mask() ModifierMask { return MaskOf(a.Modifiers) }

// Display возвращает подпись сочетания для меню.
func (a KeystrokeAction) Display() string { return FormatKeystroke(a.Key, a.Mask()) }

func (a KeystrokeAction) validate() error {
	if !a.Key.Valid() {
		return fmt.Errorf("%w: неизвестная клавиша %q", ErrInvalid, a.Key)
	}
	for _, m := range a.Modifiers {
		if _, ok := modifierBits[m]; !ok {
			return fmt.Errorf("%w: неизвестный модификатор %q", ErrInvalid, m)
		}
	}
	return nil
}

// MenuPathAction - путь по меню целевого приложения, например ["Edit", "Paste"].
type MenuPathAction struct {
	Path []string `json:"menu_path"`
}

// Type реализует Action.
func (MenuPathAction) Type() ActionType { return ActionMenuItem }

func (a MenuPathAction) validate() error {
	if len(a.Path) == 0 {
		return fmt.Errorf("%w: пустой путь меню", ErrInvalid)
	}
	for _, p := range a.Path {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: пустой элемент пути меню", ErrInvalid)
		}
	}
	return nil
}

// ActionDefinition - тегированное объединение действий. Ровно один вариант
// заполнен всегда: нулевое значение невалидно и отвергается при сохранении.
type ActionDefinition struct {
	action Action
}

// NewKeystroke создаёт действие-нажатие.
func NewKeystroke(key Key, mods ...Modifier) (ActionDefinition, error) {
	return newDefinition(KeystrokeAction{Key: key, Modifiers: mods})
}

// NewMenuPath создаёт действие-выбор пункта меню.
func NewMenuPath(path ...string) (ActionDefinition, error) {
	return newDefinition(MenuPathAction{Path: path})
}

func newDefinition(a Action) (ActionDefinition, error) {
	if err := a.validate(); err != nil {
		return ActionDefinition{}, err
	}
	return ActionDefinition{action: a}, nil
}

func mustDefinition(d ActionDefinition, err error) ActionDefinition {
	if err != nil {
		panic(err)
	}
	return d
}

// Action возвращает заполненный вариант (nil для нулевого значения).
func (d ActionDefinition) Action() Action {
	return d.action
}

// Validate проверяет, что вариант заполнен и корректен.
func (d ActionDefinition) Validate() error {
	if d.action == nil {
		return fmt.Errorf("%w: действие не задано", ErrInvalid)
	}
	return d.action.validate()
}

type definitionJSON struct {
	Type      ActionType       `json:"type"`
	Keystroke *KeystrokeAction `json:"keystroke,omitempty"`
	MenuItem  *MenuPathAction  `json:"menu_item,omitempty"`
}

// MarshalJSON кодирует действие как {"type": ..., "<вариант>": {...}}.
func (d ActionDefinition) MarshalJSON() ([]byte, error) {
	var out definitionJSON
	switch a := d.action.(type) {
	case KeystrokeAction:
		out.Type = ActionKeystroke
		out.Keystroke = &a
	case MenuPathAction:
		out.Type = ActionMenuItem
		out.MenuItem = &a
	default:
		return nil, fmt.Errorf("%w: действие не задано", ErrInvalid)
	}
	return json.Marshal(out)
}

// UnmarshalJSON требует, чтобы был заполнен ровно один вариант, совпадающий с type.
func (d *ActionDefinition) UnmarshalJSON(data []byte) error {
	var in definitionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Keystroke != nil && in.MenuItem != nil {
		return fmt.Errorf("%w: заполнены оба варианта действия", ErrInvalid)
	}

	var a Action
	switch in.Type {
	case ActionKeystroke:
		if in.Keystroke == nil {
			return fmt.Errorf("%w: нет данных keystroke", ErrInvalid)
		}
		a = *in.Keystroke
	case ActionMenuItem:
		if in.MenuItem == nil {
			return fmt.Errorf("%w: нет данных menu_item", ErrInvalid)
		}
		a = *in.MenuItem
	default:
		return fmt.Errorf("%w: неизвестный тип действия %q", ErrInvalid, in.Type)
	}

	def, err := newDefinition(a)
	if err != nil {
		return err
	}
	*d = def
	return nil
}

// Command - команда, доступная для назначения на сектор.
// ID неизменяем после создания: на него ссылаются слоты.
type Command struct {
	ID         string           `json:"action_id"`
	Label      string           `json:"label"`
	Definition ActionDefinition `json:"definition"`
	Icon       *Icon            `json:"icon,omitempty"`
}

// KeystrokeDisplay возвращает подпись сочетания или "" для команд меню.
func (c Command) KeystrokeDisplay() string {
	if ks, ok := c.Definition.Action().(KeystrokeAction); ok {
		return ks.Display()
	}
	return ""
}

// ApplicationProfile - конфигурация меню для одного приложения.
type ApplicationProfile struct {
	ID         string         `json:"bundle_identifier"`
	Name       string         `json:"name"`
	Commands   []Command      `json:"available_commands"`
	Slots      map[int]string `json:"pie_slots"`
	SliceCount int            `json:"slice_count,omitempty"`
}

// Slices возвращает количество секторов меню профиля.
func (p ApplicationProfile) Slices() int {
	if p.SliceCount == 0 {
		return DefaultSliceCount
	}
	return p.SliceCount
}

// Command ищет команду по идентификатору.
func (p ApplicationProfile) Command(id string) (Command, bool) {
	for _, c := range p.Commands {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// BoundCommand возвращает команду, назначенную на сектор.
func (p ApplicationProfile) BoundCommand(slot int) (Command, bool) {
	id, ok := p.Slots[slot]
	if !ok {
		return Command{}, false
	}
	return p.Command(id)
}

// AssignedSlots возвращает занятые индексы секторов по возрастанию.
func (p ApplicationProfile) AssignedSlots() []int {
	slots := make([]int, 0, len(p.Slots))
	for idx := range p.Slots {
		slots = append(slots, idx)
	}
	sort.Ints(slots)
	return slots
}

// Validate проверяет инварианты профиля.
func (p ApplicationProfile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: пустой идентификатор приложения", ErrInvalid)
	}
	if p.SliceCount != 0 && (p.SliceCount < MinSliceCount || p.SliceCount > MaxSliceCount) {
		return fmt.Errorf("%w: slice_count %d вне [%d, %d]", ErrInvalid, p.SliceCount, MinSliceCount, MaxSliceCount)
	}

	seen := make(map[string]bool, len(p.Commands))
	for _, c := range p.Commands {
		if c.ID == "" {
			return fmt.Errorf("%w: команда без идентификатора", ErrInvalid)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: повтор команды %q", ErrInvalid, c.ID)
		}
		seen[c.ID] = true
		if err := c.Definition.Validate(); err != nil {
			return fmt.Errorf("команда %q: %w", c.ID, err)
		}
	}

	n := p.Slices()
	for idx, id := range p.Slots {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: сектор %d вне [0, %d)", ErrInvalid, idx, n)
		}
		if !seen[id] {
			return fmt.Errorf("%w: сектор %d ссылается на несуществующую команду %q", ErrInvalid, idx, id)
		}
	}
	return nil
}

// Clone возвращает глубокую копию профиля.
func (p ApplicationProfile) Clone() ApplicationProfile {
	out := p
	out.Commands = make([]Command, len(p.Commands))
	for i, c := range p.Commands {
		if c.Icon != nil {
			icon := *c.Icon
			c.Icon = &icon
		}
		out.Commands[i] = c
	}
	out.Slots = make(map[int]string, len(p.Slots))
	for k, v := range p.Slots {
		out.Slots[k] = v
	}
	return out
}

// GeneralSettings - глобальные настройки приложения.
type GeneralSettings struct {
	Hotkey        HotkeyConfig `json:"hotkey"`
	LaunchAtLogin bool         `json:"launch_at_login"`
	Version       string       `json:"app_version"`
	DeadZone      float64      `json:"dead_zone,omitempty"`
}

// DeadZoneRatio возвращает радиус мёртвой зоны как долю внешнего радиуса.
func (g GeneralSettings) DeadZoneRatio() float64 {
	return radial.ClampDeadZone(g.DeadZone)
}

// DefaultGeneral возвращает настройки по умолчанию.
func DefaultGeneral(version string) GeneralSettings {
	if version == "" {
		version = "dev"
	}
	return GeneralSettings{
		Hotkey: HotkeyConfig{
			Modifiers: []Modifier{ModCtrl, ModShift},
			Key:       KeyP,
		},
		Version: version,
	}
}
