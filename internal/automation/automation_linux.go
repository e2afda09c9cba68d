//go:build linux

package automation

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/godbus/dbus/v5"
	"piemenu/internal/workspace"
)

const (
	registrarService = "com.canonical.AppMenu.Registrar"
	registrarPath    = dbus.ObjectPath("/com/canonical/AppMenu/Registrar")
	registrarIface   = "com.canonical.AppMenu.Registrar"
	menuIface        = "com.canonical.dbusmenu"
)

// menuLayout - узел дерева com.canonical.dbusmenu: (ia{sv}av).
type menuLayout struct {
	ID       int32
	Props    map[string]dbus.Variant
	Children []menuLayout
}

func (m menuLayout) prop(name string) (dbus.Variant, bool) {
	v, ok := m.Props[name]
	return v, ok
}

func (m menuLayout) label() string {
	v, ok := m.prop("label")
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return stripMnemonic(s)
}

func (m menuLayout) visible() bool {
	if v, ok := m.prop("visible"); ok {
		if b, ok := v.Value().(bool); ok && !b {
			return false
		}
	}
	if v, ok := m.prop("type"); ok {
		if s, _ := v.Value().(string); s == "separator" {
			return false
		}
	}
	return true
}

func (m menuLayout) enabled() bool {
	if v, ok := m.prop("enabled"); ok {
		if b, ok := v.Value().(bool); ok {
			return b
		}
	}
	return true
}

// stripMnemonic убирает подчёркивания-мнемоники: "_Edit" -> "Edit", "__" -> "_".
func stripMnemonic(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			if i+1 < len(s) && s[i+1] == '_' {
				b.WriteByte('_')
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func normalizeLabel(s string) string {
	s = strings.TrimSuffix(s, "…")
	s = strings.TrimSuffix(s, "...")
	return strings.TrimSpace(s)
}

func matchLabel(label, want string) bool {
	return strings.EqualFold(normalizeLabel(label), normalizeLabel(want))
}

// findChild ищет видимый дочерний пункт с подписью label.
func findChild(node menuLayout, label string) (menuLayout, bool) {
	for _, c := range node.Children {
		if c.visible() && matchLabel(c.label(), label) {
			return c, true
		}
	}
	return menuLayout{}, false
}

// findPath проходит дерево по пути. expand подгружает ленивые подменю.
func findPath(root menuLayout, path []string, expand func(menuLayout) (menuLayout, error)) (menuLayout, error) {
	node := root
	for i, label := range path {
		if i > 0 && len(node.Children) == 0 && expand != nil {
			expanded, err := expand(node)
			if err != nil {
				return menuLayout{}, err
			}
			node = expanded
		}
		child, ok := findChild(node, label)
		if !ok {
			return menuLayout{}, fmt.Errorf("%w: %s", ErrItemNotFound, FormatPath(path[:i+1]))
		}
		node = child
	}
	if !node.enabled() {
		return menuLayout{}, fmt.Errorf("%w: пункт %s недоступен", ErrItemNotFound, FormatPath(path))
	}
	return node, nil
}

// listPaths возвращает двухуровневые пути видимых пунктов.
func listPaths(root menuLayout) [][]string {
	var paths [][]string
	for _, top := range root.Children {
		if !top.visible() {
			continue
		}
		for _, item := range top.Children {
			if !item.visible() || item.label() == "" {
				continue
			}
			paths = append(paths, []string{top.label(), item.label()})
		}
	}
	return paths
}

// dbusMenuBridge работает с меню, экспортированными через AppMenu Registrar
// (глобальное меню KDE/Unity, приложения Qt и GTK с appmenu-модулем).
type dbusMenuBridge struct {
	windows func(ctx context.Context, app workspace.App) ([]uint32, error)
}

func newBridge() Bridge {
	r := windowResolver{run: runOutput, pids: processIDs}
	return &dbusMenuBridge{windows: r.windows}
}

func runOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// windowResolver ищет окна целевого приложения: по PID процессов, затем по WM_CLASS.
type windowResolver struct {
	run  func(ctx context.Context, name string, args ...string) ([]byte, error)
	pids func(app workspace.App) []int
}

func (r windowResolver) windows(ctx context.Context, app workspace.App) ([]uint32, error) {
	var out []uint32
	seen := make(map[uint32]bool)
	add := func(data []byte) {
		for _, f := range strings.Fields(string(data)) {
			id, err := strconv.ParseUint(f, 10, 32)
			if err != nil || seen[uint32(id)] {
				continue
			}
			seen[uint32(id)] = true
			out = append(out, uint32(id))
		}
	}

	for _, pid := range r.pids(app) {
		// xdotool завершается с кодом 1, если окон нет
		if data, err := r.run(ctx, "xdotool", "search", "--pid", strconv.Itoa(pid)); err == nil {
			add(data)
		}
	}
	if len(out) == 0 {
		for _, class := range []string{app.ID, app.Name} {
			if class == "" {
				continue
			}
			if data, err := r.run(ctx, "xdotool", "search", "--class", "^"+regexp.QuoteMeta(class)+"$"); err == nil {
				add(data)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Активное окно приложения проверяется первым
	if data, err := r.run(ctx, "xdotool", "getactivewindow"); err == nil {
		if id, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 32); err == nil {
			out = moveToFront(out, uint32(id))
		}
	}
	return out, nil
}

func moveToFront(windows []uint32, id uint32) []uint32 {
	for i, w := range windows {
		if w == id {
			copy(windows[1:i+1], windows[:i])
			windows[0] = id
			break
		}
	}
	return windows
}

// processIDs возвращает PID процессов приложения: по пути исполняемого файла,
// а без него по имени файла или comm.
func processIDs(app workspace.App) []int {
	entries, err := os.ReadDir("/proc")
	if err != nil {
		return nil
	}
	var pids []int
	for _, e := range entries {
		pid, err := strconv.Atoi(e.Name())
		if err != nil {
			continue
		}
		dir := filepath.Join("/proc", e.Name())
		target, _ := os.Readlink(filepath.Join(dir, "exe"))
		if app.Path != "" {
			if target == app.Path {
				pids = append(pids, pid)
			}
			continue
		}
		comm, _ := os.ReadFile(filepath.Join(dir, "comm"))
		if (target != "" && strings.EqualFold(filepath.Base(target), app.ID)) ||
			strings.EqualFold(strings.TrimSpace(string(comm)), app.ID) {
			pids = append(pids, pid)
		}
	}
	return pids
}

type menuClient struct {
	ctx  context.Context
	menu dbus.BusObject
}

// firstMenu возвращает меню первого окна, для которого оно зарегистрировано.
func firstMenu(windows []uint32, lookup func(window uint32) (string, dbus.ObjectPath, error)) (string, dbus.ObjectPath, error) {
	for _, w := range windows {
		service, path, err := lookup(w)
		if err != nil {
			log.Printf("Нет меню у окна %d: %v", w, err)
			continue
		}
		if service != "" && path != "" && path != "/" {
			return service, path, nil
		}
	}
	return "", "", fmt.Errorf("%w: окон проверено %d", ErrNoMenu, len(windows))
}

// open находит меню окна целевого приложения через Registrar.
func (b *dbusMenuBridge) open(ctx context.Context, app workspace.App) (*menuClient, error) {
	windows, err := b.windows(ctx, app)
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: у %s нет окон", ErrNoMenu, app.ID)
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("сессионная шина D-Bus: %w", err)
	}

	registrar := conn.Object(registrarService, registrarPath)
	service, path, err := firstMenu(windows, func(window uint32) (string, dbus.ObjectPath, error) {
		var service string
		var path dbus.ObjectPath
		err := registrar.CallWithContext(ctx, registrarIface+".GetMenuForWindow", 0, window).Store(&service, &path)
		return service, path, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", app.ID, err)
	}
	return &menuClient{ctx: ctx, menu: conn.Object(service, path)}, nil
}

func (c *menuClient) layout(parent int32) (menuLayout, error) {
	var revision uint32
	var root menuLayout
	props := []string{"label", "type", "visible", "enabled", "children-display"}
	err := c.menu.CallWithContext(c.ctx, menuIface+".GetLayout", 0, parent, int32(-1), props).Store(&revision, &root)
	if err != nil {
		return menuLayout{}, fmt.Errorf("dbusmenu GetLayout: %w", err)
	}
	return root, nil
}

// expand просит приложение заполнить подменю и перечитывает его.
func (c *menuClient) expand(node menuLayout) (menuLayout, error) {
	var needUpdate bool
	if err := c.menu.CallWithContext(c.ctx, menuIface+".AboutToShow", 0, node.ID).Store(&needUpdate); err != nil {
		log.Printf("dbusmenu AboutToShow(%d): %v", node.ID, err)
	}
	return c.layout(node.ID)
}

func (b *dbusMenuBridge) Click(ctx context.Context, app workspace.App, path []string) error {
	client, err := b.open(ctx, app)
	if err != nil {
		return err
	}
	root, err := client.layout(0)
	if err != nil {
		return err
	}
	item, err := findPath(root, path, client.expand)
	if err != nil {
		return err
	}

	call := client.menu.CallWithContext(ctx, menuIface+".Event", 0,
		item.ID, "clicked", dbus.MakeVariant(""), uint32(0))
	if call.Err != nil {
		return fmt.Errorf("dbusmenu Event: %w", call.Err)
	}
	log.Printf("Выбран пункт меню %s в %s", FormatPath(path), app.Name)
	return nil
}

func (b *dbusMenuBridge) List(ctx context.Context, app workspace.App) ([][]string, error) {
	client, err := b.open(ctx, app)
	if err != nil {
		return nil, err
	}
	root, err := client.layout(0)
	if err != nil {
		return nil, err
	}
	for i, top := range root.Children {
		if len(top.Children) == 0 && top.visible() {
			if expanded, err := client.expand(top); err == nil {
				root.Children[i] = expanded
			}
		}
	}
	return listPaths(root), nil
}
