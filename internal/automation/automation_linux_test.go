//go:build linux

package automation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"piemenu/internal/workspace"
)

func item(id int32, label string, children ...menuLayout) menuLayout {
	return menuLayout{
		ID:       id,
		Props:    map[string]dbus.Variant{"label": dbus.MakeVariant(label)},
		Children: children,
	}
}

func testMenu() menuLayout {
	sep := menuLayout{ID: 13, Props: map[string]dbus.Variant{"type": dbus.MakeVariant("separator")}}
	disabled := item(14, "_Redo")
	disabled.Props["enabled"] = dbus.MakeVariant(false)

	return item(0, "",
		item(1, "_File", item(10, "_Open…")),
		item(2, "_Edit",
			item(11, "_Undo"),
			sep,
			item(12, "Paste to Replace"),
			disabled,
		),
		item(3, "_View"),
	)
}

func TestStripMnemonic(t *testing.T) {
	assert.Equal(t, "Edit", stripMnemonic("_Edit"))
	assert.Equal(t, "snake_case", stripMnemonic("snake__case"))
}

func TestFindPath(t *testing.T) {
	node, err := findPath(testMenu(), []string{"Edit", "Paste to Replace"}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(12), node.ID)

	node, err = findPath(testMenu(), []string{"file", "Open..."}, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(10), node.ID)
}

func TestFindPathErrors(t *testing.T) {
	_, err := findPath(testMenu(), []string{"Edit", "Cut"}, nil)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = findPath(testMenu(), []string{"Edit", "Redo"}, nil)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestFindPathExpandsLazyMenu(t *testing.T) {
	expanded := false
	expand := func(node menuLayout) (menuLayout, error) {
		expanded = true
		require.Equal(t, int32(3), node.ID)
		return item(3, "_View", item(30, "Zoom In")), nil
	}
	node, err := findPath(testMenu(), []string{"View", "Zoom In"}, expand)
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Equal(t, int32(30), node.ID)
}

func TestListPaths(t *testing.T) {
	assert.Equal(t, [][]string{
		{"File", "Open…"},
		{"Edit", "Undo"},
		{"Edit", "Paste to Replace"},
		{"Edit", "Redo"},
	}, listPaths(testMenu()))
}

func TestLayoutDecodesFromWire(t *testing.T) {
	wire := []interface{}{
		int32(0),
		map[string]dbus.Variant{},
		[]dbus.Variant{
			dbus.MakeVariant([]interface{}{
				int32(2),
				map[string]dbus.Variant{"label": dbus.MakeVariant("_Edit")},
				[]dbus.Variant{},
			}),
		},
	}
	var root menuLayout
	require.NoError(t, dbus.Store([]interface{}{wire}, &root))
	require.Len(t, root.Children, 1)
	assert.Equal(t, "Edit", root.Children[0].label())
}

type fakeCommands map[string]string

func (f fakeCommands) run(_ context.Context, name string, args ...string) ([]byte, error) {
	out, ok := f[strings.Join(append([]string{name}, args...), " ")]
	if !ok {
		return nil, errors.New("exit status 1")
	}
	return []byte(out), nil
}

func TestWindowsByPID(t *testing.T) {
	r := windowResolver{
		run: fakeCommands{
			"xdotool search --pid 42": "100\n200\n",
			"xdotool search --pid 43": "200\n300\n",
			"xdotool getactivewindow": "300\n",
		}.run,
		pids: func(workspace.App) []int { return []int{42, 43} },
	}
	windows, err := r.windows(context.Background(), workspace.App{ID: "gimp-2.10", Name: "Gimp"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{300, 100, 200}, windows)
}

func TestWindowsFallBackToClass(t *testing.T) {
	r := windowResolver{
		run: fakeCommands{
			`xdotool search --class ^gimp-2\.10$`: "700\n",
			"xdotool getactivewindow":              "999\n",
		}.run,
		pids: func(workspace.App) []int { return nil },
	}
	windows, err := r.windows(context.Background(), workspace.App{ID: "gimp-2.10", Name: "Gimp"})
	require.NoError(t, err)
	assert.Equal(t, []uint32{700}, windows)
}

// Окно другого приложения, даже активное, не попадает в список.
func TestWindowsIgnoreForeignActiveWindow(t *testing.T) {
	r := windowResolver{
		run:  fakeCommands{"xdotool getactivewindow": "999\n"}.run,
		pids: func(workspace.App) []int { return []int{42} },
	}
	windows, err := r.windows(context.Background(), workspace.App{ID: "kate"})
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestFirstMenu(t *testing.T) {
	menus := map[uint32]dbus.ObjectPath{200: "/MenuBar/2"}
	lookup := func(w uint32) (string, dbus.ObjectPath, error) {
		if w == 100 {
			return "", "", errors.New("no such window")
		}
		if p, ok := menus[w]; ok {
			return ":1.42", p, nil
		}
		return "", "/", nil
	}

	service, path, err := firstMenu([]uint32{100, 300, 200}, lookup)
	require.NoError(t, err)
	assert.Equal(t, ":1.42", service)
	assert.Equal(t, dbus.ObjectPath("/MenuBar/2"), path)

	_, _, err = firstMenu([]uint32{100, 300}, lookup)
	assert.ErrorIs(t, err, ErrNoMenu)
}

func TestBridgeWithoutWindowsHasNoMenu(t *testing.T) {
	b := &dbusMenuBridge{windows: func(context.Context, workspace.App) ([]uint32, error) { return nil, nil }}

	_, err := b.List(context.Background(), workspace.App{ID: "kate"})
	assert.ErrorIs(t, err, ErrNoMenu)

	err = b.Click(context.Background(), workspace.App{ID: "kate"}, []string{"Edit", "Paste"})
	assert.ErrorIs(t, err, ErrNoMenu)
}
