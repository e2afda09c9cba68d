package action

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"piemenu/internal/automation"
	"piemenu/internal/config"
	"piemenu/internal/permission"
	"piemenu/internal/workspace"
)

type pressed struct {
	key  config.Key
	mods config.ModifierMask
}

type fakeKeys struct {
	mu    sync.Mutex
	calls []pressed
	err   error
}

func (f *fakeKeys) Press(key config.Key, mods config.ModifierMask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pressed{key, mods})
	return f.err
}

type fakeApps map[string]workspace.App

func (f fakeApps) Running(id string) (workspace.App, bool) {
	app, ok := f[id]
	return app, ok
}

type fakeBridge struct {
	mu      sync.Mutex
	clicked [][]string
	app     workspace.App
	err     error
	listing [][]string
}

func (f *fakeBridge) Click(_ context.Context, app workspace.App, path []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clicked = append(f.clicked, path)
	f.app = app
	return f.err
}

func (f *fakeBridge) List(context.Context, workspace.App) ([][]string, error) {
	return f.listing, f.err
}

func wait(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("нет результата действия")
		return nil
	}
}

func mustKeystroke(t *testing.T, key config.Key, mods ...config.Modifier) config.ActionDefinition {
	def, err := config.NewKeystroke(key, mods...)
	require.NoError(t, err)
	return def
}

func mustMenu(t *testing.T, path ...string) config.ActionDefinition {
	def, err := config.NewMenuPath(path...)
	require.NoError(t, err)
	return def
}

func TestKeystrokeSendsChord(t *testing.T) {
	keys := &fakeKeys{}
	d := New(permission.Static(true), keys, fakeApps{}, &fakeBridge{})

	err := wait(t, d.Execute(mustKeystroke(t, config.KeyC, config.ModSuper, config.ModShift), "com.figma.Desktop"))
	require.NoError(t, err)
	require.Len(t, keys.calls, 1)
	assert.Equal(t, config.KeyC, keys.calls[0].key)
	assert.Equal(t, config.MaskSuper|config.MaskShift, keys.calls[0].mods)
}

func TestNotAuthorizedIsNoop(t *testing.T) {
	keys := &fakeKeys{}
	bridge := &fakeBridge{}
	apps := fakeApps{"com.figma.Desktop": {ID: "com.figma.Desktop", Name: "Figma"}}
	d := New(permission.Static(false), keys, apps, bridge)

	assert.ErrorIs(t, wait(t, d.Execute(mustKeystroke(t, config.KeyV), "com.figma.Desktop")), ErrNotAuthorized)
	assert.ErrorIs(t, wait(t, d.Execute(mustMenu(t, "Edit", "Paste"), "com.figma.Desktop")), ErrNotAuthorized)
	assert.Empty(t, keys.calls)
	assert.Empty(t, bridge.clicked)
}

func TestMenuPathClicksThroughBridge(t *testing.T) {
	bridge := &fakeBridge{}
	apps := fakeApps{"com.figma.Desktop": {ID: "com.figma.Desktop", Name: "Figma"}}
	d := New(permission.Static(true), &fakeKeys{}, apps, bridge)

	require.NoError(t, wait(t, d.Execute(mustMenu(t, "Edit", "Paste to Replace"), "com.figma.Desktop")))
	assert.Equal(t, [][]string{{"Edit", "Paste to Replace"}}, bridge.clicked)
	assert.Equal(t, "Figma", bridge.app.Name)
}

// Приложение не запущено: ошибка логируется и возвращается, мост не вызывается.
func TestMenuPathTargetNotRunning(t *testing.T) {
	bridge := &fakeBridge{}
	d := New(permission.Static(true), &fakeKeys{}, fakeApps{}, bridge)

	err := wait(t, d.Execute(mustMenu(t, "Edit", "Paste to Replace"), "com.figma.Desktop"))
	assert.ErrorIs(t, err, ErrNotRunning)
	assert.Empty(t, bridge.clicked)
}

func TestMenuPathTooShort(t *testing.T) {
	bridge := &fakeBridge{}
	apps := fakeApps{"x": {ID: "x", Name: "X"}}
	d := New(permission.Static(true), &fakeKeys{}, apps, bridge)

	assert.ErrorIs(t, wait(t, d.Execute(mustMenu(t, "Edit"), "x")), ErrPathTooShort)
	assert.Empty(t, bridge.clicked)
}

func TestBridgeFailureReported(t *testing.T) {
	bridge := &fakeBridge{err: automation.ErrItemNotFound}
	apps := fakeApps{"x": {ID: "x", Name: "X"}}
	d := New(permission.Static(true), &fakeKeys{}, apps, bridge)

	assert.ErrorIs(t, wait(t, d.Execute(mustMenu(t, "Edit", "Nope"), "x")), automation.ErrItemNotFound)
}

func TestKeystrokeFailureReported(t *testing.T) {
	keys := &fakeKeys{err: errors.New("xdotool не найден")}
	d := New(permission.Static(true), keys, fakeApps{}, &fakeBridge{})
	assert.Error(t, wait(t, d.Execute(mustKeystroke(t, config.KeyZ, config.ModCtrl), "x")))
}

func TestEmptyDefinitionRejected(t *testing.T) {
	d := New(permission.Static(true), &fakeKeys{}, fakeApps{}, &fakeBridge{})
	assert.ErrorIs(t, wait(t, d.Execute(config.ActionDefinition{}, "x")), config.ErrInvalid)
}

func TestListMenuItems(t *testing.T) {
	bridge := &fakeBridge{listing: [][]string{{"Edit", "Undo"}}}
	apps := fakeApps{"x": {ID: "x", Name: "X"}}
	d := New(permission.Static(true), &fakeKeys{}, apps, bridge)

	posted := make(chan func(), 1)
	post := func(fn func()) { posted <- fn }

	var got [][]string
	var gotErr error
	d.ListMenuItems("x", post, func(paths [][]string, err error) { got, gotErr = paths, err })
	(<-posted)()
	require.NoError(t, gotErr)
	assert.Equal(t, [][]string{{"Edit", "Undo"}}, got)

	d.ListMenuItems("missing", post, func(paths [][]string, err error) { got, gotErr = paths, err })
	(<-posted)()
	assert.ErrorIs(t, gotErr, ErrNotRunning)
	assert.Nil(t, got)
}
