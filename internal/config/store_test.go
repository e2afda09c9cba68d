package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, "1.2.3")
	require.NoError(t, err)
	return s, dir
}

func TestOpenSynthesizesDefaultProfile(t *testing.T) {
	s, dir := openTemp(t)

	p, ok := s.Profile(DefaultAppID)
	require.True(t, ok)
	assert.Equal(t, "Figma", p.Name)
	assert.Len(t, p.Commands, 4)
	assert.Equal(t, "pasteReplace", p.Slots[2])

	_, err := os.Stat(filepath.Join(dir, "config", "apps", "com.figma.Desktop.json"))
	assert.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, dir := openTemp(t)

	_, err := s.AddApplication("com.example.Editor", "Editor")
	require.NoError(t, err)

	cmd, err := s.AddCommand("com.example.Editor", Command{
		Label:      "Undo",
		Definition: mustDefinition(NewKeystroke(KeyZ, ModCtrl)),
		Icon:       SymbolIcon("arrow.uturn.backward"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cmd.ID)

	menu, err := s.AddCommand("com.example.Editor", Command{
		ID:         "fmt",
		Label:      "Format",
		Definition: mustDefinition(NewMenuPath("Edit", "Format", "Document")),
	})
	require.NoError(t, err)

	require.NoError(t, s.AssignSlot("com.example.Editor", 0, cmd.ID))
	require.NoError(t, s.AssignSlot("com.example.Editor", 5, menu.ID))
	require.NoError(t, s.SetHotkey(HotkeyConfig{Modifiers: []Modifier{ModAlt}, Key: KeySpace}))
	require.NoError(t, s.SetLaunchAtLogin(true))
	require.NoError(t, s.Save())

	reopened, err := Open(dir, "1.2.3")
	require.NoError(t, err)

	assert.Equal(t, s.Profiles(), reopened.Profiles())
	assert.Equal(t, s.General(), reopened.General())

	p, ok := reopened.Profile("com.example.Editor")
	require.True(t, ok)
	bound, ok := p.BoundCommand(5)
	require.True(t, ok)
	assert.Equal(t, []string{"Edit", "Format", "Document"}, bound.Definition.Action().(MenuPathAction).Path)
}

func TestSavedKeysAreSorted(t *testing.T) {
	s, dir := openTemp(t)
	require.NoError(t, s.Save())

	data, err := os.ReadFile(filepath.Join(dir, "config", "apps", "com.figma.Desktop.json"))
	require.NoError(t, err)

	text := string(data)
	order := []string{`"available_commands"`, `"bundle_identifier"`, `"name"`, `"pie_slots"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, key)
		last = idx
	}
	// Внутри команды ключи тоже отсортированы
	assert.Less(t, strings.Index(text, `"action_id"`), strings.Index(text, `"definition"`))
	assert.Less(t, strings.Index(text, `"definition"`), strings.Index(text, `"icon"`))
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s, dir := openTemp(t)
	require.NoError(t, s.Save())
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(filepath.Join(dir, "config", "apps"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), e.Name())
	}
}

func TestDeleteCommandPurgesSlots(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.AssignSlot(DefaultAppID, 6, "copy"))
	require.NoError(t, s.DeleteCommand(DefaultAppID, "copy"))

	p, ok := s.Profile(DefaultAppID)
	require.True(t, ok)
	_, has := p.Command("copy")
	assert.False(t, has)
	for _, id := range p.Slots {
		assert.NotEqual(t, "copy", id)
	}
	assert.Equal(t, "paste", p.Slots[1])
}

func TestUpdateCommandKeepsID(t *testing.T) {
	s, _ := openTemp(t)

	require.NoError(t, s.UpdateCommand(DefaultAppID, "paste", "Вставить", CustomIcon("paste.png")))

	p, _ := s.Profile(DefaultAppID)
	cmd, ok := p.Command("paste")
	require.True(t, ok)
	assert.Equal(t, "Вставить", cmd.Label)
	assert.Equal(t, IconCustom, cmd.Icon.Kind)
	assert.Equal(t, "paste", p.Slots[1])
}

func TestAssignSlotRejectsOutOfRange(t *testing.T) {
	s, _ := openTemp(t)

	err := s.AssignSlot(DefaultAppID, DefaultSliceCount, "copy")
	assert.ErrorIs(t, err, ErrInvalid)

	err = s.AssignSlot(DefaultAppID, 0, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.AssignSlot("com.unknown", 0, "copy")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddApplicationDuplicate(t *testing.T) {
	s, _ := openTemp(t)
	_, err := s.AddApplication(DefaultAppID, "Figma")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestRemoveProfileDeletesFile(t *testing.T) {
	s, dir := openTemp(t)
	_, err := s.AddApplication("org.gimp.GIMP", "GIMP")
	require.NoError(t, err)

	path := filepath.Join(dir, "config", "apps", "org.gimp.GIMP.json")
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, s.RemoveProfile("org.gimp.GIMP"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	_, ok := s.Profile("org.gimp.GIMP")
	assert.False(t, ok)
}

func TestMalformedProfileSkipped(t *testing.T) {
	s, dir := openTemp(t)
	apps := filepath.Join(dir, "config", "apps")

	require.NoError(t, os.WriteFile(filepath.Join(apps, "broken.json"), []byte("{not json"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(apps, "both.json"), []byte(`{
		"bundle_identifier": "com.both",
		"name": "Both",
		"available_commands": [{
			"action_id": "x",
			"label": "X",
			"definition": {
				"type": "keystroke",
				"keystroke": {"key": "c", "modifiers": []},
				"menu_item": {"menu_path": ["Edit"]}
			}
		}],
		"pie_slots": {}
	}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(apps, ".hidden.json"), []byte("garbage"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(apps, "ok.json"), []byte(`{
		"bundle_identifier": "com.ok",
		"name": "OK",
		"available_commands": [],
		"pie_slots": null
	}`), 0644))

	s.Load()

	_, ok := s.Profile("com.both")
	assert.False(t, ok)
	p, ok := s.Profile("com.ok")
	require.True(t, ok)
	assert.NotNil(t, p.Slots)
	_, ok = s.Profile(DefaultAppID)
	assert.True(t, ok)
}

func TestBadGeneralFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "general.json"), []byte(`{"hotkey": 5}`), 0644))

	s, err := Open(dir, "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, DefaultGeneral("2.0.0"), s.General())
}

func TestDanglingSlotRejected(t *testing.T) {
	data := []byte(`{
		"bundle_identifier": "com.x",
		"name": "X",
		"available_commands": [],
		"pie_slots": {"0": "ghost"}
	}`)
	_, err := DecodeProfile(data)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestActionDefinitionJSON(t *testing.T) {
	def := mustDefinition(NewKeystroke(KeyK, ModAlt, ModSuper))
	data, err := json.Marshal(def)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"keystroke","keystroke":{"key":"k","modifiers":["alt","super"]}}`, string(data))

	var back ActionDefinition
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, def, back)

	var bad ActionDefinition
	err = json.Unmarshal([]byte(`{"type":"menu_item","keystroke":{"key":"k"}}`), &bad)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = json.Marshal(ActionDefinition{})
	assert.Error(t, err)
}

func TestImage(t *testing.T) {
	s, _ := openTemp(t)

	_, ok := s.Image(SymbolIcon("doc.on.doc"))
	assert.False(t, ok)
	_, ok = s.Image(CustomIcon("absent.png"))
	assert.False(t, ok)
	_, ok = s.Image(nil)
	assert.False(t, ok)

	src := filepath.Join(t.TempDir(), "my icon.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0644))

	name, err := s.SaveCustomIcon(src)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "my-icon-"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	data, ok := s.Image(CustomIcon(name))
	require.True(t, ok)
	assert.Equal(t, []byte("png-bytes"), data)

	_, ok = s.Image(CustomIcon("../" + name))
	assert.False(t, ok)
}

func TestProfileFileName(t *testing.T) {
	assert.Equal(t, "com.figma.Desktop.json", ProfileFileName("com.figma.Desktop"))
	assert.Equal(t, "_usr_bin_gimp.json", ProfileFileName("/usr/bin/gimp"))
	assert.Equal(t, "_.json", ProfileFileName(".."))
}

func TestDeadZoneRatio(t *testing.T) {
	assert.Equal(t, 0.2, GeneralSettings{}.DeadZoneRatio())
	assert.Equal(t, 0.1, GeneralSettings{DeadZone: 0.01}.DeadZoneRatio())
	assert.Equal(t, 0.4, GeneralSettings{DeadZone: 0.9}.DeadZoneRatio())
	assert.Equal(t, 0.3, GeneralSettings{DeadZone: 0.3}.DeadZoneRatio())
}

func TestFormatKeystroke(t *testing.T) {
	mask := MaskOf([]Modifier{ModSuper, ModAlt})
	assert.Equal(t, "⌘⌥K", formatKeystroke("darwin", KeyK, mask))
	assert.Equal(t, "Alt+Super+K", formatKeystroke("linux", KeyK, mask))
	assert.Equal(t, "Ctrl+Shift+P", formatKeystroke("windows", KeyP, MaskCtrl|MaskShift))
	assert.Equal(t, "Alt+Win+K", formatKeystroke("windows", KeyK, mask))
}

func TestWatcherRelevant(t *testing.T) {
	assert.True(t, relevant(fsnotify.Event{Name: "/x/config/apps/com.a.json", Op: fsnotify.Write}))
	assert.True(t, relevant(fsnotify.Event{Name: "/x/config/general.JSON", Op: fsnotify.Rename}))
	assert.False(t, relevant(fsnotify.Event{Name: "/x/config/apps/.com.a.json.tmp", Op: fsnotify.Create}))
	assert.False(t, relevant(fsnotify.Event{Name: "/x/config/apps/readme.txt", Op: fsnotify.Write}))
	assert.False(t, relevant(fsnotify.Event{Name: "/x/config/apps/com.a.json", Op: fsnotify.Chmod}))
}

func TestWatcherReloadsExternalEdit(t *testing.T) {
	s, dir := openTemp(t)

	reloaded := make(chan struct{}, 1)
	w, err := s.Watch(nil)
	require.NoError(t, err)
	defer w.Close()
	w.OnReload(func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	data := []byte(`{
		"bundle_identifier": "com.external",
		"name": "External",
		"available_commands": [],
		"pie_slots": {}
	}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "apps", "com.external.json"), data, 0644))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("перезагрузка не произошла")
	}
	_, ok := s.Profile("com.external")
	assert.True(t, ok)
}
