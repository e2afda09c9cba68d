package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDesktopEntry(t *testing.T) {
	data := []byte(`[Desktop Entry]
Type=Application
Name=GNU Image Manipulation Program
Name[ru]=Редактор изображений GIMP
Exec=env GDK_BACKEND=x11 gimp-2.10 %U
StartupWMClass=gimp-2.10

[Desktop Action new-window]
Name=New Window
Exec=other
`)
	app, ok := parseDesktopEntry("/usr/share/applications/gimp.desktop", data)
	require.True(t, ok)
	assert.Equal(t, "gimp-2.10", app.ID)
	assert.Equal(t, "GNU Image Manipulation Program", app.Name)
	assert.Equal(t, "/usr/share/applications/gimp.desktop", app.Path)
}

func TestParseDesktopEntryFallsBackToExec(t *testing.T) {
	data := []byte("[Desktop Entry]\nType=Application\nName=Figma\nExec=\"/opt/figma/figma-linux\" %U\n")
	app, ok := parseDesktopEntry("figma.desktop", data)
	require.True(t, ok)
	assert.Equal(t, "figma-linux", app.ID)
}

func TestParseDesktopEntrySkipsHidden(t *testing.T) {
	for _, data := range []string{
		"[Desktop Entry]\nType=Application\nName=X\nExec=x\nNoDisplay=true\n",
		"[Desktop Entry]\nType=Link\nName=X\nURL=https://example.com\nExec=x\n",
		"[Desktop Entry]\nType=Application\nExec=x\n",
	} {
		_, ok := parseDesktopEntry("x.desktop", []byte(data))
		assert.False(t, ok, data)
	}
}

func TestExecBinary(t *testing.T) {
	assert.Equal(t, "gimp", execBinary("env A=1 B=2 gimp %U"))
	assert.Equal(t, "/opt/app/run", execBinary(`"/opt/app/run" --flag`))
	assert.Equal(t, "", execBinary("env A=1"))
}

func TestParseBundleInfo(t *testing.T) {
	app, ok := parseBundleInfo("/Applications/Figma.app", []byte(`{"CFBundleIdentifier":"com.figma.Desktop","CFBundleName":"Figma"}`))
	require.True(t, ok)
	assert.Equal(t, App{ID: "com.figma.Desktop", Name: "Figma", Path: "/Applications/Figma.app"}, app)

	app, ok = parseBundleInfo("/Applications/Tool.app", []byte(`{"CFBundleIdentifier":"com.x.tool"}`))
	require.True(t, ok)
	assert.Equal(t, "Tool", app.Name)

	app, ok = parseBundleInfo("/Applications/Notes.app", []byte(`{"CFBundleIdentifier":"com.apple.Notes","CFBundleName":"MobileNotes","CFBundleDisplayName":"Notes"}`))
	require.True(t, ok)
	assert.Equal(t, "Notes", app.Name)

	_, ok = parseBundleInfo("/Applications/Broken.app", []byte(`{}`))
	assert.False(t, ok)
	_, ok = parseBundleInfo("/Applications/Garbage.app", []byte(`not json`))
	assert.False(t, ok)
}

func TestNormalizeApps(t *testing.T) {
	apps := normalizeApps([]App{
		{ID: "b", Name: "beta"},
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "beta copy"},
		{ID: "", Name: "no id"},
	})
	assert.Equal(t, []App{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "beta"}}, apps)
}

type stubProvider struct{ apps []App }

func (stubProvider) Frontmost() (App, error)     { return App{}, ErrUnavailable }
func (stubProvider) Running(string) (App, bool)  { return App{}, false }
func (stubProvider) Pointer() (int, int, error)  { return 0, 0, nil }
func (s stubProvider) Installed() ([]App, error) { return s.apps, nil }

func TestDiscoverAsyncPostsResult(t *testing.T) {
	posted := make(chan func(), 1)
	got := make(chan []App, 1)

	DiscoverAsync(stubProvider{apps: []App{{ID: "x", Name: "X"}}},
		func(fn func()) { posted <- fn },
		func(apps []App, err error) {
			assert.NoError(t, err)
			got <- apps
		})

	fn := <-posted
	fn()
	assert.Equal(t, []App{{ID: "x", Name: "X"}}, <-got)
}
