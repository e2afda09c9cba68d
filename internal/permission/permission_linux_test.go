//go:build linux

package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestDisplaySocket(t *testing.T) {
	tests := []struct {
		name   string
		vars   map[string]string
		path   string
		wantOK bool
	}{
		{"x11", map[string]string{"DISPLAY": ":0"}, "/tmp/.X11-unix/X0", true},
		{"x11 screen", map[string]string{"DISPLAY": ":1.0"}, "/tmp/.X11-unix/X1", true},
		{"remote x11", map[string]string{"DISPLAY": "host:10.0"}, "", true},
		{"wayland", map[string]string{"WAYLAND_DISPLAY": "wayland-0", "XDG_RUNTIME_DIR": "/run/user/1000", "DISPLAY": ":0"}, "/run/user/1000/wayland-0", true},
		{"wayland absolute", map[string]string{"WAYLAND_DISPLAY": "/run/wl.sock"}, "/run/wl.sock", true},
		{"wayland without runtime dir", map[string]string{"WAYLAND_DISPLAY": "wayland-0"}, "", false},
		{"no session", map[string]string{}, "", false},
		{"broken display", map[string]string{"DISPLAY": ":"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := displaySocket(env(tt.vars))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestNoSessionIsNotTrusted(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")
	assert.False(t, trusted())
}
