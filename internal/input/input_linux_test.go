//go:build linux

package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"piemenu/internal/config"
)

func TestXdotoolArgs(t *testing.T) {
	args := xdotoolArgs("c", config.MaskCtrl|config.MaskShift)
	assert.Equal(t, []string{"key", "--clearmodifiers", "ctrl+shift+c"}, args)

	args = xdotoolArgs("F5", 0)
	assert.Equal(t, []string{"key", "--clearmodifiers", "F5"}, args)
}

func TestWtypeArgsReleaseModifiers(t *testing.T) {
	args := wtypeArgs("k", config.MaskAlt|config.MaskSuper)
	assert.Equal(t, []string{"-M", "alt", "-M", "logo", "-k", "k", "-m", "logo", "-m", "alt"}, args)
}

func TestKeysym(t *testing.T) {
	cases := map[config.Key]string{
		config.KeyA:      "a",
		config.Key7:      "7",
		config.KeyF12:    "F12",
		config.KeyReturn: "Return",
		config.KeyLeft:   "Left",
	}
	for key, want := range cases {
		got, ok := keysym(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got)
	}

	_, ok := keysym("bogus")
	assert.False(t, ok)
}
