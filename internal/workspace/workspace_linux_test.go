//go:build linux

package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWMClass(t *testing.T) {
	instance, class, ok := parseWMClass(`WM_CLASS(STRING) = "gimp-2.10", "Gimp-2.10"` + "\n")
	require.True(t, ok)
	assert.Equal(t, "gimp-2.10", instance)
	assert.Equal(t, "Gimp-2.10", class)

	_, _, ok = parseWMClass("WM_CLASS:  not found.")
	assert.False(t, ok)
}

func TestParseMouseLocation(t *testing.T) {
	x, y, err := parseMouseLocation("X=812\nY=433\nSCREEN=0\nWINDOW=65011719\n")
	require.NoError(t, err)
	assert.Equal(t, 812, x)
	assert.Equal(t, 433, y)

	_, _, err = parseMouseLocation("garbage")
	assert.ErrorIs(t, err, ErrUnavailable)
}
