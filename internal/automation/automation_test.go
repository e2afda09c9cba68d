package automation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppleScriptString(t *testing.T) {
	assert.Equal(t, `"Paste"`, appleScriptString("Paste"))
	assert.Equal(t, `"Say \"hi\" \\ bye"`, appleScriptString(`Say "hi" \ bye`))
}

func TestClickScriptTwoLevels(t *testing.T) {
	script, err := clickScript("Figma", []string{"Edit", "Paste to Replace"})
	require.NoError(t, err)
	assert.Contains(t, script, `tell process "Figma"`)
	assert.Contains(t, script, `click menu item "Paste to Replace" of menu 1 of menu bar item "Edit" of menu bar 1`)
}

func TestClickScriptNested(t *testing.T) {
	script, err := clickScript("Preview", []string{"View", "Sort By", "Name"})
	require.NoError(t, err)
	assert.Contains(t, script,
		`click menu item "Name" of menu 1 of menu item "Sort By" of menu 1 of menu bar item "View" of menu bar 1`)
}

func TestClickScriptRejectsShortPath(t *testing.T) {
	_, err := clickScript("Figma", []string{"Edit"})
	assert.Error(t, err)
}

func TestListScriptQuotesProcess(t *testing.T) {
	script := listScript(`My "App"`)
	assert.Equal(t, 2, strings.Count(script, `process "My \"App\""`))
}

func TestParseListing(t *testing.T) {
	out := "Edit::Undo\nEdit::Paste to Replace\nbroken line\nFile::missing value\n\nView::Zoom In\n"
	assert.Equal(t, [][]string{
		{"Edit", "Undo"},
		{"Edit", "Paste to Replace"},
		{"View", "Zoom In"},
	}, parseListing(out))
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "Edit > Paste", FormatPath([]string{"Edit", "Paste"}))
}
