package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"piemenu/internal/config"
	"piemenu/internal/i18n"
)

func TestMatchModifiers(t *testing.T) {
	all := config.AvailableModifiers()
	got := matchModifiers([]string{"Shift", "Super (Win/Cmd)", "Meta"}, all)
	assert.Equal(t, []config.Modifier{config.ModShift, config.ModSuper}, got)
	assert.Empty(t, matchModifiers(nil, all))
}

func TestKeyLabelsAreUnique(t *testing.T) {
	seen := map[string]config.Key{}
	for _, k := range config.AvailableKeys() {
		prev, dup := seen[k.Label()]
		assert.False(t, dup, "%s и %s", prev, k)
		seen[k.Label()] = k
	}
}

func TestSlotOptions(t *testing.T) {
	i18n.SetLanguage(i18n.EN)
	defer i18n.SetLanguage(i18n.RU)

	p := config.DefaultProfile()
	p.SliceCount = 6
	options := slotOptions(p)
	assert.Len(t, options, 6)
	assert.Equal(t, "1: Copy", options[0])
	assert.Equal(t, "3: Paste to Replace", options[2])
	assert.Equal(t, "5: (empty)", options[4])
}
