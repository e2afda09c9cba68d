package notify

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sent struct{ title, message string }

func newRecorder(enabled bool) (*Notifier, *[]sent, *int) {
	var log []sent
	beeps := 0
	n := New(enabled)
	n.send = func(title, message, _ string) error {
		log = append(log, sent{title, message})
		return nil
	}
	n.beep = func(float64, int) error {
		beeps++
		return errors.New("нет звуковой карты")
	}
	return n, &log, &beeps
}

func TestDisabledSuppressesNotifications(t *testing.T) {
	n, log, beeps := newRecorder(false)
	n.Error("x")
	n.Info("y")
	assert.Empty(t, *log)

	n.Beep()
	assert.Equal(t, 1, *beeps)
}

func TestTitles(t *testing.T) {
	n, log, _ := newRecorder(true)
	n.Success("Готово", "текст")
	n.Info("только текст")

	assert.Equal(t, []sent{
		{"PieMenu: Готово", "текст"},
		{"PieMenu", "только текст"},
	}, *log)
}

func TestTruncateKeepsRunes(t *testing.T) {
	long := strings.Repeat("ж", 150)
	got := truncate(long)
	assert.Equal(t, 103, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, "кратко", truncate("кратко"))
}
