package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWritesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Setup(dir))
	log.Print("проверка записи")
	require.NoError(t, Close())

	data, err := os.ReadFile(filepath.Join(dir, "logs", "piemenu.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "проверка записи")
}

func TestGoRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	Go("тест", func() {
		defer close(done)
		panic("бум")
	})
	<-done
}
