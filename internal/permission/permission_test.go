package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	var g Gate = Static(true)
	assert.True(t, g.EnsureAuthorized(true))

	g = Static(false)
	assert.False(t, g.EnsureAuthorized(false))
}

func TestSystemReportsConsistently(t *testing.T) {
	called := 0
	s := New(func() { called++ })

	first := s.EnsureAuthorized(false)
	assert.Equal(t, first, s.EnsureAuthorized(false))
	assert.Zero(t, called)
}
