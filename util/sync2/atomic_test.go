package sync2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtomicBool(t *testing.T) {
	b := NewAtomicBool(true)
	assert.True(t, b.Get())

	b.Set(false)
	assert.False(t, b.Get())

	assert.True(t, b.CompareAndSwap(false, true))
	assert.True(t, b.Get())
	assert.False(t, b.CompareAndSwap(false, true))
	assert.True(t, b.Get())
}
