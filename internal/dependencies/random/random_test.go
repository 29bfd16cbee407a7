package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededRandomIsReproducible(t *testing.T) {
	a := NewSeeded(42)
	b := NewSeeded(42)
	for range 50 {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestSeededRandomStaysInRange(t *testing.T) {
	r := NewSeeded(7)
	for range 200 {
		v := r.Intn(5)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 5)
	}
	assert.Equal(t, 0, r.Intn(0))
}

func TestCryptoRandomStaysInRange(t *testing.T) {
	r := New()
	for range 50 {
		v := r.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	assert.Equal(t, 0, r.Intn(-1))
}
