package face

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEuclideanMatcher(t *testing.T) {
	m := NewEuclideanMatcher(0.6)

	enrolled := []Descriptor{
		{0.1, 0.2, 0.3},
		{0.9, 0.9, 0.9},
	}

	t.Run("Close probe matches", func(t *testing.T) {
		assert.True(t, m.Match(Descriptor{0.1, 0.2, 0.35}, enrolled))
	})

	t.Run("Probe within threshold of second descriptor matches", func(t *testing.T) {
		assert.True(t, m.Match(Descriptor{0.85, 0.9, 0.95}, enrolled))
	})

	t.Run("Distant probe does not match", func(t *testing.T) {
		assert.False(t, m.Match(Descriptor{-0.9, -0.9, -0.9}, enrolled))
	})

	t.Run("No enrolled descriptors never matches", func(t *testing.T) {
		assert.False(t, m.Match(Descriptor{0.1, 0.2, 0.3}, nil))
	})

	t.Run("Dimension mismatch is not a match", func(t *testing.T) {
		assert.False(t, m.Match(Descriptor{0.1, 0.2}, enrolled))
	})

	t.Run("Exact boundary distance matches", func(t *testing.T) {
		// Distance is exactly 0.6.
		assert.True(t, m.Match(Descriptor{0.7, 0.2, 0.3}, []Descriptor{{0.1, 0.2, 0.3}}))
	})
}
