package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("new set with initial elements", func(t *testing.T) {
		set := NewSet("a", "b", "a")
		assert.Equal(t, 2, set.Len())
		assert.True(t, set.Has("a"))
		assert.True(t, set.Has("b"))
		assert.False(t, set.Has("c"))
	})

	t.Run("add and delete", func(t *testing.T) {
		set := NewSet[int]()
		set.Add(1, 2, 3)
		set.Delete(2)

		assert.Equal(t, 2, set.Len())
		assert.True(t, set.Has(1))
		assert.False(t, set.Has(2))
	})

	t.Run("to slice", func(t *testing.T) {
		set := NewSet("x", "y")
		assert.ElementsMatch(t, []string{"x", "y"}, set.ToSlice())
	})
}
