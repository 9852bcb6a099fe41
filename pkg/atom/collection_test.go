package atom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet(t *testing.T) {
	type item struct{ n int }
	var s orderedSet[item]

	a, b, c := &item{1}, &item{1}, &item{2}

	assert.False(t, s.add(nil))
	assert.True(t, s.add(a))
	assert.True(t, s.add(b))
	assert.False(t, s.add(a))
	assert.True(t, s.add(c))
	assert.Equal(t, 3, s.len())
	assert.True(t, s.contains(b))

	assert.True(t, s.remove(b))
	assert.False(t, s.remove(b))
	assert.False(t, s.contains(b))
	assert.Equal(t, []*item{a, c}, s.all())

	// Re-adding after removal appends at the end.
	assert.True(t, s.add(b))
	assert.Equal(t, []*item{a, c, b}, s.all())
}

func TestOrderedSet_ZeroValueRemove(t *testing.T) {
	var s orderedSet[int]
	v := 1
	assert.False(t, s.remove(&v))
	assert.Empty(t, s.all())
}
