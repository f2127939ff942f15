package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type id uint32

func TestSet(t *testing.T) {
	s := New[id](16)
	assert.Zero(t, s.Len())
	assert.False(t, s.Contains(0))

	assert.True(t, s.Insert(5))
	assert.False(t, s.Insert(5))
	assert.True(t, s.Insert(0))
	assert.True(t, s.Insert(15))
	assert.Equal(t, []id{5, 0, 15}, s.Values())
	assert.Equal(t, 3, s.Len())

	for _, x := range []id{0, 5, 15} {
		assert.True(t, s.Contains(x), x)
	}
	for _, x := range []id{1, 14, 16, 1 << 31} {
		assert.False(t, s.Contains(x), x)
	}
}

func TestSetInsertOutOfRange(t *testing.T) {
	s := New[id](4)
	assert.Panics(t, func() { s.Insert(4) })
}
