package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMap_GetOrPut(t *testing.T) {
	m := NewSyncMap[string, int]()
	calls := 0
	fn := func() int {
		calls++
		return 7
	}
	assert.Equal(t, 7, m.GetOrPut("a", fn))
	assert.Equal(t, 7, m.GetOrPut("a", fn))
	assert.Equal(t, 1, calls)
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, m.Len())
}
