package iv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_Set(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(1)).Set("a", Int(2)).Set("b", Int(3))
	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, Int(3), v)

	m.Set("c", nil)
	v, _ = m.Get("c")
	assert.Equal(t, KindNull, KindOf(v))

	m.Delete("b")
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))
	assert.Equal(t, 2, m.Len())

	var visited []string
	m.Range(func(key string, value Value) bool {
		visited = append(visited, key)
		return false
	})
	assert.Equal(t, []string{"a"}, visited)
}

func TestKindOf(t *testing.T) {
	var nilMap *Map
	var testCases = []struct {
		description string
		value       Value
		expect      Kind
	}{
		{description: "nil", value: nil, expect: KindNull},
		{description: "typed nil map", value: nilMap, expect: KindNull},
		{description: "null", value: Null{}, expect: KindNull},
		{description: "bool", value: Bool(true), expect: KindBool},
		{description: "int", value: Int(1), expect: KindInt},
		{description: "float", value: Float(1.5), expect: KindFloat},
		{description: "string", value: String("x"), expect: KindString},
		{description: "sequence", value: Sequence{}, expect: KindSequence},
		{description: "map", value: NewMap(), expect: KindMap},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, KindOf(testCase.value), testCase.description)
	}
	assert.Equal(t, "Sequence", KindSequence.String())
}

func TestEqual(t *testing.T) {
	var testCases = []struct {
		description string
		a, b        Value
		expect      bool
	}{
		{description: "nil vs null", a: nil, b: Null{}, expect: true},
		{description: "int vs float", a: Int(1), b: Float(1), expect: false},
		{description: "nan", a: Float(math.NaN()), b: Float(math.NaN()), expect: true},
		{description: "sequence order", a: Sequence{Int(1), Int(2)}, b: Sequence{Int(2), Int(1)}, expect: false},
		{description: "sequence", a: Sequence{Int(1), String("a")}, b: Sequence{Int(1), String("a")}, expect: true},
		{description: "map order ignored", a: NewMap().Set("a", Int(1)).Set("b", Int(2)), b: NewMap().Set("b", Int(2)).Set("a", Int(1)), expect: true},
		{description: "map value differs", a: NewMap().Set("a", Int(1)), b: NewMap().Set("a", Int(2)), expect: false},
		{description: "map key differs", a: NewMap().Set("a", Int(1)), b: NewMap().Set("b", Int(1)), expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Equal(testCase.a, testCase.b), testCase.description)
	}
}
