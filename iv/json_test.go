package iv

import (
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	var testCases = []struct {
		description string
		value       Value
		expect      string
	}{
		{description: "null", value: nil, expect: `null`},
		{description: "bool", value: Bool(true), expect: `true`},
		{description: "int", value: Int(-12), expect: `-12`},
		{description: "integral float", value: Float(2), expect: `2.0`},
		{description: "float", value: Float(0.1), expect: `0.1`},
		{description: "nan", value: Float(math.NaN()), expect: `"NaN"`},
		{description: "string", value: String(`a"b`), expect: `"a\"b"`},
		{description: "empty sequence", value: Sequence{}, expect: `[]`},
		{description: "empty map", value: NewMap(), expect: `{}`},
		{description: "sequence", value: Sequence{Int(1), Null{}, String("x"), Float(1.5)}, expect: `[1,null,"x",1.5]`},
	}
	for _, testCase := range testCases {
		data, err := Marshal(testCase.value)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expect, string(data), testCase.description)
	}
}

func TestMarshal_Golden(t *testing.T) {
	tree := NewMap().
		Set("Name", String("widget")).
		Set("Id", Int(42)).
		Set("Ratio", Float(0.25)).
		Set("Active", Bool(false)).
		Set("Note", Null{}).
		Set("Tags", Sequence{String("a"), String("b")}).
		Set("Nested", NewMap().Set("Key", Int(1)).Set("Value", Sequence{NewMap()}))
	data, err := Marshal(tree)
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "tree", data)
}

func TestUnmarshal(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      Value
		expectError bool
	}{
		{description: "null", input: `null`, expect: Null{}},
		{description: "int", input: ` 12 `, expect: Int(12)},
		{description: "float", input: `1.5`, expect: Float(1.5)},
		{description: "exponent", input: `1e2`, expect: Float(100)},
		{description: "int overflow", input: `18446744073709551616`, expect: Float(18446744073709551616)},
		{description: "string", input: `"a\nb"`, expect: String("a\nb")},
		{description: "sequence", input: `[true,false,null]`, expect: Sequence{Bool(true), Bool(false), Null{}}},
		{description: "map", input: `{"b":1,"a":[]}`, expect: NewMap().Set("b", Int(1)).Set("a", Sequence{})},
		{description: "trailing data", input: `1 2`, expectError: true},
		{description: "broken object", input: `{"a":`, expectError: true},
		{description: "empty", input: ``, expectError: true},
	}
	for _, testCase := range testCases {
		actual, err := Unmarshal([]byte(testCase.input))
		if testCase.expectError {
			assert.Error(t, err, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.True(t, Equal(testCase.expect, actual), testCase.description)
	}
}

func TestUnmarshal_KeyOrder(t *testing.T) {
	input := `{"z":1,"a":{"y":2,"b":3},"m":[1,2.5]}`
	value, err := Unmarshal([]byte(input))
	require.NoError(t, err)
	m, ok := AsMap(value)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())
	nested, _ := m.Get("a")
	assert.Equal(t, []string{"y", "b"}, nested.(*Map).Keys())

	data, err := Marshal(value)
	require.NoError(t, err)
	assert.Equal(t, input, string(data))
}
