package ivconv

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/ivconv/iv"
)

func TestPrimitiveConverter_Serialize(t *testing.T) {
	testCases := []struct {
		description string
		config      *Config
		value       interface{}
		expect      iv.Value
	}{
		{description: "bool", value: true, expect: iv.Bool(true)},
		{description: "int", value: 42, expect: iv.Int(42)},
		{description: "int8", value: int8(-8), expect: iv.Int(-8)},
		{description: "uint16", value: uint16(65535), expect: iv.Int(65535)},
		{description: "uint64 above max int64", value: uint64(math.MaxUint64), expect: iv.Int(-1)},
		{description: "float32 widened by decimal form", value: float32(0.1), expect: iv.Float(0.1)},
		{description: "float64", value: 2.5, expect: iv.Float(2.5)},
		{description: "string", value: "abc", expect: iv.String("abc")},
		{description: "char", value: Char('é'), expect: iv.String("é")},
		{description: "int64 as string", config: &Config{Int64AsString: true}, value: int64(9007199254740993), expect: iv.String("9007199254740993")},
		{description: "int32 with int64 as string", config: &Config{Int64AsString: true}, value: int32(7), expect: iv.Int(7)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var opts []Option
			if testCase.config != nil {
				opts = append(opts, WithConfig(testCase.config))
			}
			actual, err := New(opts...).Serialize(testCase.value)
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, actual)
		})
	}
}

func TestPrimitiveConverter_RoundTrip(t *testing.T) {
	testCases := []struct {
		description string
		config      *Config
		value       interface{}
	}{
		{description: "uint64 max", value: uint64(math.MaxUint64)},
		{description: "uint64 above max int64", value: uint64(math.MaxInt64) + 5},
		{description: "int64 min", value: int64(math.MinInt64)},
		{description: "float32", value: float32(0.1)},
		{description: "char", value: Char('ż')},
		{description: "int64 as string", config: &Config{Int64AsString: true}, value: int64(-123456789012)},
		{description: "uint64 as string", config: &Config{Int64AsString: true}, value: uint64(math.MaxUint64)},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			var opts []Option
			if testCase.config != nil {
				opts = append(opts, WithConfig(testCase.config))
			}
			srv := New(opts...)
			data, err := srv.Serialize(testCase.value)
			require.NoError(t, err)
			dest := reflect.New(reflect.TypeOf(testCase.value))
			require.NoError(t, srv.Deserialize(data, dest.Interface()))
			assert.Equal(t, testCase.value, dest.Elem().Interface())
		})
	}
}

func TestPrimitiveConverter_Deserialize(t *testing.T) {
	srv := New()

	var f float64
	require.NoError(t, srv.Deserialize(iv.Int(3), &f))
	assert.Equal(t, 3.0, f)

	var i int
	require.NoError(t, srv.Deserialize(iv.Float(4), &i))
	assert.Equal(t, 4, i)

	var small int8
	err := srv.Deserialize(iv.Int(300), &small)
	assert.ErrorIs(t, err, ErrParseFailure)

	var u uint8
	err = srv.Deserialize(iv.Int(-1), &u)
	assert.ErrorIs(t, err, ErrParseFailure)

	var b bool
	err = srv.Deserialize(iv.Int(1), &b)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	var s string
	err = srv.Deserialize(iv.Int(1), &s)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	var i64 int64
	err = srv.Deserialize(iv.String("12"), &i64)
	assert.ErrorIs(t, err, ErrShapeMismatch, "text is accepted only with Int64AsString")

	var c Char = 'x'
	result := srv.TryDeserialize(iv.String("ab"), reflect.ValueOf(&c).Elem())
	assert.True(t, result.Succeeded())
	assert.True(t, result.HasWarnings())
	assert.Equal(t, Char(0), c)
}
