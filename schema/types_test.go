package schema

import (
	"reflect"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeRegistry(t *testing.T) {
	registry := NewTypeRegistry()
	registry.Register(reflect.TypeOf(Widget{}), "Widget")

	var testCases = []struct {
		description string
		t           reflect.Type
		expectName  string
	}{
		{description: "builtin", t: reflect.TypeOf(0), expectName: "int"},
		{description: "time", t: reflect.TypeOf(time.Time{}), expectName: "time.Time"},
		{description: "registered", t: reflect.TypeOf(Widget{}), expectName: "Widget"},
		{description: "slice", t: reflect.TypeOf([]*Widget{}), expectName: "[]*Widget"},
		{description: "array", t: reflect.TypeOf([2]int{}), expectName: "[2]int"},
		{description: "map", t: reflect.TypeOf(map[string][]Widget{}), expectName: "map[string][]Widget"},
	}
	for _, testCase := range testCases {
		name := registry.Name(testCase.t)
		assert.Equal(t, testCase.expectName, name, testCase.description)
		resolved, err := registry.Resolve(name)
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.t, resolved, testCase.description)
	}

	for _, name := range []string{
		"NoSuchType",
		"[]NoSuchType",
		"[-1]int",
		"[4611686018427387904]int",
		"[1048576][1048576]int",
		"map[[]int]int",
		"map[map[string]int]int",
		"map[func()]int",
	} {
		assert.NotPanics(t, func() {
			_, err := registry.Resolve(name)
			require.Error(t, err, name)
			assert.NotNil(t, errors.GetReportableStackTrace(err), name)
		}, name)
	}
}
