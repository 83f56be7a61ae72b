package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider_MarkerType(t *testing.T) {
	provider := NewProvider()
	markerType := provider.MarkerType(reflect.TypeOf(Widget{}))
	var names []string
	for i := 0; i < markerType.NumField(); i++ {
		names = append(names, markerType.Field(i).Name)
		assert.Equal(t, reflect.Bool, markerType.Field(i).Type.Kind())
	}
	assert.Equal(t, []string{"CreatedBy", "UpdatedBy", "Id", "Name", "Description", "Internal"}, names)
	assert.Empty(t, provider.GenMarkerFields(reflect.TypeOf(1)))
}
