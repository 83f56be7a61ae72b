package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
)

// NullableConverter converts Nullable values as their wrapped value, Null is handled by the dispatcher
type NullableConverter struct {
	ValueConverter
}

func (c *NullableConverter) CanProcess(t reflect.Type) bool {
	return implementsShape(t, nullableShapeType)
}

func (c *NullableConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	if !instance.Field(1).Bool() {
		return iv.Null{}, Success()
	}
	return d.TrySerialize(instance.Type().Field(0).Type, instance.Field(0), "")
}

func (c *NullableConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	result := d.TryDeserialize(data, instance.Type().Field(0).Type, instance.Field(0), "")
	if result.Succeeded() {
		instance.Field(1).SetBool(true)
	}
	return result
}
