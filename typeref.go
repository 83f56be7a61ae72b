package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
)

var reflectTypeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// TypeRefConverter converts reflect.Type values to registered type names
type TypeRefConverter struct {
	ValueConverter
}

func (c *TypeRefConverter) CanProcess(t reflect.Type) bool {
	return t != nil && t.Implements(reflectTypeType)
}

func (c *TypeRefConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	t, ok := instance.Interface().(reflect.Type)
	if !ok || t == nil {
		return iv.Null{}, Success()
	}
	return iv.String(d.Provider().Types().Name(t)), Success()
}

func (c *TypeRefConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	name, ok := iv.AsString(data)
	if !ok {
		return shapeMismatch(iv.KindString, data, storageType)
	}
	t, err := d.Provider().Types().Resolve(name)
	if err != nil {
		return Fail(UnresolvedName, "failed to resolve %v: %v", storageType, err)
	}
	value := reflect.ValueOf(t)
	if !value.Type().AssignableTo(instance.Type()) {
		return Fail(ShapeMismatch, "%v is not assignable to %v", value.Type(), storageType)
	}
	instance.Set(value)
	return Success()
}
