package ivconv

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/viant/ivconv/iv"
)

// UUIDConverter converts uuid.UUID to its canonical text form
type UUIDConverter struct {
	ValueConverter
}

func (c *UUIDConverter) CanProcess(t reflect.Type) bool {
	return t == uuidType
}

func (c *UUIDConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	return iv.String(instance.Interface().(uuid.UUID).String()), Success()
}

func (c *UUIDConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	text, ok := iv.AsString(data)
	if !ok {
		return shapeMismatch(iv.KindString, data, storageType)
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return Fail(ParseFailure, "failed to parse %v from %q: %v", storageType, text, err)
	}
	instance.Set(reflect.ValueOf(id))
	return Success()
}
