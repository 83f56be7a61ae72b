package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/schema"
	"go.uber.org/zap"
)

// Dispatcher selects and invokes converters for nested values, it is scoped to one top-level call
type Dispatcher interface {
	// TrySerialize serializes instance stored as storageType, override names a registered converter
	TrySerialize(storageType reflect.Type, instance reflect.Value, override string) (iv.Value, Result)
	// TryDeserialize deserializes data into settable instance, override names a registered converter
	TryDeserialize(data iv.Value, storageType reflect.Type, instance reflect.Value, override string) Result
	Config() *Config
	// WithTimeLayout returns dispatcher converting dates with layout, the cycle tracking state is shared
	WithTimeLayout(layout string) Dispatcher
	Provider() *schema.Provider
	Logger() *zap.Logger
}

// Converter converts one value shape between runtime values and intermediate values
type Converter interface {
	// RequestCycleSupport returns true if dispatcher should track instance identity to detect cycles
	RequestCycleSupport(storageType reflect.Type) bool
	// RequestInheritanceSupport returns true if dispatcher should record runtime type for interface storage
	RequestInheritanceSupport(storageType reflect.Type) bool
	// CreateInstance returns addressable default instance to be populated by TryDeserialize
	CreateInstance(data iv.Value, storageType reflect.Type) reflect.Value
	TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result)
	// TryDeserialize populates settable instance in place
	TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result
}

// ShapeConverter is a converter matched structurally by type
type ShapeConverter interface {
	Converter
	// CanProcess returns true if converter handles t, it never panics
	CanProcess(t reflect.Type) bool
}

// BaseConverter provides defaults for reference-graph shapes
type BaseConverter struct{}

func (BaseConverter) RequestCycleSupport(reflect.Type) bool { return true }

func (BaseConverter) RequestInheritanceSupport(reflect.Type) bool { return true }

func (BaseConverter) CreateInstance(_ iv.Value, storageType reflect.Type) reflect.Value {
	return schema.NewInstance(storageType)
}

// ValueConverter provides defaults for value-like shapes, no cycle tracking nor runtime type recording
type ValueConverter struct {
	BaseConverter
}

func (ValueConverter) RequestCycleSupport(reflect.Type) bool { return false }

func (ValueConverter) RequestInheritanceSupport(reflect.Type) bool { return false }

// addressable returns v or its addressable copy
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	ret := reflect.New(v.Type()).Elem()
	ret.Set(v)
	return ret
}

func shapeMismatch(expected iv.Kind, data iv.Value, t reflect.Type) Result {
	return Fail(ShapeMismatch, "expected %v to deserialize %v, but had %v", expected, t, iv.KindOf(data))
}
