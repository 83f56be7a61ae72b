package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/schema"
	"go.uber.org/zap"
)

type visitKey struct {
	ptr uintptr
	t   reflect.Type
}

// session dispatches one top-level conversion, it tracks instances on the current path
type session struct {
	serializer *Serializer
	config     *Config //member scoped override
	visiting   map[visitKey]bool
}

var (
	emptyInterfaceType = reflect.TypeOf((*interface{})(nil)).Elem()
	anySliceType       = reflect.TypeOf([]interface{}{})
	anyMapType         = reflect.TypeOf(map[string]interface{}{})
)

func (s *session) Config() *Config {
	if s.config != nil {
		return s.config
	}
	return s.serializer.config
}

func (s *session) WithTimeLayout(layout string) Dispatcher {
	if layout == "" || layout == s.Config().Layout() {
		return s
	}
	config := *s.Config()
	config.TimeLayout = layout
	return &session{serializer: s.serializer, config: &config, visiting: s.visiting}
}

func (s *session) Provider() *schema.Provider { return s.serializer.provider }

func (s *session) Logger() *zap.Logger { return s.serializer.logger }

// TrySerialize serializes instance, nil references become Null
func (s *session) TrySerialize(storageType reflect.Type, instance reflect.Value, override string) (iv.Value, Result) {
	if !instance.IsValid() {
		return iv.Null{}, Success()
	}
	if storageType == nil {
		storageType = instance.Type()
	}
	if override != "" {
		converter, ok := s.serializer.Named(override)
		if !ok {
			return iv.Null{}, Fail(UnresolvedName, "converter %q was not registered", override)
		}
		if isNilReference(instance) {
			return iv.Null{}, Success()
		}
		return converter.TrySerialize(s, instance, storageType)
	}
	if storageType.Kind() == reflect.Interface || instance.Kind() == reflect.Interface {
		return s.serializeDynamic(storageType, instance)
	}
	return s.serializeValue(instance)
}

func (s *session) serializeDynamic(storageType reflect.Type, instance reflect.Value) (iv.Value, Result) {
	if converter, ok := s.serializer.specificFor(storageType); ok && storageType.Kind() == reflect.Interface {
		if isNilReference(instance) {
			return iv.Null{}, Success()
		}
		return converter.TrySerialize(s, instance, storageType)
	}
	for instance.Kind() == reflect.Interface {
		if instance.IsNil() {
			return iv.Null{}, Success()
		}
		instance = instance.Elem()
	}
	data, result := s.serializeValue(instance)
	runtimeType := instance.Type()
	if result.Failed() || iv.IsNull(data) || runtimeType == storageType || storageType.Kind() != reflect.Interface {
		return data, result
	}
	if !s.recordsType(storageType, runtimeType) {
		return data, result
	}
	config := s.Config()
	key := config.MetaKey(typeKey)
	ret := iv.NewMap()
	ret.Set(key, iv.String(s.Provider().Types().Name(runtimeType)))
	if content, ok := iv.AsMap(data); ok && !content.Has(key) {
		content.Range(func(key string, value iv.Value) bool {
			ret.Set(key, value)
			return true
		})
		return ret, result
	}
	ret.Set(config.MetaKey(contentKey), data)
	return ret, result
}

// recordsType returns true if runtime type has to be recorded for interface storage
func (s *session) recordsType(storageType, runtimeType reflect.Type) bool {
	if storageType.NumMethod() == 0 && (runtimeType == anySliceType || runtimeType == anyMapType) {
		return false
	}
	if converter, ok := s.serializer.specificFor(runtimeType); ok {
		return converter.RequestInheritanceSupport(runtimeType)
	}
	base := runtimeType
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	converter, ok := s.serializer.ConverterFor(base)
	return ok && converter.RequestInheritanceSupport(base)
}

func (s *session) serializeValue(instance reflect.Value) (iv.Value, Result) {
	t := instance.Type()
	switch t.Kind() {
	case reflect.Ptr:
		if converter, ok := s.serializer.specificFor(t); ok {
			return converter.TrySerialize(s, instance, t)
		}
		if instance.IsNil() {
			return iv.Null{}, Success()
		}
		done, result := s.enter(instance, t.Elem())
		if result.Failed() {
			return iv.Null{}, result
		}
		defer done()
		return s.TrySerialize(t.Elem(), instance.Elem(), "")
	case reflect.Map, reflect.Slice:
		if instance.IsNil() {
			return iv.Null{}, Success()
		}
		if instance.Len() > 0 {
			done, result := s.enter(instance, t)
			if result.Failed() {
				return iv.Null{}, result
			}
			defer done()
		}
	}
	converter, ok := s.serializer.ConverterFor(t)
	if !ok {
		return iv.Null{}, Fail(UnsupportedShape, "no converter was registered for %v", t)
	}
	return converter.TrySerialize(s, instance, t)
}

// enter marks reference as being converted, re-entering it on the same path fails
func (s *session) enter(ref reflect.Value, t reflect.Type) (func(), Result) {
	base := t
	for base.Kind() == reflect.Ptr {
		base = base.Elem()
	}
	if converter, ok := s.serializer.ConverterFor(base); ok && !converter.RequestCycleSupport(base) {
		return func() {}, Success()
	}
	key := visitKey{ptr: ref.Pointer(), t: t}
	if s.visiting[key] {
		return nil, Fail(CycleDetected, "cycle detected: %v instance is already being serialized", t)
	}
	s.visiting[key] = true
	return func() { delete(s.visiting, key) }, Success()
}

// TryDeserialize deserializes data into settable instance, Null resets instance to zero value
func (s *session) TryDeserialize(data iv.Value, storageType reflect.Type, instance reflect.Value, override string) Result {
	if !instance.IsValid() || !instance.CanSet() {
		return Fail(UnsupportedShape, "deserialization target %v is not settable", storageType)
	}
	t := instance.Type()
	if iv.IsNull(data) {
		instance.Set(reflect.Zero(t))
		return Success()
	}
	if override != "" {
		converter, ok := s.serializer.Named(override)
		if !ok {
			return Fail(UnresolvedName, "converter %q was not registered", override)
		}
		return converter.TryDeserialize(s, data, instance, t)
	}
	switch t.Kind() {
	case reflect.Interface:
		if converter, ok := s.serializer.specificFor(t); ok {
			return converter.TryDeserialize(s, data, instance, t)
		}
		return s.deserializeDynamic(data, instance)
	case reflect.Ptr:
		if converter, ok := s.serializer.specificFor(t); ok {
			return converter.TryDeserialize(s, data, instance, t)
		}
		elemType := t.Elem()
		if !instance.IsNil() {
			return s.TryDeserialize(data, elemType, instance.Elem(), "")
		}
		target := s.createInstance(data, elemType)
		result := s.TryDeserialize(data, elemType, target, "")
		ptr := reflect.New(elemType)
		ptr.Elem().Set(target)
		instance.Set(ptr)
		return result
	}
	converter, ok := s.serializer.ConverterFor(t)
	if !ok {
		return Fail(UnsupportedShape, "no converter was registered for %v", t)
	}
	return converter.TryDeserialize(s, data, instance, t)
}

func (s *session) deserializeDynamic(data iv.Value, instance reflect.Value) Result {
	t := instance.Type()
	config := s.Config()
	content := data
	var runtimeType reflect.Type
	if aMap, ok := iv.AsMap(data); ok {
		if name, has := aMap.Get(config.MetaKey(typeKey)); has {
			typeName, ok := iv.AsString(name)
			if !ok {
				return Fail(ShapeMismatch, "expected String %v, but had %v", config.MetaKey(typeKey), iv.KindOf(name))
			}
			resolved, err := s.Provider().Types().Resolve(typeName)
			if err != nil {
				return Fail(UnresolvedName, "%v", err)
			}
			runtimeType = resolved
			if inner, ok := aMap.Get(config.MetaKey(contentKey)); ok {
				content = inner
			} else {
				stripped := iv.NewMap(aMap.Len())
				aMap.Range(func(key string, value iv.Value) bool {
					if key != config.MetaKey(typeKey) {
						stripped.Set(key, value)
					}
					return true
				})
				content = stripped
			}
		}
	}
	if runtimeType == nil {
		switch {
		case !instance.IsNil():
			runtimeType = instance.Elem().Type()
		case t.NumMethod() == 0:
			runtimeType = naturalType(content)
		default:
			return Fail(UnresolvedName, "unable to resolve concrete type for %v, %v was missing", t, config.MetaKey(typeKey))
		}
	}
	if !runtimeType.AssignableTo(t) {
		return Fail(ShapeMismatch, "%v is not assignable to %v", runtimeType, t)
	}
	var target reflect.Value
	if !instance.IsNil() && instance.Elem().Type() == runtimeType {
		target = reflect.New(runtimeType).Elem()
		target.Set(instance.Elem())
	} else {
		target = s.createInstance(content, runtimeType)
	}
	result := s.TryDeserialize(content, runtimeType, target, "")
	if result.Succeeded() {
		instance.Set(target)
	}
	return result
}

func (s *session) createInstance(data iv.Value, t reflect.Type) reflect.Value {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface:
		return reflect.New(t).Elem()
	}
	if converter, ok := s.serializer.ConverterFor(t); ok {
		ret := converter.CreateInstance(data, t)
		if ret.IsValid() && ret.Type() == t && ret.CanSet() {
			return ret
		}
	}
	return reflect.New(t).Elem()
}

// naturalType returns type inferred for empty interface storage
func naturalType(data iv.Value) reflect.Type {
	switch iv.KindOf(data) {
	case iv.KindBool:
		return reflect.TypeOf(false)
	case iv.KindInt:
		return reflect.TypeOf(int64(0))
	case iv.KindFloat:
		return reflect.TypeOf(float64(0))
	case iv.KindString:
		return reflect.TypeOf("")
	case iv.KindSequence:
		return anySliceType
	case iv.KindMap:
		return anyMapType
	}
	return emptyInterfaceType
}

func isNilReference(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
