package ivconv

import (
	"reflect"
	"weak"
)

// Nullable represents optional value, the zero value is empty
type Nullable[T any] struct {
	Value T
	Valid bool
}

// Of returns non empty optional value
func Of[T any](value T) Nullable[T] {
	return Nullable[T]{Value: value, Valid: true}
}

// Get returns value and true if present
func (n Nullable[T]) Get() (T, bool) {
	return n.Value, n.Valid
}

func (n Nullable[T]) nullable() {}

type nullableShape interface{ nullable() }

// KeyValue represents ordered key value pair
type KeyValue[K any, V any] struct {
	Key   K
	Value V
}

// NewKeyValue creates key value pair
func NewKeyValue[K any, V any](key K, value V) KeyValue[K, V] {
	return KeyValue[K, V]{Key: key, Value: value}
}

func (p KeyValue[K, V]) keyValue() {}

type keyValueShape interface{ keyValue() }

// WeakReference holds a reference that does not keep its target alive.
// A target allocated while deserializing has no other owner and may be collected
// as soon as the call returns, callers should take their own reference with Target.
type WeakReference[T any] struct {
	target            weak.Pointer[T]
	TrackResurrection bool
}

// NewWeakReference creates weak reference to target
func NewWeakReference[T any](target *T, trackResurrection bool) WeakReference[T] {
	ret := WeakReference[T]{TrackResurrection: trackResurrection}
	if target != nil {
		ret.target = weak.Make(target)
	}
	return ret
}

// Target returns target or nil if it was collected
func (w WeakReference[T]) Target() *T {
	return w.target.Value()
}

// IsAlive returns true if target is still reachable
func (w WeakReference[T]) IsAlive() bool {
	return w.Target() != nil
}

// SetTarget replaces target, the reference does not own it
func (w *WeakReference[T]) SetTarget(target *T) {
	if target == nil {
		w.target = weak.Pointer[T]{}
		return
	}
	w.target = weak.Make(target)
}

func (w WeakReference[T]) weakReference() {}

type weakReferenceShape interface{ weakReference() }

var (
	nullableShapeType      = reflect.TypeOf((*nullableShape)(nil)).Elem()
	keyValueShapeType      = reflect.TypeOf((*keyValueShape)(nil)).Elem()
	weakReferenceShapeType = reflect.TypeOf((*weakReferenceShape)(nil)).Elem()
)

func implementsShape(t reflect.Type, shape reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Struct && t.Implements(shape)
}
