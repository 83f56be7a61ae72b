package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
)

const (
	targetKey            = "Target"
	trackResurrectionKey = "TrackResurrection"
)

// WeakReferenceConverter converts live weak references to {Target, TrackResurrection}, dead ones to {}
type WeakReferenceConverter struct {
	BaseConverter
}

func (c *WeakReferenceConverter) CanProcess(t reflect.Type) bool {
	return implementsShape(t, weakReferenceShapeType)
}

func (c *WeakReferenceConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	ret := iv.NewMap(2)
	target := instance.MethodByName("Target").Call(nil)[0]
	if target.IsNil() {
		return ret, Success()
	}
	data, result := d.TrySerialize(target.Type(), target, "")
	if result.Failed() {
		return ret, result
	}
	ret.Set(targetKey, data)
	ret.Set(trackResurrectionKey, iv.Bool(instance.FieldByName(trackResurrectionKey).Bool()))
	return ret, result
}

// TryDeserialize reads entries only when Target is present, otherwise instance keeps its value.
// The new target is only weakly held, see WeakReference.
func (c *WeakReferenceConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	aMap, ok := iv.AsMap(data)
	if !ok {
		return shapeMismatch(iv.KindMap, data, storageType)
	}
	targetData, ok := aMap.Get(targetKey)
	if !ok {
		return Success()
	}
	targetType := instance.MethodByName("Target").Type().Out(0)
	target := reflect.New(targetType).Elem()
	result := d.TryDeserialize(targetData, targetType, target, "")
	if result.Failed() {
		return result
	}
	instance.Addr().MethodByName("SetTarget").Call([]reflect.Value{target})
	if track, ok := aMap.Get(trackResurrectionKey); ok {
		flag, isBool := track.(iv.Bool)
		if !isBool {
			return result.Add(shapeMismatch(iv.KindBool, track, storageType))
		}
		instance.FieldByName(trackResurrectionKey).SetBool(bool(flag))
	}
	return result
}
