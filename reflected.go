package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
)

// ReflectedConverter is the catch-all struct converter driven by type descriptors
type ReflectedConverter struct {
	BaseConverter
}

// Fallback marks catch-all converter
func (c *ReflectedConverter) Fallback() bool { return true }

// CanProcess claims any type not handled by a specific converter, except arrays, maps and containers
func (c *ReflectedConverter) CanProcess(t reflect.Type) bool {
	if t == nil {
		return false
	}
	switch t.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.Ptr, reflect.Interface:
		return false
	}
	_, isContainer := containerOf(t)
	return !isContainer
}

// TrySerialize emits readable members by JSON name, failed members are skipped and reported as warnings.
// With an allocated presence marker only flagged members are emitted. A detected cycle fails the whole value.
func (c *ReflectedConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	t := instance.Type()
	if t.Kind() != reflect.Struct {
		return iv.Null{}, Fail(UnsupportedShape, "%v kind %v is not supported", storageType, t.Kind())
	}
	descriptor := d.Provider().Describe(t)
	ret := iv.NewMap(len(descriptor.Members))
	var result Result
	for _, member := range descriptor.Members {
		if !member.CanRead || !descriptor.IsPresent(instance, member) {
			continue
		}
		value := member.Value(instance)
		if member.OmitEmpty && value.IsZero() {
			continue
		}
		data, itemResult := d.WithTimeLayout(member.TimeLayout).TrySerialize(member.Type, value, member.Converter)
		if itemResult.Has(CycleDetected) {
			result.Merge(itemResult)
			return ret, result
		}
		result.AddMessages(itemResult)
		if itemResult.Failed() {
			continue
		}
		ret.Set(member.JSONName, data)
	}
	return ret, result
}

// TryDeserialize merges present members over their current values, absent members are left untouched.
// Failed members keep their value and are reported as warnings.
func (c *ReflectedConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	t := instance.Type()
	if t.Kind() != reflect.Struct {
		return Fail(UnsupportedShape, "%v kind %v is not supported", storageType, t.Kind())
	}
	aMap, ok := iv.AsMap(data)
	if !ok {
		return shapeMismatch(iv.KindMap, data, storageType)
	}
	descriptor, err := d.Provider().DescribeErr(t)
	if err != nil {
		d.Logger().Debug(err.Error())
	}
	var result Result
	for _, member := range descriptor.Members {
		if !member.CanWrite {
			continue
		}
		memberData, ok := aMap.Get(member.JSONName)
		if !ok {
			continue
		}
		field := member.Value(instance)
		value := reflect.New(member.Type).Elem()
		value.Set(field)
		itemResult := d.WithTimeLayout(member.TimeLayout).TryDeserialize(memberData, member.Type, value, member.Converter)
		result.AddMessages(itemResult)
		if itemResult.Failed() {
			continue
		}
		field.Set(value)
		descriptor.SetPresent(instance, member)
	}
	return result
}
