package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
)

// KeyValueConverter converts KeyValue pairs to {Key, Value} maps
type KeyValueConverter struct {
	ValueConverter
}

func (c *KeyValueConverter) CanProcess(t reflect.Type) bool {
	return implementsShape(t, keyValueShapeType)
}

// TrySerialize emits only entries converted to non Null values
func (c *KeyValueConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	t := instance.Type()
	ret := iv.NewMap(2)
	var result Result
	for i, name := range []string{entryKey, entryValue} {
		data, itemResult := d.TrySerialize(t.Field(i).Type, instance.Field(i), "")
		result.Merge(itemResult)
		if itemResult.Succeeded() && !iv.IsNull(data) {
			ret.Set(name, data)
		}
	}
	return ret, result
}

// TryDeserialize requires both Key and Value entries, the pair is assigned as a whole
func (c *KeyValueConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	aMap, ok := iv.AsMap(data)
	if !ok {
		return shapeMismatch(iv.KindMap, data, storageType)
	}
	keyData, hasKey := aMap.Get(entryKey)
	valueData, hasValue := aMap.Get(entryValue)
	if !hasKey || !hasValue {
		return Fail(MissingField, "%v requires both %v and %v entries", storageType, entryKey, entryValue)
	}
	t := instance.Type()
	key := reflect.New(t.Field(0).Type).Elem()
	key.Set(instance.Field(0))
	value := reflect.New(t.Field(1).Type).Elem()
	value.Set(instance.Field(1))
	result := d.TryDeserialize(keyData, t.Field(0).Type, key, "")
	result.Merge(d.TryDeserialize(valueData, t.Field(1).Type, value, ""))
	if result.Failed() {
		return result
	}
	instance.Field(0).Set(key)
	instance.Field(1).Set(value)
	return result
}
