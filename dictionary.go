package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/conv"
	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/visitor"
)

const (
	entryKey   = "Key"
	entryValue = "Value"
)

// DictionaryConverter converts maps: string keyed maps become Map, others a Sequence of {Key, Value} entries
type DictionaryConverter struct {
	BaseConverter
}

func (c *DictionaryConverter) CanProcess(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Map
}

type dictionaryEntry struct {
	key   iv.Value
	value iv.Value
}

func (c *DictionaryConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	t := instance.Type()
	visit, err := visitor.MapVisitorOf(instance)
	if err != nil {
		return iv.Null{}, Fail(UnsupportedShape, "%v", err)
	}
	var result Result
	entries := make([]dictionaryEntry, 0, instance.Len())
	allStrings := true
	_ = visit(func(key reflect.Value, value reflect.Value) (bool, error) {
		keyData, keyResult := d.TrySerialize(t.Key(), key, "")
		result.Merge(keyResult)
		if keyResult.Failed() {
			return true, nil
		}
		valueData, valueResult := d.TrySerialize(t.Elem(), value, "")
		result.Merge(valueResult)
		if valueResult.Failed() {
			return true, nil
		}
		if _, ok := keyData.(iv.String); !ok {
			allStrings = false
		}
		entries = append(entries, dictionaryEntry{key: keyData, value: valueData})
		return true, nil
	})
	if allStrings {
		ret := iv.NewMap(len(entries))
		for _, entry := range entries {
			ret.Set(string(entry.key.(iv.String)), entry.value)
		}
		return ret, result
	}
	ret := make(iv.Sequence, 0, len(entries))
	for _, entry := range entries {
		ret = append(ret, iv.NewMap(2).Set(entryKey, entry.key).Set(entryValue, entry.value))
	}
	return ret, result
}

// TryDeserialize merges entries into the map, a nil map is allocated
func (c *DictionaryConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	t := instance.Type()
	var result Result
	switch actual := data.(type) {
	case *iv.Map:
		if instance.IsNil() {
			instance.Set(reflect.MakeMapWithSize(t, actual.Len()))
		}
		config := d.Config()
		actual.Range(func(key string, value iv.Value) bool {
			if config.IsReserved(key) {
				return true
			}
			result.Merge(c.insert(d, instance, iv.String(key), value, true))
			return true
		})
	case iv.Sequence:
		if instance.IsNil() {
			instance.Set(reflect.MakeMapWithSize(t, len(actual)))
		}
		for i, item := range actual {
			entry, ok := iv.AsMap(item)
			if !ok {
				result.Merge(Fail(ShapeMismatch, "expected Map entry at %d to deserialize %v, but had %v", i, storageType, iv.KindOf(item)))
				continue
			}
			key, hasKey := entry.Get(entryKey)
			value, hasValue := entry.Get(entryValue)
			if !hasKey || !hasValue {
				result.Merge(Fail(MissingField, "entry %d of %v requires %v and %v", i, storageType, entryKey, entryValue))
				continue
			}
			result.Merge(c.insert(d, instance, key, value, false))
		}
	default:
		return Fail(ShapeMismatch, "expected Map or Sequence to deserialize %v, but had %v", storageType, iv.KindOf(data))
	}
	return result
}

// insert converts and stores one entry, Null values are stored as element zero value
func (c *DictionaryConverter) insert(d Dispatcher, instance reflect.Value, keyData, valueData iv.Value, fromMapKey bool) Result {
	t := instance.Type()
	key := reflect.New(t.Key()).Elem()
	keyResult := d.TryDeserialize(keyData, t.Key(), key, "")
	if keyResult.Failed() && fromMapKey {
		// map shaped input carries non string keys as text
		if err := textKeys.Convert(keyData, key); err == nil {
			keyResult = Success()
		}
	}
	if keyResult.Failed() {
		return keyResult
	}
	value := reflect.New(t.Elem()).Elem()
	if existing := instance.MapIndex(key); existing.IsValid() {
		value.Set(existing)
	}
	valueResult := d.TryDeserialize(valueData, t.Elem(), value, "")
	if valueResult.Failed() {
		return keyResult.Add(valueResult)
	}
	instance.SetMapIndex(key, value)
	return keyResult.Add(valueResult)
}

var textKeys = conv.NewConverter(conv.DefaultOptions())
