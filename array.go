package ivconv

import (
	"reflect"

	"github.com/google/uuid"
	"github.com/viant/ivconv/iv"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

// ArrayConverter converts fixed size arrays
type ArrayConverter struct {
	BaseConverter
}

func (c *ArrayConverter) CanProcess(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Array && t != uuidType
}

func (c *ArrayConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	elemType := instance.Type().Elem()
	ret := make(iv.Sequence, 0, instance.Len())
	var result Result
	for i := 0; i < instance.Len(); i++ {
		item, itemResult := d.TrySerialize(elemType, instance.Index(i), "")
		result.Merge(itemResult)
		if itemResult.Failed() {
			continue
		}
		ret = append(ret, item)
	}
	return ret, result
}

// TryDeserialize reuses elements already present by index, trailing elements are reset
func (c *ArrayConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	seq, ok := iv.AsSequence(data)
	if !ok {
		return shapeMismatch(iv.KindSequence, data, storageType)
	}
	elemType := instance.Type().Elem()
	var result Result
	size := instance.Len()
	for i := 0; i < size; i++ {
		item := instance.Index(i)
		if i >= len(seq) {
			item.Set(reflect.Zero(elemType))
			continue
		}
		result.Merge(d.TryDeserialize(seq[i], elemType, item, ""))
	}
	if len(seq) > size {
		result.Merge(Warn("%v holds %d elements, %d input elements were dropped", storageType, size, len(seq)-size))
	}
	return result
}
