package ivconv

import (
	"reflect"
	"time"

	"github.com/viant/ivconv/conv"
	"github.com/viant/ivconv/iv"
)

var timeType = reflect.TypeOf(time.Time{})

// DateConverter converts time.Time with the configured layout and time.Duration with its text form
type DateConverter struct {
	ValueConverter
}

func (c *DateConverter) CanProcess(t reflect.Type) bool {
	return t == timeType || t == durationType
}

func (c *DateConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	if instance.Type() == durationType {
		return iv.String(time.Duration(instance.Int()).String()), Success()
	}
	return iv.String(instance.Interface().(time.Time).Format(d.Config().Layout())), Success()
}

// TryDeserialize parses strictly first, dates then fall back to common layouts and unix epoch numbers
func (c *DateConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	if instance.Type() == durationType {
		switch actual := data.(type) {
		case iv.String:
			duration, err := time.ParseDuration(string(actual))
			if err != nil {
				return Fail(ParseFailure, "failed to parse %v from %q: %v", storageType, actual, err)
			}
			instance.SetInt(int64(duration))
		case iv.Int:
			instance.SetInt(int64(actual))
		default:
			return shapeMismatch(iv.KindString, data, storageType)
		}
		return Success()
	}
	layout := d.Config().Layout()
	if text, ok := iv.AsString(data); ok {
		if t, err := time.Parse(layout, text); err == nil {
			instance.Set(reflect.ValueOf(t))
			return Success()
		}
	}
	switch data.(type) {
	case iv.String, iv.Int, iv.Float:
	default:
		return shapeMismatch(iv.KindString, data, storageType)
	}
	loose := conv.NewConverter(conv.Options{DateLayout: layout})
	t, err := loose.ToTime(data)
	if err != nil {
		return Fail(ParseFailure, "failed to parse %v: %v", storageType, err)
	}
	instance.Set(reflect.ValueOf(t))
	return Success()
}
