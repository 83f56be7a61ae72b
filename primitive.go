package ivconv

import (
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/schema"
)

// Char represents a single character, it is stored as a one character string
type Char rune

var (
	charType     = reflect.TypeOf(Char(0))
	durationType = reflect.TypeOf(time.Duration(0))
)

// maxDecimal is the largest magnitude for which float32 values are widened through their decimal text form
const maxDecimal = 7.9228162514264337593543950335e28

// PrimitiveConverter converts booleans, integers, floats, strings and characters
type PrimitiveConverter struct {
	ValueConverter
	provider *schema.Provider
}

func (c *PrimitiveConverter) CanProcess(t reflect.Type) bool {
	if t == nil || t == durationType {
		return false
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		_, isEnum := c.provider.Enum(t)
		return !isEnum
	}
	return false
}

func (c *PrimitiveConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	kind := instance.Kind()
	if d.Config().Int64AsString {
		switch kind {
		case reflect.Int64:
			return iv.String(strconv.FormatInt(instance.Int(), 10)), Success()
		case reflect.Uint64:
			return iv.String(strconv.FormatUint(instance.Uint(), 10)), Success()
		}
	}
	if instance.Type() == charType {
		return iv.String(string(rune(instance.Int()))), Success()
	}
	switch kind {
	case reflect.Bool:
		return iv.Bool(instance.Bool()), Success()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return iv.Int(instance.Int()), Success()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return iv.Int(int64(instance.Uint())), Success()
	case reflect.Float32:
		return iv.Float(widenFloat32(float32(instance.Float()))), Success()
	case reflect.Float64:
		return iv.Float(instance.Float()), Success()
	case reflect.String:
		return iv.String(instance.String()), Success()
	}
	return iv.Null{}, Fail(UnsupportedShape, "%v is not a primitive type", storageType)
}

// widenFloat32 widens through the shortest decimal form so that 0.1 reads back as 0.1
func widenFloat32(f float32) float64 {
	wide := float64(f)
	if math.IsNaN(wide) || math.IsInf(wide, 0) || math.Abs(wide) > maxDecimal {
		return wide
	}
	ret, err := strconv.ParseFloat(strconv.FormatFloat(wide, 'g', -1, 32), 64)
	if err != nil {
		return wide
	}
	return ret
}

func (c *PrimitiveConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	if instance.Type() == charType {
		text, ok := data.(iv.String)
		if !ok {
			return shapeMismatch(iv.KindString, data, storageType)
		}
		runes := []rune(string(text))
		if len(runes) != 1 {
			instance.SetInt(0)
			return Warn("expected single character string for %v, but had %q, defaulting", storageType, text)
		}
		instance.SetInt(int64(runes[0]))
		return Success()
	}
	switch instance.Kind() {
	case reflect.Bool:
		value, ok := data.(iv.Bool)
		if !ok {
			return shapeMismatch(iv.KindBool, data, storageType)
		}
		instance.SetBool(bool(value))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return c.deserializeInt(d, data, instance, storageType)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return c.deserializeUint(d, data, instance, storageType)
	case reflect.Float32, reflect.Float64:
		switch actual := data.(type) {
		case iv.Float:
			instance.SetFloat(float64(actual))
		case iv.Int:
			instance.SetFloat(float64(actual))
		default:
			return shapeMismatch(iv.KindFloat, data, storageType)
		}
	case reflect.String:
		value, ok := data.(iv.String)
		if !ok {
			return shapeMismatch(iv.KindString, data, storageType)
		}
		instance.SetString(string(value))
	default:
		return Fail(UnsupportedShape, "%v is not a primitive type", storageType)
	}
	return Success()
}

func (c *PrimitiveConverter) deserializeInt(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	var value int64
	switch actual := data.(type) {
	case iv.Int:
		value = int64(actual)
	case iv.Float:
		f := float64(actual)
		if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return Fail(ParseFailure, "value %v overflows %v", f, storageType)
		}
		value = int64(f)
	case iv.String:
		if !d.Config().Int64AsString || instance.Kind() != reflect.Int64 {
			return shapeMismatch(iv.KindInt, data, storageType)
		}
		parsed, err := strconv.ParseInt(string(actual), 10, 64)
		if err != nil {
			return Fail(ParseFailure, "failed to parse %v from %q: %v", storageType, actual, err)
		}
		value = parsed
	default:
		return shapeMismatch(iv.KindInt, data, storageType)
	}
	if instance.OverflowInt(value) {
		return Fail(ParseFailure, "value %v overflows %v", value, storageType)
	}
	instance.SetInt(value)
	return Success()
}

func (c *PrimitiveConverter) deserializeUint(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	var value uint64
	switch actual := data.(type) {
	case iv.Int:
		if actual < 0 && instance.Kind() != reflect.Uint64 {
			return Fail(ParseFailure, "value %v overflows %v", actual, storageType)
		}
		value = uint64(actual) //negative values carry uint64 bits above MaxInt64
	case iv.Float:
		f := float64(actual)
		if math.IsNaN(f) || f < 0 || f >= math.MaxUint64 {
			return Fail(ParseFailure, "value %v overflows %v", f, storageType)
		}
		value = uint64(f)
	case iv.String:
		if !d.Config().Int64AsString || instance.Kind() != reflect.Uint64 {
			return shapeMismatch(iv.KindInt, data, storageType)
		}
		parsed, err := strconv.ParseUint(string(actual), 10, 64)
		if err != nil {
			return Fail(ParseFailure, "failed to parse %v from %q: %v", storageType, actual, err)
		}
		value = parsed
	default:
		return shapeMismatch(iv.KindInt, data, storageType)
	}
	if instance.OverflowUint(value) {
		return Fail(ParseFailure, "value %v overflows %v", value, storageType)
	}
	instance.SetUint(value)
	return Success()
}

// NewPrimitiveConverter creates primitive converter, registered enums are left to the enum converter
func NewPrimitiveConverter(provider *schema.Provider) *PrimitiveConverter {
	return &PrimitiveConverter{provider: provider}
}
