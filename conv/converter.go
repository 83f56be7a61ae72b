package conv

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/ivconv/iv"
)

// DefaultDateLayout is the default layout used for time parsing when no layout is specified
const DefaultDateLayout = "2006-01-02 15:04:05.000"

var timeType = reflect.TypeOf(time.Time{})

// Options contains configuration for the converter
type Options struct {
	// DateLayout specifies the first layout tried for time parsing
	DateLayout string
	// Location is used for layouts without zone information, UTC by default
	Location *time.Location
}

// DefaultOptions returns default conversion options
func DefaultOptions() Options {
	return Options{
		DateLayout: DefaultDateLayout,
		Location:   time.UTC,
	}
}

// Converter converts scalar intermediate values into typed destinations
type Converter struct {
	options Options
}

// NewConverter creates a new converter with the provided options
func NewConverter(options Options) *Converter {
	if options.Location == nil {
		options.Location = time.UTC
	}
	return &Converter{options: options}
}

// Convert converts the source value into the settable destination
func (c *Converter) Convert(src iv.Value, dest reflect.Value) error {
	if !dest.CanSet() {
		return errors.Newf("destination %v is not settable", dest.Type())
	}
	if dest.Type() == timeType {
		t, err := c.ToTime(src)
		if err != nil {
			return err
		}
		dest.Set(reflect.ValueOf(t))
		return nil
	}
	switch dest.Kind() {
	case reflect.String:
		text, err := c.ToString(src)
		if err != nil {
			return err
		}
		dest.SetString(text)
	case reflect.Bool:
		b, err := c.ToBool(src)
		if err != nil {
			return err
		}
		dest.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := c.ToInt(src)
		if err != nil {
			return err
		}
		if dest.OverflowInt(i) {
			return errors.Newf("value %v overflows %v", i, dest.Type())
		}
		dest.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := c.ToUint(src)
		if err != nil {
			return err
		}
		if dest.OverflowUint(u) {
			return errors.Newf("value %v overflows %v", u, dest.Type())
		}
		dest.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := c.ToFloat(src)
		if err != nil {
			return err
		}
		dest.SetFloat(f)
	default:
		return errors.Newf("unsupported conversion from %v to %v", iv.KindOf(src), dest.Type())
	}
	return nil
}

// ToString converts scalar to text
func (c *Converter) ToString(src iv.Value) (string, error) {
	switch actual := src.(type) {
	case iv.String:
		return string(actual), nil
	case iv.Int:
		return strconv.FormatInt(int64(actual), 10), nil
	case iv.Float:
		return strconv.FormatFloat(float64(actual), 'g', -1, 64), nil
	case iv.Bool:
		return strconv.FormatBool(bool(actual)), nil
	}
	return "", errors.Newf("cannot convert %v to string", iv.KindOf(src))
}

// ToBool converts scalar to bool, text accepts strconv.ParseBool forms
func (c *Converter) ToBool(src iv.Value) (bool, error) {
	switch actual := src.(type) {
	case iv.Bool:
		return bool(actual), nil
	case iv.Int:
		return actual != 0, nil
	case iv.String:
		ret, err := strconv.ParseBool(strings.TrimSpace(string(actual)))
		if err != nil {
			return false, errors.Wrapf(err, "cannot parse bool string '%s'", actual)
		}
		return ret, nil
	}
	return false, errors.Newf("cannot convert %v to bool", iv.KindOf(src))
}

// ToInt converts scalar to int64, floats have to be integral
func (c *Converter) ToInt(src iv.Value) (int64, error) {
	switch actual := src.(type) {
	case iv.Int:
		return int64(actual), nil
	case iv.Float:
		f := float64(actual)
		if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, errors.Newf("cannot convert %v to integer", f)
		}
		return int64(f), nil
	case iv.String:
		ret, err := strconv.ParseInt(strings.TrimSpace(string(actual)), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "cannot parse integer string '%s'", actual)
		}
		return ret, nil
	}
	return 0, errors.Newf("cannot convert %v to integer", iv.KindOf(src))
}

// ToUint converts scalar to uint64, negative Int values are taken as two's complement bits
func (c *Converter) ToUint(src iv.Value) (uint64, error) {
	switch actual := src.(type) {
	case iv.Int:
		return uint64(actual), nil
	case iv.Float:
		f := float64(actual)
		if f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
			return 0, errors.Newf("cannot convert %v to unsigned integer", f)
		}
		return uint64(f), nil
	case iv.String:
		ret, err := strconv.ParseUint(strings.TrimSpace(string(actual)), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "cannot parse unsigned integer string '%s'", actual)
		}
		return ret, nil
	}
	return 0, errors.Newf("cannot convert %v to unsigned integer", iv.KindOf(src))
}

// ToFloat converts scalar to float64
func (c *Converter) ToFloat(src iv.Value) (float64, error) {
	switch actual := src.(type) {
	case iv.Float:
		return float64(actual), nil
	case iv.Int:
		return float64(actual), nil
	case iv.String:
		ret, err := strconv.ParseFloat(strings.TrimSpace(string(actual)), 64)
		if err != nil {
			return 0, errors.Wrapf(err, "cannot parse float string '%s'", actual)
		}
		return ret, nil
	}
	return 0, errors.Newf("cannot convert %v to float", iv.KindOf(src))
}

// ToTime converts text with common layouts or unix epoch numbers to time
func (c *Converter) ToTime(src iv.Value) (time.Time, error) {
	switch actual := src.(type) {
	case iv.String:
		text := strings.TrimSpace(string(actual))
		layouts := []string{
			c.options.DateLayout,
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			time.RFC1123Z,
			time.RFC1123,
		}
		var err error
		for _, layout := range layouts {
			if layout == "" {
				continue
			}
			var t time.Time
			if t, err = time.ParseInLocation(layout, text, c.options.Location); err == nil {
				return t, nil
			}
		}
		return time.Time{}, errors.Wrapf(err, "cannot parse time string '%s'", text)
	case iv.Int:
		unixTime := int64(actual)
		if unixTime > 1e10 || unixTime < -1e10 { // Assuming nanoseconds if value is very large
			return time.Unix(0, unixTime).In(c.options.Location), nil
		}
		return time.Unix(unixTime, 0).In(c.options.Location), nil
	case iv.Float:
		f := float64(actual)
		unixTime := int64(f)
		nanos := int64((f - float64(unixTime)) * 1e9)
		return time.Unix(unixTime, nanos).In(c.options.Location), nil
	}
	return time.Time{}, errors.Newf("cannot convert %v to time", iv.KindOf(src))
}
