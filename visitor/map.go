package visitor

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/cockroachdb/errors"
)

// MapVisitorOf creates a visitor over map entries in natural key order (see CompareKeys)
func MapVisitorOf(value reflect.Value) (Visitor[reflect.Value, reflect.Value], error) {
	if value.Kind() != reflect.Map {
		return nil, errors.Newf("expected map, got %v", value.Type())
	}
	keys := value.MapKeys()
	slices.SortFunc(keys, CompareKeys)
	return func(f func(key reflect.Value, element reflect.Value) (bool, error)) error {
		for _, key := range keys {
			continueVisit, err := f(key, value.MapIndex(key))
			if err != nil {
				return err
			}
			if !continueVisit {
				break
			}
		}
		return nil
	}, nil
}

// CompareKeys orders map keys: numbers numerically, strings lexically, others by their text form.
// Keys of different kinds are ordered by kind.
func CompareKeys(a, b reflect.Value) int {
	a, b = indirect(a), indirect(b)
	if !a.IsValid() || !b.IsValid() {
		return cmp.Compare(boolIndex(a.IsValid()), boolIndex(b.IsValid()))
	}
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolIndex(a.Bool()), boolIndex(b.Bool()))
	}
	return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
