package visitor

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// SliceVisitorOf creates a visitor over array or slice elements, the key is the element index
func SliceVisitorOf(value reflect.Value) (Visitor[int, reflect.Value], error) {
	switch value.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, errors.Newf("expected slice or array, got %v", value.Type())
	}
	return func(f func(key int, element reflect.Value) (bool, error)) error {
		for i := 0; i < value.Len(); i++ {
			continueVisit, err := f(i, value.Index(i))
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

// SeqVisitorOf creates a visitor over a func(yield func(T) bool) sequence, the key is the yield ordinal
func SeqVisitorOf(seq reflect.Value) (Visitor[int, reflect.Value], error) {
	if seq.Kind() != reflect.Func || !seq.Type().CanSeq() {
		return nil, errors.Newf("expected iterator sequence, got %v", seq.Type())
	}
	return func(f func(key int, element reflect.Value) (bool, error)) error {
		i := 0
		var err error
		for element := range seq.Seq() {
			var continueVisit bool
			if continueVisit, err = f(i, element); err != nil || !continueVisit {
				break
			}
			i++
		}
		return err
	}, nil
}
