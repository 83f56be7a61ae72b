package iv

import (
	"strconv"
)

// Kind represents intermediate value variant
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSequence
	KindMap
)

var kindNames = [...]string{"Null", "Bool", "Int", "Float", "String", "Sequence", "Map"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value represents intermediate value, a nil Value is treated as Null
type Value interface {
	Kind() Kind
	isValue()
}

type (
	// Null represents absence of value
	Null struct{}
	// Bool represents boolean value
	Bool bool
	// Int represents 64-bit signed integer
	Int int64
	// Float represents 64-bit floating point number
	Float float64
	// String represents text value
	String string
	// Sequence represents ordered list of values
	Sequence []Value
)

func (Null) Kind() Kind     { return KindNull }
func (Bool) Kind() Kind     { return KindBool }
func (Int) Kind() Kind      { return KindInt }
func (Float) Kind() Kind    { return KindFloat }
func (String) Kind() Kind   { return KindString }
func (Sequence) Kind() Kind { return KindSequence }

func (Null) isValue()     {}
func (Bool) isValue()     {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Sequence) isValue() {}

// KindOf returns value kind, nil is Null
func KindOf(v Value) Kind {
	if v == nil {
		return KindNull
	}
	if m, ok := v.(*Map); ok && m == nil {
		return KindNull
	}
	return v.Kind()
}

// IsNull returns true if value is nil or Null
func IsNull(v Value) bool {
	return KindOf(v) == KindNull
}

// AsMap returns map variant
func AsMap(v Value) (*Map, bool) {
	if KindOf(v) != KindMap {
		return nil, false
	}
	return v.(*Map), true
}

// AsSequence returns sequence variant
func AsSequence(v Value) (Sequence, bool) {
	ret, ok := v.(Sequence)
	return ret, ok
}

// AsString returns string variant
func AsString(v Value) (string, bool) {
	ret, ok := v.(String)
	return string(ret), ok
}
