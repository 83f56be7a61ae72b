package iv

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/francoispqt/gojay"
	jsoniter "github.com/json-iterator/go"
)

// Marshal renders value as JSON text, map entries keep insertion order.
// Non-finite floats are rendered as "NaN", "Infinity" and "-Infinity" strings.
func Marshal(v Value) ([]byte, error) {
	switch KindOf(v) {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return strconv.AppendBool(nil, bool(v.(Bool))), nil
	case KindInt:
		return strconv.AppendInt(nil, int64(v.(Int)), 10), nil
	case KindFloat:
		return formatFloat(float64(v.(Float))), nil
	case KindString:
		return gojay.Marshal(string(v.(String)))
	case KindSequence:
		return gojay.MarshalJSONArray(sequenceEncoder(v.(Sequence)))
	case KindMap:
		return gojay.MarshalJSONObject(&mapEncoder{m: v.(*Map)})
	}
	return nil, errors.Newf("unsupported value kind: %v", v.Kind())
}

type mapEncoder struct {
	m *Map
}

func (e *mapEncoder) MarshalJSONObject(enc *gojay.Encoder) {
	for _, key := range e.m.keys {
		value := e.m.values[key]
		switch KindOf(value) {
		case KindNull:
			enc.AddNullKey(key)
		case KindBool:
			enc.BoolKey(key, bool(value.(Bool)))
		case KindInt:
			enc.Int64Key(key, int64(value.(Int)))
		case KindFloat:
			embedded := gojay.EmbeddedJSON(formatFloat(float64(value.(Float))))
			enc.AddEmbeddedJSONKey(key, &embedded)
		case KindString:
			enc.StringKey(key, string(value.(String)))
		case KindSequence:
			enc.ArrayKey(key, sequenceEncoder(value.(Sequence)))
		case KindMap:
			enc.ObjectKey(key, &mapEncoder{m: value.(*Map)})
		}
	}
}

func (e *mapEncoder) IsNil() bool {
	return e.m == nil
}

type sequenceEncoder Sequence

func (s sequenceEncoder) MarshalJSONArray(enc *gojay.Encoder) {
	for _, value := range s {
		switch KindOf(value) {
		case KindNull:
			enc.AddNull()
		case KindBool:
			enc.Bool(bool(value.(Bool)))
		case KindInt:
			enc.Int64(int64(value.(Int)))
		case KindFloat:
			embedded := gojay.EmbeddedJSON(formatFloat(float64(value.(Float))))
			enc.AddEmbeddedJSON(&embedded)
		case KindString:
			enc.String(string(value.(String)))
		case KindSequence:
			enc.Array(sequenceEncoder(value.(Sequence)))
		case KindMap:
			enc.Object(&mapEncoder{m: value.(*Map)})
		}
	}
}

func (s sequenceEncoder) IsNil() bool {
	return s == nil
}

// formatFloat keeps a fraction or exponent so that the text parses back as Float
func formatFloat(f float64) []byte {
	switch {
	case math.IsNaN(f):
		return []byte(`"NaN"`)
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`)
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`)
	}
	ret := strconv.AppendFloat(nil, f, 'g', -1, 64)
	for _, c := range ret {
		if c == '.' || c == 'e' {
			return ret
		}
	}
	return append(ret, '.', '0')
}

// Unmarshal parses JSON text, object key order is preserved.
// Numbers without fraction or exponent that fit int64 become Int, others Float.
func Unmarshal(data []byte) (Value, error) {
	iter := jsoniter.ParseBytes(jsoniter.ConfigDefault, data)
	ret := decodeValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return nil, errors.Wrap(iter.Error, "failed to parse JSON")
	}
	if next := iter.WhatIsNext(); next != jsoniter.InvalidValue || iter.Error == nil {
		return nil, errors.New("failed to parse JSON: unexpected data after top-level value")
	}
	return ret, nil
}

func decodeValue(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null{}
	case jsoniter.BoolValue:
		return Bool(iter.ReadBool())
	case jsoniter.StringValue:
		return String(iter.ReadString())
	case jsoniter.NumberValue:
		return decodeNumber(iter)
	case jsoniter.ArrayValue:
		seq := Sequence{}
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			seq = append(seq, decodeValue(it))
			return isValid(it)
		})
		return seq
	case jsoniter.ObjectValue:
		m := NewMap()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			m.Set(key, decodeValue(it))
			return isValid(it)
		})
		return m
	}
	iter.ReportError("decode", "unexpected token")
	return Null{}
}

func decodeNumber(iter *jsoniter.Iterator) Value {
	text := string(iter.ReadNumber())
	if !strings.ContainsAny(text, ".eE") {
		if i, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(i)
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		iter.ReportError("decode number", err.Error())
		return Null{}
	}
	return Float(f)
}

func isValid(iter *jsoniter.Iterator) bool {
	return iter.Error == nil || iter.Error == io.EOF
}
