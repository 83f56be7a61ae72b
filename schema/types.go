package schema

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/viant/ivconv/visitor"
)

// TypeRegistry maps runtime types to stable names and back
type TypeRegistry struct {
	byName *visitor.SyncMap[string, reflect.Type]
	byType *visitor.SyncMap[reflect.Type, string]
}

var builtinTypes = []reflect.Type{
	reflect.TypeOf(false),
	reflect.TypeOf(int(0)), reflect.TypeOf(int8(0)), reflect.TypeOf(int16(0)), reflect.TypeOf(int32(0)), reflect.TypeOf(int64(0)),
	reflect.TypeOf(uint(0)), reflect.TypeOf(uint8(0)), reflect.TypeOf(uint16(0)), reflect.TypeOf(uint32(0)), reflect.TypeOf(uint64(0)), reflect.TypeOf(uintptr(0)),
	reflect.TypeOf(float32(0)), reflect.TypeOf(float64(0)),
	reflect.TypeOf(""),
	reflect.TypeOf((*interface{})(nil)).Elem(),
	reflect.TypeOf((*error)(nil)).Elem(),
	reflect.TypeOf(time.Time{}),
	reflect.TypeOf(time.Duration(0)),
	reflect.TypeOf(uuid.UUID{}),
}

// Register registers type with optional name, by default the type string form is used
func (r *TypeRegistry) Register(t reflect.Type, name ...string) {
	typeName := t.String()
	if len(name) > 0 && name[0] != "" {
		typeName = name[0]
	}
	r.byName.Put(typeName, t)
	if _, ok := r.byType.Get(t); !ok || len(name) > 0 {
		r.byType.Put(t, typeName)
	}
}

// Name returns type name, unregistered types use their string form
func (r *TypeRegistry) Name(t reflect.Type) string {
	if name, ok := r.byType.Get(t); ok {
		return name
	}
	if t.Name() == "" {
		switch t.Kind() {
		case reflect.Slice:
			return "[]" + r.Name(t.Elem())
		case reflect.Ptr:
			return "*" + r.Name(t.Elem())
		case reflect.Array:
			return "[" + strconv.Itoa(t.Len()) + "]" + r.Name(t.Elem())
		case reflect.Map:
			return "map[" + r.Name(t.Key()) + "]" + r.Name(t.Elem())
		}
	}
	return t.String()
}

const maxArrayBytes = 1 << 30

// Resolve returns type for the name, composite names of registered types are supported,
// i.e. []T, *T, [N]T, map[K]V
func (r *TypeRegistry) Resolve(name string) (reflect.Type, error) {
	name = strings.TrimSpace(name)
	if t, ok := r.byName.Get(name); ok {
		return t, nil
	}
	switch {
	case name == "any":
		return reflect.TypeOf((*interface{})(nil)).Elem(), nil
	case strings.HasPrefix(name, "[]"):
		elem, err := r.Resolve(name[2:])
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(name, "*"):
		elem, err := r.Resolve(name[1:])
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case strings.HasPrefix(name, "["):
		end := strings.Index(name, "]")
		if end == -1 {
			break
		}
		size, err := strconv.Atoi(name[1:end])
		if err != nil || size < 0 {
			break
		}
		elem, err := r.Resolve(name[end+1:])
		if err != nil {
			return nil, err
		}
		if elem.Size() > 0 && uintptr(size) > maxArrayBytes/elem.Size() {
			return nil, errors.Newf("array type %q exceeds %v bytes", name, maxArrayBytes)
		}
		return reflect.ArrayOf(size, elem), nil
	case strings.HasPrefix(name, "map["):
		end := closingBracket(name, 3)
		if end == -1 {
			break
		}
		key, err := r.Resolve(name[4:end])
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, errors.Newf("invalid map key type %v in %q", key, name)
		}
		elem, err := r.Resolve(name[end+1:])
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	}
	return nil, errors.Newf("unable to resolve type name %q, register it first", name)
}

func closingBracket(name string, open int) int {
	depth := 0
	for i := open; i < len(name); i++ {
		switch name[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// NewTypeRegistry creates registry with predeclared and standard types
func NewTypeRegistry() *TypeRegistry {
	ret := &TypeRegistry{
		byName: visitor.NewSyncMap[string, reflect.Type](),
		byType: visitor.NewSyncMap[reflect.Type, string](),
	}
	for _, t := range builtinTypes {
		ret.Register(t)
	}
	return ret
}
