package schema

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// EnumValue represents enum member declaration
type EnumValue[T constraints.Integer] struct {
	Name  string
	Value T
	// RenamedFrom lists former member names still accepted on input
	RenamedFrom []string
}

// EnumMember represents registered enum member, Bits holds the value two's complement bits
type EnumMember struct {
	Name        string
	Bits        uint64
	RenamedFrom []string
}

// EnumSpec represents registered enum type
type EnumSpec struct {
	Type    reflect.Type
	Flags   bool
	Members []EnumMember
	byName  map[string]int
}

// Unsigned returns true for unsigned underlying type
func (e *EnumSpec) Unsigned() bool {
	switch e.Type.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// ByValue returns the first member declared with supplied bits
func (e *EnumSpec) ByValue(bits uint64) (*EnumMember, bool) {
	for i := range e.Members {
		if e.Members[i].Bits == bits {
			return &e.Members[i], true
		}
	}
	return nil, false
}

// ByName returns member by current or former name
func (e *EnumSpec) ByName(name string) (*EnumMember, bool) {
	pos, ok := e.byName[name]
	if !ok {
		return nil, false
	}
	return &e.Members[pos], true
}

// Names returns member names in declaration order
func (e *EnumSpec) Names() []string {
	return lo.Map(e.Members, func(item EnumMember, _ int) string { return item.Name })
}

// Bits returns two's complement bits of an integer kinded value
func Bits(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint()
	}
	return 0
}

// SetBits sets integer kinded value from two's complement bits
func SetBits(v reflect.Value, bits uint64) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(int64(bits))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v.SetUint(bits)
	}
}

// Enum returns registered enum spec
func (p *Provider) Enum(t reflect.Type) (*EnumSpec, bool) {
	if t == nil {
		return nil, false
	}
	return p.enums.Get(t)
}

// RegisterEnum registers enum or flag set type T with its members
func RegisterEnum[T constraints.Integer](p *Provider, flags bool, values ...EnumValue[T]) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	spec := &EnumSpec{Type: t, Flags: flags, byName: map[string]int{}}
	for i, value := range values {
		if value.Name == "" || strings.Contains(value.Name, ",") {
			return errors.Newf("invalid %v enum member name: %q", t, value.Name)
		}
		spec.Members = append(spec.Members, EnumMember{Name: value.Name, Bits: uint64(value.Value), RenamedFrom: value.RenamedFrom})
		for _, name := range append([]string{value.Name}, value.RenamedFrom...) {
			if _, ok := spec.byName[name]; ok {
				return errors.Newf("duplicate %v enum member name: %q", t, name)
			}
			spec.byName[name] = i
		}
	}
	p.enums.Put(t, spec)
	return nil
}
