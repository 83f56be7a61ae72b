package schema

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/xunsafe"
)

// Marker records which members were present in the converted input.
// The holder is a pointer to a struct of bool fields named after the owner members.
type Marker struct {
	holder *xunsafe.Field
	fields []*xunsafe.Field //indexed by member position
}

// CanUseHolder returns true if holder is allocated
func (p *Marker) CanUseHolder(ptr unsafe.Pointer) bool {
	return p.holder != nil && !p.holder.IsNil(ptr)
}

// EnsureHolder allocates holder if needed
func (p *Marker) EnsureHolder(owner reflect.Value) {
	if p.holder == nil || !owner.CanAddr() {
		return
	}
	ptr := unsafe.Pointer(owner.UnsafeAddr())
	if !p.holder.IsNil(ptr) {
		return
	}
	holderValue := reflect.NewAt(p.holder.Type, p.holder.Pointer(ptr)).Elem()
	holderValue.Set(reflect.New(p.holder.Type.Elem()))
}

// Set sets member marker
func (p *Marker) Set(ptr unsafe.Pointer, index int, flag bool) error {
	if !p.CanUseHolder(ptr) {
		return errors.New("holder was empty")
	}
	if index < 0 || index >= len(p.fields) || p.fields[index] == nil {
		return errors.Newf("member at index %v was missing in presence marker", index)
	}
	p.fields[index].SetBool(p.holder.ValuePointer(ptr), flag)
	return nil
}

// IsSet returns true if member has been set, without holder all members are assumed set
func (p *Marker) IsSet(ptr unsafe.Pointer, index int) bool {
	if !p.CanUseHolder(ptr) {
		return true
	}
	if index < 0 || index >= len(p.fields) || p.fields[index] == nil {
		return false
	}
	return p.fields[index].Bool(p.holder.ValuePointer(ptr))
}

func newMarker(holder reflect.StructField, members []*Member) (*Marker, error) {
	if holder.Type.Kind() != reflect.Ptr || holder.Type.Elem().Kind() != reflect.Struct {
		return nil, errors.Newf("presence holder %v has to be a pointer to struct, but had %v", holder.Name, holder.Type)
	}
	ret := &Marker{holder: xunsafe.NewField(holder), fields: make([]*xunsafe.Field, len(members))}
	index := make(map[string]int, len(members))
	for i, member := range members {
		index[member.Name] = i
	}
	holderType := holder.Type.Elem()
	for i := 0; i < holderType.NumField(); i++ {
		markerField := holderType.Field(i)
		pos, ok := index[markerField.Name]
		if !ok {
			continue
		}
		if markerField.Type.Kind() != reflect.Bool {
			return nil, errors.Newf("marker field: '%v' has to be bool, but had %v", markerField.Name, markerField.Type)
		}
		ret.fields[pos] = xunsafe.NewField(markerField)
	}
	return ret, nil
}
