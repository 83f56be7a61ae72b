package schema

import (
	"reflect"
	"unsafe"

	"github.com/cockroachdb/errors"
	"github.com/viant/xunsafe"
)

// Member represents serializable struct member
type Member struct {
	Name       string
	JSONName   string
	Type       reflect.Type
	Index      []int
	Position   int
	CanRead    bool
	CanWrite   bool
	OmitEmpty  bool
	Converter  string
	TimeLayout string
	field      *xunsafe.Field
}

// Value returns member value of holder, the result is settable when holder is addressable
func (m *Member) Value(holder reflect.Value) reflect.Value {
	if !holder.CanAddr() {
		return holder.FieldByIndex(m.Index)
	}
	ptr := unsafe.Pointer(holder.UnsafeAddr())
	return reflect.NewAt(m.Type, m.field.Pointer(ptr)).Elem()
}

// Descriptor represents a type view used by reflective converters
type Descriptor struct {
	Type    reflect.Type
	Members []*Member
	// Forward names the member a forwarding converter delegates to
	Forward string
	Marker  *Marker
	byName  map[string]*Member
}

// Lookup returns member by JSON visible name, or by Go field name
func (d *Descriptor) Lookup(name string) *Member {
	if ret, ok := d.byName[name]; ok {
		return ret
	}
	for _, member := range d.Members {
		if member.Name == name {
			return member
		}
	}
	return nil
}

// CreateInstance returns addressable default instance
func (d *Descriptor) CreateInstance() reflect.Value {
	return NewInstance(d.Type)
}

// NewInstance returns addressable default instance of t, slices and maps are empty but not nil
func NewInstance(t reflect.Type) reflect.Value {
	ret := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.Slice:
		ret.Set(reflect.MakeSlice(t, 0, 0))
	case reflect.Map:
		ret.Set(reflect.MakeMap(t))
	}
	return ret
}

// SetPresent flags member as present when a presence marker is declared
func (d *Descriptor) SetPresent(holder reflect.Value, member *Member) {
	if d.Marker == nil || !holder.CanAddr() {
		return
	}
	d.Marker.EnsureHolder(holder)
	_ = d.Marker.Set(unsafe.Pointer(holder.UnsafeAddr()), member.Position, true)
}

// IsPresent returns true if member was flagged present, or no marker is declared
func (d *Descriptor) IsPresent(holder reflect.Value, member *Member) bool {
	if d.Marker == nil || !holder.CanAddr() {
		return true
	}
	return d.Marker.IsSet(unsafe.Pointer(holder.UnsafeAddr()), member.Position)
}

func (p *Provider) describe(t reflect.Type) (*Descriptor, error) {
	ret := &Descriptor{Type: t, byName: map[string]*Member{}}
	if t.Kind() != reflect.Struct {
		return ret, nil
	}
	var presence *reflect.StructField
	p.collect(ret, t, 0, nil, &presence)
	if presence != nil {
		marker, err := newMarker(*presence, ret.Members)
		if err != nil {
			return nil, err
		}
		ret.Marker = marker
	}
	return ret, nil
}

func (p *Provider) collect(desc *Descriptor, t reflect.Type, offset uintptr, index []int, presence **reflect.StructField) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		field.Offset += offset
		field.Index = append(append([]int(nil), index...), i)
		tag := ParseTag(field, p.caseFormat)
		if field.Name == "_" {
			if tag.Forward != "" {
				desc.Forward = tag.Forward
			}
			continue
		}
		if tag.Ignore {
			continue
		}
		if tag.Presence {
			if *presence == nil {
				*presence = &field
			}
			continue
		}
		if field.Type.Kind() == reflect.Struct && (tag.Inline || field.Anonymous && !tag.Explicit) {
			p.collect(desc, field.Type, field.Offset, field.Index, presence)
			continue
		}
		if !field.IsExported() {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Func, reflect.Chan, reflect.UnsafePointer:
			continue
		}
		existing, ok := desc.byName[tag.Name]
		if ok && len(existing.Index) <= len(field.Index) {
			continue
		}
		member := &Member{
			Name:       field.Name,
			JSONName:   tag.Name,
			Type:       field.Type,
			Index:      field.Index,
			Position:   len(desc.Members),
			CanRead:    !tag.WriteOnly,
			CanWrite:   !tag.ReadOnly,
			OmitEmpty:  tag.OmitEmpty,
			Converter:  tag.Converter,
			TimeLayout: tag.TimeLayout,
			field:      xunsafe.NewField(field),
		}
		desc.byName[member.JSONName] = member
		if ok { //shallower member shadows the flattened one
			member.Position = existing.Position
			desc.Members[member.Position] = member
			continue
		}
		desc.Members = append(desc.Members, member)
	}
}

// Describe returns cached type descriptor
func (p *Provider) Describe(t reflect.Type) *Descriptor {
	return p.descriptors.GetOrPut(t, func() *Descriptor {
		ret, err := p.describe(t)
		if err != nil {
			p.errors.Put(t, err)
			return &Descriptor{Type: t, byName: map[string]*Member{}}
		}
		return ret
	})
}

// DescribeErr returns descriptor and error encountered while describing t
func (p *Provider) DescribeErr(t reflect.Type) (*Descriptor, error) {
	ret := p.Describe(t)
	if err, ok := p.errors.Get(t); ok {
		return ret, errors.Wrapf(err, "failed to describe %v", t)
	}
	return ret, nil
}
