package ivconv

import (
	"reflect"
	"strings"

	"github.com/samber/lo"
	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/schema"
)

// EnumConverter converts registered enum and flag set types by member names
type EnumConverter struct {
	ValueConverter
	provider *schema.Provider
}

func (c *EnumConverter) CanProcess(t reflect.Type) bool {
	_, ok := c.provider.Enum(t)
	return ok
}

func (c *EnumConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	spec, ok := c.provider.Enum(instance.Type())
	if !ok {
		return iv.Null{}, Fail(UnsupportedShape, "%v is not a registered enum", storageType)
	}
	bits := schema.Bits(instance)
	if d.Config().EnumsAsIntegers {
		return iv.Int(int64(bits)), Success()
	}
	if !spec.Flags {
		if member, ok := spec.ByValue(bits); ok {
			return iv.String(member.Name), Success()
		}
		return iv.Int(int64(bits)), Warn("%v value %v does not match any member, serialized as integer", storageType, valueText(spec, bits))
	}
	var names []string
	remaining := bits
	for _, member := range spec.Members {
		if member.Bits == 0 || bits&member.Bits != member.Bits {
			continue
		}
		names = append(names, member.Name)
		remaining &^= member.Bits
	}
	if remaining != 0 {
		return iv.Int(int64(bits)), Warn("%v value %v has bits not covered by members, serialized as integer", storageType, valueText(spec, bits))
	}
	return iv.String(strings.Join(names, ",")), Success()
}

func valueText(spec *schema.EnumSpec, bits uint64) interface{} {
	if spec.Unsigned() {
		return bits
	}
	return int64(bits)
}

func (c *EnumConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	spec, ok := c.provider.Enum(instance.Type())
	if !ok {
		return Fail(UnsupportedShape, "%v is not a registered enum", storageType)
	}
	switch actual := data.(type) {
	case iv.Int:
		schema.SetBits(instance, uint64(actual))
		return Success()
	case iv.String:
	default:
		return shapeMismatch(iv.KindString, data, storageType)
	}
	text := string(data.(iv.String))
	tokens := lo.Filter(lo.Map(strings.Split(text, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	}), func(item string, _ int) bool { return item != "" })
	if !spec.Flags && len(tokens) != 1 {
		return Fail(UnresolvedName, "expected single %v member name, but had %q, valid names: %v", storageType, text, strings.Join(spec.Names(), ", "))
	}
	var signed int64
	var unsigned uint64
	for _, token := range tokens {
		member, ok := spec.ByName(token)
		if !ok {
			return Fail(UnresolvedName, "%q is not a valid %v member, valid names: %v", token, storageType, strings.Join(spec.Names(), ", "))
		}
		if spec.Flags {
			unsigned |= member.Bits
			signed |= int64(member.Bits)
			continue
		}
		unsigned, signed = member.Bits, int64(member.Bits)
	}
	if instance.Kind() == reflect.Uint64 {
		instance.SetUint(unsigned)
	} else {
		schema.SetBits(instance, uint64(signed))
	}
	return Success()
}

// NewEnumConverter creates enum converter for types registered with the provider
func NewEnumConverter(provider *schema.Provider) *EnumConverter {
	return &EnumConverter{provider: provider}
}
