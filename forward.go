package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/schema"
)

// ForwardConverter converts a wrapper as if it were its named member.
// It is attached with Serializer.Forward or a `_ struct{} ivconv:"forward=Member"` declaration.
type ForwardConverter struct {
	BaseConverter
	Member string
}

func (c *ForwardConverter) member(d Dispatcher, storageType reflect.Type) (*schema.Member, Result) {
	if member := d.Provider().Describe(storageType).Lookup(c.Member); member != nil {
		return member, Success()
	}
	return nil, Fail(MissingField, "forwarded member %v was not found on %v", c.Member, storageType)
}

func (c *ForwardConverter) TrySerialize(d Dispatcher, instance reflect.Value, storageType reflect.Type) (iv.Value, Result) {
	member, result := c.member(d, instance.Type())
	if result.Failed() {
		return iv.Null{}, result
	}
	return d.TrySerialize(member.Type, member.Value(instance), member.Converter)
}

func (c *ForwardConverter) TryDeserialize(d Dispatcher, data iv.Value, instance reflect.Value, storageType reflect.Type) Result {
	member, result := c.member(d, instance.Type())
	if result.Failed() {
		return result
	}
	return d.TryDeserialize(data, member.Type, member.Value(instance), member.Converter)
}
