package schema

import (
	"reflect"

	"github.com/viant/ivconv/visitor"
	"github.com/viant/tagly/format/text"
)

// Provider computes and caches type descriptors, it also holds enum and type name registries.
// It is safe for concurrent use.
type Provider struct {
	caseFormat  text.CaseFormat
	descriptors *visitor.SyncMap[reflect.Type, *Descriptor]
	errors      *visitor.SyncMap[reflect.Type, error]
	enums       *visitor.SyncMap[reflect.Type, *EnumSpec]
	types       *TypeRegistry
}

// Option represents provider option
type Option func(p *Provider)

// WithCaseFormat sets case format applied to member names without explicit name
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(p *Provider) {
		p.caseFormat = caseFormat
	}
}

// WithTypeRegistry sets type name registry
func WithTypeRegistry(registry *TypeRegistry) Option {
	return func(p *Provider) {
		p.types = registry
	}
}

// Types returns type name registry
func (p *Provider) Types() *TypeRegistry {
	return p.types
}

// NewProvider creates a provider
func NewProvider(opts ...Option) *Provider {
	ret := &Provider{
		descriptors: visitor.NewSyncMap[reflect.Type, *Descriptor](),
		errors:      visitor.NewSyncMap[reflect.Type, error](),
		enums:       visitor.NewSyncMap[reflect.Type, *EnumSpec](),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.types == nil {
		ret.types = NewTypeRegistry()
	}
	return ret
}
