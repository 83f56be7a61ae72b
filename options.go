package ivconv

import (
	"reflect"

	"github.com/viant/ivconv/schema"
	"go.uber.org/zap"
)

// Option serializer option
type Option func(s *Serializer)

// Options represents serializer options
type Options []Option

// Apply applies options
func (o Options) Apply(s *Serializer) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(s)
	}
}

// WithConfig sets conversion configuration
func WithConfig(config *Config) Option {
	return func(s *Serializer) {
		s.config = config
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Serializer) {
		s.logger = logger
	}
}

// WithDebug enables converter selection ambiguity check
func WithDebug(debug bool) Option {
	return func(s *Serializer) {
		s.debug = debug
	}
}

// WithProvider sets type descriptor provider
func WithProvider(provider *schema.Provider) Option {
	return func(s *Serializer) {
		s.provider = provider
	}
}

// WithTypeRegistry shares type name registry, it is ignored when WithProvider is used
func WithTypeRegistry(registry *schema.TypeRegistry) Option {
	return func(s *Serializer) {
		s.registry = registry
	}
}

// WithType registers type name used with interface storage
func WithType(t reflect.Type, name string) Option {
	return func(s *Serializer) {
		s.types = append(s.types, namedType{name: name, t: t})
	}
}

// WithConverters adds converters ahead of the default ones, earlier arguments take precedence
func WithConverters(converters ...ShapeConverter) Option {
	return func(s *Serializer) {
		s.custom = append(s.custom, converters...)
	}
}

// WithNamedConverter registers converter selected with member tag `ivconv:"converter=name"`
func WithNamedConverter(name string, converter Converter) Option {
	return func(s *Serializer) {
		s.named[name] = converter
	}
}
