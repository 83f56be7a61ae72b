package ivconv

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/viant/ivconv/iv"
	"github.com/viant/ivconv/schema"
	"github.com/viant/ivconv/visitor"
	"github.com/viant/tagly/format/text"
	"go.uber.org/zap"
)

type namedType struct {
	name string
	t    reflect.Type
}

// Serializer converts runtime values to intermediate values and back with an ordered converter list.
// It is safe for concurrent use, each call runs in its own dispatch session.
type Serializer struct {
	config   *Config
	logger   *zap.Logger
	debug    bool
	provider *schema.Provider
	registry *schema.TypeRegistry
	types    []namedType
	custom   []ShapeConverter

	mux        sync.RWMutex
	converters []ShapeConverter
	named      map[string]Converter
	forwards   map[reflect.Type]string
	cache      *visitor.SyncMap[reflect.Type, Converter]
}

// fallback is implemented by catch-all converters, excluded from the ambiguity check
type fallback interface {
	Fallback() bool
}

// DefaultConverters returns converters ordered from the most to the least specific
func DefaultConverters(provider *schema.Provider) []ShapeConverter {
	return []ShapeConverter{
		&NullableConverter{},
		&UUIDConverter{},
		&TypeRefConverter{},
		&DateConverter{},
		NewEnumConverter(provider),
		NewPrimitiveConverter(provider),
		&ArrayConverter{},
		&DictionaryConverter{},
		&ContainerConverter{},
		&KeyValueConverter{},
		&WeakReferenceConverter{},
		&ReflectedConverter{},
	}
}

// Config returns configuration
func (s *Serializer) Config() *Config {
	return s.config
}

// Provider returns type descriptor provider
func (s *Serializer) Provider() *schema.Provider {
	return s.provider
}

// Logger returns logger
func (s *Serializer) Logger() *zap.Logger {
	return s.logger
}

// AddConverter adds converter ahead of registered ones
func (s *Serializer) AddConverter(converter ShapeConverter) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.converters = append([]ShapeConverter{converter}, s.converters...)
	s.cache = visitor.NewSyncMap[reflect.Type, Converter]()
}

// RegisterConverter registers converter selected by name with member tag `ivconv:"converter=name"`
func (s *Serializer) RegisterConverter(name string, converter Converter) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.named[name] = converter
}

// Forward declares that t converts as its member
func (s *Serializer) Forward(t reflect.Type, member string) {
	s.mux.Lock()
	defer s.mux.Unlock()
	s.forwards[t] = member
	s.cache = visitor.NewSyncMap[reflect.Type, Converter]()
}

// RegisterType registers type name used to record runtime types of interface values
func (s *Serializer) RegisterType(t reflect.Type, name ...string) {
	s.provider.Types().Register(t, name...)
}

// Named returns registered named converter
func (s *Serializer) Named(name string) (Converter, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret, ok := s.named[name]
	return ret, ok
}

// ConverterFor returns converter handling t
func (s *Serializer) ConverterFor(t reflect.Type) (Converter, bool) {
	if t == nil {
		return nil, false
	}
	s.mux.RLock()
	cache := s.cache
	s.mux.RUnlock()
	ret := cache.GetOrPut(t, func() Converter {
		return s.lookup(t)
	})
	return ret, ret != nil
}

// specificFor returns converter handling t unless it is the catch-all one
func (s *Serializer) specificFor(t reflect.Type) (Converter, bool) {
	ret, ok := s.ConverterFor(t)
	if !ok || isFallback(ret) {
		return nil, false
	}
	return ret, true
}

func (s *Serializer) lookup(t reflect.Type) Converter {
	s.mux.RLock()
	converters := s.converters
	member, forwarded := s.forwards[t]
	s.mux.RUnlock()
	if !forwarded && t.Kind() == reflect.Struct {
		member = s.provider.Describe(t).Forward
		forwarded = member != ""
	}
	if forwarded {
		return &ForwardConverter{Member: member}
	}
	var ret ShapeConverter
	for _, candidate := range converters {
		if !candidate.CanProcess(t) {
			continue
		}
		if ret == nil {
			ret = candidate
			if !s.debug {
				break
			}
			continue
		}
		if !isFallback(candidate) {
			s.logger.Warn("multiple converters claim type",
				zap.Stringer("type", t),
				zap.String("selected", fmt.Sprintf("%T", ret)),
				zap.String("candidate", fmt.Sprintf("%T", candidate)))
		}
	}
	if ret == nil {
		return nil
	}
	return ret
}

func isFallback(converter Converter) bool {
	candidate, ok := converter.(fallback)
	return ok && candidate.Fallback()
}

// TrySerialize serializes instance stored as storageType
func (s *Serializer) TrySerialize(storageType reflect.Type, instance reflect.Value) (iv.Value, Result) {
	return s.newSession().TrySerialize(storageType, instance, "")
}

// TryDeserialize deserializes data into settable instance
func (s *Serializer) TryDeserialize(data iv.Value, instance reflect.Value) Result {
	if !instance.IsValid() {
		return Fail(UnsupportedShape, "invalid deserialization target")
	}
	return s.newSession().TryDeserialize(data, instance.Type(), instance, "")
}

// Serialize serializes value, a result with warnings is logged and treated as success
func (s *Serializer) Serialize(value interface{}) (iv.Value, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return iv.Null{}, nil
	}
	ret, result := s.TrySerialize(v.Type(), v)
	s.report("serialize", v.Type(), result)
	return ret, result.Err()
}

// Deserialize deserializes data into dest pointer
func (s *Serializer) Deserialize(data iv.Value, dest interface{}) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return errors.Newf("expected non nil pointer destination, but had %T", dest)
	}
	result := s.TryDeserialize(data, v.Elem())
	s.report("deserialize", v.Type().Elem(), result)
	return result.Err()
}

// Marshal serializes value into JSON text
func (s *Serializer) Marshal(value interface{}) ([]byte, error) {
	data, err := s.Serialize(value)
	if err != nil {
		return nil, err
	}
	return iv.Marshal(data)
}

// Unmarshal deserializes JSON text into dest pointer
func (s *Serializer) Unmarshal(data []byte, dest interface{}) error {
	value, err := iv.Unmarshal(data)
	if err != nil {
		return err
	}
	return s.Deserialize(value, dest)
}

func (s *Serializer) report(operation string, t reflect.Type, result Result) {
	if !result.HasWarnings() {
		return
	}
	s.logger.Debug("conversion completed with messages",
		zap.String("operation", operation),
		zap.Stringer("type", t),
		zap.Bool("failed", result.Failed()),
		zap.Strings("messages", result.Messages()))
}

func (s *Serializer) newSession() *session {
	return &session{serializer: s, visiting: map[visitKey]bool{}}
}

// New creates a serializer
func New(opts ...Option) *Serializer {
	ret := &Serializer{
		config:   DefaultConfig(),
		logger:   zap.NewNop(),
		named:    map[string]Converter{},
		forwards: map[reflect.Type]string{},
		cache:    visitor.NewSyncMap[reflect.Type, Converter](),
	}
	Options(opts).Apply(ret)
	if ret.provider == nil {
		ret.provider = schema.NewProvider(
			schema.WithCaseFormat(text.CaseFormat(ret.config.CaseFormat)),
			schema.WithTypeRegistry(ret.registry),
		)
	}
	for _, item := range ret.types {
		ret.provider.Types().Register(item.t, item.name)
	}
	ret.converters = append(append([]ShapeConverter{}, ret.custom...), DefaultConverters(ret.provider)...)
	return ret
}
