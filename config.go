package ivconv

import (
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	ftime "github.com/viant/tagly/format/time"
	"gopkg.in/yaml.v3"
)

// ElementFailurePolicy controls what a container does with an element that failed to convert
type ElementFailurePolicy string

const (
	// SkipFailedElements drops the element, the container may end up shorter than its input
	SkipFailedElements ElementFailurePolicy = "skip"
	// ZeroFailedElements inserts element zero value in place of the failed one
	ZeroFailedElements ElementFailurePolicy = "zero"
	// AbortOnElementFailure stops converting the container at the first failed element
	AbortOnElementFailure ElementFailurePolicy = "abort"
)

const (
	DefaultMetaPrefix = "$"
	typeKey           = "type"
	contentKey        = "content"
)

var metaKeys = []string{typeKey, contentKey, "ref", "id", "version"}

// Config represents conversion configuration
type Config struct {
	EnumsAsIntegers      bool                 `yaml:"enumsAsIntegers"`
	Int64AsString        bool                 `yaml:"int64AsString"`
	DateFormat           string               `yaml:"dateFormat"` //ISO 2022-07-15 date format, i.e. YYYY-MM-DD
	TimeLayout           string               `yaml:"timeLayout"` //go time layout, takes precedence over DateFormat
	ElementFailurePolicy ElementFailurePolicy `yaml:"elementFailurePolicy"`
	MetaPrefix           string               `yaml:"metaPrefix"`
	CaseFormat           string               `yaml:"caseFormat"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		ElementFailurePolicy: SkipFailedElements,
		MetaPrefix:           DefaultMetaPrefix,
	}
}

// Layout returns effective time layout
func (c *Config) Layout() string {
	switch {
	case c.TimeLayout != "":
		return c.TimeLayout
	case c.DateFormat != "":
		return ftime.DateFormatToTimeLayout(c.DateFormat)
	}
	return time.RFC3339Nano
}

// MetaKey returns reserved key with configured prefix
func (c *Config) MetaKey(name string) string {
	return c.metaPrefix() + name
}

// IsReserved returns true for envelope meta keys, i.e. $type
func (c *Config) IsReserved(key string) bool {
	prefix := c.metaPrefix()
	if !strings.HasPrefix(key, prefix) {
		return false
	}
	name := key[len(prefix):]
	for _, candidate := range metaKeys {
		if candidate == name {
			return true
		}
	}
	return false
}

func (c *Config) metaPrefix() string {
	if c.MetaPrefix == "" {
		return DefaultMetaPrefix
	}
	return c.MetaPrefix
}

// Validate checks configuration
func (c *Config) Validate() error {
	switch c.ElementFailurePolicy {
	case "", SkipFailedElements, ZeroFailedElements, AbortOnElementFailure:
	default:
		return errors.Newf("invalid elementFailurePolicy: %q, expected one of: skip, zero, abort", c.ElementFailurePolicy)
	}
	return nil
}

func (c *Config) failurePolicy() ElementFailurePolicy {
	if c.ElementFailurePolicy == "" {
		return SkipFailedElements
	}
	return c.ElementFailurePolicy
}

// LoadConfig loads YAML configuration, unspecified settings keep their defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %v", path)
	}
	ret := DefaultConfig()
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config %v", path)
	}
	if err = ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}
