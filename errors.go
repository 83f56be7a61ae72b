package ivconv

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorKind represents conversion failure category
type ErrorKind int

const (
	// ShapeMismatch IV variant not acceptable for storage type
	ShapeMismatch ErrorKind = iota + 1
	// MissingField required key absent
	MissingField
	// UnresolvedName enum member or type name unknown
	UnresolvedName
	// ParseFailure text could not be parsed into the target primitive
	ParseFailure
	// UnsupportedShape storage type not handled by any code path
	UnsupportedShape
	// CycleDetected object graph re-entered an instance being converted
	CycleDetected
)

var (
	ErrShapeMismatch    = errors.New("shape mismatch")
	ErrMissingField     = errors.New("missing field")
	ErrUnresolvedName   = errors.New("unresolved name")
	ErrParseFailure     = errors.New("parse failure")
	ErrUnsupportedShape = errors.New("unsupported shape")
	ErrCycleDetected    = errors.New("cycle detected")
)

// Sentinel returns sentinel error for the kind
func (k ErrorKind) Sentinel() error {
	switch k {
	case ShapeMismatch:
		return ErrShapeMismatch
	case MissingField:
		return ErrMissingField
	case UnresolvedName:
		return ErrUnresolvedName
	case ParseFailure:
		return ErrParseFailure
	case UnsupportedShape:
		return ErrUnsupportedShape
	case CycleDetected:
		return ErrCycleDetected
	}
	return nil
}

func (k ErrorKind) String() string {
	if sentinel := k.Sentinel(); sentinel != nil {
		return sentinel.Error()
	}
	return "unknown"
}

// ConversionError represents failed conversion result
type ConversionError struct {
	Kinds    []ErrorKind
	Messages []string
}

func (e *ConversionError) Error() string {
	return "conversion failed: " + strings.Join(e.Messages, "; ")
}

// Is matches any failure kind sentinel carried by the error
func (e *ConversionError) Is(target error) bool {
	for _, kind := range e.Kinds {
		if kind.Sentinel() == target {
			return true
		}
	}
	return false
}
