package ivconv

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Result represents conversion outcome: success, success with warnings or failure.
// The zero value is success.
type Result struct {
	failed   bool
	messages []string
	kinds    []ErrorKind
}

// Success returns successful result
func Success() Result {
	return Result{}
}

// Warn returns successful result carrying a warning
func Warn(format string, args ...interface{}) Result {
	return Result{messages: []string{sprintf(format, args...)}}
}

// Fail returns failed result
func Fail(kind ErrorKind, format string, args ...interface{}) Result {
	return Result{failed: true, kinds: []ErrorKind{kind}, messages: []string{sprintf(format, args...)}}
}

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// Merge combines other into r: failed if either failed, messages concatenated
func (r *Result) Merge(other Result) {
	r.failed = r.failed || other.failed
	r.messages = append(r.messages, other.messages...)
	r.kinds = append(r.kinds, other.kinds...)
}

// Add returns combination of both results
func (r Result) Add(other Result) Result {
	ret := Result{
		failed:   r.failed || other.failed,
		messages: append(append([]string(nil), r.messages...), other.messages...),
		kinds:    append(append([]ErrorKind(nil), r.kinds...), other.kinds...),
	}
	return ret
}

// AddMessages appends other messages keeping r status, failure kinds are not carried
func (r *Result) AddMessages(other Result) {
	r.messages = append(r.messages, other.messages...)
}

// Failed returns true if conversion failed
func (r Result) Failed() bool { return r.failed }

// Succeeded returns true if conversion did not fail
func (r Result) Succeeded() bool { return !r.failed }

// HasWarnings returns true if result carries messages
func (r Result) HasWarnings() bool { return len(r.messages) > 0 }

// Messages returns accumulated messages in order
func (r Result) Messages() []string { return r.messages }

// Kinds returns failure kinds in order
func (r Result) Kinds() []ErrorKind { return r.kinds }

// Has returns true if result carries failure kind
func (r Result) Has(kind ErrorKind) bool {
	for _, candidate := range r.kinds {
		if candidate == kind {
			return true
		}
	}
	return false
}

func (r Result) firstKind() ErrorKind {
	if len(r.kinds) == 0 {
		return ShapeMismatch
	}
	return r.kinds[0]
}

// FormattedMessages returns messages joined with new line
func (r Result) FormattedMessages() string {
	return strings.Join(r.messages, "\n")
}

// Err returns error for failed result or nil
func (r Result) Err() error {
	if !r.failed {
		return nil
	}
	return &ConversionError{Kinds: r.kinds, Messages: r.messages}
}

// AssertSuccess returns error if result failed
func (r Result) AssertSuccess() error {
	return r.Err()
}

// AssertSuccessWithoutWarnings returns error if result failed or carries warnings
func (r Result) AssertSuccessWithoutWarnings() error {
	if err := r.Err(); err != nil {
		return err
	}
	if r.HasWarnings() {
		return errors.Newf("conversion succeeded with warnings: %s", r.FormattedMessages())
	}
	return nil
}

func (r Result) String() string {
	switch {
	case r.failed:
		return "failed: " + r.FormattedMessages()
	case r.HasWarnings():
		return "warnings: " + r.FormattedMessages()
	}
	return "success"
}
