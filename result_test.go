package ivconv

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	var result Result
	assert.True(t, result.Succeeded())
	assert.False(t, result.HasWarnings())
	assert.NoError(t, result.AssertSuccessWithoutWarnings())
	assert.Equal(t, "success", result.String())

	result.Merge(Warn("first %v", 1))
	assert.True(t, result.Succeeded())
	assert.Error(t, result.AssertSuccessWithoutWarnings())
	assert.NoError(t, result.AssertSuccess())

	result.Merge(Fail(MissingField, "second"))
	assert.True(t, result.Failed())
	assert.Equal(t, []string{"first 1", "second"}, result.Messages())
	assert.Equal(t, []ErrorKind{MissingField}, result.Kinds())
	assert.Equal(t, "first 1\nsecond", result.FormattedMessages())

	err := result.Err()
	assert.ErrorIs(t, err, ErrMissingField)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.False(t, errors.Is(err, ErrShapeMismatch))
	assert.Contains(t, err.Error(), "second")
}

func TestResult_Add(t *testing.T) {
	left := Warn("left")
	right := Fail(ParseFailure, "right")
	combined := left.Add(right)
	assert.True(t, combined.Failed())
	assert.True(t, combined.Has(ParseFailure))
	assert.Equal(t, []string{"left", "right"}, combined.Messages())
	assert.Equal(t, []string{"left"}, left.Messages(), "operands are not modified")

	var kept Result
	kept.AddMessages(right)
	assert.True(t, kept.Succeeded())
	assert.Equal(t, []string{"right"}, kept.Messages())
}
