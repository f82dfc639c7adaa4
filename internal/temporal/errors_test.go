package temporal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	re := NewRangeError("exact.round", "increment %d out of range", 25)
	assert.True(t, IsRangeError(re))
	assert.False(t, IsTypeError(re))
	assert.Equal(t, "RangeError: exact.round: increment 25 out of range", re.Error())

	te := NewTypeError("duration.total", "unrecognized unit %q", "fortnight")
	assert.True(t, IsTypeError(te))
	assert.False(t, IsRangeError(te))
}

func TestErrorMatchingThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while rounding: %w", NewRangeError("round", "bad increment"))
	assert.True(t, IsRangeError(wrapped))
	assert.False(t, IsTypeError(wrapped))
}

func TestErrorWithoutOp(t *testing.T) {
	e := &Error{Kind: KindType, Message: "boom"}
	assert.Equal(t, "TypeError: boom", e.Error())
}
