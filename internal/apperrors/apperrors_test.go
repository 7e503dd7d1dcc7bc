package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("missing")))
	assert.Equal(t, KindAuth, KindOf(Auth("denied")))
	assert.Equal(t, KindConflict, KindOf(Conflict("duplicate")))
	assert.Equal(t, KindIntegrity, KindOf(Integrity("corrupt", errors.New("cause"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("missing"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "missing", MessageOf(err))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("row vanished")
	err := Integrity("corrupt", cause)
	assert.ErrorIs(t, err, cause)
}

func TestMessageOfFallsBackForUnknownErrors(t *testing.T) {
	assert.Equal(t, "Sorry! There has been an internal error.", MessageOf(errors.New("sql: bad")))
	assert.Equal(t, "duplicate", MessageOf(Conflict("duplicate")))
}
