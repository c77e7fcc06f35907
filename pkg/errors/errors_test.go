package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Unavailable("upload asset", cause)

	assert.Equal(t, "UNAVAILABLE: upload asset: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsUnavailable(err))
	assert.False(t, IsNotFound(err))
	assert.Equal(t, "NOT_FOUND: title not found", NotFound("title not found").Error())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeNotFound, TypeOf(fmt.Errorf("get title: %w", NotFound("title not found"))))
	assert.Equal(t, ErrorTypeBadRequest, TypeOf(BadRequest("bad")))
	assert.Equal(t, ErrorTypeConflict, TypeOf(Conflict("exists")))
	assert.Equal(t, ErrorTypeInternal, TypeOf(errors.New("plain")))
	assert.False(t, IsConflict(nil))
}
